package transcript

import (
	"fmt"
	"strings"
)

// DefaultLanguage is used when no --lang is given
const DefaultLanguage = "en"

// Request describes which captions to fetch and where to write them
type Request struct {
	URL         string
	Language    string
	Format      Format
	IncludeAuto bool
	OutputDir   string
	Max         int
}

// NewRequest creates a Request with defaults applied
func NewRequest(url, language string, format Format, includeAuto bool, outputDir string) (*Request, error) {
	url = strings.TrimSpace(url)
	if url == "" {
		return nil, fmt.Errorf("url is required")
	}
	if outputDir == "" {
		return nil, fmt.Errorf("output directory is required")
	}

	language = strings.TrimSpace(language)
	if language == "" {
		language = DefaultLanguage
	}
	if format == "" {
		format = FormatText
	}

	return &Request{
		URL:         url,
		Language:    language,
		Format:      format,
		IncludeAuto: includeAuto,
		OutputDir:   outputDir,
	}, nil
}
