package transcript

import (
	"fmt"
	"strings"
)

// Format is a transcript output format and doubles as the file extension
type Format string

const (
	FormatText Format = "txt"
	FormatSRT  Format = "srt"
	FormatJSON Format = "json"
)

// ParseFormat parses a format name, case-insensitively
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatText, FormatSRT, FormatJSON:
		return f, nil
	case "text":
		return FormatText, nil
	default:
		return "", fmt.Errorf("%w: %q (choose txt, srt or json)", ErrInvalidFormat, s)
	}
}

// Ext returns the file extension without the dot
func (f Format) Ext() string {
	return string(f)
}
