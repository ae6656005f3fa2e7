package transcript

import (
	"path/filepath"
	"regexp"
	"strings"
)

var (
	invalidNameChars = regexp.MustCompile(`[<>:"/\\|?*\x00-\x1F]`)
	repeatedSpaces   = regexp.MustCompile(`\s+`)
)

const maxNameLength = 120

// SanitizeName makes a title safe to use as a single path component
func SanitizeName(name string) string {
	clean := repeatedSpaces.ReplaceAllString(name, " ")
	clean = invalidNameChars.ReplaceAllString(clean, "_")
	clean = strings.Trim(clean, " .")

	if r := []rune(clean); len(r) > maxNameLength {
		clean = strings.Trim(string(r[:maxNameLength]), " .")
	}
	if clean == "" {
		return "untitled"
	}
	return clean
}

// OutputPath returns <root>/<creator>/[<playlist>/]<title>.<ext>
// with each component sanitized. An empty playlist omits that level.
func OutputPath(root, creator, playlist, title string, format Format) string {
	parts := []string{root, SanitizeName(creator)}
	if strings.TrimSpace(playlist) != "" {
		parts = append(parts, SanitizeName(playlist))
	}
	parts = append(parts, SanitizeName(title)+"."+format.Ext())
	return filepath.Join(parts...)
}
