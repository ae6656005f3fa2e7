package media

import (
	"bufio"
	"fmt"
	"io"
	"net/url"
	"regexp"
	"strings"
)

// youtubeURLRegex matches watch, short-link, shorts and YouTube Music URLs
var youtubeURLRegex = regexp.MustCompile(strings.Join([]string{
	`https?://(?:www\.)?youtube\.com/watch\?v=[\w-]+`,
	`https?://youtu\.be/[\w-]+`,
	`https?://(?:www\.)?youtube\.com/shorts/[\w-]+`,
	`https?://music\.youtube\.com/watch\?v=[\w-]+`,
}, "|"))

// videoIDRegex matches a bare 11-character video ID
var videoIDRegex = regexp.MustCompile(`^[\w-]{11}$`)

// ExtractYouTubeURL returns the first YouTube video URL found in text, or "" if none
func ExtractYouTubeURL(text string) string {
	return youtubeURLRegex.FindString(text)
}

// IsPlaylistURL reports whether the URL refers to a playlist rather than a single video
func IsPlaylistURL(u string) bool {
	return strings.Contains(strings.ToLower(u), "playlist") || strings.Contains(u, "list=")
}

// VideoID extracts the video ID from a YouTube URL or returns a bare ID unchanged
func VideoID(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if videoIDRegex.MatchString(raw) {
		return raw, nil
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("invalid URL %q: %w", raw, err)
	}

	host := strings.TrimPrefix(strings.ToLower(parsed.Host), "www.")
	switch host {
	case "youtu.be":
		if id := strings.Trim(parsed.Path, "/"); id != "" {
			return id, nil
		}
	case "youtube.com", "m.youtube.com", "music.youtube.com":
		if v := parsed.Query().Get("v"); v != "" {
			return v, nil
		}
		for _, prefix := range []string{"/shorts/", "/embed/", "/live/"} {
			if strings.HasPrefix(parsed.Path, prefix) {
				if id := strings.Trim(strings.TrimPrefix(parsed.Path, prefix), "/"); id != "" {
					return id, nil
				}
			}
		}
	}

	return "", fmt.Errorf("could not find a video ID in %q", raw)
}

// WatchURL returns the canonical watch URL for a video ID
func WatchURL(id string) string {
	return "https://www.youtube.com/watch?v=" + id
}

// ParseURLList reads one URL per line, skipping blank lines and # comments
func ParseURLList(r io.Reader) ([]string, error) {
	var urls []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		urls = append(urls, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read URL list: %w", err)
	}
	return urls, nil
}
