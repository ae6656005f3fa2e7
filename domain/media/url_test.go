package media

import (
	"reflect"
	"strings"
	"testing"
)

func TestExtractYouTubeURL(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"watch url", "https://www.youtube.com/watch?v=dQw4w9WgXcQ", "https://www.youtube.com/watch?v=dQw4w9WgXcQ"},
		{"watch url without www", "http://youtube.com/watch?v=abc-_123", "http://youtube.com/watch?v=abc-_123"},
		{"short link", "look https://youtu.be/dQw4w9WgXcQ here", "https://youtu.be/dQw4w9WgXcQ"},
		{"shorts", "https://www.youtube.com/shorts/AbCdEfGhIjK", "https://www.youtube.com/shorts/AbCdEfGhIjK"},
		{"music", "https://music.youtube.com/watch?v=dQw4w9WgXcQ&si=x", "https://music.youtube.com/watch?v=dQw4w9WgXcQ"},
		{"extra query is dropped", "https://www.youtube.com/watch?v=dQw4w9WgXcQ&t=42", "https://www.youtube.com/watch?v=dQw4w9WgXcQ"},
		{"not youtube", "https://vimeo.com/12345", ""},
		{"plain text", "hello world", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExtractYouTubeURL(tt.text); got != tt.want {
				t.Errorf("ExtractYouTubeURL(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}

func TestIsPlaylistURL(t *testing.T) {
	tests := []struct {
		url  string
		want bool
	}{
		{"https://www.youtube.com/playlist?list=PL123", true},
		{"https://www.youtube.com/watch?v=abc&list=PL123", true},
		{"https://www.youtube.com/watch?v=dQw4w9WgXcQ", false},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			if got := IsPlaylistURL(tt.url); got != tt.want {
				t.Errorf("IsPlaylistURL(%q) = %v, want %v", tt.url, got, tt.want)
			}
		})
	}
}

func TestVideoID(t *testing.T) {
	tests := []struct {
		input   string
		want    string
		wantErr bool
	}{
		{input: "dQw4w9WgXcQ", want: "dQw4w9WgXcQ"},
		{input: "https://www.youtube.com/watch?v=dQw4w9WgXcQ", want: "dQw4w9WgXcQ"},
		{input: "https://youtu.be/dQw4w9WgXcQ", want: "dQw4w9WgXcQ"},
		{input: "https://www.youtube.com/shorts/dQw4w9WgXcQ", want: "dQw4w9WgXcQ"},
		{input: "https://music.youtube.com/watch?v=dQw4w9WgXcQ", want: "dQw4w9WgXcQ"},
		{input: "https://example.com/video", wantErr: true},
		{input: "https://www.youtube.com/watch", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := VideoID(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Errorf("VideoID(%q) = %q, want error", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("VideoID(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("VideoID(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseURLList(t *testing.T) {
	input := `
# favourites
https://youtu.be/aaaaaaaaaaa

   https://youtu.be/bbbbbbbbbbb   
#https://youtu.be/skipped0000
`
	got, err := ParseURLList(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ParseURLList() unexpected error: %v", err)
	}
	want := []string{"https://youtu.be/aaaaaaaaaaa", "https://youtu.be/bbbbbbbbbbb"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ParseURLList() = %v, want %v", got, want)
	}
}
