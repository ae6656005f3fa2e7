package transcript

import (
	"errors"
	"testing"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input   string
		want    Format
		wantErr bool
	}{
		{input: "txt", want: FormatText},
		{input: "text", want: FormatText},
		{input: "SRT", want: FormatSRT},
		{input: " json ", want: FormatJSON},
		{input: "vtt", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseFormat(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidFormat) {
					t.Errorf("ParseFormat(%q) error = %v, want ErrInvalidFormat", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseFormat(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseFormat(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNewRequest_Defaults(t *testing.T) {
	req, err := NewRequest(" https://youtu.be/dQw4w9WgXcQ ", "", "", true, "/transcripts")
	if err != nil {
		t.Fatalf("NewRequest() unexpected error: %v", err)
	}
	if req.Language != DefaultLanguage {
		t.Errorf("Language = %q, want %q", req.Language, DefaultLanguage)
	}
	if req.Format != FormatText {
		t.Errorf("Format = %q, want %q", req.Format, FormatText)
	}
	if req.URL != "https://youtu.be/dQw4w9WgXcQ" {
		t.Errorf("URL = %q, want trimmed URL", req.URL)
	}

	if _, err := NewRequest("", "en", FormatText, true, "/transcripts"); err == nil {
		t.Error("NewRequest() with empty URL expected error")
	}
	if _, err := NewRequest("https://youtu.be/x", "en", FormatText, true, ""); err == nil {
		t.Error("NewRequest() with empty output dir expected error")
	}
}
