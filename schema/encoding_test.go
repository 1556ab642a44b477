package schema

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestDecodeDocument(t *testing.T) {
	// "Größe" в ISO-8859-1
	latin1 := []byte{'G', 'r', 0xF6, 0xDF, 'e'}

	tests := []struct {
		name        string
		data        []byte
		contentType string
		want        string
	}{
		{
			name:        "charset from content type header",
			data:        latin1,
			contentType: "text/html; charset=iso-8859-1",
			want:        "Größe",
		},
		{
			name:        "valid utf-8 without declaration stays as is",
			data:        []byte("Größe"),
			contentType: "",
			want:        "Größe",
		},
		{
			name:        "windows-1252 fallback without declaration",
			data:        latin1,
			contentType: "",
			want:        "Größe",
		},
		{
			name:        "header charset utf-8 with valid body",
			data:        []byte("Größe"),
			contentType: "text/html; charset=utf-8",
			want:        "Größe",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := string(DecodeDocument(tt.data, tt.contentType))
			if got != tt.want {
				t.Errorf("DecodeDocument() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDecodeDocumentMetaCharset(t *testing.T) {
	// Тело в ISO-8859-1 с объявлением в <meta>, заголовок пустой
	page := append([]byte(`<html><head><meta charset="iso-8859-1"></head><body>`),
		0xF6, 0xDF, '<', '/', 'b', 'o', 'd', 'y', '>')

	got := DecodeDocument(page, "")
	if !utf8.Valid(got) {
		t.Fatal("DecodeDocument() produced invalid UTF-8")
	}
	if want := "öß"; !strings.Contains(string(got), want) {
		t.Errorf("DecodeDocument() = %q, want it to contain %q", got, want)
	}
}

func TestSanitizeUTF8(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "valid string untouched",
			input: "Widerstand 10 kΩ",
			want:  "Widerstand 10 kΩ",
		},
		{
			name:  "latin-1 bytes repaired",
			input: string([]byte{'G', 'r', 0xF6, 0xDF, 'e'}),
			want:  "Größe",
		},
		{
			name:  "empty string",
			input: "",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SanitizeUTF8(tt.input)
			if got != tt.want {
				t.Errorf("SanitizeUTF8(%q) = %q, want %q", tt.input, got, tt.want)
			}
			if !utf8.ValidString(got) {
				t.Errorf("SanitizeUTF8(%q) produced invalid UTF-8", tt.input)
			}
		})
	}
}
