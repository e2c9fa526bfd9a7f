package summary

import (
	"strings"
	"testing"
	"time"
)

func TestSanitizeTitle(t *testing.T) {
	tests := []struct {
		name  string
		title string
		want  string
	}{
		{"punctuation stripped", "Hello, World! Ep. 2024", "hello-world-ep-2024"},
		{"already clean", "episode-one", "episode-one"},
		{"mixed separators", "A  B --- C", "a-b-c"},
		{"leading and trailing junk", "  --Trim Me--  ", "trim-me"},
		{"accented letters kept", "Café Épisode 5", "café-épisode-5"},
		{"cjk letters kept", "日本語エピソード", "日本語エピソード"},
		{"empty", "", ""},
		{"only punctuation", "!!!", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SanitizeTitle(tt.title); got != tt.want {
				t.Errorf("SanitizeTitle(%q) = %q, want %q", tt.title, got, tt.want)
			}
		})
	}
}

func TestSanitizeTitleTruncation(t *testing.T) {
	long := strings.Repeat("word ", 20) // slug would be 99 chars
	got := SanitizeTitle(long)

	if len(got) > 50 {
		t.Errorf("slug length = %d, want <= 50", len(got))
	}
	if strings.HasSuffix(got, "-") {
		t.Errorf("slug %q has trailing hyphen after truncation", got)
	}
}

func TestSanitizeTitleTruncationIsRuneSafe(t *testing.T) {
	long := strings.Repeat("日本語エピソード ", 10) // 70 runes of letters plus separators
	got := SanitizeTitle(long)

	runes := []rune(got)
	if len(runes) > 50 {
		t.Errorf("slug rune length = %d, want <= 50", len(runes))
	}
	// Every rune must survive intact; a byte-level cut would corrupt
	// the final character.
	for _, r := range runes {
		if r == '�' {
			t.Fatalf("slug %q contains a split rune", got)
		}
	}
	if strings.HasSuffix(got, "-") {
		t.Errorf("slug %q has trailing hyphen after truncation", got)
	}
}

func TestDateForFilename(t *testing.T) {
	tests := []struct {
		name      string
		published string
		want      string
	}{
		{"plain iso date", "2024-01-05", "2024-01-05"},
		{"iso with offset", "2024-01-05T10:30:00+02:00", "2024-01-05"},
		{"iso zulu", "2024-01-05T10:30:00Z", "2024-01-05"},
		{"rfc822 numeric zone", "Fri, 05 Jan 2024 10:30:00 +0000", "2024-01-05"},
		{"rfc822 named zone", "Fri, 05 Jan 2024 10:30:00 GMT", "2024-01-05"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DateForFilename(tt.published); got != tt.want {
				t.Errorf("DateForFilename(%q) = %q, want %q", tt.published, got, tt.want)
			}
		})
	}
}

func TestDateForFilenameFallback(t *testing.T) {
	today := time.Now().UTC().Format("2006-01-02")

	if got := DateForFilename("not-a-date"); got != today {
		t.Errorf("DateForFilename(not-a-date) = %q, want current UTC date %q", got, today)
	}
	if got := DateForFilename(""); got != today {
		t.Errorf("DateForFilename(\"\") = %q, want current UTC date %q", got, today)
	}
}

func TestFilename(t *testing.T) {
	got := Filename("2024-01-05", "Hello, World! Ep. 2024")
	want := "2024-01-05-hello-world-ep-2024.md"
	if got != want {
		t.Errorf("Filename() = %q, want %q", got, want)
	}
}
