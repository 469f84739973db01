package profile_test

import (
	"io"
	"log/slog"
	"testing"

	"github.com/csattler/tessera/internal/profile"
)

func newProfiler() *profile.Profiler {
	return profile.NewProfiler(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestClassifyFormat(t *testing.T) {
	p := newProfiler()

	tests := []struct {
		name        string
		filename    string
		contentType string
		expected    profile.Format
	}{
		{"pdf mime", "file.bin", "application/pdf", profile.FormatPDF},
		{"pdf extension", "report.pdf", "", profile.FormatPDF},
		{"image mime", "upload", "image/png", profile.FormatImage},
		{"image extension", "page.jpeg", "", profile.FormatImage},
		{"audio mime", "clip", "audio/mpeg", profile.FormatAudio},
		{"audio extension", "talk.mp3", "", profile.FormatAudio},
		{"fallback document", "readme.txt", "text/plain", profile.FormatDocument},
		{"mime wins over extension", "photo.jpg", "application/pdf", profile.FormatPDF},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := p.Profile(profile.File{
				Filename:    tt.filename,
				ContentType: tt.contentType,
				Data:        []byte("x"),
			}, profile.UserStandard)

			if got.Format != tt.expected {
				t.Errorf("got %s, want %s", got.Format, tt.expected)
			}
		})
	}
}

func TestKeywordHints(t *testing.T) {
	p := newProfiler()

	tests := []struct {
		name     string
		filename string
		class    profile.ContentClass
		tables   bool
	}{
		{"text keyword", "chemistry_textbook.pdf", profile.ClassTextHeavy, false},
		{"image keyword", "photo_album.pdf", profile.ClassImageHeavy, false},
		{"image beats text", "scan_notes.pdf", profile.ClassImageHeavy, false},
		{"table keyword", "invoice_march.pdf", profile.ClassTextHeavy, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := p.Profile(profile.File{
				Filename:    tt.filename,
				ContentType: "application/pdf",
				Data:        make([]byte, 10*1024),
			}, profile.UserStandard)

			if got.ContentClass != tt.class {
				t.Errorf("class: got %s, want %s", got.ContentClass, tt.class)
			}
			if got.HasTables != tt.tables {
				t.Errorf("tables: got %v, want %v", got.HasTables, tt.tables)
			}
		})
	}
}

func TestRatioHeuristic(t *testing.T) {
	p := newProfiler()

	tests := []struct {
		name     string
		size     int
		expected profile.ContentClass
	}{
		// unparseable pdf bytes fall back to size/100KB page estimates,
		// so bytes-per-page lands near 100KB for any multi-page size
		{"light pages are text-heavy", 10 * 1024, profile.ClassTextHeavy},
		{"medium pages are mixed", 150 * 1024, profile.ClassMixed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := p.Profile(profile.File{
				Filename:    "data.pdf",
				ContentType: "application/pdf",
				Data:        make([]byte, tt.size),
			}, profile.UserStandard)

			if got.ContentClass != tt.expected {
				t.Errorf("got %s, want %s", got.ContentClass, tt.expected)
			}
		})
	}
}

func TestPageCountEstimates(t *testing.T) {
	p := newProfiler()

	tests := []struct {
		name        string
		filename    string
		contentType string
		size        int
		expected    int
	}{
		{"image is one page", "page.png", "image/png", 5 * 1024 * 1024, 1},
		{"empty file is one page", "empty.txt", "text/plain", 0, 1},
		{"unparseable pdf uses size ratio", "data.pdf", "application/pdf", 500 * 1024, 5},
		{"audio counts minutes", "talk.mp3", "audio/mpeg", 3 * 1024 * 1024, 3},
		{"plain text counts small pages", "notes2.txt", "text/plain", 9 * 1024, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := p.Profile(profile.File{
				Filename:    tt.filename,
				ContentType: tt.contentType,
				Data:        make([]byte, tt.size),
			}, profile.UserStandard)

			if got.PageCount != tt.expected {
				t.Errorf("got %d pages, want %d", got.PageCount, tt.expected)
			}
		})
	}
}

func TestProfileNeverFails(t *testing.T) {
	p := newProfiler()

	got := p.Profile(profile.File{}, profile.UserPremium)

	if got.PageCount < 1 {
		t.Errorf("page count: got %d, want at least 1", got.PageCount)
	}
	if got.TextDensity < 0 || got.TextDensity > 1 {
		t.Errorf("density out of range: %f", got.TextDensity)
	}
	if got.Complexity < 0 || got.Complexity > 1 {
		t.Errorf("complexity out of range: %f", got.Complexity)
	}
	if got.UserTier != profile.UserPremium {
		t.Errorf("tier: got %s, want %s", got.UserTier, profile.UserPremium)
	}
}
