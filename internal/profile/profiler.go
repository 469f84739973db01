package profile

import (
	"bytes"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
)

// Byte-size heuristics for page count estimation, per format.
const (
	pdfBytesPerPage      = 100 * 1024  // average scanned/text mix
	documentBytesPerPage = 3 * 1024    // plain text formats
	audioBytesPerMinute  = 1024 * 1024 // one "page" per estimated minute
)

// Profiler classifies whole files ahead of rendering.
type Profiler struct {
	logger *slog.Logger
}

// NewProfiler creates a Profiler.
func NewProfiler(logger *slog.Logger) *Profiler {
	return &Profiler{logger: logger.With("system", "profiler")}
}

// Profile classifies a file into a DocumentProfile. It never fails; inputs it
// cannot interpret degrade to mixed-content defaults.
func (p *Profiler) Profile(f File, tier UserTier) DocumentProfile {
	format := classifyFormat(f.ContentType, f.Filename)

	profile := DocumentProfile{
		Format:    format,
		SizeBytes: int64(len(f.Data)),
		PageCount: p.estimatePageCount(format, f),
		UserTier:  tier,
	}

	hint, ok := keywordHint(f.Filename)
	if ok {
		profile.ContentClass = hint.class
		profile.TextDensity = hint.density
		profile.Complexity = hint.complexity
	} else {
		profile.ContentClass, profile.TextDensity, profile.Complexity =
			ratioHeuristic(format, profile.SizeBytes, profile.PageCount)
	}

	profile.HasTables = tableHint(f.Filename)
	profile.TextDensity = clamp(profile.TextDensity)
	profile.Complexity = clamp(profile.Complexity)

	p.logger.Debug(
		"document profiled",
		"filename", f.Filename,
		"format", profile.Format,
		"pages", profile.PageCount,
		"class", profile.ContentClass,
	)

	return profile
}

func classifyFormat(contentType, filename string) Format {
	mime := strings.ToLower(strings.TrimSpace(contentType))
	switch {
	case mime == "application/pdf":
		return FormatPDF
	case strings.HasPrefix(mime, "image/"):
		return FormatImage
	case strings.HasPrefix(mime, "audio/"):
		return FormatAudio
	}

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		return FormatPDF
	case ".png", ".jpg", ".jpeg", ".tiff", ".bmp", ".webp", ".gif":
		return FormatImage
	case ".mp3", ".wav", ".m4a", ".ogg", ".flac":
		return FormatAudio
	}

	return FormatDocument
}

// estimatePageCount derives a page count without rendering. PDFs are counted
// exactly when pdfcpu can read them; everything else uses byte-size ratios.
func (p *Profiler) estimatePageCount(format Format, f File) int {
	size := int64(len(f.Data))

	switch format {
	case FormatPDF:
		if count, err := api.PageCount(bytes.NewReader(f.Data), nil); err == nil && count > 0 {
			return count
		} else if err != nil {
			p.logger.Warn("pdf page count failed, using size estimate", "error", err)
		}
		return atLeastOne(size / pdfBytesPerPage)
	case FormatImage:
		return 1
	case FormatAudio:
		return atLeastOne(size / audioBytesPerMinute)
	default:
		return atLeastOne(size / documentBytesPerPage)
	}
}

type contentHint struct {
	class      ContentClass
	density    float64
	complexity float64
}

// Image keywords are checked before text keywords: a filename like
// "scan_notes.pdf" must classify as image-heavy even though it also carries
// a text keyword.
var imageKeywords = []string{"scan", "photo", "picture", "image", "img", "diagram", "screenshot"}

var textKeywords = []string{"textbook", "notes", "essay", "chapter", "article", "lecture", "worksheet", "book"}

var tableKeywords = []string{"table", "invoice", "spreadsheet", "form", "ledger"}

func keywordHint(filename string) (contentHint, bool) {
	name := strings.ToLower(filename)

	for _, kw := range imageKeywords {
		if strings.Contains(name, kw) {
			return contentHint{ClassImageHeavy, 0.3, 0.7}, true
		}
	}
	for _, kw := range textKeywords {
		if strings.Contains(name, kw) {
			return contentHint{ClassTextHeavy, 0.8, 0.3}, true
		}
	}

	return contentHint{}, false
}

func tableHint(filename string) bool {
	name := strings.ToLower(filename)
	for _, kw := range tableKeywords {
		if strings.Contains(name, kw) {
			return true
		}
	}
	return false
}

// ratioHeuristic falls back to bytes-per-page when the filename offers no
// hint. Heavy pages suggest scans; light pages suggest extractable text.
func ratioHeuristic(format Format, size int64, pages int) (ContentClass, float64, float64) {
	if format == FormatImage {
		return ClassImageHeavy, 0.3, 0.7
	}
	if format == FormatAudio {
		return ClassMixed, 0.5, 0.5
	}

	bytesPerPage := size / int64(pages)
	switch {
	case bytesPerPage < 50*1024:
		return ClassTextHeavy, 0.8, 0.3
	case bytesPerPage > 300*1024:
		return ClassImageHeavy, 0.3, 0.7
	default:
		return ClassMixed, 0.5, 0.5
	}
}

func atLeastOne(n int64) int {
	if n < 1 {
		return 1
	}
	return int(n)
}
