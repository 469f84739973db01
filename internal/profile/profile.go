// Package profile classifies incoming files before any page is rendered.
// The profiler works only from bytes, declared MIME type, and filename —
// it performs no I/O and never fails: unknown inputs degrade to conservative
// mixed-content defaults.
package profile

// Format identifies the broad file format of an upload.
type Format string

const (
	FormatPDF      Format = "pdf"
	FormatImage    Format = "image"
	FormatAudio    Format = "audio"
	FormatDocument Format = "document"
)

// ContentClass categorizes the expected page content.
type ContentClass string

const (
	ClassTextHeavy  ContentClass = "text-heavy"
	ClassImageHeavy ContentClass = "image-heavy"
	ClassMixed      ContentClass = "mixed"
)

// UserTier is the account level of the uploading user.
type UserTier string

const (
	UserStandard UserTier = "standard"
	UserPremium  UserTier = "premium"
)

// DocumentProfile is the whole-file classification produced once per upload.
// TextDensity and Complexity are always within [0,1]; PageCount is at least 1.
type DocumentProfile struct {
	Format       Format       `json:"format"`
	SizeBytes    int64        `json:"size_bytes"`
	PageCount    int          `json:"page_count"`
	ContentClass ContentClass `json:"content_class"`
	TextDensity  float64      `json:"text_density"`
	Complexity   float64      `json:"complexity"`
	HasTables    bool         `json:"has_tables"`
	UserTier     UserTier     `json:"user_tier"`
}

// File carries the already-available upload metadata the profiler reads.
type File struct {
	Data        []byte
	Filename    string
	ContentType string
}

func clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
