package ocr

// SkipReason records why a page produced no text.
type SkipReason string

const (
	SkipBlank     SkipReason = "blank"
	SkipDuplicate SkipReason = "duplicate"
)

// Result is the outcome of processing one page. Skipped pages carry a
// reason and zero cost; processed pages carry the strategy label and the
// cost charged for that backend.
type Result struct {
	PageNumber int        `json:"page_number"`
	Text       string     `json:"text,omitempty"`
	Strategy   string     `json:"strategy,omitempty"`
	Cost       float64    `json:"cost"`
	Skipped    bool       `json:"skipped,omitempty"`
	SkipReason SkipReason `json:"skip_reason,omitempty"`
}

func skipped(pageNumber int, reason SkipReason) Result {
	return Result{
		PageNumber: pageNumber,
		Skipped:    true,
		SkipReason: reason,
	}
}
