package pipeline

import (
	"fmt"
	"time"

	"github.com/csattler/tessera/internal/profile"
	"github.com/csattler/tessera/pkg/formatting"
)

// Thresholds is the OCR strategy threshold pair for a run. A page with text
// density at or above Free uses the free local engine; at or above Cheap the
// low-detail remote strategy; below Cheap the high-detail remote strategy.
// Free is always >= Cheap.
type Thresholds struct {
	Free  float64 `json:"free"`
	Cheap float64 `json:"cheap"`
}

// GenerationHints are consumed by the downstream content generator, not by
// this OCR layer. They travel with the config so one decision covers the
// whole document lifecycle.
type GenerationHints struct {
	ModelSpeed      string  `json:"model_speed"`
	CompressionRate float64 `json:"compression_rate"`
	BatchSize       int     `json:"batch_size"`
}

// Config is the materialized policy for one document run. It is built once
// from the profile and treated as read-only for the run's duration.
type Config struct {
	Tier               Tier            `json:"tier"`
	Thresholds         Thresholds      `json:"thresholds"`
	CompressionQuality int             `json:"compression_quality"`
	PagesPerBatch      int             `json:"pages_per_batch"`
	ParallelBatches    int             `json:"parallel_batches"`
	Hints              GenerationHints `json:"hints"`
	EstimatedCost      float64         `json:"estimated_cost"`
	EstimatedTime      time.Duration   `json:"estimated_time"`
	Rationale          string          `json:"rationale"`
	Confidence         float64         `json:"confidence"`

	// RequireHighQuality switches premium dispatches to the maximum-quality
	// remote override. Reserved by the premium tier for downstream retry
	// policies; this layer only honors the cost difference.
	RequireHighQuality bool `json:"require_high_quality"`
}

// BuildConfig materializes the run configuration for a profile under the
// given tier. Estimates are linear in page count with tier-specific constants.
func BuildConfig(p profile.DocumentProfile, tier Tier) Config {
	c, ok := tierTable[tier]
	if !ok {
		tier = TierBalanced
		c = tierTable[tier]
	}

	cfg := Config{
		Tier: tier,
		Thresholds: Thresholds{
			Free:  c.freeThreshold,
			Cheap: c.cheapThreshold,
		},
		CompressionQuality: c.compressionQuality,
		PagesPerBatch:      c.pagesPerBatch,
		ParallelBatches:    c.parallelBatches,
		Hints:              c.hints,
		EstimatedCost:      float64(p.PageCount)*c.perPageCost + c.overheadCost,
		EstimatedTime:      time.Duration(p.PageCount)*c.perPageTime + c.overheadTime,
		Confidence:         c.confidence,
		RequireHighQuality: tier == TierPremium && p.UserTier == profile.UserPremium,
	}
	cfg.Rationale = rationale(p, tier)

	return cfg
}

func rationale(p profile.DocumentProfile, tier Tier) string {
	switch tier {
	case TierFast:
		return fmt.Sprintf(
			"%d-page %s document (%s, density %.2f) qualifies for the fast pipeline",
			p.PageCount, p.ContentClass, formatting.FormatBytes(p.SizeBytes, 1), p.TextDensity,
		)
	case TierPremium:
		return fmt.Sprintf(
			"%s document with %d pages and complexity %.2f requires the premium pipeline",
			p.ContentClass, p.PageCount, p.Complexity,
		)
	default:
		if p.Format == profile.FormatAudio {
			return fmt.Sprintf(
				"audio upload (~%d min) always uses the balanced pipeline",
				p.PageCount,
			)
		}
		return fmt.Sprintf(
			"%s document with %d pages uses the balanced pipeline",
			p.ContentClass, p.PageCount,
		)
	}
}
