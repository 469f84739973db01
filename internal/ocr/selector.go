package ocr

import (
	"github.com/csattler/tessera/internal/pipeline"
	"github.com/csattler/tessera/internal/vision"
)

// tableDowngradeConfidence is the minimum analyzer confidence required
// before a table-bearing page may be downgraded from premium to cheap.
const tableDowngradeConfidence = 0.85

// Select chooses a strategy from page complexity alone. Embedded images,
// tables, and handwriting all force the premium backend; otherwise the
// decision falls to text density against the balanced tier's thresholds.
func Select(c vision.Complexity) Strategy {
	if c.HasImages || c.HasTables || c.IsHandwritten {
		return StrategyPremium
	}
	return byDensity(c.TextDensity, pipeline.DefaultThresholds())
}

// SelectForTier chooses a strategy under an active pipeline configuration.
// Images and handwriting always escalate to premium regardless of tier.
// Tables normally escalate too, but the fast tier is allowed to downgrade a
// confidently-analyzed table page to cheap to hold its latency target.
func SelectForTier(c vision.Complexity, cfg pipeline.Config) Strategy {
	if c.HasImages || c.IsHandwritten {
		return StrategyPremium
	}
	if c.HasTables {
		if cfg.Tier == pipeline.TierFast && c.Confidence > tableDowngradeConfidence {
			return StrategyCheap
		}
		return StrategyPremium
	}
	return byDensity(c.TextDensity, cfg.Thresholds)
}

func byDensity(density float64, t pipeline.Thresholds) Strategy {
	switch {
	case density >= t.Free:
		return StrategyFree
	case density >= t.Cheap:
		return StrategyCheap
	default:
		return StrategyPremium
	}
}
