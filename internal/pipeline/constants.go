package pipeline

import "time"

// ConstantsVersion identifies the calibration revision of the tier constants
// below. Bump it whenever a threshold, cost, or batch shape changes so that
// recorded router decisions can be compared against the policy that produced
// them.
const ConstantsVersion = 1

// Per-page OCR dispatch costs in abstract cost units. These map to API
// billing tokens downstream and feed both the orchestrator's accounting and
// the tier estimates.
const (
	CostFreePage       = 0.0
	CostCheapPage      = 40.0
	CostPremiumPage    = 800.0
	CostPremiumMaxPage = 1200.0
)

// tierConstants consolidates every hand-tuned number for one tier. Decision
// logic reads from this table only, so recalibration from decision telemetry
// never touches the selectors or builders.
type tierConstants struct {
	freeThreshold  float64
	cheapThreshold float64

	compressionQuality int
	pagesPerBatch      int
	parallelBatches    int

	perPageCost  float64
	overheadCost float64
	perPageTime  time.Duration
	overheadTime time.Duration

	confidence float64
	hints      GenerationHints
}

var tierTable = map[Tier]tierConstants{
	// Most permissive thresholds: push as many pages as possible to the free
	// and cheap strategies.
	TierFast: {
		freeThreshold:      0.5,
		cheapThreshold:     0.2,
		compressionQuality: 60,
		pagesPerBatch:      10,
		parallelBatches:    4,
		perPageCost:        15,
		overheadCost:       20,
		perPageTime:        300 * time.Millisecond,
		overheadTime:       2 * time.Second,
		confidence:         0.85,
		hints: GenerationHints{
			ModelSpeed:      "fast",
			CompressionRate: 0.6,
			BatchSize:       10,
		},
	},
	TierBalanced: {
		freeThreshold:      0.7,
		cheapThreshold:     0.3,
		compressionQuality: 75,
		pagesPerBatch:      5,
		parallelBatches:    3,
		perPageCost:        120,
		overheadCost:       100,
		perPageTime:        time.Second,
		overheadTime:       3 * time.Second,
		confidence:         0.90,
		hints: GenerationHints{
			ModelSpeed:      "standard",
			CompressionRate: 0.75,
			BatchSize:       5,
		},
	},
	// Most conservative thresholds: only unambiguous text pages avoid the
	// high-detail remote strategy.
	TierPremium: {
		freeThreshold:      0.8,
		cheapThreshold:     0.4,
		compressionQuality: 90,
		pagesPerBatch:      3,
		parallelBatches:    2,
		perPageCost:        800,
		overheadCost:       200,
		perPageTime:        2500 * time.Millisecond,
		overheadTime:       5 * time.Second,
		confidence:         0.95,
		hints: GenerationHints{
			ModelSpeed:      "quality",
			CompressionRate: 0.9,
			BatchSize:       3,
		},
	},
}

// DefaultThresholds returns the balanced tier's strategy cutoffs, for
// callers selecting a strategy without an active pipeline configuration.
func DefaultThresholds() Thresholds {
	c := tierTable[TierBalanced]
	return Thresholds{Free: c.freeThreshold, Cheap: c.cheapThreshold}
}

// Tier-selection thresholds over the document profile.
const (
	fastMaxSizeBytes  = 5 * 1024 * 1024
	fastMaxPages      = 10
	fastMinDensity    = 0.7
	fastMaxComplexity = 0.4
	premiumMinPages   = 20
	premiumComplexity = 0.6
)
