// Package ocr selects and executes the text-extraction strategy for a single
// page: blank/duplicate filtering, complexity analysis, strategy selection,
// and dispatch to the local engine or the remote extraction API.
package ocr

// Strategy is the OCR backend chosen for one page. It is a closed enum with
// an explicit dispatch table in the orchestrator, so adding a strategy
// without a handler fails at compile time rather than at string comparison.
type Strategy int

const (
	// StrategyFree runs the local recognition engine at zero cost.
	StrategyFree Strategy = iota
	// StrategyCheap calls the low-detail remote endpoint.
	StrategyCheap
	// StrategyPremium calls the high-detail remote endpoint.
	StrategyPremium
)

// String returns the strategy label used in results and telemetry.
func (s Strategy) String() string {
	switch s {
	case StrategyFree:
		return "free"
	case StrategyCheap:
		return "cheap"
	case StrategyPremium:
		return "premium"
	default:
		return "unknown"
	}
}

// Remote endpoint detail levels.
const (
	DetailLow  = "low"
	DetailHigh = "high"
)
