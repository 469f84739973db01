// Package pipeline maps document profiles to processing tiers and materializes
// the full configuration a document run executes under. Tier selection and
// config building are pure functions of the profile: identical profiles always
// produce identical configs.
package pipeline

import "github.com/csattler/tessera/internal/profile"

// Tier is a named cost/quality profile applied to an entire document run.
// Exactly one tier is active per run.
type Tier string

const (
	TierFast     Tier = "fast"
	TierBalanced Tier = "balanced"
	TierPremium  Tier = "premium"
)

// SelectTier maps a document profile to a tier.
//
// The decision table is evaluated in fixed order: the fast qualification
// first, then premium, else balanced. Order matters — the fast and premium
// conditions are not mutually exclusive by construction, and fast must win
// when a borderline profile technically matches both.
func SelectTier(p profile.DocumentProfile) Tier {
	// Transcription quality is not safely compressible.
	if p.Format == profile.FormatAudio {
		return TierBalanced
	}

	if qualifiesFast(p) {
		return TierFast
	}
	if qualifiesPremium(p) {
		return TierPremium
	}
	return TierBalanced
}

// qualifiesFast requires every fast condition to hold.
func qualifiesFast(p profile.DocumentProfile) bool {
	return p.ContentClass == profile.ClassTextHeavy &&
		p.SizeBytes < fastMaxSizeBytes &&
		p.PageCount <= fastMaxPages &&
		p.TextDensity > fastMinDensity &&
		p.Complexity < fastMaxComplexity
}

// qualifiesPremium requires any premium condition to hold.
func qualifiesPremium(p profile.DocumentProfile) bool {
	return p.ContentClass == profile.ClassImageHeavy ||
		p.PageCount > premiumMinPages ||
		p.Complexity > premiumComplexity ||
		p.HasTables ||
		p.UserTier == profile.UserPremium
}
