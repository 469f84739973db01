package pipeline_test

import (
	"testing"

	"github.com/csattler/tessera/internal/pipeline"
	"github.com/csattler/tessera/internal/profile"
)

// fastProfile satisfies every fast qualification.
func fastProfile() profile.DocumentProfile {
	return profile.DocumentProfile{
		Format:       profile.FormatPDF,
		SizeBytes:    1 * 1024 * 1024,
		PageCount:    5,
		ContentClass: profile.ClassTextHeavy,
		TextDensity:  0.85,
		Complexity:   0.2,
		UserTier:     profile.UserStandard,
	}
}

func TestSelectTier(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*profile.DocumentProfile)
		expected pipeline.Tier
	}{
		{"clean text document is fast", func(*profile.DocumentProfile) {}, pipeline.TierFast},
		{"audio is always balanced", func(p *profile.DocumentProfile) {
			p.Format = profile.FormatAudio
			p.ContentClass = profile.ClassImageHeavy
		}, pipeline.TierBalanced},
		{"image-heavy is premium", func(p *profile.DocumentProfile) {
			p.ContentClass = profile.ClassImageHeavy
		}, pipeline.TierPremium},
		{"large page count is premium", func(p *profile.DocumentProfile) {
			p.PageCount = 25
		}, pipeline.TierPremium},
		{"high complexity is premium", func(p *profile.DocumentProfile) {
			p.Complexity = 0.7
		}, pipeline.TierPremium},
		{"tables are premium", func(p *profile.DocumentProfile) {
			p.HasTables = true
		}, pipeline.TierPremium},
		{"premium user is premium", func(p *profile.DocumentProfile) {
			p.UserTier = profile.UserPremium
		}, pipeline.TierPremium},
		{"oversized text document is balanced", func(p *profile.DocumentProfile) {
			p.SizeBytes = 8 * 1024 * 1024
		}, pipeline.TierBalanced},
		{"low density text document is balanced", func(p *profile.DocumentProfile) {
			p.TextDensity = 0.6
		}, pipeline.TierBalanced},
		{"mixed mid-size document is balanced", func(p *profile.DocumentProfile) {
			p.ContentClass = profile.ClassMixed
			p.TextDensity = 0.5
			p.Complexity = 0.5
			p.PageCount = 15
		}, pipeline.TierBalanced},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := fastProfile()
			tt.mutate(&p)

			if got := pipeline.SelectTier(p); got != tt.expected {
				t.Errorf("got %s, want %s", got, tt.expected)
			}
		})
	}
}

// A premium user with a fast-qualifying document: fast wins because the fast
// qualification is evaluated first.
func TestSelectTierFastBeatsPremiumUser(t *testing.T) {
	p := fastProfile()
	p.UserTier = profile.UserPremium

	if got := pipeline.SelectTier(p); got != pipeline.TierFast {
		t.Errorf("got %s, want %s", got, pipeline.TierFast)
	}
}

func TestSelectTierDeterministic(t *testing.T) {
	p := fastProfile()
	p.PageCount = 25

	first := pipeline.SelectTier(p)
	for range 10 {
		if got := pipeline.SelectTier(p); got != first {
			t.Fatalf("selection not deterministic: got %s, then %s", first, got)
		}
	}
}
