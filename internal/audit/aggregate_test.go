package audit

import (
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fptr(v float64) *float64 { return &v }

func TestTierForScore(t *testing.T) {
	tests := []struct {
		score int
		want  Tier
	}{
		{100, TierGood},
		{90, TierGood},
		{89, TierMedium},
		{50, TierMedium},
		{49, TierPoor},
		{1, TierPoor},
		{0, TierPoor},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, TierForScore(tt.score), "score %d", tt.score)
	}
}

func TestSummarizeScores(t *testing.T) {
	res := &EngineResult{
		Categories: map[string]EngineCategory{
			"performance": {ID: "performance", Score: fptr(0.42)},
			"seo":         {ID: "seo", Score: nil},
			"pwa":         {ID: "pwa", Score: fptr(0.9)},
		},
		Audits: map[string]EngineAudit{},
	}

	// accessibility is requested but not reported: dropped, never fabricated.
	rep := Summarize(res, []Category{CategoryPerformance, CategoryAccessibility, CategorySEO, CategoryPWA}, 3)

	want := []CategoryScore{
		{Category: CategoryPerformance, Score: 42, Measurable: true, Tier: TierPoor},
		{Category: CategorySEO, Tier: TierUnmeasurable},
		{Category: CategoryPWA, Score: 90, Measurable: true, Tier: TierGood},
	}
	if diff := cmp.Diff(want, rep.Scores); diff != "" {
		t.Errorf("scores mismatch (-want +got):\n%s", diff)
	}
}

func TestSummarizeNullScoreIsUnmeasurable(t *testing.T) {
	res := &EngineResult{
		Categories: map[string]EngineCategory{
			"performance": {ID: "performance", Score: nil},
		},
		Audits: map[string]EngineAudit{},
	}
	rep := Summarize(res, []Category{CategoryPerformance}, 3)
	require.Len(t, rep.Scores, 1)
	assert.Equal(t, TierUnmeasurable, rep.Scores[0].Tier)
	assert.False(t, rep.Scores[0].Measurable)
}

func TestSummarizeCollectsSubThresholdAudits(t *testing.T) {
	res := &EngineResult{
		Categories: map[string]EngineCategory{
			"performance": {
				ID:    "performance",
				Score: fptr(0.5),
				AuditRefs: []EngineAuditRef{
					{ID: "fast"}, {ID: "slow"}, {ID: "unscored"}, {ID: "dangling"},
				},
			},
		},
		Audits: map[string]EngineAudit{
			"fast":     {ID: "fast", Title: "Fast enough", Score: fptr(0.95)},
			"slow":     {ID: "slow", Title: "Reduce JavaScript", Score: fptr(0.3)},
			"unscored": {ID: "unscored", Title: "Unscored check", Score: nil}, // missing score counts as 0
		},
	}

	rep := Summarize(res, []Category{CategoryPerformance}, 3)
	want := []ImprovementItem{
		{Category: CategoryPerformance, Title: "Reduce JavaScript"},
		{Category: CategoryPerformance, Title: "Unscored check"},
	}
	if diff := cmp.Diff(want, rep.Items); diff != "" {
		t.Errorf("items mismatch (-want +got):\n%s", diff)
	}
}

func TestSummarizeAggregateTruncation(t *testing.T) {
	// Two requested categories, each with 4 sub-threshold audits, maxItems=3:
	// the cutoff applies to the merged list, so exactly 6 items survive.
	audits := make(map[string]EngineAudit)
	perfRefs := make([]EngineAuditRef, 0, 4)
	seoRefs := make([]EngineAuditRef, 0, 4)
	for i := 0; i < 4; i++ {
		perfID := fmt.Sprintf("perf-%d", i)
		seoID := fmt.Sprintf("seo-%d", i)
		audits[perfID] = EngineAudit{ID: perfID, Title: fmt.Sprintf("Perf audit %d", i), Score: fptr(0.1)}
		audits[seoID] = EngineAudit{ID: seoID, Title: fmt.Sprintf("SEO audit %d", i), Score: fptr(0.1)}
		perfRefs = append(perfRefs, EngineAuditRef{ID: perfID})
		seoRefs = append(seoRefs, EngineAuditRef{ID: seoID})
	}
	res := &EngineResult{
		Categories: map[string]EngineCategory{
			"performance": {ID: "performance", Score: fptr(0.5), AuditRefs: perfRefs},
			"seo":         {ID: "seo", Score: fptr(0.5), AuditRefs: seoRefs},
		},
		Audits: audits,
	}

	rep := Summarize(res, []Category{CategoryPerformance, CategorySEO}, 3)
	assert.Len(t, rep.Items, 6)
}

func TestSummarizeItemsSortedByCategoryThenTitle(t *testing.T) {
	res := &EngineResult{
		Categories: map[string]EngineCategory{
			"seo":         {ID: "seo", Score: fptr(0.5), AuditRefs: []EngineAuditRef{{ID: "s1"}}},
			"performance": {ID: "performance", Score: fptr(0.5), AuditRefs: []EngineAuditRef{{ID: "p2"}, {ID: "p1"}}},
		},
		Audits: map[string]EngineAudit{
			"s1": {ID: "s1", Title: "Add meta description", Score: fptr(0)},
			"p1": {ID: "p1", Title: "Avoid large layout shifts", Score: fptr(0)},
			"p2": {ID: "p2", Title: "Reduce unused CSS", Score: fptr(0)},
		},
	}

	// seo is requested first, but sorting is by category, not request order.
	rep := Summarize(res, []Category{CategorySEO, CategoryPerformance}, 5)
	require.Len(t, rep.Items, 3)
	assert.Equal(t, CategoryPerformance, rep.Items[0].Category)
	assert.Equal(t, "Avoid large layout shifts", rep.Items[0].Title)
	assert.Equal(t, "Reduce unused CSS", rep.Items[1].Title)
	assert.Equal(t, CategorySEO, rep.Items[2].Category)
}

func TestParseCategory(t *testing.T) {
	for _, c := range Categories() {
		got, ok := ParseCategory(string(c))
		require.True(t, ok)
		assert.Equal(t, c, got)
	}
	_, ok := ParseCategory("speed")
	assert.False(t, ok)
}
