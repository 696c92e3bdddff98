package audit

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderScoreLines(t *testing.T) {
	rep := &Report{
		Scores: []CategoryScore{
			{Category: CategoryPerformance, Score: 42, Measurable: true, Tier: TierPoor},
			{Category: CategoryAccessibility, Score: 77, Measurable: true, Tier: TierMedium},
			{Category: CategorySEO, Score: 100, Measurable: true, Tier: TierGood},
			{Category: CategoryPWA, Tier: TierUnmeasurable},
		},
		ReportPath: "/tmp/reports/lighthouse-example-com-2024-01-01T00-00-00.json",
	}

	scoreText, _ := Render(rep)
	want := strings.Join([]string{
		"🔴 Performance: 42/100",
		"🟠 Accessibility: 77/100",
		"🟢 SEO: 100/100",
		"⚪️ PWA: Not measurable",
	}, "\n")
	assert.Equal(t, want, scoreText)
}

func TestRenderGroupsItemsByCategory(t *testing.T) {
	rep := &Report{
		Items: []ImprovementItem{
			{Category: CategoryPerformance, Title: "Eliminate render-blocking resources"},
			{Category: CategoryPerformance, Title: "Reduce unused JavaScript"},
			{Category: CategorySEO, Title: "Document does not have a meta description"},
		},
		ReportPath: "/tmp/reports/r.json",
	}

	_, improvementText := Render(rep)
	want := "Performance:\n" +
		"- Eliminate render-blocking resources\n" +
		"- Reduce unused JavaScript\n" +
		"\n" +
		"SEO:\n" +
		"- Document does not have a meta description\n" +
		"\nReport saved to: /tmp/reports/r.json"
	assert.Equal(t, want, improvementText)
}

func TestRenderNoItemsSentinel(t *testing.T) {
	rep := &Report{
		Scores:     []CategoryScore{{Category: CategoryPerformance, Score: 95, Measurable: true, Tier: TierGood}},
		ReportPath: "/tmp/reports/r.json",
	}

	_, improvementText := Render(rep)
	assert.Equal(t, "No improvement items found.\n\nReport saved to: /tmp/reports/r.json", improvementText)
}
