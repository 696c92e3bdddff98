package audit

import (
	"fmt"
	"strings"
)

var tierGlyphs = map[Tier]string{
	TierGood:         "🟢",
	TierMedium:       "🟠",
	TierPoor:         "🔴",
	TierUnmeasurable: "⚪️",
}

// Render turns an aggregated report into the two text blocks returned to the
// caller: one score line per category in request order, and the improvement
// items grouped by category with the report path appended.
func Render(rep *Report) (scoreText, improvementText string) {
	var scores strings.Builder
	for i, s := range rep.Scores {
		if i > 0 {
			scores.WriteString("\n")
		}
		if s.Measurable {
			fmt.Fprintf(&scores, "%s %s: %d/100", tierGlyphs[s.Tier], s.Category.Label(), s.Score)
		} else {
			fmt.Fprintf(&scores, "%s %s: Not measurable", tierGlyphs[TierUnmeasurable], s.Category.Label())
		}
	}

	var items strings.Builder
	if len(rep.Items) == 0 {
		items.WriteString("No improvement items found.\n")
	} else {
		var current Category
		for i, item := range rep.Items {
			if i == 0 || item.Category != current {
				if i > 0 {
					items.WriteString("\n")
				}
				fmt.Fprintf(&items, "%s:\n", item.Category.Label())
				current = item.Category
			}
			fmt.Fprintf(&items, "- %s\n", item.Title)
		}
	}
	fmt.Fprintf(&items, "\nReport saved to: %s", rep.ReportPath)

	return scores.String(), items.String()
}
