package audit

import (
	"math"
	"sort"
)

// improvementThreshold is the engine score below which an audit becomes an
// improvement item.
const improvementThreshold = 0.9

// Summarize intersects the requested categories with those the engine
// reported, computes per-category tiers, and collects sub-threshold audits as
// improvement items. Requested categories absent from the result are dropped,
// never fabricated. Items are sorted by (category, title) and truncated to
// maxItems multiplied by the number of requested categories present: one
// cutoff over the merged list, not a per-category quota.
func Summarize(res *EngineResult, requested []Category, maxItems int) *Report {
	rep := &Report{}

	for _, cat := range requested {
		engineCat, ok := res.Categories[string(cat)]
		if !ok {
			continue
		}

		score := CategoryScore{Category: cat}
		if engineCat.Score == nil {
			score.Tier = TierUnmeasurable
		} else {
			score.Score = int(math.Round(*engineCat.Score * 100))
			score.Measurable = true
			score.Tier = TierForScore(score.Score)
		}
		rep.Scores = append(rep.Scores, score)

		for _, ref := range engineCat.AuditRefs {
			a, ok := res.Audits[ref.ID]
			if !ok {
				continue
			}
			value := 0.0
			if a.Score != nil {
				value = *a.Score
			}
			if value < improvementThreshold {
				rep.Items = append(rep.Items, ImprovementItem{
					Category:    cat,
					Title:       a.Title,
					Description: a.Description,
				})
			}
		}
	}

	sort.Slice(rep.Items, func(i, j int) bool {
		if rep.Items[i].Category != rep.Items[j].Category {
			return rep.Items[i].Category < rep.Items[j].Category
		}
		return rep.Items[i].Title < rep.Items[j].Title
	})

	limit := maxItems * len(rep.Scores)
	if len(rep.Items) > limit {
		rep.Items = rep.Items[:limit]
	}
	return rep
}
