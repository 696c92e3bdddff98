// Package audit drives the Lighthouse engine against the shared browser
// session and turns its raw output into a bounded, ranked summary. The raw
// result is recovered through a layered fallback: the in-memory result, the
// exact report file written for the run, then the most recent report file.
package audit

// Category is one of the Lighthouse scoring categories.
type Category string

const (
	CategoryPerformance   Category = "performance"
	CategoryAccessibility Category = "accessibility"
	CategoryBestPractices Category = "best-practices"
	CategorySEO           Category = "seo"
	CategoryPWA           Category = "pwa"
)

var categoryLabels = map[Category]string{
	CategoryPerformance:   "Performance",
	CategoryAccessibility: "Accessibility",
	CategoryBestPractices: "Best Practices",
	CategorySEO:           "SEO",
	CategoryPWA:           "PWA",
}

// Categories lists every scorable category in canonical order.
func Categories() []Category {
	return []Category{
		CategoryPerformance,
		CategoryAccessibility,
		CategoryBestPractices,
		CategorySEO,
		CategoryPWA,
	}
}

// ParseCategory maps a request string onto a known category.
func ParseCategory(s string) (Category, bool) {
	c := Category(s)
	_, ok := categoryLabels[c]
	return c, ok
}

// Label returns the human-readable category name.
func (c Category) Label() string {
	if label, ok := categoryLabels[c]; ok {
		return label
	}
	return string(c)
}

// Tier is the qualitative bucket derived from a category score.
type Tier string

const (
	TierGood         Tier = "good"
	TierMedium       Tier = "medium"
	TierPoor         Tier = "poor"
	TierUnmeasurable Tier = "unmeasurable"
)

// TierForScore buckets a 0-100 score.
func TierForScore(score int) Tier {
	switch {
	case score >= 90:
		return TierGood
	case score >= 50:
		return TierMedium
	default:
		return TierPoor
	}
}

// Request describes one page-quality audit invocation.
type Request struct {
	URL        string
	Categories []Category
	MaxItems   int
}

// CategoryScore is the scored outcome for one requested category.
type CategoryScore struct {
	Category   Category
	Score      int // 0-100, meaningful only when Measurable
	Measurable bool
	Tier       Tier
}

// ImprovementItem is one audit that scored below the improvement threshold.
type ImprovementItem struct {
	Category    Category
	Title       string
	Description string
}

// Source records which fallback tier supplied the raw result. Carried for
// diagnostics; not user-facing.
type Source string

const (
	SourceDirect     Source = "direct"
	SourceExactFile  Source = "exact_file"
	SourceLatestFile Source = "latest_file"
	SourceNotFound   Source = "not_found"
)

// Report is the aggregated, render-ready audit outcome. Scores keep the
// request order; Items are sorted by (category, title) and truncated.
type Report struct {
	Scores     []CategoryScore
	Items      []ImprovementItem
	ReportPath string
	Source     Source
}

// EngineResult is the subset of the Lighthouse JSON report the pipeline
// consumes.
type EngineResult struct {
	RequestedURL string                    `json:"requestedUrl"`
	Categories   map[string]EngineCategory `json:"categories"`
	Audits       map[string]EngineAudit    `json:"audits"`
}

// EngineCategory is one scored category as reported by the engine. A nil
// Score means the engine could not measure the category.
type EngineCategory struct {
	ID        string           `json:"id"`
	Title     string           `json:"title"`
	Score     *float64         `json:"score"`
	AuditRefs []EngineAuditRef `json:"auditRefs"`
}

// EngineAuditRef links a category to one of its audits.
type EngineAuditRef struct {
	ID string `json:"id"`
}

// EngineAudit is one individual check. A nil Score is treated as zero when
// collecting improvement items.
type EngineAudit struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Score       *float64 `json:"score"`
}
