package analyzer

// ContentQuality is the category every audit reports into.
var ContentQuality = Category{
	ID:          "content-quality",
	Title:       "Content Quality",
	Description: "Checks how good the written content of a page is.",
	AuditRefs: []AuditRef{
		{ID: ContentLengthID, Weight: 1, Group: "content-basics"},
		{ID: ReadingLevelID, Weight: 1, Group: "content-basics"},
		{ID: KeywordCheckID, Weight: 1, Group: "content-seo"},
		{ID: HeadingCheckID, Weight: 1, Group: "content-structure"},
		{ID: ImageTextRatioID, Weight: 1, Group: "content-visuals"},
	},
}

// Groups lists the report sections in display order.
var Groups = []Group{
	{ID: "content-basics", Title: "Content Basics"},
	{ID: "content-seo", Title: "SEO Checks"},
	{ID: "content-structure", Title: "Content Structure"},
	{ID: "content-visuals", Title: "Visual Content"},
}

// BuildReport packages audit results into a report. Audits are ordered as in
// the category.
func BuildReport(url string, audits []MetricScore) *Report {
	byID := make(map[string]MetricScore, len(audits))
	for _, audit := range audits {
		byID[audit.ID] = audit
	}

	ordered := make([]MetricScore, 0, len(audits))
	for _, ref := range ContentQuality.AuditRefs {
		if audit, ok := byID[ref.ID]; ok {
			ordered = append(ordered, audit)
		}
	}

	report := &Report{
		URL:      url,
		Category: ContentQuality,
		Groups:   Groups,
		Audits:   ordered,
	}
	report.Score = calculateCategoryScore(ordered)
	report.Recommendations = generateRecommendations(ordered)
	return report
}

// calculateCategoryScore is the weighted mean of the applicable audits. It
// is nil when no audit applied.
func calculateCategoryScore(audits []MetricScore) *float64 {
	weights := make(map[string]float64, len(ContentQuality.AuditRefs))
	for _, ref := range ContentQuality.AuditRefs {
		weights[ref.ID] = ref.Weight
	}

	var total, weightSum float64
	for _, audit := range audits {
		if audit.Score == nil {
			continue
		}
		weight := weights[audit.ID]
		total += *audit.Score * weight
		weightSum += weight
	}

	if weightSum == 0 {
		return nil
	}
	return float(total / weightSum)
}

func generateRecommendations(audits []MetricScore) []string {
	recommendations := make([]string, 0)
	for _, audit := range audits {
		if audit.Score == nil || audit.Passed() {
			continue
		}
		if audit.Explanation != "" {
			recommendations = append(recommendations, audit.Explanation)
		} else {
			recommendations = append(recommendations, audit.Description)
		}
	}
	return recommendations
}
