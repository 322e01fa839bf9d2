package analyzer

// Audit ids.
const (
	ContentLengthID  = "content-length"
	ReadingLevelID   = "reading-level"
	KeywordCheckID   = "keyword-check"
	HeadingCheckID   = "heading-check"
	ImageTextRatioID = "image-text-ratio"
)

// AuditMeta describes an audit independent of any page.
type AuditMeta struct {
	ID           string
	Title        string
	FailureTitle string
	Description  string
}

var auditMetas = map[string]AuditMeta{
	ContentLengthID: {
		ID:           ContentLengthID,
		Title:        "Page has enough words",
		FailureTitle: "Page doesn't have enough words",
		Description:  "Pages with more words tend to rank better. Aim for 300+ words on main pages.",
	},
	ReadingLevelID: {
		ID:           ReadingLevelID,
		Title:        "Text is easy to read",
		FailureTitle: "Text might be too hard to read",
		Description:  "Most readers prefer text at a middle school reading level. Simpler is better.",
	},
	KeywordCheckID: {
		ID:           KeywordCheckID,
		Title:        "Page uses important words well",
		FailureTitle: "Page could use important words better",
		Description:  "Words from the title should appear in the text. This helps search engines understand what the page is about.",
	},
	HeadingCheckID: {
		ID:           HeadingCheckID,
		Title:        "Page uses headings correctly",
		FailureTitle: "Page headings need improvement",
		Description:  "Good headings help people scan your page. Use one H1 for the title, H2 for sections and H3 for smaller parts.",
	},
	ImageTextRatioID: {
		ID:           ImageTextRatioID,
		Title:        "Page has a good mix of images and text",
		FailureTitle: "Page needs a better mix of images and text",
		Description:  "Pages with both images and text keep readers interested. Too many images slow loading, too few make pages dull.",
	},
}

// Meta returns the metadata of the audit with the given id.
func Meta(id string) (AuditMeta, bool) {
	meta, ok := auditMetas[id]
	return meta, ok
}

// newScore fills in the audit metadata and picks the title that matches the
// score.
func newScore(id string, score *float64) MetricScore {
	meta := auditMetas[id]
	result := MetricScore{
		ID:          id,
		Title:       meta.Title,
		Description: meta.Description,
		Score:       score,
	}
	if score != nil && *score < PassThreshold {
		result.Title = meta.FailureTitle
	}
	return result
}

func notApplicable(id, explanation string) MetricScore {
	result := newScore(id, nil)
	result.NotApplicable = true
	result.Explanation = explanation
	return result
}

func float(f float64) *float64 {
	return &f
}

// tenths turns an integer number of tenths into an exact-looking score, so
// additive scores like 6+3+1 come out as 1 and not 0.9999999999999999.
func tenths(points int) float64 {
	if points < 0 {
		points = 0
	}
	if points > 10 {
		points = 10
	}
	return float64(points) / 10
}
