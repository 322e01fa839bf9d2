package analyzer

import (
	"strconv"
	"strings"
)

// PageArtifacts is everything the audits know about one page. It is supplied
// by the host (or built by the artifacts package) and never modified here.
// Missing fields behave as empty strings and lists.
type PageArtifacts struct {
	URL          string           `json:"url" yaml:"url"`
	RawHTML      string           `json:"rawHtml" yaml:"rawHtml"`
	MainContent  string           `json:"mainContent" yaml:"mainContent"`
	Title        string           `json:"title" yaml:"title"`
	MetaElements []MetaElement    `json:"metaElements" yaml:"metaElements"`
	Headings     []HeadingElement `json:"headingElements" yaml:"headingElements"`
	Images       []ImageElement   `json:"imageElements" yaml:"imageElements"`
}

// ContentMarkup returns the markup the text metrics are computed from: the
// main content when the host extracted one, the raw page otherwise.
func (p PageArtifacts) ContentMarkup() string {
	if p.MainContent != "" {
		return p.MainContent
	}
	return p.RawHTML
}

// MetaContent returns the content of the first meta element with the given
// name, compared case-insensitively.
func (p PageArtifacts) MetaContent(name string) string {
	for _, meta := range p.MetaElements {
		if strings.EqualFold(meta.Name, name) {
			return meta.Content
		}
	}
	return ""
}

type MetaElement struct {
	Name    string `json:"name" yaml:"name"`
	Content string `json:"content" yaml:"content"`
}

// HeadingElement is a heading in document order. Level wins over TagName
// when both are set.
type HeadingElement struct {
	TagName string `json:"tagName,omitempty" yaml:"tagName,omitempty"`
	Level   int    `json:"level,omitempty" yaml:"level,omitempty"`
	Text    string `json:"text,omitempty" yaml:"text,omitempty"`
}

// HeadingLevel returns the heading depth 1..6, or 0 if it is unknown.
func (h HeadingElement) HeadingLevel() int {
	if h.Level >= 1 && h.Level <= 6 {
		return h.Level
	}
	tag := strings.TrimSpace(h.TagName)
	if len(tag) != 2 || (tag[0] != 'h' && tag[0] != 'H') {
		return 0
	}
	level, err := strconv.Atoi(tag[1:])
	if err != nil || level < 1 || level > 6 {
		return 0
	}
	return level
}

// ImageElement carries the rendered size of an image and whether it lives in
// a shadow tree.
type ImageElement struct {
	Src           string  `json:"src,omitempty" yaml:"src,omitempty"`
	Width         float64 `json:"width" yaml:"width"`
	Height        float64 `json:"height" yaml:"height"`
	IsInShadowDOM bool    `json:"isInShadowDOM" yaml:"isInShadowDOM"`
}

// Visible reports whether the image is rendered larger than a tracking pixel
// outside any shadow tree.
func (i ImageElement) Visible() bool {
	return !i.IsInShadowDOM && i.Width > 1 && i.Height > 1
}

// DetailRow is one line of an audit's result table.
type DetailRow struct {
	Key  string `json:"key" yaml:"key"`
	Text string `json:"text" yaml:"text"`
}

// MetricScore is the outcome of a single audit. A nil Score with
// NotApplicable set means the audit was skipped, which is not a failure.
type MetricScore struct {
	ID            string      `json:"id" yaml:"id"`
	Title         string      `json:"title" yaml:"title"`
	Description   string      `json:"description" yaml:"description"`
	Score         *float64    `json:"score" yaml:"score"`
	NotApplicable bool        `json:"notApplicable,omitempty" yaml:"notApplicable,omitempty"`
	DisplayValue  string      `json:"displayValue,omitempty" yaml:"displayValue,omitempty"`
	Explanation   string      `json:"explanation,omitempty" yaml:"explanation,omitempty"`
	ErrorMessage  string      `json:"errorMessage,omitempty" yaml:"errorMessage,omitempty"`
	NumericValue  *float64    `json:"numericValue,omitempty" yaml:"numericValue,omitempty"`
	NumericUnit   string      `json:"numericUnit,omitempty" yaml:"numericUnit,omitempty"`
	Details       []DetailRow `json:"details,omitempty" yaml:"details,omitempty"`
}

// Passed reports whether the audit met the pass threshold.
func (m MetricScore) Passed() bool {
	return m.Score != nil && *m.Score >= PassThreshold
}

// HeadingAnalysis is the result of AnalyzeHeadings.
type HeadingAnalysis struct {
	Total   int            `json:"total" yaml:"total"`
	HasH1   bool           `json:"hasH1" yaml:"hasH1"`
	H1Count int            `json:"h1Count" yaml:"h1Count"`
	InOrder bool           `json:"inOrder" yaml:"inOrder"`
	Skipped []SkippedLevel `json:"skipped" yaml:"skipped"`
	Counts  []HeadingCount `json:"counts" yaml:"counts"`
}

// SkippedLevel is a forward jump of more than one heading level.
type SkippedLevel struct {
	From int `json:"from" yaml:"from"`
	To   int `json:"to" yaml:"to"`
}

// HeadingCount is the number of headings of one tag, e.g. H2.
type HeadingCount struct {
	Tag   string `json:"tag" yaml:"tag"`
	Count int    `json:"count" yaml:"count"`
}

// ImageRatioResult is the result of AnalyzeImageRatio.
type ImageRatioResult struct {
	VisibleImageCount int     `json:"visibleImageCount" yaml:"visibleImageCount"`
	TextLength        int     `json:"textLength" yaml:"textLength"`
	RatioPer1000Chars float64 `json:"ratioPer1000Chars" yaml:"ratioPer1000Chars"`
}

// Report is the assembled result of all audits for one page.
type Report struct {
	URL             string        `json:"url" yaml:"url"`
	Category        Category      `json:"category" yaml:"category"`
	Groups          []Group       `json:"groups" yaml:"groups"`
	Score           *float64      `json:"score" yaml:"score"`
	Audits          []MetricScore `json:"audits" yaml:"audits"`
	Recommendations []string      `json:"recommendations" yaml:"recommendations"`
}

// Audit returns the audit result with the given id.
func (r *Report) Audit(id string) (MetricScore, bool) {
	for _, audit := range r.Audits {
		if audit.ID == id {
			return audit, true
		}
	}
	return MetricScore{}, false
}

type Category struct {
	ID          string     `json:"id" yaml:"id"`
	Title       string     `json:"title" yaml:"title"`
	Description string     `json:"description" yaml:"description"`
	AuditRefs   []AuditRef `json:"auditRefs" yaml:"auditRefs"`
}

type AuditRef struct {
	ID     string  `json:"id" yaml:"id"`
	Weight float64 `json:"weight" yaml:"weight"`
	Group  string  `json:"group" yaml:"group"`
}

type Group struct {
	ID    string `json:"id" yaml:"id"`
	Title string `json:"title" yaml:"title"`
}
