package analyzer

import "fmt"

// ImageTextRatio scores the number of visible images per 1000 characters of
// extracted text.
func ImageTextRatio(images []ImageElement, textLength int, t ImageRatioThresholds) MetricScore {
	ratio, ok := AnalyzeImageRatio(images, textLength, t.MinTextLength)
	if !ok {
		return notApplicable(ImageTextRatioID, "Page is too small to check the image and text mix")
	}

	r := ratio.RatioPer1000Chars
	result := newScore(ImageTextRatioID, float(RatioScore(r, t)))

	count := ratio.VisibleImageCount
	switch {
	case r >= t.Min && r <= t.Max:
		result.DisplayValue = fmt.Sprintf("Good mix: %d images for your page length", count)
	case r > t.Max:
		result.DisplayValue = fmt.Sprintf("Too many images: %d images may be too many", count)
		result.Explanation = "Try using fewer images or adding more text"
	default:
		result.DisplayValue = fmt.Sprintf("Too few images: %d images may not be enough", count)
		result.Explanation = "Try adding more images to make the page more interesting"
	}

	result.NumericValue = float(r)
	result.NumericUnit = "images/1000chars"
	result.Details = []DetailRow{
		{Key: "image-count", Text: fmt.Sprintf("%d images", count)},
		{Key: "text-length", Text: fmt.Sprintf("%d text characters", ratio.TextLength)},
		{Key: "ratio", Text: fmt.Sprintf("%.2f images per 1000 chars", r)},
	}
	return result
}

// RatioScore maps images per 1000 characters onto the score curve: flat at 1
// inside [Min, Max], falling linearly to 0 at Many, 0.2 beyond, and rising
// from 0.6 to 1 between Few and Min.
func RatioScore(ratio float64, t ImageRatioThresholds) float64 {
	switch {
	case ratio >= t.Min && ratio <= t.Max:
		return 1
	case ratio > t.Max && ratio <= t.Many:
		return 1 - (ratio-t.Max)/(t.Many-t.Max)
	case ratio > t.Many:
		return 0.2
	case ratio >= t.Few:
		return 0.6 + (ratio-t.Few)/(t.Min-t.Few)*0.4
	default:
		return 0.5
	}
}
