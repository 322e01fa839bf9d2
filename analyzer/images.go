package analyzer

// AnalyzeImageRatio counts visible images per 1000 characters of text. The
// second result is false when the text is shorter than minTextLength and the
// ratio would say nothing useful.
func AnalyzeImageRatio(images []ImageElement, textLength, minTextLength int) (ImageRatioResult, bool) {
	if textLength < minTextLength || textLength <= 0 {
		return ImageRatioResult{}, false
	}

	visible := 0
	for _, img := range images {
		if img.Visible() {
			visible++
		}
	}

	return ImageRatioResult{
		VisibleImageCount: visible,
		TextLength:        textLength,
		RatioPer1000Chars: float64(visible) / float64(textLength) * 1000,
	}, true
}
