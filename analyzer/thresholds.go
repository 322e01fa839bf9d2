package analyzer

// PassThreshold is the lowest score an audit passes with.
const PassThreshold = 0.9

// Thresholds groups the constants of every scoring curve. Values are copied
// into the audits, nothing reads them globally.
type Thresholds struct {
	ContentLength ContentLengthThresholds `json:"contentLength" mapstructure:"contentLength"`
	Readability   ReadabilityThresholds   `json:"readability" mapstructure:"readability"`
	Keywords      KeywordThresholds       `json:"keywords" mapstructure:"keywords"`
	ImageRatio    ImageRatioThresholds    `json:"imageRatio" mapstructure:"imageRatio"`
}

// ContentLengthThresholds are word counts.
type ContentLengthThresholds struct {
	Min  int `json:"min" mapstructure:"min"`
	Best int `json:"best" mapstructure:"best"`
}

// ReadabilityThresholds are reading-ease band edges, ascending.
type ReadabilityThresholds struct {
	MinTextLength int     `json:"minTextLength" mapstructure:"minTextLength"`
	VeryHard      float64 `json:"veryHard" mapstructure:"veryHard"`
	Hard          float64 `json:"hard" mapstructure:"hard"`
	FairlyHard    float64 `json:"fairlyHard" mapstructure:"fairlyHard"`
	IdealMin      float64 `json:"idealMin" mapstructure:"idealMin"`
	IdealMax      float64 `json:"idealMax" mapstructure:"idealMax"`
}

type KeywordThresholds struct {
	MinTextLength int     `json:"minTextLength" mapstructure:"minTextLength"`
	DensityMin    float64 `json:"densityMin" mapstructure:"densityMin"`
	DensityMax    float64 `json:"densityMax" mapstructure:"densityMax"`
	MinTotalWords int     `json:"minTotalWords" mapstructure:"minTotalWords"`
}

// ImageRatioThresholds are images per 1000 characters of text.
type ImageRatioThresholds struct {
	MinTextLength int     `json:"minTextLength" mapstructure:"minTextLength"`
	Few           float64 `json:"few" mapstructure:"few"`
	Min           float64 `json:"min" mapstructure:"min"`
	Max           float64 `json:"max" mapstructure:"max"`
	Many          float64 `json:"many" mapstructure:"many"`
}

// DefaultThresholds returns the standard scoring constants.
func DefaultThresholds() Thresholds {
	return Thresholds{
		ContentLength: ContentLengthThresholds{
			Min:  300,
			Best: 600,
		},
		Readability: ReadabilityThresholds{
			MinTextLength: 200,
			VeryHard:      30,
			Hard:          40,
			FairlyHard:    50,
			IdealMin:      60,
			IdealMax:      80,
		},
		Keywords: KeywordThresholds{
			MinTextLength: 200,
			DensityMin:    1,
			DensityMax:    3,
			MinTotalWords: 300,
		},
		ImageRatio: ImageRatioThresholds{
			MinTextLength: 1000,
			Few:           0.5,
			Min:           1,
			Max:           3,
			Many:          5,
		},
	}
}
