package mood

import "github.com/sakif/mood-lantern/internal/model"

// Score thresholds on the mean choice. Each is an inclusive lower bound and
// they are checked from the highest down, which partitions the real line into
// five half-open intervals.
const (
	thresholdRainbow = 4.5
	thresholdSun     = 3.5
	thresholdCloud   = 2.5
	thresholdRain    = 1.5
)

// Score maps a set of answers to a color.
//
// The mean of the choices is bucketed with the thresholds above. Questions
// and categories are not weighted. An empty set scores ColorCloud.
func Score(answers []model.Answer) model.Color {
	if len(answers) == 0 {
		return model.ColorCloud
	}

	total := 0
	for _, a := range answers {
		total += a.Choice
	}
	return colorForMean(float64(total) / float64(len(answers)))
}

func colorForMean(mean float64) model.Color {
	switch {
	case mean >= thresholdRainbow:
		return model.ColorRainbow
	case mean >= thresholdSun:
		return model.ColorSun
	case mean >= thresholdCloud:
		return model.ColorCloud
	case mean >= thresholdRain:
		return model.ColorRain
	default:
		return model.ColorStorm
	}
}
