package mood

import (
	"math"
	"time"

	"github.com/sakif/mood-lantern/internal/model"
)

// WeekDays is the length of the trailing window used for weekly colors and
// lanterns.
const WeekDays = 7

// WeekWindow returns the first and last calendar day of the trailing week
// ending on asOf. Both bounds are inclusive: the window covers asOf and the
// six days before it.
func WeekWindow(asOf time.Time) (from, to time.Time) {
	to = model.CalendarDate(asOf)
	from = to.AddDate(0, 0, -(WeekDays - 1))
	return from, to
}

// LanternColor reduces a week of colors to a single color.
//
// The mean is rounded half to even (2.5 -> 2, 3.5 -> 4) and clamped to the
// color range. ok is false when colors is empty.
func LanternColor(colors []model.Color) (c model.Color, ok bool) {
	if len(colors) == 0 {
		return 0, false
	}

	total := 0
	for _, c := range colors {
		total += int(c)
	}
	mean := float64(total) / float64(len(colors))
	return model.Color(math.RoundToEven(mean)).Clamp(), true
}
