package model

import "fmt"

// Color is the ordinal mood category derived from a day's answers.
// 1 is the lowest mood and 5 the highest; the same scale is used for lanterns.
type Color int

const (
	ColorStorm   Color = 1
	ColorRain    Color = 2
	ColorCloud   Color = 3 // neutral
	ColorSun     Color = 4
	ColorRainbow Color = 5
)

const (
	MinColor = ColorStorm
	MaxColor = ColorRainbow
)

var colorNames = map[Color]string{
	ColorStorm:   "storm",
	ColorRain:    "rain",
	ColorCloud:   "cloud",
	ColorSun:     "sun",
	ColorRainbow: "rainbow",
}

// Valid reports whether c is one of the five categories.
func (c Color) Valid() bool {
	return c >= MinColor && c <= MaxColor
}

// Name returns the label stored in the colors reference table.
func (c Color) Name() string {
	if name, ok := colorNames[c]; ok {
		return name
	}
	return fmt.Sprintf("color(%d)", int(c))
}

// Clamp forces c into [MinColor, MaxColor].
func (c Color) Clamp() Color {
	if c < MinColor {
		return MinColor
	}
	if c > MaxColor {
		return MaxColor
	}
	return c
}
