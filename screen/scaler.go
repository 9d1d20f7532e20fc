package screen

import (
	"image"
)

// Logical frame dimensions.
const (
	Width  = 128
	Height = 128
)

// Bounds is the logical frame every primitive clips against.
var Bounds = image.Rect(0, 0, Width, Height)

type Scaler interface {
	NewBuffer(bounds image.Rectangle) Buffer
}
