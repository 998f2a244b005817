package session

import "fmt"

// BrickID identifies a spawned brick instance. IDs are issued by the Surface.
type BrickID int

// BallHandle identifies the spawned ball.
type BallHandle int

// PaddleHandle identifies the spawned paddle.
type PaddleHandle int

// Color is the base tint of a brick.
type Color int

const (
	ColorRed Color = iota
	ColorBlue
	ColorGreen
	ColorPurple
	ColorSilver
	ColorYellow
	colorCount
)

// String returns the asset-style name of the color.
func (c Color) String() string {
	switch c {
	case ColorRed:
		return "red"
	case ColorBlue:
		return "blue"
	case ColorGreen:
		return "green"
	case ColorPurple:
		return "purple"
	case ColorSilver:
		return "silver"
	case ColorYellow:
		return "yellow"
	default:
		return "unknown"
	}
}

// ShadesPerColor is the number of variants each color comes in.
const ShadesPerColor = 2

// VariantCount is the number of distinct brick looks (6 colors x 2 shades).
const VariantCount = int(colorCount) * ShadesPerColor

// ColorVariant is one of the 12 brick looks, e.g. red1 or yellow2.
type ColorVariant struct {
	Color Color
	Shade int // 1 or 2
}

// VariantByIndex maps an index in [0, VariantCount) to a variant.
// Ordering is red1, red2, blue1, blue2, ... yellow2.
func VariantByIndex(i int) ColorVariant {
	if i < 0 || i >= VariantCount {
		i = 0
	}
	return ColorVariant{
		Color: Color(i / ShadesPerColor),
		Shade: i%ShadesPerColor + 1,
	}
}

// Index is the inverse of VariantByIndex.
func (v ColorVariant) Index() int {
	return int(v.Color)*ShadesPerColor + v.Shade - 1
}

// String returns names like "red1".
func (v ColorVariant) String() string {
	return fmt.Sprintf("%s%d", v.Color, v.Shade)
}

// Brick is one cell of the session grid.
type Brick struct {
	ID      BrickID
	GridX   int
	GridY   int
	Variant ColorVariant
}
