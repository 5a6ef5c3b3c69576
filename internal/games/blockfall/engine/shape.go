package engine

import "github.com/vovakirdan/blockfall/internal/core"

// Shape identifies one of the seven tetrominoes.
type Shape uint8

const (
	ShapeI Shape = iota
	ShapeO
	ShapeJ
	ShapeL
	ShapeS
	ShapeZ
	ShapeT
)

// ShapeCount is the number of distinct shapes.
const ShapeCount = 7

// Shapes lists every shape in declaration order.
var Shapes = [ShapeCount]Shape{ShapeI, ShapeO, ShapeJ, ShapeL, ShapeS, ShapeZ, ShapeT}

// String returns the one-letter shape name.
func (s Shape) String() string {
	switch s {
	case ShapeI:
		return "I"
	case ShapeO:
		return "O"
	case ShapeJ:
		return "J"
	case ShapeL:
		return "L"
	case ShapeS:
		return "S"
	case ShapeZ:
		return "Z"
	case ShapeT:
		return "T"
	default:
		return "?"
	}
}

// Color returns the fixed color of the shape.
func (s Shape) Color() core.Color {
	switch s {
	case ShapeI:
		return core.ColorCyan
	case ShapeO:
		return core.ColorYellow
	case ShapeJ:
		return core.ColorBlue
	case ShapeL:
		return core.ColorOrange
	case ShapeS:
		return core.ColorGreen
	case ShapeZ:
		return core.ColorRed
	case ShapeT:
		return core.ColorPurple
	default:
		return core.ColorDefault
	}
}

// spawnOffsets are relative to the anchor (cols/2, 0). Index 1 is the pivot.
// Drawn over columns anchor-2..anchor:
//
//	I ..#  O .##  J ..#  L .#.  S .#.  Z ..#  T .#.
//	  ..#    .##    ..#    .#.    .##    .##    ###
//	  ..#           .##    .##    ..#    .#.
//	  ..#
var spawnOffsets = [ShapeCount][4]Point{
	ShapeI: {{0, 0}, {0, 1}, {0, 2}, {0, 3}},
	ShapeO: {{-1, 0}, {-1, 1}, {0, 0}, {0, 1}},
	ShapeJ: {{0, 0}, {0, 1}, {0, 2}, {-1, 2}},
	ShapeL: {{-1, 0}, {-1, 1}, {-1, 2}, {0, 2}},
	ShapeS: {{-1, 0}, {-1, 1}, {0, 1}, {0, 2}},
	ShapeZ: {{0, 0}, {0, 1}, {-1, 1}, {-1, 2}},
	ShapeT: {{-1, 0}, {-2, 1}, {-1, 1}, {0, 1}},
}
