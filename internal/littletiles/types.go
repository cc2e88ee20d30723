// Package littletiles converts between LittleTiles blueprint tag trees
// and a typed voxel model of axis-aligned boxes with optional per-corner
// deformation.
//
// The tag tree side is plain Go values in the NBT convention: compounds
// are map[string]any, lists are []any, int arrays are []int32 and int
// scalars are int32. The package performs no I/O; file and transport
// handling lives in internal/persistence/bpfile and internal/transport.
package littletiles

import "errors"

// ErrInvalidFormat reports any structural violation in a blueprint tag
// tree: a missing or mistyped field, a bad array length, or a transform
// payload that declares more offsets than it carries. Decode errors wrap
// it with context naming the offending field.
var ErrInvalidFormat = errors.New("invalid blueprint format")

// Pos is a point in little units, the fractional block coordinates at a
// group's grid resolution.
type Pos struct {
	X, Y, Z int32
}

// Color is an RGBA tile color. The zero value is the implicit color at
// the start of every material tile list.
type Color struct {
	R, G, B, A uint8
}

// Pack returns the signed 32-bit wire form of c, red in the highest
// byte and alpha in the lowest.
func (c Color) Pack() int32 {
	return int32(uint32(c.R)<<24 | uint32(c.G)<<16 | uint32(c.B)<<8 | uint32(c.A))
}

// UnpackColor is the inverse of Pack.
func UnpackColor(v int32) Color {
	u := uint32(v)
	return Color{R: uint8(u >> 24), G: uint8(u >> 16), B: uint8(u >> 8), A: uint8(u)}
}

// Axis indexes the three coordinate axes. The ordinal values are part
// of the wire format and never change.
type Axis uint8

const (
	AxisX Axis = iota
	AxisY
	AxisZ

	axisCount = 3
)

// BoxCorner names one of the eight corners of a box by its
// east/west, up/down, north/south combination. The declaration order is
// the canonical wire order shared by encode and decode.
type BoxCorner uint8

const (
	CornerEUN BoxCorner = iota
	CornerEUS
	CornerEDN
	CornerEDS
	CornerWUN
	CornerWUS
	CornerWDN
	CornerWDS

	cornerCount = 8
)

// FlipSet is the set of mirrored face directions of a transformable
// box, one bit per face. Independent of the corner offsets.
type FlipSet uint8

const (
	FlipEast FlipSet = 1 << iota
	FlipWest
	FlipSouth
	FlipNorth
	FlipUp
	FlipDown

	flipMask FlipSet = 0x3F
)

// CornerOffsets maps (corner, axis) to a 16-bit offset in little units.
// A zero entry means "no offset"; the wire format cannot represent an
// explicit zero, so the table is sparse by construction.
type CornerOffsets [cornerCount][axisCount]int16

// Transform is the per-corner deformation of a transformable box.
type Transform struct {
	Flips   FlipSet
	Offsets CornerOffsets
}

// Tile is one axis-aligned box. A nil Transform means a plain box.
type Tile struct {
	Min, Max  Pos
	Transform *Transform
}

// ColorBucket is an ordered run of tiles sharing one color within a
// material's tile list.
type ColorBucket struct {
	Color Color
	Tiles []Tile
}

// MaterialTiles is one material's tile storage, color buckets in the
// order their markers appeared.
type MaterialTiles struct {
	Material string
	Buckets  []ColorBucket
}

// Group is a sub-assembly: a grid scale, owned child groups and
// material-keyed tiles. Structure and Extension are opaque sub-trees
// carried through encode/decode verbatim.
type Group struct {
	Grid     uint16
	Children []*Group
	Tiles    []MaterialTiles

	Structure map[string]any
	Extension map[string]any
}

// Blueprint is the top-level persisted object. Boxes and Tiles are the
// counts declared by the writer; they are carried, not recomputed. Max
// is derived from the stored min corner and size on decode.
type Blueprint struct {
	Boxes uint32
	Tiles uint32
	Min   Pos
	Max   Pos
	Root  *Group
}
