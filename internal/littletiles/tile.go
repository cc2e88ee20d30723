package littletiles

import "fmt"

// ParseTile decodes one tile integer array: six bounding-box ints,
// optionally followed by a transform payload. Length dispatch: exactly
// 6 is a plain box, 7 or more is a transformable box, anything shorter
// is malformed.
func ParseTile(arr []int32) (Tile, error) {
	if len(arr) < 6 {
		return Tile{}, fmt.Errorf("tile: %d ints, want at least 6: %w", len(arr), ErrInvalidFormat)
	}
	t := Tile{
		Min: Pos{X: arr[0], Y: arr[1], Z: arr[2]},
		Max: Pos{X: arr[3], Y: arr[4], Z: arr[5]},
	}
	if len(arr) == 6 {
		return t, nil
	}
	tr, err := ParseTransform(arr[6:])
	if err != nil {
		return Tile{}, err
	}
	t.Transform = tr
	return t, nil
}

// Ints is the inverse of ParseTile.
func (t Tile) Ints() []int32 {
	arr := []int32{t.Min.X, t.Min.Y, t.Min.Z, t.Max.X, t.Max.Y, t.Max.Z}
	if t.Transform != nil {
		arr = append(arr, t.Transform.Words()...)
	}
	return arr
}
