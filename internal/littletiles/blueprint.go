package littletiles

import "fmt"

// Blueprint tag fields, present only on the root compound.
const (
	fieldBoxCount  = "boxes"
	fieldTileCount = "tiles"
	fieldMin       = "min"
	fieldSize      = "size"
)

// ParseBlueprint decodes a root compound. The root doubles as the root
// group's compound, so the same map is handed to ParseGroup after the
// blueprint fields are read.
func ParseBlueprint(root map[string]any) (*Blueprint, error) {
	boxes, err := tagInt(root, fieldBoxCount)
	if err != nil {
		return nil, fmt.Errorf("blueprint: %w", err)
	}
	tiles, err := tagInt(root, fieldTileCount)
	if err != nil {
		return nil, fmt.Errorf("blueprint: %w", err)
	}
	minArr, err := tagIntArray(root, fieldMin)
	if err != nil {
		return nil, fmt.Errorf("blueprint: %w", err)
	}
	sizeArr, err := tagIntArray(root, fieldSize)
	if err != nil {
		return nil, fmt.Errorf("blueprint: %w", err)
	}
	if len(minArr) != 3 || len(sizeArr) != 3 {
		return nil, fmt.Errorf("blueprint: min/size must have 3 ints, got %d/%d: %w", len(minArr), len(sizeArr), ErrInvalidFormat)
	}

	min := Pos{X: minArr[0], Y: minArr[1], Z: minArr[2]}
	max := Pos{X: min.X + sizeArr[0], Y: min.Y + sizeArr[1], Z: min.Z + sizeArr[2]}

	group, err := ParseGroup(root)
	if err != nil {
		return nil, fmt.Errorf("blueprint: %w", err)
	}
	return &Blueprint{
		Boxes: uint32(boxes),
		Tiles: uint32(tiles),
		Min:   min,
		Max:   max,
		Root:  group,
	}, nil
}

// Tag encodes the blueprint: the root group's compound with the count
// and bounds fields merged in. Size is stored, max is not.
func (bp *Blueprint) Tag() map[string]any {
	m := bp.Root.Tag()
	m[fieldBoxCount] = int32(bp.Boxes)
	m[fieldTileCount] = int32(bp.Tiles)
	m[fieldMin] = []int32{bp.Min.X, bp.Min.Y, bp.Min.Z}
	m[fieldSize] = []int32{bp.Max.X - bp.Min.X, bp.Max.Y - bp.Min.Y, bp.Max.Z - bp.Min.Z}
	return m
}
