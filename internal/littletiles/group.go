package littletiles

import (
	"fmt"
	"sort"
)

// Group tag fields.
const (
	fieldGrid      = "grid"
	fieldChildren  = "c"
	fieldStructure = "s"
	fieldExtension = "e"
	fieldTiles     = "t"
)

// ParseGroup decodes a group compound. Blueprint-only fields that share
// the root compound are ignored here. Material entries are decoded in
// sorted name order; the compound is an unordered map, so sorting keeps
// the model (and every re-encode) deterministic.
func ParseGroup(m map[string]any) (*Group, error) {
	grid, err := tagInt(m, fieldGrid)
	if err != nil {
		return nil, fmt.Errorf("group: %w", err)
	}
	g := &Group{Grid: uint16(grid)}

	if v, ok := m[fieldChildren]; ok {
		list, ok := asList(v)
		if !ok {
			return nil, fmt.Errorf("group: field %q: %T is not a list tag: %w", fieldChildren, v, ErrInvalidFormat)
		}
		g.Children = make([]*Group, 0, len(list))
		for i, el := range list {
			cm, ok := el.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("group: child %d: %T is not a compound tag: %w", i, el, ErrInvalidFormat)
			}
			child, err := ParseGroup(cm)
			if err != nil {
				return nil, fmt.Errorf("child %d: %w", i, err)
			}
			g.Children = append(g.Children, child)
		}
	}

	if g.Structure, err = tagCompoundOpt(m, fieldStructure); err != nil {
		return nil, fmt.Errorf("group: %w", err)
	}
	if g.Extension, err = tagCompoundOpt(m, fieldExtension); err != nil {
		return nil, fmt.Errorf("group: %w", err)
	}

	tv, ok := m[fieldTiles]
	if !ok {
		return nil, fmt.Errorf("group: missing tile table %q: %w", fieldTiles, ErrInvalidFormat)
	}
	tm, ok := tv.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("group: field %q: %T is not a compound tag: %w", fieldTiles, tv, ErrInvalidFormat)
	}
	mats := make([]string, 0, len(tm))
	for mat := range tm {
		mats = append(mats, mat)
	}
	sort.Strings(mats)
	g.Tiles = make([]MaterialTiles, 0, len(mats))
	for _, mat := range mats {
		mt, err := parseMaterialList(mat, tm[mat])
		if err != nil {
			return nil, err
		}
		g.Tiles = append(g.Tiles, mt)
	}
	return g, nil
}

// parseMaterialList scans one material's flat tile list. A one-element
// int array switches the current color; every other int array is a
// tile appended to the current color's bucket. The color accumulator is
// local to the material and starts at the zero color.
func parseMaterialList(mat string, v any) (MaterialTiles, error) {
	list, ok := asList(v)
	if !ok {
		return MaterialTiles{}, fmt.Errorf("material %q: %T is not a list tag: %w", mat, v, ErrInvalidFormat)
	}
	out := MaterialTiles{Material: mat}
	var cur Color
	for i, el := range list {
		arr, ok := asIntArray(el)
		if !ok {
			return MaterialTiles{}, fmt.Errorf("material %q: element %d: %T is not an int array tag: %w", mat, i, el, ErrInvalidFormat)
		}
		if len(arr) == 1 {
			cur = UnpackColor(arr[0])
			continue
		}
		tile, err := ParseTile(arr)
		if err != nil {
			return MaterialTiles{}, fmt.Errorf("material %q: element %d: %w", mat, i, err)
		}
		b := out.bucket(cur)
		b.Tiles = append(b.Tiles, tile)
	}
	return out, nil
}

// bucket returns the bucket for c, appending a new one the first time
// the color is seen. Repeated markers for the same color merge.
func (m *MaterialTiles) bucket(c Color) *ColorBucket {
	for i := range m.Buckets {
		if m.Buckets[i].Color == c {
			return &m.Buckets[i]
		}
	}
	m.Buckets = append(m.Buckets, ColorBucket{Color: c})
	return &m.Buckets[len(m.Buckets)-1]
}

// Tag encodes the group as a compound. The children list is always
// present, even when empty; the opaque sub-trees are re-emitted only
// when carried. Each color bucket opens with its color marker.
func (g *Group) Tag() map[string]any {
	m := make(map[string]any, 5)
	m[fieldGrid] = int32(g.Grid)

	children := make([]any, len(g.Children))
	for i, c := range g.Children {
		children[i] = c.Tag()
	}
	m[fieldChildren] = children

	if g.Structure != nil {
		m[fieldStructure] = g.Structure
	}
	if g.Extension != nil {
		m[fieldExtension] = g.Extension
	}

	tiles := make(map[string]any, len(g.Tiles))
	for _, mt := range g.Tiles {
		n := 0
		for _, b := range mt.Buckets {
			n += 1 + len(b.Tiles)
		}
		flat := make([]any, 0, n)
		for _, b := range mt.Buckets {
			flat = append(flat, []int32{b.Color.Pack()})
			for _, t := range b.Tiles {
				flat = append(flat, t.Ints())
			}
		}
		tiles[mt.Material] = flat
	}
	m[fieldTiles] = tiles
	return m
}
