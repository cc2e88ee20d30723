package littletiles

import (
	"errors"
	"reflect"
	"testing"
)

// fixtureTree is a blueprint exported by the original mod: a 5x1x5
// footprint with nested sub-groups, one material per group. Kept in the
// exact shape the NBT layer produces.
func fixtureTree() map[string]any {
	fixed := func() map[string]any {
		return map[string]any{"id": "fixed"}
	}
	stoneGroup := map[string]any{
		"grid": int32(4),
		"s":    fixed(),
		"c":    []any{},
		"t": map[string]any{
			"minecraft:stone": []any{
				[]int32{-1},
				[]int32{3, 0, 3, 4, 1, 4},
				[]int32{3, 0, 4, 4, 1, 5},
				[]int32{4, 0, 3, 5, 1, 4},
				[]int32{4, 0, 4, 5, 1, 5},
			},
		},
	}
	limeGroup := map[string]any{
		"grid": int32(4),
		"s":    fixed(),
		"c":    []any{},
		"t": map[string]any{
			"minecraft:lime_wool": []any{
				[]int32{-1},
				[]int32{0, 0, 4, 1, 1, 5},
			},
		},
	}
	purpleGroup := map[string]any{
		"grid": int32(4),
		"s":    fixed(),
		"c":    []any{limeGroup},
		"t": map[string]any{
			"minecraft:purple_wool": []any{
				[]int32{-1},
				[]int32{1, 0, 5, 2, 1, 6},
			},
		},
	}
	redGroup := map[string]any{
		"grid": int32(4),
		"s":    fixed(),
		"c":    []any{purpleGroup},
		"t": map[string]any{
			"minecraft:red_wool": []any{
				[]int32{-1},
				[]int32{2, 0, 6, 3, 1, 7},
			},
		},
	}
	return map[string]any{
		"boxes": int32(8),
		"tiles": int32(5),
		"min":   []int32{0, 0, 3},
		"size":  []int32{5, 1, 5},
		"grid":  int32(4),
		"c":     []any{stoneGroup, redGroup},
		"t": map[string]any{
			"minecraft:white_wool": []any{
				[]int32{-1},
				[]int32{3, 0, 7, 4, 1, 8},
			},
		},
	}
}

func TestBlueprint_DecodeFixture(t *testing.T) {
	bp, err := ParseBlueprint(fixtureTree())
	if err != nil {
		t.Fatalf("ParseBlueprint: %v", err)
	}

	if bp.Boxes != 8 || bp.Tiles != 5 {
		t.Fatalf("counts = %d/%d, want 8/5", bp.Boxes, bp.Tiles)
	}
	if bp.Min != (Pos{0, 0, 3}) {
		t.Fatalf("min = %+v", bp.Min)
	}
	if bp.Max != (Pos{5, 1, 8}) {
		t.Fatalf("max = %+v, want min+size", bp.Max)
	}
	if bp.Root.Grid != 4 {
		t.Fatalf("grid = %d", bp.Root.Grid)
	}
	if len(bp.Root.Children) != 2 {
		t.Fatalf("children = %d", len(bp.Root.Children))
	}

	if len(bp.Root.Tiles) != 1 || bp.Root.Tiles[0].Material != "minecraft:white_wool" {
		t.Fatalf("root materials = %+v", bp.Root.Tiles)
	}
	buckets := bp.Root.Tiles[0].Buckets
	if len(buckets) != 1 || buckets[0].Color != (Color{255, 255, 255, 255}) {
		t.Fatalf("root buckets = %+v", buckets)
	}
	if len(buckets[0].Tiles) != 1 {
		t.Fatalf("root tiles = %+v", buckets[0].Tiles)
	}
	want := Tile{Min: Pos{3, 0, 7}, Max: Pos{4, 1, 8}}
	if buckets[0].Tiles[0] != want {
		t.Fatalf("root tile = %+v, want %+v", buckets[0].Tiles[0], want)
	}

	// The nested chain: red -> purple -> lime.
	red := bp.Root.Children[1]
	if red.Tiles[0].Material != "minecraft:red_wool" || len(red.Children) != 1 {
		t.Fatalf("red group = %+v", red)
	}
	purple := red.Children[0]
	lime := purple.Children[0]
	if lime.Tiles[0].Material != "minecraft:lime_wool" || len(lime.Children) != 0 {
		t.Fatalf("lime group = %+v", lime)
	}
	if lime.Structure == nil || lime.Structure["id"] != "fixed" {
		t.Fatalf("lime structure = %+v", lime.Structure)
	}
}

func TestBlueprint_RoundTrip(t *testing.T) {
	in := fixtureTree()
	bp, err := ParseBlueprint(in)
	if err != nil {
		t.Fatalf("ParseBlueprint: %v", err)
	}
	out := bp.Tag()
	if !reflect.DeepEqual(in, out) {
		t.Fatalf("tag tree changed across a round trip:\n got %#v\nwant %#v", out, in)
	}
}

func TestBlueprint_MissingFields(t *testing.T) {
	for _, field := range []string{"boxes", "tiles", "min", "size", "grid", "t"} {
		tree := fixtureTree()
		delete(tree, field)
		if _, err := ParseBlueprint(tree); !errors.Is(err, ErrInvalidFormat) {
			t.Fatalf("missing %q: err = %v", field, err)
		}
	}
}

func TestBlueprint_BadBounds(t *testing.T) {
	tree := fixtureTree()
	tree["min"] = []int32{0, 0}
	if _, err := ParseBlueprint(tree); !errors.Is(err, ErrInvalidFormat) {
		t.Fatalf("short min: err = %v", err)
	}
	tree = fixtureTree()
	tree["size"] = []int32{5, 1, 5, 9}
	if _, err := ParseBlueprint(tree); !errors.Is(err, ErrInvalidFormat) {
		t.Fatalf("long size: err = %v", err)
	}
	tree = fixtureTree()
	tree["size"] = int32(5)
	if _, err := ParseBlueprint(tree); !errors.Is(err, ErrInvalidFormat) {
		t.Fatalf("scalar size: err = %v", err)
	}
}
