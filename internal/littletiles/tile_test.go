package littletiles

import (
	"errors"
	"reflect"
	"testing"
)

func TestTile_PlainBox(t *testing.T) {
	arr := []int32{3, 0, 7, 4, 1, 8}
	tile, err := ParseTile(arr)
	if err != nil {
		t.Fatalf("ParseTile: %v", err)
	}
	if tile.Transform != nil {
		t.Fatalf("plain box decoded with a transform")
	}
	want := Tile{Min: Pos{3, 0, 7}, Max: Pos{4, 1, 8}}
	if tile != want {
		t.Fatalf("tile = %+v, want %+v", tile, want)
	}
	if got := tile.Ints(); !reflect.DeepEqual(got, arr) {
		t.Fatalf("Ints = %v, want %v", got, arr)
	}
}

func TestTile_Transformable(t *testing.T) {
	arr := []int32{0, 0, 0, 2, 2, 2, -2147475454, -65538}
	tile, err := ParseTile(arr)
	if err != nil {
		t.Fatalf("ParseTile: %v", err)
	}
	if tile.Transform == nil {
		t.Fatalf("expected a transform on a %d-int tile", len(arr))
	}
	if tile.Transform.Offsets[CornerEUN][AxisY] != -2 {
		t.Fatalf("offsets = %+v", tile.Transform.Offsets)
	}
	if got := tile.Ints(); !reflect.DeepEqual(got, arr) {
		t.Fatalf("Ints = %v, want %v", got, arr)
	}
}

func TestTile_LengthDispatch(t *testing.T) {
	for n := 0; n < 6; n++ {
		if _, err := ParseTile(make([]int32, n)); !errors.Is(err, ErrInvalidFormat) {
			t.Fatalf("len %d: err = %v", n, err)
		}
	}
	// Length 7 is the smallest transformable encoding: bbox + header.
	tile, err := ParseTile([]int32{0, 0, 0, 1, 1, 1, int32(-1 << 31)})
	if err != nil {
		t.Fatalf("len 7: %v", err)
	}
	if tile.Transform == nil {
		t.Fatalf("len 7 did not dispatch to a transformable box")
	}
}
