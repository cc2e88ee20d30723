package protocol

import "littlecad.dev/internal/littletiles"

// BlueprintSummary is the flattened view of a decoded blueprint served
// to clients and printed by the CLI.
type BlueprintSummary struct {
	Boxes int    `json:"boxes"`
	Tiles int    `json:"tiles"`
	Min   [3]int `json:"min"`
	Size  [3]int `json:"size"`

	Root GroupSummary `json:"root"`
}

type GroupSummary struct {
	Grid         int               `json:"grid"`
	Materials    []MaterialSummary `json:"materials,omitempty"`
	Children     []GroupSummary    `json:"children,omitempty"`
	HasStructure bool              `json:"has_structure,omitempty"`
	HasExtension bool              `json:"has_extension,omitempty"`
}

type MaterialSummary struct {
	Material    string `json:"material"`
	Colors      int    `json:"colors"`
	Tiles       int    `json:"tiles"`
	Transformed int    `json:"transformed,omitempty"`
}

// Summarize flattens a blueprint into its summary. Counts come from the
// tree itself except boxes/tiles, which are the declared header counts.
func Summarize(bp *littletiles.Blueprint) BlueprintSummary {
	return BlueprintSummary{
		Boxes: int(bp.Boxes),
		Tiles: int(bp.Tiles),
		Min:   [3]int{int(bp.Min.X), int(bp.Min.Y), int(bp.Min.Z)},
		Size: [3]int{
			int(bp.Max.X - bp.Min.X),
			int(bp.Max.Y - bp.Min.Y),
			int(bp.Max.Z - bp.Min.Z),
		},
		Root: summarizeGroup(bp.Root),
	}
}

func summarizeGroup(g *littletiles.Group) GroupSummary {
	out := GroupSummary{
		Grid:         int(g.Grid),
		HasStructure: g.Structure != nil,
		HasExtension: g.Extension != nil,
	}
	for _, mt := range g.Tiles {
		ms := MaterialSummary{Material: mt.Material, Colors: len(mt.Buckets)}
		for _, b := range mt.Buckets {
			ms.Tiles += len(b.Tiles)
			for _, tile := range b.Tiles {
				if tile.Transform != nil {
					ms.Transformed++
				}
			}
		}
		out.Materials = append(out.Materials, ms)
	}
	for _, c := range g.Children {
		out.Children = append(out.Children, summarizeGroup(c))
	}
	return out
}

// MaterialNames collects every material name in the tree once, in
// first-seen depth-first order. Used for catalog rows.
func MaterialNames(bp *littletiles.Blueprint) []string {
	seen := make(map[string]struct{})
	var out []string
	var walk func(*littletiles.Group)
	walk = func(g *littletiles.Group) {
		for _, mt := range g.Tiles {
			if _, ok := seen[mt.Material]; ok {
				continue
			}
			seen[mt.Material] = struct{}{}
			out = append(out, mt.Material)
		}
		for _, c := range g.Children {
			walk(c)
		}
	}
	walk(bp.Root)
	return out
}
