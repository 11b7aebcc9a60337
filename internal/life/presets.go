package life

import "cellscope/internal/geometry"

// Preset is a named seed shape with a placement offset tuned for a 50x50
// grid so the shape has room to evolve.
type Preset struct {
	Name      string
	OffsetRow int
	OffsetCol int
	Cells     []geometry.Cell
}

// Presets returns the built-in seed shapes in display order.
func Presets() []Preset {
	return []Preset{
		{
			Name: "Glider", OffsetRow: 2, OffsetCol: 2,
			Cells: []geometry.Cell{{Row: 0, Col: 1}, {Row: 1, Col: 2}, {Row: 2, Col: 0}, {Row: 2, Col: 1}, {Row: 2, Col: 2}},
		},
		{
			Name: "Blinker", OffsetRow: 23, OffsetCol: 24,
			Cells: []geometry.Cell{{Row: 0, Col: 0}, {Row: 0, Col: 1}, {Row: 0, Col: 2}},
		},
		{
			Name: "Toad", OffsetRow: 23, OffsetCol: 23,
			Cells: []geometry.Cell{{Row: 0, Col: 1}, {Row: 0, Col: 2}, {Row: 0, Col: 3}, {Row: 1, Col: 0}, {Row: 1, Col: 1}, {Row: 1, Col: 2}},
		},
		{
			Name: "Beacon", OffsetRow: 22, OffsetCol: 23,
			Cells: []geometry.Cell{
				{Row: 0, Col: 0}, {Row: 0, Col: 1}, {Row: 1, Col: 0}, {Row: 1, Col: 1},
				{Row: 2, Col: 2}, {Row: 2, Col: 3}, {Row: 3, Col: 2}, {Row: 3, Col: 3},
			},
		},
		{
			Name: "Pulsar", OffsetRow: 18, OffsetCol: 18,
			Cells: []geometry.Cell{
				{Row: 0, Col: 2}, {Row: 0, Col: 3}, {Row: 0, Col: 4}, {Row: 0, Col: 8}, {Row: 0, Col: 9}, {Row: 0, Col: 10},
				{Row: 2, Col: 0}, {Row: 2, Col: 5}, {Row: 2, Col: 7}, {Row: 2, Col: 12},
				{Row: 3, Col: 0}, {Row: 3, Col: 5}, {Row: 3, Col: 7}, {Row: 3, Col: 12},
				{Row: 4, Col: 0}, {Row: 4, Col: 5}, {Row: 4, Col: 7}, {Row: 4, Col: 12},
				{Row: 5, Col: 2}, {Row: 5, Col: 3}, {Row: 5, Col: 4}, {Row: 5, Col: 8}, {Row: 5, Col: 9}, {Row: 5, Col: 10},
				{Row: 7, Col: 2}, {Row: 7, Col: 3}, {Row: 7, Col: 4}, {Row: 7, Col: 8}, {Row: 7, Col: 9}, {Row: 7, Col: 10},
				{Row: 8, Col: 0}, {Row: 8, Col: 5}, {Row: 8, Col: 7}, {Row: 8, Col: 12},
				{Row: 9, Col: 0}, {Row: 9, Col: 5}, {Row: 9, Col: 7}, {Row: 9, Col: 12},
				{Row: 10, Col: 0}, {Row: 10, Col: 5}, {Row: 10, Col: 7}, {Row: 10, Col: 12},
				{Row: 12, Col: 2}, {Row: 12, Col: 3}, {Row: 12, Col: 4}, {Row: 12, Col: 8}, {Row: 12, Col: 9}, {Row: 12, Col: 10},
			},
		},
		{
			Name: "Gosper Gun", OffsetRow: 10, OffsetCol: 1,
			Cells: []geometry.Cell{
				{Row: 0, Col: 24},
				{Row: 1, Col: 22}, {Row: 1, Col: 24},
				{Row: 2, Col: 12}, {Row: 2, Col: 13}, {Row: 2, Col: 20}, {Row: 2, Col: 21}, {Row: 2, Col: 34}, {Row: 2, Col: 35},
				{Row: 3, Col: 11}, {Row: 3, Col: 15}, {Row: 3, Col: 20}, {Row: 3, Col: 21}, {Row: 3, Col: 34}, {Row: 3, Col: 35},
				{Row: 4, Col: 0}, {Row: 4, Col: 1}, {Row: 4, Col: 10}, {Row: 4, Col: 16}, {Row: 4, Col: 20}, {Row: 4, Col: 21},
				{Row: 5, Col: 0}, {Row: 5, Col: 1}, {Row: 5, Col: 10}, {Row: 5, Col: 14}, {Row: 5, Col: 16}, {Row: 5, Col: 17}, {Row: 5, Col: 22}, {Row: 5, Col: 24},
				{Row: 6, Col: 10}, {Row: 6, Col: 16}, {Row: 6, Col: 24},
				{Row: 7, Col: 11}, {Row: 7, Col: 15},
				{Row: 8, Col: 12}, {Row: 8, Col: 13},
			},
		},
	}
}

// PresetByName returns the named preset, if any.
func PresetByName(name string) (Preset, bool) {
	for _, p := range Presets() {
		if p.Name == name {
			return p, true
		}
	}
	return Preset{}, false
}

// ApplyPreset clears the simulation and places the preset's cells at its
// offset, clipping anything outside the grid.
func (s *Sim) ApplyPreset(p Preset) {
	s.Clear()
	for _, c := range p.Cells {
		s.Grid.Set(p.OffsetRow+c.Row, p.OffsetCol+c.Col, true)
	}
}
