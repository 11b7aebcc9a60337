package pattern

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cellscope/internal/geometry"
)

func writePattern(t *testing.T, dir, file, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, file), []byte(content), 0o644))
}

func TestParseCells(t *testing.T) {
	src := `!Name: Glider
! classic spaceship
.O.
..O
OOO
`
	name, cells, err := ParseCells(strings.NewReader(src), "glider-file")
	require.NoError(t, err)
	assert.Equal(t, "Glider", name)
	want := geometry.NewCellSet(
		geometry.Cell{Row: 0, Col: 1},
		geometry.Cell{Row: 1, Col: 2},
		geometry.Cell{Row: 2, Col: 0},
		geometry.Cell{Row: 2, Col: 1},
		geometry.Cell{Row: 2, Col: 2},
	)
	assert.True(t, cells.Equal(want), "parsed %v", cells.Sorted())
}

func TestParseCellsDefaults(t *testing.T) {
	// No !Name directive: the filename-derived default sticks. Ragged rows
	// and arbitrary dead markers are fine.
	src := "..O\nO\n"
	name, cells, err := ParseCells(strings.NewReader(src), "mystery")
	require.NoError(t, err)
	assert.Equal(t, "mystery", name)
	assert.Len(t, cells, 2)
}

func TestLoadLibrary(t *testing.T) {
	dir := t.TempDir()
	writePattern(t, dir, "blinker.cells", "OOO\n")
	writePattern(t, dir, "block.cells", "!Name: Block\nOO\nOO\n")
	writePattern(t, dir, "empty.cells", "!Name: Nothing\n...\n")
	writePattern(t, dir, "notes.txt", "not a pattern")

	lib := LoadLibrary(dir, 0, nil)
	assert.Equal(t, 2, lib.Len(), "empty definition and non-.cells file must be skipped")

	name, ok := lib.Lookup(geometry.NewCellSet(
		geometry.Cell{Row: 0, Col: 0}, geometry.Cell{Row: 0, Col: 1}, geometry.Cell{Row: 0, Col: 2},
	))
	require.True(t, ok)
	assert.Equal(t, "blinker", name)

	// The vertical orientation is registered too.
	name, ok = lib.Lookup(geometry.NewCellSet(
		geometry.Cell{Row: 0, Col: 0}, geometry.Cell{Row: 1, Col: 0}, geometry.Cell{Row: 2, Col: 0},
	))
	require.True(t, ok)
	assert.Equal(t, "blinker", name)
}

func TestLoadLibraryMissingDir(t *testing.T) {
	lib := LoadLibrary(filepath.Join(t.TempDir(), "nope"), 0, nil)
	assert.Equal(t, 0, lib.Len())
	_, ok := lib.Lookup(geometry.NewCellSet(geometry.Cell{Row: 0, Col: 0}))
	assert.False(t, ok, "empty library must always miss")
}

func TestLoadLibraryMaxBoxFilter(t *testing.T) {
	dir := t.TempDir()
	// A 1x12 row exceeds the default 10x10 box in one dimension.
	writePattern(t, dir, "long.cells", "!Name: LongRow\n"+strings.Repeat("O", 12)+"\n")
	writePattern(t, dir, "short.cells", "!Name: ShortRow\nOOO\n")

	lib := LoadLibrary(dir, 0, nil)
	assert.Equal(t, 1, lib.Len())

	// No orientation of the oversized pattern may be present.
	long := make(geometry.CellSet)
	for c := 0; c < 12; c++ {
		long[geometry.Cell{Row: 0, Col: c}] = struct{}{}
	}
	for _, o := range geometry.Orientations(long) {
		if name, ok := lib.Lookup(o); ok {
			t.Errorf("oversized pattern registered as %q", name)
		}
	}
}

func TestLoadLibraryFirstWriterWins(t *testing.T) {
	dir := t.TempDir()
	// Two files defining the same shape; ReadDir returns names sorted, so
	// "a.cells" registers first and owns every orientation fingerprint.
	writePattern(t, dir, "a.cells", "!Name: First\nOO\nOO\n")
	writePattern(t, dir, "b.cells", "!Name: Second\nOO\nOO\n")

	lib := LoadLibrary(dir, 0, nil)
	assert.Equal(t, 2, lib.Len(), "both count as loaded patterns")

	name, ok := lib.Lookup(geometry.NewCellSet(
		geometry.Cell{Row: 0, Col: 0}, geometry.Cell{Row: 0, Col: 1},
		geometry.Cell{Row: 1, Col: 0}, geometry.Cell{Row: 1, Col: 1},
	))
	require.True(t, ok)
	assert.Equal(t, "First", name)
}

func TestLoadLayersDirectoryOverDefaults(t *testing.T) {
	dir := t.TempDir()
	// Same geometry as the built-in block, different name. The directory
	// registers first and owns the fingerprints.
	writePattern(t, dir, "square.cells", "!Name: Square\nOO\nOO\n")

	lib := Load(dir, 0, nil)

	name, ok := lib.Lookup(geometry.NewCellSet(
		geometry.Cell{Row: 0, Col: 0}, geometry.Cell{Row: 0, Col: 1},
		geometry.Cell{Row: 1, Col: 0}, geometry.Cell{Row: 1, Col: 1},
	))
	require.True(t, ok)
	assert.Equal(t, "Square", name)

	// Built-ins the directory does not shadow are still matched.
	name, ok = lib.Lookup(geometry.Normalize(geometry.NewCellSet(
		geometry.Cell{Row: 0, Col: 1},
		geometry.Cell{Row: 1, Col: 2},
		geometry.Cell{Row: 2, Col: 0},
		geometry.Cell{Row: 2, Col: 1},
		geometry.Cell{Row: 2, Col: 2},
	)))
	require.True(t, ok)
	assert.Equal(t, "Glider", name)
}

func TestDefaultLibrary(t *testing.T) {
	lib := Default(0, nil)
	require.NotZero(t, lib.Len())

	name, ok := lib.Lookup(geometry.Normalize(geometry.NewCellSet(
		geometry.Cell{Row: 0, Col: 1},
		geometry.Cell{Row: 1, Col: 2},
		geometry.Cell{Row: 2, Col: 0},
		geometry.Cell{Row: 2, Col: 1},
		geometry.Cell{Row: 2, Col: 2},
	)))
	require.True(t, ok)
	assert.Equal(t, "Glider", name)

	for _, e := range lib.Entries() {
		assert.LessOrEqual(t, e.Height, DefaultMaxBox)
		assert.LessOrEqual(t, e.Width, DefaultMaxBox)
		assert.GreaterOrEqual(t, e.Orientations, 1)
		assert.LessOrEqual(t, e.Orientations, 8)
	}
}

func TestEntriesSorted(t *testing.T) {
	lib := Default(0, nil)
	entries := lib.Entries()
	for i := 1; i < len(entries); i++ {
		assert.LessOrEqual(t, entries[i-1].Name, entries[i].Name)
	}
}
