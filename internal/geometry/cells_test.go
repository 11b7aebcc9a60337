package geometry

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func glider() CellSet {
	return NewCellSet(
		Cell{0, 1}, Cell{1, 2}, Cell{2, 0}, Cell{2, 1}, Cell{2, 2},
	)
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   CellSet
		want CellSet
	}{
		{
			name: "already normalized",
			in:   NewCellSet(Cell{0, 0}, Cell{1, 1}),
			want: NewCellSet(Cell{0, 0}, Cell{1, 1}),
		},
		{
			name: "positive offset",
			in:   NewCellSet(Cell{5, 7}, Cell{6, 8}),
			want: NewCellSet(Cell{0, 0}, Cell{1, 1}),
		},
		{
			name: "negative coordinates",
			in:   NewCellSet(Cell{-3, -2}, Cell{-1, 0}),
			want: NewCellSet(Cell{0, 0}, Cell{2, 2}),
		},
		{
			name: "empty",
			in:   CellSet{},
			want: CellSet{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.in)
			if !got.Equal(tt.want) {
				t.Errorf("Normalize() = %v, want %v", got.Sorted(), tt.want.Sorted())
			}
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	shapes := []CellSet{
		glider(),
		NewCellSet(Cell{10, 3}, Cell{12, 9}),
		NewCellSet(Cell{-5, -5}),
		CellSet{},
	}
	for _, s := range shapes {
		once := Normalize(s)
		twice := Normalize(once)
		if !once.Equal(twice) {
			t.Errorf("Normalize not idempotent: %v != %v", once.Sorted(), twice.Sorted())
		}
	}
}

func TestNormalizeTranslationInvariant(t *testing.T) {
	base := Normalize(glider())
	shifted := make(CellSet)
	for c := range glider() {
		shifted[Cell{c.Row + 17, c.Col - 4}] = struct{}{}
	}
	if !Normalize(shifted).Equal(base) {
		t.Error("normalization depends on original position")
	}
}

func TestRotate90(t *testing.T) {
	// A single off-axis cell traces the four quadrants.
	s := NewCellSet(Cell{1, 2})
	got := Rotate90(s)
	want := NewCellSet(Cell{2, -1})
	if !got.Equal(want) {
		t.Errorf("Rotate90 = %v, want %v", got.Sorted(), want.Sorted())
	}
	// Four rotations return to the start.
	r := s
	for i := 0; i < 4; i++ {
		r = Rotate90(r)
	}
	if !r.Equal(s) {
		t.Errorf("four rotations = %v, want %v", r.Sorted(), s.Sorted())
	}
}

func TestReflectH(t *testing.T) {
	s := NewCellSet(Cell{1, 2}, Cell{3, -1})
	got := ReflectH(s)
	want := NewCellSet(Cell{1, -2}, Cell{3, 1})
	if !got.Equal(want) {
		t.Errorf("ReflectH = %v, want %v", got.Sorted(), want.Sorted())
	}
	if !ReflectH(got).Equal(s) {
		t.Error("double reflection is not the identity")
	}
}

func TestOrientationsCountAndUniqueness(t *testing.T) {
	tests := []struct {
		name string
		in   CellSet
		want int
	}{
		{"single cell", NewCellSet(Cell{0, 0}), 1},
		{"block (full symmetry)", NewCellSet(Cell{0, 0}, Cell{0, 1}, Cell{1, 0}, Cell{1, 1}), 1},
		{"blinker (two orientations)", NewCellSet(Cell{0, 0}, Cell{0, 1}, Cell{0, 2}), 2},
		{"toad (four orientations)", NewCellSet(Cell{0, 1}, Cell{0, 2}, Cell{0, 3}, Cell{1, 0}, Cell{1, 1}, Cell{1, 2}), 4},
		{"beacon (diagonal symmetry)", NewCellSet(Cell{0, 0}, Cell{0, 1}, Cell{1, 0}, Cell{1, 1}, Cell{2, 2}, Cell{2, 3}, Cell{3, 2}, Cell{3, 3}), 2},
		{"glider (chiral, all eight)", glider(), 8},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Orientations(tt.in)
			if len(got) != tt.want {
				t.Fatalf("len(Orientations) = %d, want %d", len(got), tt.want)
			}
			if len(got) > 8 {
				t.Fatalf("more than 8 orientations: %d", len(got))
			}
			for i := range got {
				for j := i + 1; j < len(got); j++ {
					if got[i].Equal(got[j]) {
						t.Errorf("orientations %d and %d are duplicates", i, j)
					}
				}
			}
		})
	}
}

func TestOrientationsClosedUnderTransforms(t *testing.T) {
	base := Normalize(glider())
	all := Orientations(base)

	member := func(s CellSet) bool {
		for _, o := range all {
			if o.Equal(s) {
				return true
			}
		}
		return false
	}

	// Every composition of rotations and reflections of the base shape must
	// normalize into the orientation set.
	current := base
	for i := 0; i < 4; i++ {
		if !member(Normalize(current)) {
			t.Errorf("rotation %d not in orientation set", i)
		}
		if !member(Normalize(ReflectH(current))) {
			t.Errorf("reflected rotation %d not in orientation set", i)
		}
		current = Rotate90(current)
	}
}

func TestOrientationSetsMatchForRigidTransforms(t *testing.T) {
	a := Orientations(Normalize(glider()))
	b := Orientations(Normalize(Rotate90(ReflectH(glider()))))
	if len(a) != len(b) {
		t.Fatalf("orientation set sizes differ: %d vs %d", len(a), len(b))
	}
	for _, oa := range a {
		found := false
		for _, ob := range b {
			if oa.Equal(ob) {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("orientation %v missing from transformed set", oa.Sorted())
		}
	}
}

func TestBoundingBox(t *testing.T) {
	tests := []struct {
		name string
		in   CellSet
		h, w int
	}{
		{"empty", CellSet{}, 0, 0},
		{"single", NewCellSet(Cell{0, 0}), 1, 1},
		{"glider", Normalize(glider()), 3, 3},
		{"row", NewCellSet(Cell{0, 0}, Cell{0, 4}), 1, 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, w := BoundingBox(tt.in)
			if h != tt.h || w != tt.w {
				t.Errorf("BoundingBox = (%d, %d), want (%d, %d)", h, w, tt.h, tt.w)
			}
		})
	}
}

func TestFingerprintDeterministic(t *testing.T) {
	a := Normalize(glider())
	b := Normalize(glider())
	if Fingerprint(a) != Fingerprint(b) {
		t.Error("equal shapes produced different fingerprints")
	}

	// Insertion order must not matter.
	cells := a.Sorted()
	reversed := make(CellSet)
	for i := len(cells) - 1; i >= 0; i-- {
		reversed[cells[i]] = struct{}{}
	}
	if Fingerprint(a) != Fingerprint(reversed) {
		t.Error("fingerprint depends on insertion order")
	}
}

func TestFingerprintShape(t *testing.T) {
	fp := Fingerprint(Normalize(glider()))
	if len(fp) != 16 {
		t.Errorf("fingerprint length = %d, want 16", len(fp))
	}
	other := Fingerprint(NewCellSet(Cell{0, 0}))
	if fp == other {
		t.Error("distinct shapes produced the same fingerprint")
	}
}

func TestSortedIsRowMajor(t *testing.T) {
	s := NewCellSet(Cell{1, 0}, Cell{0, 2}, Cell{0, 1}, Cell{1, 1})
	want := []Cell{{0, 1}, {0, 2}, {1, 0}, {1, 1}}
	if diff := cmp.Diff(want, s.Sorted()); diff != "" {
		t.Errorf("Sorted() mismatch (-want +got):\n%s", diff)
	}
}
