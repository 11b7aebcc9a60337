// Package geometry implements the canonical-form machinery behind pattern
// recognition: translation-normalized cell sets, their rigid orientations
// (4 rotations x optional horizontal reflection), and short fingerprints
// used as shape-equality proxies.
//
// Fingerprints are sha256 digests of the sorted coordinate list truncated to
// 16 hex characters. Fingerprint equality is treated as shape equality
// everywhere downstream; a truncation collision would read as a match.
package geometry

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"
)

// Cell is a single grid coordinate.
type Cell struct {
	Row int
	Col int
}

// CellSet is a finite set of unique cells describing one shape. The zero
// value (nil) behaves as the empty set for every function in this package.
type CellSet map[Cell]struct{}

// NewCellSet builds a set from the given cells, collapsing duplicates.
func NewCellSet(cells ...Cell) CellSet {
	s := make(CellSet, len(cells))
	for _, c := range cells {
		s[c] = struct{}{}
	}
	return s
}

// Sorted returns the cells in row-major order.
func (s CellSet) Sorted() []Cell {
	out := make([]Cell, 0, len(s))
	for c := range s {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Row != out[j].Row {
			return out[i].Row < out[j].Row
		}
		return out[i].Col < out[j].Col
	})
	return out
}

// Equal reports whether two sets contain exactly the same cells.
func (s CellSet) Equal(other CellSet) bool {
	if len(s) != len(other) {
		return false
	}
	for c := range s {
		if _, ok := other[c]; !ok {
			return false
		}
	}
	return true
}

// Normalize translates the set so its minimum row and column are both zero.
// Idempotent; the empty set normalizes to the empty set.
func Normalize(s CellSet) CellSet {
	if len(s) == 0 {
		return CellSet{}
	}
	minR, minC := 0, 0
	first := true
	for c := range s {
		if first {
			minR, minC = c.Row, c.Col
			first = false
			continue
		}
		if c.Row < minR {
			minR = c.Row
		}
		if c.Col < minC {
			minC = c.Col
		}
	}
	out := make(CellSet, len(s))
	for c := range s {
		out[Cell{c.Row - minR, c.Col - minC}] = struct{}{}
	}
	return out
}

// Rotate90 rotates the set 90 degrees clockwise about the origin:
// (r, c) -> (c, -r). The result is not normalized.
func Rotate90(s CellSet) CellSet {
	out := make(CellSet, len(s))
	for c := range s {
		out[Cell{c.Col, -c.Row}] = struct{}{}
	}
	return out
}

// ReflectH reflects the set horizontally: (r, c) -> (r, -c). The result is
// not normalized.
func ReflectH(s CellSet) CellSet {
	out := make(CellSet, len(s))
	for c := range s {
		out[Cell{c.Row, -c.Col}] = struct{}{}
	}
	return out
}

// Orientations returns the distinct canonical forms reachable from s by
// rigid transforms, in rotation-major, reflection-minor order. Between 1 and
// 8 forms come back for a non-empty set; fewer than 8 exactly when the shape
// has rotational or reflective symmetry. Deduplication is by value equality
// of the normalized coordinate lists, not by fingerprint.
func Orientations(s CellSet) []CellSet {
	seen := make(map[string]struct{}, 8)
	results := make([]CellSet, 0, 8)
	current := s
	for i := 0; i < 4; i++ {
		for _, variant := range []CellSet{current, ReflectH(current)} {
			n := Normalize(variant)
			k := coordKey(n)
			if _, ok := seen[k]; ok {
				continue
			}
			seen[k] = struct{}{}
			results = append(results, n)
		}
		current = Rotate90(current)
	}
	return results
}

// BoundingBox returns (height, width) of the set's bounding box measured
// from the origin: (maxRow+1, maxCol+1). The empty set yields (0, 0).
// Callers normalize first when the tight box is wanted.
func BoundingBox(s CellSet) (height, width int) {
	if len(s) == 0 {
		return 0, 0
	}
	maxR, maxC := 0, 0
	first := true
	for c := range s {
		if first {
			maxR, maxC = c.Row, c.Col
			first = false
			continue
		}
		if c.Row > maxR {
			maxR = c.Row
		}
		if c.Col > maxC {
			maxC = c.Col
		}
	}
	return maxR + 1, maxC + 1
}

// Fingerprint digests a normalized cell set to a 16-hex-char string.
// Deterministic across runs and independent of map iteration order.
func Fingerprint(s CellSet) string {
	sum := sha256.Sum256([]byte(coordKey(s)))
	return hex.EncodeToString(sum[:])[:16]
}

// coordKey serializes the sorted coordinate list. Shared by Fingerprint and
// the orientation dedup so the two agree on what "same shape" means.
func coordKey(s CellSet) string {
	cells := s.Sorted()
	var b strings.Builder
	for i, c := range cells {
		if i > 0 {
			b.WriteByte(';')
		}
		fmt.Fprintf(&b, "%d,%d", c.Row, c.Col)
	}
	return b.String()
}
