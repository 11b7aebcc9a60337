// Package pattern recognizes known Life shapes inside a grid. A Library
// maps orientation fingerprints to pattern names; a Scanner extracts
// 8-connected components each generation and records first discoveries.
package pattern

import (
	"bufio"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"

	"cellscope/internal/geometry"
)

// DefaultMaxBox is the largest bounding-box dimension a pattern may have
// and still be registered or matched.
const DefaultMaxBox = 10

// Entry describes one loaded pattern, for listings and diagnostics.
type Entry struct {
	Name         string
	Height       int
	Width        int
	Orientations int
}

// Library is the immutable fingerprint -> name lookup table. Build it once
// with LoadLibrary or Default; it is safe for concurrent readers afterward.
type Library struct {
	byFingerprint map[string]string
	entries       []Entry
	maxBox        int
}

// ParseCells reads a .cells resource: lines starting with "!" are comments,
// "!Name: <text>" overrides defaultName, "O" marks live cells, anything
// else in a grid row is dead. Row lengths may vary.
func ParseCells(r io.Reader, defaultName string) (string, geometry.CellSet, error) {
	name := defaultName
	cells := make(geometry.CellSet)
	row := 0

	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimRight(sc.Text(), "\r\n")
		if strings.HasPrefix(line, "!") {
			if strings.HasPrefix(line, "!Name:") {
				name = strings.TrimSpace(line[len("!Name:"):])
			}
			continue
		}
		for col, ch := range line {
			if ch == 'O' {
				cells[geometry.Cell{Row: row, Col: col}] = struct{}{}
			}
		}
		row++
	}
	if err := sc.Err(); err != nil {
		return "", nil, err
	}
	return name, cells, nil
}

// LoadLibrary builds a library from every .cells file in dir. Unreadable or
// empty definitions are skipped; so is any pattern whose normalized
// bounding box exceeds maxBox (<= 0 means DefaultMaxBox). A missing or
// empty directory yields a valid empty library, never an error.
func LoadLibrary(dir string, maxBox int, logger *zap.Logger) *Library {
	lib := newLibrary(maxBox)
	lib.loadDir(dir, logger)
	lib.finish()
	return lib
}

func (l *Library) loadDir(dir string, logger *zap.Logger) {
	if logger == nil {
		logger = zap.NewNop()
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		logger.Debug("pattern directory unavailable", zap.String("dir", dir), zap.Error(err))
		return
	}
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".cells") {
			continue
		}
		path := filepath.Join(dir, e.Name())
		f, err := os.Open(path)
		if err != nil {
			logger.Debug("skipping unreadable pattern", zap.String("path", path), zap.Error(err))
			continue
		}
		name, cells, err := ParseCells(f, baseName(e.Name()))
		f.Close()
		if err != nil {
			logger.Debug("skipping malformed pattern", zap.String("path", path), zap.Error(err))
			continue
		}
		l.add(name, cells)
	}
	logger.Debug("pattern library loaded",
		zap.String("dir", dir),
		zap.Int("patterns", len(l.entries)),
		zap.Int("fingerprints", len(l.byFingerprint)))
}

// LoadFS builds a library from .cells files in an fs.FS, walking root.
// Used for the embedded default set; same skip rules as LoadLibrary.
func LoadFS(fsys fs.FS, root string, maxBox int, logger *zap.Logger) *Library {
	lib := newLibrary(maxBox)
	lib.loadFS(fsys, root)
	lib.finish()
	if logger != nil {
		logger.Debug("embedded pattern set loaded",
			zap.String("root", root),
			zap.Int("patterns", len(lib.entries)))
	}
	return lib
}

func (l *Library) loadFS(fsys fs.FS, root string) {
	_ = fs.WalkDir(fsys, root, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() || !strings.HasSuffix(path, ".cells") {
			return nil
		}
		f, err := fsys.Open(path)
		if err != nil {
			return nil
		}
		name, cells, err := ParseCells(f, baseName(filepath.Base(path)))
		f.Close()
		if err != nil {
			return nil
		}
		l.add(name, cells)
		return nil
	})
}

func newLibrary(maxBox int) *Library {
	if maxBox <= 0 {
		maxBox = DefaultMaxBox
	}
	return &Library{
		byFingerprint: make(map[string]string),
		maxBox:        maxBox,
	}
}

// add registers one parsed definition, applying the empty and oversized
// skip rules. First writer wins on fingerprint collisions.
func (l *Library) add(name string, cells geometry.CellSet) {
	if len(cells) == 0 {
		return
	}
	norm := geometry.Normalize(cells)
	h, w := geometry.BoundingBox(norm)
	if h > l.maxBox || w > l.maxBox {
		return
	}
	orients := geometry.Orientations(norm)
	for _, o := range orients {
		fp := geometry.Fingerprint(o)
		if _, exists := l.byFingerprint[fp]; !exists {
			l.byFingerprint[fp] = name
		}
	}
	l.entries = append(l.entries, Entry{
		Name:         name,
		Height:       h,
		Width:        w,
		Orientations: len(orients),
	})
}

func (l *Library) finish() {
	sort.Slice(l.entries, func(i, j int) bool {
		return l.entries[i].Name < l.entries[j].Name
	})
}

// Lookup returns the registered name for an already-normalized cell set.
// Callers must normalize first; Lookup does not.
func (l *Library) Lookup(normalized geometry.CellSet) (string, bool) {
	name, ok := l.byFingerprint[geometry.Fingerprint(normalized)]
	return name, ok
}

// Len returns the number of loaded patterns.
func (l *Library) Len() int { return len(l.entries) }

// Entries lists the loaded patterns sorted by name.
func (l *Library) Entries() []Entry {
	out := make([]Entry, len(l.entries))
	copy(out, l.entries)
	return out
}

// MaxBox returns the configured bounding-box cutoff.
func (l *Library) MaxBox() int { return l.maxBox }

func baseName(file string) string {
	return strings.TrimSuffix(file, filepath.Ext(file))
}
