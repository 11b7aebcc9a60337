package pattern

import (
	"embed"

	"go.uber.org/zap"
)

//go:embed defaults/*.cells
var defaultsFS embed.FS

// Default returns the built-in library: the classic small still lifes,
// oscillators, and spaceships. Used when no patterns directory exists so a
// fresh install still recognizes shapes.
func Default(maxBox int, logger *zap.Logger) *Library {
	return LoadFS(defaultsFS, "defaults", maxBox, logger)
}

// Load builds the working library: definitions from dir layered over the
// built-in set. Directory definitions register first, so they win any
// fingerprint collision with a built-in shape of the same geometry.
func Load(dir string, maxBox int, logger *zap.Logger) *Library {
	lib := newLibrary(maxBox)
	lib.loadDir(dir, logger)
	lib.loadFS(defaultsFS, "defaults")
	lib.finish()
	return lib
}
