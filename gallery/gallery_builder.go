package gallery

import (
	"log"
	"math/rand"

	"github.com/Carmen-Shannon/oxy-gallery/engine/loader"
)

// AppBuilderOption is a functional option for configuring an App via New.
type AppBuilderOption func(*App)

// WithLogger sets the logger for progress messages and warnings.
//
// Parameters:
//   - logger: the destination logger
//
// Returns:
//   - AppBuilderOption: a function that applies the logger option to an App
func WithLogger(logger *log.Logger) AppBuilderOption {
	return func(a *App) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// WithLoader sets the texture loader. Without it a caching loader sharing the App's
// logger is created.
//
// Parameters:
//   - l: the loader
//
// Returns:
//   - AppBuilderOption: a function that applies the loader option to an App
func WithLoader(l loader.Loader) AppBuilderOption {
	return func(a *App) {
		a.loader = l
	}
}

// WithRand sets the random source used to place planes.
//
// Parameters:
//   - rng: the random source
//
// Returns:
//   - AppBuilderOption: a function that applies the random source option to an App
func WithRand(rng *rand.Rand) AppBuilderOption {
	return func(a *App) {
		a.rng = rng
	}
}

// WithSize sets the initial logical viewport size.
func WithSize(width, height int) AppBuilderOption {
	return func(a *App) {
		if width > 0 && height > 0 {
			a.width = width
			a.height = height
		}
	}
}

// WithPixelRatio sets the initial device pixel ratio.
func WithPixelRatio(ratio float32) AppBuilderOption {
	return func(a *App) {
		if ratio > 0 {
			a.pixelRatio = ratio
		}
	}
}
