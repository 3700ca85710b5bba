package loader

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"runtime"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/oxy-gallery/common"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

const (
	PlaceholderWidth  = 512
	PlaceholderHeight = 256

	placeholderFontSize = 28
	placeholderTextX    = 20
	placeholderTextY    = 120
)

var placeholderBackground = color.RGBA{R: 0x11, G: 0x11, B: 0x11, A: 0xff}

// PlaceholderLabel returns the text drawn on the i-th placeholder, counting from 1.
func PlaceholderLabel(i int) string {
	return fmt.Sprintf("test message %d", i)
}

// GeneratePlaceholders rasterizes n synthetic textures labelled "test message 1"
// through "test message n", white Go Regular text on a dark background.
// Textures are drawn in parallel and returned in label order.
//
// Parameters:
//   - n: number of textures to generate
//   - workers: worker goroutines to draw with; values below 1 use runtime.NumCPU()
//
// Returns:
//   - []common.TextureStagingData: n textures of PlaceholderWidth x PlaceholderHeight
//   - error: error if the font cannot be loaded or a texture fails to draw
func GeneratePlaceholders(n, workers int) ([]common.TextureStagingData, error) {
	if n <= 0 {
		return nil, nil
	}
	if workers < 1 {
		workers = runtime.NumCPU()
	}

	ttf, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("failed to parse placeholder font: %w", err)
	}

	pool := worker.NewDynamicWorkerPool(min(workers, n), n, 1*time.Second)
	defer pool.Stop()

	textures := make([]common.TextureStagingData, n)
	errs := make([]error, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		idx := i
		pool.SubmitTask(worker.Task{
			ID: idx,
			Do: func() (any, error) {
				defer wg.Done()
				textures[idx], errs[idx] = drawPlaceholder(ttf, PlaceholderLabel(idx+1))
				return nil, errs[idx]
			},
		})
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			return nil, fmt.Errorf("placeholder %d: %w", i+1, err)
		}
	}
	return textures, nil
}

// drawPlaceholder renders a single label. Faces are not safe for concurrent use,
// so each call builds its own from the shared parsed font.
func drawPlaceholder(ttf *opentype.Font, label string) (common.TextureStagingData, error) {
	face, err := opentype.NewFace(ttf, &opentype.FaceOptions{
		Size:    placeholderFontSize,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return common.TextureStagingData{}, fmt.Errorf("failed to create font face: %w", err)
	}
	defer face.Close()

	img := image.NewRGBA(image.Rect(0, 0, PlaceholderWidth, PlaceholderHeight))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: placeholderBackground}, image.Point{}, draw.Src)

	d := &font.Drawer{
		Dst:  img,
		Src:  image.White,
		Face: face,
		Dot:  fixed.P(placeholderTextX, placeholderTextY),
	}
	d.DrawString(label)

	return common.ImageToStaging(img), nil
}
