package gallery

import (
	"context"
	"path"

	"github.com/Carmen-Shannon/oxy-gallery/engine/loader"
)

// loadScene fetches the manifest and appends one plane per image, strictly in
// manifest order. A failed manifest is logged and treated as empty; an empty
// manifest is replaced by placeholder planes. A failed image or a non-string
// entry is logged and skipped.
// Returns the number of planes added.
func (a *App) loadScene(ctx context.Context) int {
	entries, err := a.loader.FetchManifest(ctx, a.cfg.Manifest)
	if err != nil {
		a.logger.Printf("[Gallery] could not load manifest %s: %v", a.cfg.Manifest, err)
		entries = nil
	}
	a.setImageCount(len(entries))

	if len(entries) == 0 {
		return a.addPlaceholders()
	}

	added := 0
	for _, entry := range entries {
		if ctx.Err() != nil {
			a.logger.Printf("[Gallery] loading cancelled after %d of %d images", added, len(entries))
			return added
		}
		if entry.Err != nil {
			a.logger.Printf("warning: skipping manifest entry: %v", entry.Err)
			continue
		}
		url := loader.Resolve(a.cfg.Manifest, path.Join(a.cfg.ImageDir, entry.Name))
		tex, err := a.loader.Load(ctx, url).Await(ctx)
		if err != nil {
			a.logger.Printf("warning: failed to load texture %s: %v", url, err)
			continue
		}
		a.scene.Group().Add(a.factory.NewPlane(tex))
		added++
	}
	a.logger.Printf("[Gallery] loaded %d of %d images", added, len(entries))
	return added
}

// addPlaceholders appends the synthetic labelled planes shown when there are no images.
func (a *App) addPlaceholders() int {
	textures, err := loader.GeneratePlaceholders(a.cfg.PlaceholderCount, a.cfg.PlaceholderWorkers)
	if err != nil {
		a.logger.Printf("[Gallery] could not generate placeholders: %v", err)
		return 0
	}
	for _, tex := range textures {
		a.scene.Group().Add(a.factory.NewPlane(tex))
	}
	a.logger.Printf("[Gallery] showing %d placeholders", len(textures))
	return len(textures)
}
