package object

import "github.com/tomz197/meteors/internal/asset"

// Sprites bundles the resources entities draw with. The zero value has
// every resource pending forever, which entities treat as not loaded.
type Sprites struct {
	Player     *asset.Resource[*asset.Image]
	Meteorite  *asset.Resource[*asset.Image]
	Projectile *asset.Resource[*asset.Image]
	Background *asset.Resource[*asset.Image]
	Engine     *asset.Resource[[]*asset.Image]
	Tail       *asset.Resource[[]*asset.Image]
	Explosion  *asset.Resource[[]*asset.Image]
}

// LoadSprites requests every sprite from lib.
func LoadSprites(lib *asset.Library) Sprites {
	return Sprites{
		Player:     lib.Image("player"),
		Meteorite:  lib.Image("meteorite"),
		Projectile: lib.Image("projectile"),
		Background: lib.Image("background"),
		Engine:     lib.Animation("engine"),
		Tail:       lib.Animation("tail"),
		Explosion:  lib.Animation("explosion"),
	}
}
