// pkg/render/engo/assets.go
package engo

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/EngoEngine/engo/common"
)

// AssetManager builds and holds the procedural sprites used by the
// flight scene. Everything is generated at startup, there are no image
// files to ship.
type AssetManager struct {
	// Chase-view jet silhouette
	jetSprite common.Drawable

	// Afterburner flame overlay
	flameSprite common.Drawable

	// Star sprites by parallax layer, nearest layer last
	starSprites map[int]common.Drawable
}

// NewAssetManager creates a new asset manager
func NewAssetManager() *AssetManager {
	return &AssetManager{
		starSprites: make(map[int]common.Drawable),
	}
}

// LoadAssets builds all sprites. Requires the engo render context.
func (am *AssetManager) LoadAssets() error {
	if err := am.loadJetSprite(); err != nil {
		return err
	}

	if err := am.loadFlameSprite(); err != nil {
		return err
	}

	if err := am.loadStarSprites(); err != nil {
		return err
	}

	return nil
}

// loadJetSprite creates the delta silhouette drawn at screen center
func (am *AssetManager) loadJetSprite() error {
	am.jetSprite = am.createSprite(16, 16, [][]int{
		{0, 0, 0, 0, 0, 0, 0, 1, 1, 0, 0, 0, 0, 0, 0, 0},
		{0, 0, 0, 0, 0, 0, 0, 1, 1, 0, 0, 0, 0, 0, 0, 0},
		{0, 0, 0, 0, 0, 0, 1, 1, 1, 1, 0, 0, 0, 0, 0, 0},
		{0, 0, 0, 0, 0, 0, 1, 1, 1, 1, 0, 0, 0, 0, 0, 0},
		{0, 0, 0, 0, 0, 1, 1, 1, 1, 1, 1, 0, 0, 0, 0, 0},
		{0, 0, 0, 0, 0, 1, 1, 1, 1, 1, 1, 0, 0, 0, 0, 0},
		{0, 0, 0, 0, 1, 1, 1, 1, 1, 1, 1, 1, 0, 0, 0, 0},
		{0, 0, 0, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 0, 0, 0},
		{0, 0, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 0, 0},
		{0, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 0},
		{1, 1, 1, 1, 0, 1, 1, 1, 1, 1, 1, 0, 1, 1, 1, 1},
		{1, 1, 0, 0, 0, 1, 1, 1, 1, 1, 1, 0, 0, 0, 1, 1},
		{0, 0, 0, 0, 0, 1, 1, 1, 1, 1, 1, 0, 0, 0, 0, 0},
		{0, 0, 0, 0, 0, 0, 1, 1, 1, 1, 0, 0, 0, 0, 0, 0},
		{0, 0, 0, 0, 1, 1, 1, 0, 0, 1, 1, 1, 0, 0, 0, 0},
		{0, 0, 0, 0, 1, 1, 0, 0, 0, 0, 1, 1, 0, 0, 0, 0},
	})

	return nil
}

// loadFlameSprite creates the exhaust flame shown behind the jet while
// the afterburner is lit
func (am *AssetManager) loadFlameSprite() error {
	am.flameSprite = am.createSprite(6, 8, [][]int{
		{0, 0, 1, 1, 0, 0},
		{0, 1, 1, 1, 1, 0},
		{0, 1, 1, 1, 1, 0},
		{1, 1, 1, 1, 1, 1},
		{0, 1, 1, 1, 1, 0},
		{0, 1, 1, 1, 1, 0},
		{0, 0, 1, 1, 0, 0},
		{0, 0, 1, 1, 0, 0},
	})

	return nil
}

// loadStarSprites creates one star sprite per parallax layer, growing
// with proximity
func (am *AssetManager) loadStarSprites() error {
	// Far layer: faint dot
	am.starSprites[0] = am.createSprite(2, 2, [][]int{
		{1, 0},
		{0, 0},
	})

	// Middle layer: small square
	am.starSprites[1] = am.createSprite(2, 2, [][]int{
		{1, 1},
		{1, 1},
	})

	// Near layer: plus shape
	am.starSprites[2] = am.createSprite(3, 3, [][]int{
		{0, 1, 0},
		{1, 1, 1},
		{0, 1, 0},
	})

	return nil
}

// createSprite creates a sprite from a 2D pattern
func (am *AssetManager) createSprite(width, height int, pattern [][]int) common.Drawable {
	// Create base RGBA image
	img := am.createBaseImage(width, height)

	// Draw pattern onto the image
	am.drawPatternOnImage(img, pattern, width, height)

	// Convert to Engo-compatible texture
	return am.convertToEngoTexture(img)
}

// createBaseImage creates a transparent RGBA image with the specified dimensions.
func (am *AssetManager) createBaseImage(width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), &image.Uniform{color.RGBA{0, 0, 0, 0}}, image.Point{}, draw.Src)
	return img
}

// drawPatternOnImage draws a 2D pixel pattern onto the provided RGBA image.
func (am *AssetManager) drawPatternOnImage(img *image.RGBA, pattern [][]int, width, height int) {
	for y, row := range pattern {
		if y >= height {
			break
		}
		for x, pixel := range row {
			if x >= width {
				break
			}
			if pixel == 1 {
				img.Set(x, y, color.RGBA{255, 255, 255, 255})
			}
		}
	}
}

// convertToEngoTexture converts an RGBA image to an Engo-compatible texture.
func (am *AssetManager) convertToEngoTexture(img *image.RGBA) common.Drawable {
	bounds := img.Bounds()
	nrgbaImg := image.NewNRGBA(bounds)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			nrgbaImg.Set(x, y, img.At(x, y))
		}
	}

	texture := common.NewImageObject(nrgbaImg)
	return common.NewTextureSingle(texture)
}

// GetJetSprite returns the jet silhouette sprite
func (am *AssetManager) GetJetSprite() common.Drawable {
	return am.jetSprite
}

// GetFlameSprite returns the afterburner flame sprite
func (am *AssetManager) GetFlameSprite() common.Drawable {
	return am.flameSprite
}

// GetStarSprite returns the star sprite for a parallax layer
func (am *AssetManager) GetStarSprite(layer int) common.Drawable {
	if sprite, exists := am.starSprites[layer]; exists {
		return sprite
	}
	return am.starSprites[0] // Far layer fallback
}
