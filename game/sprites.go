package game

import (
	"bytes"
	_ "embed"
	"image"
	"image/png"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"

	"museumguard/logger"
)

//go:embed assets/art.svg
var artSVGData []byte

const artSpriteSize = 20

// loadArtSprite rasterises the embedded painting icon
func loadArtSprite() (*ebiten.Image, error) {
	img, err := svgToImage(artSVGData, artSpriteSize, artSpriteSize)
	if err != nil {
		return nil, err
	}

	if os.Getenv("DEBUG_SPRITES") == "1" {
		saveDebugPNG(img, "debug_art.png")
	}

	return ebiten.NewImageFromImage(img), nil
}

// svgToImage converts SVG data to an RGBA image of the given size
func svgToImage(svgData []byte, width, height int) (image.Image, error) {
	icon, err := oksvg.ReadIconStream(bytes.NewReader(svgData))
	if err != nil {
		return nil, err
	}

	icon.SetTarget(0, 0, float64(width), float64(height))

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	scanner := rasterx.NewScannerGV(width, height, img, img.Bounds())
	raster := rasterx.NewDasher(width, height, scanner)
	icon.Draw(raster, 1.0)

	return img, nil
}

// saveDebugPNG saves a PNG image for debugging purposes
func saveDebugPNG(img image.Image, filename string) {
	f, err := os.Create(filename)
	if err != nil {
		logger.Log.WithError(err).Warn("Failed to create debug PNG.")
		return
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		logger.Log.WithError(err).Warn("Failed to encode debug PNG.")
	}
}
