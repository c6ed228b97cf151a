package overlay

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/Carmen-Shannon/oxy-draw/common"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// rasterize draws lines top to bottom onto a width x height panel filled
// with background. Lines that do not fit are dropped.
func rasterize(lines []string, width, height, padding int, fg, background color.RGBA) common.TextureStagingData {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.NewUniform(background), image.Point{}, draw.Src)

	face := basicfont.Face7x13
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(fg),
		Face: face,
	}
	lineHeight := face.Metrics().Height.Ceil()
	ascent := face.Metrics().Ascent.Ceil()
	for i, line := range lines {
		top := padding + i*lineHeight
		if top+lineHeight > height-padding {
			break
		}
		d.Dot = fixed.P(padding, top+ascent)
		d.DrawString(line)
	}

	return common.TextureStagingData{
		Pixels: img.Pix,
		Width:  uint32(width),
		Height: uint32(height),
	}
}
