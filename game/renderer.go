package game

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"museumguard/gallery"
)

const (
	artRadius       = 15.0
	handleRadius    = 8.0
	arrowHeadSize   = 6.0
	arrowHeadSpread = 0.4
	wallWidth       = 4.0
	hudLineHeight   = 16.0
)

// guardPalette colours guards by index
type guardPalette struct {
	main, light, dark color.RGBA
}

var guardPalettes = []guardPalette{
	{main: color.RGBA{0x3b, 0x82, 0xf6, 0xff}, light: color.RGBA{0x60, 0xa5, 0xfa, 0xff}, dark: color.RGBA{0x1e, 0x40, 0xaf, 0xff}}, // blue
	{main: color.RGBA{0x10, 0xb9, 0x81, 0xff}, light: color.RGBA{0x34, 0xd3, 0x99, 0xff}, dark: color.RGBA{0x05, 0x96, 0x69, 0xff}}, // green
	{main: color.RGBA{0xf5, 0x9e, 0x0b, 0xff}, light: color.RGBA{0xfb, 0xbf, 0x24, 0xff}, dark: color.RGBA{0xd9, 0x77, 0x06, 0xff}}, // amber
}

var (
	colorFloor       = color.RGBA{0xf3, 0xf4, 0xf6, 0xff}
	colorWall        = color.RGBA{0x1f, 0x29, 0x37, 0xff}
	colorArt         = color.RGBA{0xef, 0x44, 0x44, 0xff}
	colorArtWatched  = color.RGBA{0x10, 0xb9, 0x81, 0xff}
	colorArtBorderOK = color.RGBA{0x05, 0x96, 0x69, 0xff}
	colorText        = color.RGBA{0x11, 0x18, 0x27, 0xff}
	colorComplete    = color.RGBA{0x05, 0x96, 0x69, 0xff}
	colorSampleOn    = color.NRGBA{R: 0x10, G: 0xb9, B: 0x81, A: 0xc0}
	colorSampleOff   = color.NRGBA{R: 0xef, G: 0x44, B: 0x44, A: 0xc0}
)

// Renderer paints a gallery frame. It never touches game state.
type Renderer struct {
	whiteImage    *ebiten.Image
	whiteSubImage *ebiten.Image
	face          *text.GoXFace
	artSprite     *ebiten.Image
	vertices      []ebiten.Vertex
	indices       []uint16
}

// NewRenderer creates a new renderer
func NewRenderer(artSprite *ebiten.Image) *Renderer {
	white := ebiten.NewImage(3, 3)
	white.Fill(color.White)
	return &Renderer{
		whiteImage:    white,
		whiteSubImage: white.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image),
		face:          text.NewGoXFace(basicfont.Face7x13),
		artSprite:     artSprite,
	}
}

// Render draws the whole frame
func (r *Renderer) Render(screen *ebiten.Image, f gallery.Frame, debug *DebugState) {
	screen.Fill(colorFloor)

	r.drawWalls(screen, f)

	for i, g := range f.Guards {
		p := guardPalettes[i%len(guardPalettes)]
		r.drawVisibility(screen, g.Visibility, p.main)
	}

	if debug != nil && debug.ShowSamples {
		r.drawSamples(screen, f)
	}

	r.drawArt(screen, f)

	for i, g := range f.Guards {
		r.drawGuard(screen, g, float32(f.GuardRadius), guardPalettes[i%len(guardPalettes)])
	}

	r.drawHUD(screen, f)
}

func (r *Renderer) drawWalls(screen *ebiten.Image, f gallery.Frame) {
	for i := 0; i < len(f.Room)-1; i++ {
		a, b := f.Room[i], f.Room[i+1]
		vector.StrokeLine(screen, float32(a.X), float32(a.Y), float32(b.X), float32(b.Y), wallWidth, colorWall, true)
	}
	for _, w := range f.InteriorWalls {
		vector.StrokeLine(screen, float32(w.A.X), float32(w.A.Y), float32(w.B.X), float32(w.B.Y), wallWidth, colorWall, true)
	}
}

// drawVisibility fills the polygon at 15% opacity and outlines it at 40%
func (r *Renderer) drawVisibility(screen *ebiten.Image, poly []gallery.Point, c color.RGBA) {
	if len(poly) < 3 {
		return
	}

	var path vector.Path
	path.MoveTo(float32(poly[0].X), float32(poly[0].Y))
	for _, p := range poly[1:] {
		path.LineTo(float32(p.X), float32(p.Y))
	}
	path.Close()

	r.vertices, r.indices = path.AppendVerticesAndIndicesForFilling(r.vertices[:0], r.indices[:0])
	for i := range r.vertices {
		r.vertices[i].SrcX = 1
		r.vertices[i].SrcY = 1
		r.vertices[i].ColorR = float32(c.R) / 0xff
		r.vertices[i].ColorG = float32(c.G) / 0xff
		r.vertices[i].ColorB = float32(c.B) / 0xff
		r.vertices[i].ColorA = 0x26 / float32(0xff)
	}
	screen.DrawTriangles(r.vertices, r.indices, r.whiteSubImage, &ebiten.DrawTrianglesOptions{AntiAlias: true})

	border := color.NRGBA{R: c.R, G: c.G, B: c.B, A: 0x66}
	for i := 0; i < len(poly)-1; i++ {
		a, b := poly[i], poly[i+1]
		vector.StrokeLine(screen, float32(a.X), float32(a.Y), float32(b.X), float32(b.Y), 1, border, true)
	}
}

func (r *Renderer) drawSamples(screen *ebiten.Image, f gallery.Frame) {
	for i, p := range f.Samples {
		clr := colorSampleOff
		if i < len(f.Coverage.Visible) && f.Coverage.Visible[i] {
			clr = colorSampleOn
		}
		vector.DrawFilledCircle(screen, float32(p.X), float32(p.Y), 2, clr, true)
	}
}

// drawArt turns the piece green once any guard watches it or the level is complete
func (r *Renderer) drawArt(screen *ebiten.Image, f gallery.Frame) {
	fill, border := colorArt, color.RGBA{0, 0, 0, 255}
	if f.Coverage.ArtIsWatched || f.Coverage.IsComplete {
		fill, border = colorArtWatched, colorArtBorderOK
	}
	x, y := float32(f.Art.X), float32(f.Art.Y)
	vector.DrawFilledCircle(screen, x, y, artRadius, fill, true)
	vector.StrokeCircle(screen, x, y, artRadius, 2, border, true)

	if r.artSprite != nil {
		b := r.artSprite.Bounds()
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Translate(f.Art.X-float64(b.Dx())/2, f.Art.Y-float64(b.Dy())/2)
		screen.DrawImage(r.artSprite, op)
	}
}

func (r *Renderer) drawGuard(screen *ebiten.Image, g gallery.GuardView, radius float32, p guardPalette) {
	x, y := float32(g.Pos.X), float32(g.Pos.Y)
	hx, hy := float32(g.Arrow.X), float32(g.Arrow.Y)

	body := p.main
	if g.BodyDragged {
		body = p.light
	}
	bodyStroke := float32(2)
	if g.BodyHovered {
		bodyStroke = 3
	}
	vector.DrawFilledCircle(screen, x, y, radius, body, true)
	vector.StrokeCircle(screen, x, y, radius, bodyStroke, p.dark, true)

	handle := p.main
	handleStroke := float32(2)
	if g.ArrowDragged || g.ArrowHovered {
		handle = p.light
		handleStroke = 3
	}
	vector.DrawFilledCircle(screen, hx, hy, handleRadius, handle, true)
	vector.StrokeCircle(screen, hx, hy, handleRadius, handleStroke, p.dark, true)

	vector.StrokeLine(screen, x, y, hx, hy, 3, p.dark, true)

	for _, spread := range []float64{-arrowHeadSpread, arrowHeadSpread} {
		ex := g.Arrow.X + arrowHeadSize*math.Cos(g.Angle+spread)
		ey := g.Arrow.Y + arrowHeadSize*math.Sin(g.Angle+spread)
		vector.StrokeLine(screen, hx, hy, float32(ex), float32(ey), 2, p.dark, true)
	}

	r.drawText(screen, g.Label, g.Pos.X, g.Pos.Y-6, color.White, text.AlignCenter)
}

func (r *Renderer) drawHUD(screen *ebiten.Image, f gallery.Frame) {
	c := f.Coverage
	lines := []string{
		fmt.Sprintf("Level %d/%d: %s (%s)", f.LevelIndex+1, f.LevelCount, f.LevelName, f.Difficulty),
		f.Description,
		fmt.Sprintf("Coverage %.1f%% / %.0f%%   Guards %d/%d (par %d)   Score %d",
			c.Percent*100, f.Threshold*100, len(f.Guards), f.MaxGuards, f.RequiredGuards, c.Score),
		fmt.Sprintf("Art watched by %d guard(s)   Completed levels: %s", c.GuardsWatchingArt, formatLevels(f.Completed)),
	}
	for i, line := range lines {
		r.drawText(screen, line, 10, 8+float64(i)*hudLineHeight, colorText, text.AlignStart)
	}

	if c.IsComplete {
		r.drawText(screen, "GALLERY SECURED", float64(screen.Bounds().Dx())/2, 76, colorComplete, text.AlignCenter)
	}

	help := "drag body: move   drag handle: rotate   +/-: guards   R: reset   N/P: level   F3: samples"
	r.drawText(screen, help, 10, float64(screen.Bounds().Dy())-20, colorText, text.AlignStart)
}

func (r *Renderer) drawText(screen *ebiten.Image, s string, x, y float64, clr color.Color, align text.Align) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	op.PrimaryAlign = align
	text.Draw(screen, s, r.face, op)
}

func formatLevels(levels []int) string {
	if len(levels) == 0 {
		return "none"
	}
	parts := make([]string, len(levels))
	for i, l := range levels {
		parts[i] = fmt.Sprint(l + 1)
	}
	return strings.Join(parts, ", ")
}
