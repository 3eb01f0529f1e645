package main

import (
	"fmt"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"
	"golang.org/x/image/colornames"
	"golang.org/x/image/font/basicfont"

	"github.com/milk9111/touchplatformer/gesture"
	"github.com/milk9111/touchplatformer/system"
)

const hudLineHeight = 16

// compass colour per touch phase
var phaseColors = map[gesture.Phase]color.Color{
	gesture.Started:    colornames.Green,
	gesture.Stationary: colornames.Red,
	gesture.Moved:      colornames.Orange,
	gesture.Ended:      colornames.Blue,
	gesture.Cancelled:  colornames.Black,
}

type renderer struct {
	face  ebtext.Face
	white *ebiten.Image

	sprite     *ebiten.Image
	spriteSize [2]int
}

func newRenderer() *renderer {
	white := ebiten.NewImage(3, 3)
	white.Fill(color.White)
	return &renderer{
		face:  ebtext.NewGoXFace(basicfont.Face7x13),
		white: white,
	}
}

func (d *renderer) Draw(screen *ebiten.Image, state system.State) {
	switch s := state.(type) {
	case *system.Ready:
		d.drawWorld(screen, s)
		d.drawCompass(screen, s)
		d.drawHUD(screen, system.StatusLine(s), s.Feedback)
	case *system.Failed:
		screen.Fill(colornames.Black)
		d.drawHUD(screen, system.StatusLine(s), gesture.Feedback{})
	}
}

func (d *renderer) drawWorld(screen *ebiten.Image, r *system.Ready) {
	pal := r.Specs.World.Palette
	screen.Fill(pal.Background.Or(colornames.Black))

	grid := r.World.Grid()
	tileColor := pal.Tile.Or(colornames.Royalblue)
	for row := 0; row < grid.Rows(); row++ {
		for col := 0; col < grid.Cols(); col++ {
			if grid.Solid(col, row) {
				fillBB(screen, grid.CellBB(col, row), tileColor)
			}
		}
	}

	fillBB(screen, r.World.SolidBB(r.Platform.Solid), pal.Platform.Or(colornames.Peru))

	bb := r.World.ActorBB(r.Player.Actor)
	sprite := d.playerSprite(bb, pal.Player.Or(colornames.Khaki))
	sw, sh := sprite.Bounds().Dx(), sprite.Bounds().Dy()
	sx := (bb.R - bb.L) / float64(sw)
	sy := (bb.T - bb.B) / float64(sh)

	op := &ebiten.DrawImageOptions{}
	if r.Player.FacingLeft() {
		op.GeoM.Scale(-sx, sy)
		op.GeoM.Translate(bb.L+float64(sw)*sx, bb.B)
	} else {
		op.GeoM.Scale(sx, sy)
		op.GeoM.Translate(bb.L, bb.B)
	}
	screen.DrawImage(sprite, op)
}

// playerSprite returns a right-facing body with an eye on the leading side.
func (d *renderer) playerSprite(bb cp.BB, body color.Color) *ebiten.Image {
	w := max(1, int(math.Ceil(bb.R-bb.L)))
	h := max(1, int(math.Ceil(bb.T-bb.B)))
	if d.sprite != nil && d.spriteSize == [2]int{w, h} {
		return d.sprite
	}
	img := ebiten.NewImage(w, h)
	img.Fill(body)
	eye := float32(max(1, w/4))
	vector.FillRect(img, float32(w)-2*eye, float32(h)/4, eye, eye, colornames.Black, false)
	d.sprite, d.spriteSize = img, [2]int{w, h}
	return img
}

func (d *renderer) drawCompass(screen *ebiten.Image, r *system.Ready) {
	c, ok := gesture.NewCompass(r.Feedback)
	if !ok {
		return
	}
	clr, ok := phaseColors[r.Feedback.Phase]
	if !ok {
		return
	}
	pal := r.Specs.World.Palette

	strokeLine(screen, c.Start, c.Current, clr)
	for _, end := range c.Spokes {
		strokeLine(screen, c.Start, end, clr)
	}

	sector := pal.Sector.Or(colornames.Lightskyblue)
	alt := pal.SectorAlt.Or(colornames.Magenta)
	for _, tri := range c.Fan {
		fill := sector
		if tri.Alt {
			fill = alt
		}
		d.fillTriangle(screen, tri, fill)
	}

	vector.StrokeCircle(screen, float32(c.Start.X), float32(c.Start.Y), float32(c.Size), 2, clr, true)
	vector.FillCircle(screen, float32(c.Current.X), float32(c.Current.Y), float32(c.Size), clr, true)
}

func strokeLine(dst *ebiten.Image, from, to cp.Vector, clr color.Color) {
	vector.StrokeLine(dst, float32(from.X), float32(from.Y), float32(to.X), float32(to.Y), 2, clr, true)
}

func (d *renderer) fillTriangle(dst *ebiten.Image, tri gesture.Triangle, clr color.Color) {
	r, g, b, a := clr.RGBA()
	vs := make([]ebiten.Vertex, 0, 3)
	for _, p := range [...]cp.Vector{tri.A, tri.B, tri.C} {
		vs = append(vs, ebiten.Vertex{
			DstX:   float32(p.X),
			DstY:   float32(p.Y),
			SrcX:   1,
			SrcY:   1,
			ColorR: float32(r) / 0xffff,
			ColorG: float32(g) / 0xffff,
			ColorB: float32(b) / 0xffff,
			ColorA: float32(a) / 0xffff,
		})
	}
	dst.DrawTriangles(vs, []uint16{0, 1, 2}, d.white, nil)
}

func (d *renderer) drawHUD(screen *ebiten.Image, status string, fb gesture.Feedback) {
	size := screen.Bounds().Size()
	lines := []string{
		status,
		fmt.Sprintf("FPS: %.2f", ebiten.ActualFPS()),
		fmt.Sprintf("SCREEN: %dx%d", size.X, size.Y),
	}
	if fb.Touching {
		lines = append(lines, fmt.Sprintf("ANGLE: %.2f", fb.Angle))
	}

	for i, line := range lines {
		op := &ebtext.DrawOptions{}
		op.GeoM.Translate(4, 4+float64(i*hudLineHeight))
		op.ColorScale.ScaleWithColor(colornames.White)
		ebtext.Draw(screen, line, d.face, op)
	}
}

func fillBB(dst *ebiten.Image, bb cp.BB, clr color.Color) {
	vector.FillRect(dst, float32(bb.L), float32(bb.B), float32(bb.R-bb.L), float32(bb.T-bb.B), clr, false)
}
