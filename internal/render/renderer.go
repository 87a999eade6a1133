package render

import (
	"fmt"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"github.com/tilefall/tilefall/internal/game"
)

// borderWidth is the pixel gap between the window edge and the board.
const borderWidth = 24

// hudHeight is the strip below the board reserved for status text.
const hudHeight = 40

var (
	backgroundCol = color.RGBA{R: 10, G: 10, B: 16, A: 255}
	frameCol      = color.RGBA{R: 70, G: 80, B: 110, A: 255}
	frameGlowCol  = color.RGBA{R: 45, G: 50, B: 75, A: 100}

	tileCol      = color.RGBA{R: 38, G: 44, B: 66, A: 255}
	tilePowerCol = color.RGBA{R: 60, G: 52, B: 30, A: 255}
	tileEdgeCol  = color.RGBA{R: 58, G: 66, B: 96, A: 255}

	photonCol      = color.RGBA{R: 140, G: 200, B: 255, A: 255}
	photonPowerCol = color.RGBA{R: 255, G: 220, B: 120, A: 255}

	bannerCol = color.RGBA{R: 220, G: 225, B: 240, A: 255}
)

// roleColors maps each ShipRole to its hull colour.
var roleColors = map[game.ShipRole]color.RGBA{
	game.RoleChain:   {R: 80, G: 200, B: 120, A: 255},
	game.RoleWaiting: {R: 90, G: 150, B: 240, A: 255},
	game.RoleEnemy:   {R: 220, G: 80, B: 70, A: 255},
}

// Renderer draws one Snapshot per frame. The board is rendered into an
// offscreen buffer at (0,0) origin and blitted at the border offset, so all
// board drawing works in world coordinates.
type Renderer struct {
	screenW int
	screenH int
	boardW  int // board pixel width
	boardH  int

	worldBuf *ebiten.Image
}

// New sizes the renderer for a cols x rows board. The window dimensions
// follow from the board, the border, and the HUD strip.
func New(cols, rows int, tileSize, tileSpace float64) *Renderer {
	pitch := tileSize + tileSpace
	bw := int(float64(cols)*pitch - tileSpace)
	bh := int(float64(rows)*pitch - tileSpace)
	return &Renderer{
		screenW:  borderWidth + bw + borderWidth,
		screenH:  borderWidth + bh + borderWidth + hudHeight,
		boardW:   bw,
		boardH:   bh,
		worldBuf: ebiten.NewImage(bw, bh),
	}
}

// ScreenSize returns the window dimensions the renderer was sized for.
func (r *Renderer) ScreenSize() (int, int) { return r.screenW, r.screenH }

// Draw renders the snapshot. A non-empty banner is centred over the board,
// used for the ready and game-over screens.
func (r *Renderer) Draw(screen *ebiten.Image, snap *game.Snapshot, banner string) {
	screen.Fill(backgroundCol)

	r.worldBuf.Clear()
	r.drawTiles(snap)
	r.drawPhotons(snap)
	r.drawShips(snap)

	var blit ebiten.DrawImageOptions
	blit.GeoM.Translate(borderWidth, borderWidth)
	screen.DrawImage(r.worldBuf, &blit)

	ox := float32(borderWidth)
	oy := float32(borderWidth)
	bw := float32(r.boardW)
	bh := float32(r.boardH)
	vector.StrokeRect(screen, ox-2, oy-2, bw+4, bh+4, 2.0, frameCol, false)
	vector.StrokeRect(screen, ox-4, oy-4, bw+8, bh+8, 1.0, frameGlowCol, false)

	r.drawHUD(screen, snap)
	if banner != "" {
		r.drawBanner(screen, banner)
	}
}

func (r *Renderer) drawTiles(snap *game.Snapshot) {
	half := float32(snap.TileSize+snap.TileSpace) / 2
	size := float32(snap.TileSize)
	for i := range snap.Tiles {
		t := &snap.Tiles[i]
		col := tileCol
		if t.Power {
			col = tilePowerCol
		}
		x := float32(t.ScreenX) - half
		y := float32(t.ScreenY) - half
		if t.Falling {
			// Shrink toward the cell centre and fade as the tile falls away.
			shrink := float32(t.FallRatio) * size / 2
			fade := 1 - t.FallRatio
			col.R = uint8(float64(col.R) * fade)
			col.G = uint8(float64(col.G) * fade)
			col.B = uint8(float64(col.B) * fade)
			vector.FillRect(r.worldBuf, x+shrink, y+shrink, size-2*shrink, size-2*shrink, col, false)
			continue
		}
		vector.FillRect(r.worldBuf, x, y, size, size, col, false)
		vector.StrokeRect(r.worldBuf, x, y, size, size, 1.0, tileEdgeCol, false)
	}
}

func (r *Renderer) drawPhotons(snap *game.Snapshot) {
	for i := range snap.Photons {
		p := &snap.Photons[i]
		col := photonCol
		dot := float32(4)
		if p.Power {
			col = photonPowerCol
			dot = 6
		}
		col.A = uint8(80 + 175*p.LifeRatio)
		vector.FillRect(r.worldBuf, float32(p.X)-dot/2, float32(p.Y)-dot/2, dot, dot, col, false)
	}
}

func (r *Renderer) drawShips(snap *game.Snapshot) {
	for i := range snap.Ships {
		s := &snap.Ships[i]
		col := roleColors[s.Role]
		size := float32(s.Size)
		if s.FallRatio > 0 {
			// Falling ships shrink and darken with the same treatment as
			// falling tiles.
			fade := 1 - s.FallRatio
			col.R = uint8(float64(col.R) * fade)
			col.G = uint8(float64(col.G) * fade)
			col.B = uint8(float64(col.B) * fade)
			size *= float32(fade)
		}
		x := float32(s.X)
		y := float32(s.Y)
		vector.FillRect(r.worldBuf, x-size/2, y-size/2, size, size, col, false)

		// Nose line shows facing. Left is 0 degrees, up is 90, screen y
		// grows downward.
		rad := s.Angle * math.Pi / 180
		nx := x + float32(-math.Cos(rad))*size*0.7
		ny := y + float32(-math.Sin(rad))*size*0.7
		vector.StrokeLine(r.worldBuf, x, y, nx, ny, 2.0, color.RGBA{R: 240, G: 240, B: 245, A: 220}, false)

		if s.Chained {
			vector.StrokeRect(r.worldBuf, x-size/2-3, y-size/2-3, size+6, size+6,
				1.0, color.RGBA{R: 200, G: 255, B: 210, A: 150}, false)
		}
	}
}

func (r *Renderer) drawHUD(screen *ebiten.Image, snap *game.Snapshot) {
	y := borderWidth + r.boardH + borderWidth/2
	lines := []string{
		fmt.Sprintf("COINS %d   CHAIN %d   T=%d", snap.Coins, snap.ChainLen, snap.Ticks),
		"arrows/WASD move  space fire  enter start  R reset  esc quit",
	}
	for i, line := range lines {
		ebitenutil.DebugPrintAt(screen, line, borderWidth, y+i*14)
	}
}

func (r *Renderer) drawBanner(screen *ebiten.Image, banner string) {
	face := basicfont.Face7x13
	w := len(banner) * face.Advance
	x := (r.screenW - w) / 2
	y := borderWidth + r.boardH/2

	// Dark backing panel so the text reads over the board.
	vector.FillRect(screen, float32(x)-12, float32(y)-18, float32(w)+24, 30,
		color.RGBA{R: 8, G: 8, B: 14, A: 220}, false)
	vector.StrokeRect(screen, float32(x)-12, float32(y)-18, float32(w)+24, 30,
		1.0, frameCol, false)
	text.Draw(screen, banner, face, x, y, bannerCol)
}
