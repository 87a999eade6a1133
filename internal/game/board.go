package game

import (
	"github.com/rs/zerolog"
)

// tileState is the per-cell record. Cells are addressed by (x, y) tile
// indices; nothing outside the board reads these directly.
type tileState struct {
	power      bool    // fires 8-way volleys when shot from
	goal       bool    // BFS target for the current planning pass
	visited    bool    // BFS bookkeeping for the current planning pass
	falling    bool    // tile has been destroyed and is animating away
	fallAmount float64 // how far the tile has fallen
}

// Board is the 2D grid of destructible tiles.
//
// The board is a passive model: it never touches ships or photons. All
// cross-entity interaction goes through the controllers, keyed by tile
// indices and screen coordinates.
type Board struct {
	width  int
	height int

	tileSize  float64
	tileSpace float64

	fallMin  float64 // fall distance at which a tile counts as destroyed
	fallMax  float64 // fall distance at which a tile stops animating
	fallRate float64 // fall distance added per tick

	powerInterval int

	tiles []tileState // column-major: index = x*height + y

	log zerolog.Logger
}

// NewBoard creates a board from validated config. The diagnostic logger
// receives out-of-bounds mark writes (a caller logic error, non-fatal).
func NewBoard(cfg BoardConfig, log zerolog.Logger) *Board {
	b := &Board{
		width:         cfg.Width,
		height:        cfg.Height,
		tileSize:      cfg.TileSize,
		tileSpace:     cfg.TileSpace,
		fallMin:       cfg.FallMin,
		fallMax:       cfg.FallMax,
		fallRate:      cfg.FallRate,
		powerInterval: cfg.PowerInterval,
		tiles:         make([]tileState, cfg.Width*cfg.Height),
		log:           log,
	}
	b.Reset()
	return b
}

// Reset restores every tile: power pattern recomputed, marks cleared, all
// falling state discarded.
func (b *Board) Reset() {
	for x := 0; x < b.width; x++ {
		for y := 0; y < b.height; y++ {
			t := &b.tiles[x*b.height+y]
			t.power = x%b.powerInterval == 0 || y%b.powerInterval == 0
			t.goal = false
			t.visited = false
			t.falling = false
			t.fallAmount = 0
		}
	}
}

// Width returns the number of tiles across the board.
func (b *Board) Width() int { return b.width }

// Height returns the number of tiles down the board.
func (b *Board) Height() int { return b.height }

// TileSize returns the drawable size of one tile.
func (b *Board) TileSize() float64 { return b.tileSize }

// TileSpacing returns the gap between adjacent tiles.
func (b *Board) TileSpacing() float64 { return b.tileSpace }

// pitch is the center-to-center distance between adjacent tiles.
func (b *Board) pitch() float64 { return b.tileSize + b.tileSpace }

// ScreenToBoard converts a screen coordinate to a tile index. The board is
// symmetric, so the same conversion serves both axes.
func (b *Board) ScreenToBoard(f float64) int {
	return int(f / b.pitch())
}

// BoardToScreen converts a tile index to the screen coordinate of the tile
// center.
func (b *Board) BoardToScreen(n int) float64 {
	return (float64(n) + 0.5) * b.pitch()
}

// CenterOffset returns the signed screen distance from f to the nearest tile
// center. Drift correction uses this to ease stopped ships back onto the
// grid.
func (b *Board) CenterOffset(f float64) float64 {
	cell := b.ScreenToBoard(f)
	return f - (float64(cell)+0.5)*b.pitch()
}

// InBounds reports whether (x, y) is a valid tile index. Destroyed tiles are
// still valid.
func (b *Board) InBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < b.width && y < b.height
}

// IsSafeAt reports whether the cell exists and has not started falling.
func (b *Board) IsSafeAt(x, y int) bool {
	return b.InBounds(x, y) && !b.tiles[x*b.height+y].falling
}

// IsSafeAtScreen reports whether a screen position lies over a live tile.
func (b *Board) IsSafeAtScreen(x, y float64) bool {
	if x < 0 || y < 0 {
		return false
	}
	if x >= float64(b.width)*b.pitch()-b.tileSpace || y >= float64(b.height)*b.pitch()-b.tileSpace {
		return false
	}
	return !b.tiles[b.ScreenToBoard(x)*b.height+b.ScreenToBoard(y)].falling
}

// DestroyTileAt starts the tile falling. The tile is not destroyed until its
// fall passes the fatal threshold, which gives ships standing on it a moment
// to escape. Out of bounds is a no-op.
func (b *Board) DestroyTileAt(x, y int) {
	if !b.InBounds(x, y) {
		return
	}
	b.tiles[x*b.height+y].falling = true
}

// IsDestroyedAt reports whether the tile has fallen past the fatal
// threshold. Positions off the board count as destroyed.
func (b *Board) IsDestroyedAt(x, y int) bool {
	if !b.InBounds(x, y) {
		return true
	}
	return b.tiles[x*b.height+y].fallAmount >= b.fallMin
}

// IsFallingAt reports whether the tile is animating its fall.
func (b *Board) IsFallingAt(x, y int) bool {
	if !b.InBounds(x, y) {
		return false
	}
	return b.tiles[x*b.height+y].falling
}

// FallRatio returns the tile's fall progress in [0, 1] for rendering.
func (b *Board) FallRatio(x, y int) float64 {
	if !b.InBounds(x, y) || b.fallMax == 0 {
		return 0
	}
	r := b.tiles[x*b.height+y].fallAmount / b.fallMax
	if r > 1 {
		r = 1
	}
	return r
}

// IsPowerTileAt reports whether the tile boosts weapon fire.
func (b *Board) IsPowerTileAt(x, y int) bool {
	if !b.InBounds(x, y) {
		return false
	}
	return b.tiles[x*b.height+y].power
}

// IsPowerTileAtScreen reports whether the tile under a screen position
// boosts weapon fire.
func (b *Board) IsPowerTileAtScreen(x, y float64) bool {
	return b.IsPowerTileAt(b.ScreenToBoard(x), b.ScreenToBoard(y))
}

// IsVisited reports whether the tile was marked during the current planning
// pass. Off-board positions always report false.
func (b *Board) IsVisited(x, y int) bool {
	if !b.InBounds(x, y) {
		return false
	}
	return b.tiles[x*b.height+y].visited
}

// SetVisited marks a tile for the current planning pass. Marking an
// off-board tile is a caller logic error: it is reported and dropped, never
// fatal. Note the asymmetry with IsVisited, which is silently false off
// board.
func (b *Board) SetVisited(x, y int) {
	if !b.InBounds(x, y) {
		b.log.Error().Int("x", x).Int("y", y).Msg("visited mark outside board")
		return
	}
	b.tiles[x*b.height+y].visited = true
}

// IsGoal reports whether the tile is a goal for the current planning pass.
func (b *Board) IsGoal(x, y int) bool {
	if !b.InBounds(x, y) {
		return false
	}
	return b.tiles[x*b.height+y].goal
}

// SetGoal marks a tile as a pathfinding goal. Same out-of-bounds contract as
// SetVisited.
func (b *Board) SetGoal(x, y int) {
	if !b.InBounds(x, y) {
		b.log.Error().Int("x", x).Int("y", y).Msg("goal mark outside board")
		return
	}
	b.tiles[x*b.height+y].goal = true
}

// ClearMarks resets visited and goal on every tile. Called once before each
// planning pass.
func (b *Board) ClearMarks() {
	for i := range b.tiles {
		b.tiles[i].visited = false
		b.tiles[i].goal = false
	}
}

// Update advances the fall animation of destroyed tiles. Called once per
// tick.
func (b *Board) Update() {
	for i := range b.tiles {
		t := &b.tiles[i]
		if t.falling && t.fallAmount <= b.fallMax {
			t.fallAmount += b.fallRate
		}
	}
}
