package game

// Snapshot is the read-only view of one tick, filled by Session.Snapshot.
// The renderer keeps one Snapshot and refills it each frame; the slices are
// reused, so nothing allocates after the first fill.
type Snapshot struct {
	Width, Height       int
	TileSize, TileSpace float64

	Tiles   []TileView
	Ships   []ShipView
	Photons []PhotonView

	Coins    int
	ChainLen int
	Ticks    int64
	Status   Status
}

// TileView is one grid cell as the renderer sees it.
type TileView struct {
	X, Y             int
	ScreenX, ScreenY float64
	Power            bool
	Falling          bool
	FallRatio        float64
}

// ShipView is one live ship as the renderer sees it.
type ShipView struct {
	ID        int
	Role      ShipRole
	X, Y      float64
	Angle     float64
	Size      float64
	FallRatio float64
	Chained   bool
}

// PhotonView is one live photon as the renderer sees it.
type PhotonView struct {
	X, Y      float64
	LifeRatio float64
	Power     bool
}

// Snapshot fills dst with the current state. The core never calls into
// rendering or audio; this view plus DrainEvents is the whole outbound
// surface.
func (s *Session) Snapshot(dst *Snapshot) {
	dst.Width = s.board.Width()
	dst.Height = s.board.Height()
	dst.TileSize = s.board.TileSize()
	dst.TileSpace = s.board.TileSpacing()
	dst.Coins = s.chain.Coins()
	dst.ChainLen = s.chain.Len()
	dst.Ticks = s.ticks
	dst.Status = s.Status()

	dst.Tiles = dst.Tiles[:0]
	for x := 0; x < s.board.Width(); x++ {
		for y := 0; y < s.board.Height(); y++ {
			dst.Tiles = append(dst.Tiles, TileView{
				X:         x,
				Y:         y,
				ScreenX:   s.board.BoardToScreen(x),
				ScreenY:   s.board.BoardToScreen(y),
				Power:     s.board.IsPowerTileAt(x, y),
				Falling:   s.board.IsFallingAt(x, y),
				FallRatio: s.board.FallRatio(x, y),
			})
		}
	}

	dst.Ships = dst.Ships[:0]
	for id := 0; id < s.fleet.Size(); id++ {
		ship := s.fleet.Get(id)
		if !ship.Alive() {
			continue
		}
		dst.Ships = append(dst.Ships, ShipView{
			ID:        id,
			Role:      ship.Role(),
			X:         ship.X,
			Y:         ship.Y,
			Angle:     ship.Angle(),
			Size:      ship.Size(),
			FallRatio: ship.FallRatio(),
			Chained:   s.chain.Contains(id),
		})
	}

	dst.Photons = dst.Photons[:0]
	cur := s.photons.Cursor()
	for ph := cur.Next(); ph != nil; ph = cur.Next() {
		dst.Photons = append(dst.Photons, PhotonView{
			X:         ph.X,
			Y:         ph.Y,
			LifeRatio: float64(ph.Life) / float64(s.photons.Lifespan()),
			Power:     ph.Power,
		})
	}
}
