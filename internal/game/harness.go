package game

import (
	"fmt"

	"github.com/rs/zerolog"
)

// DefaultConfig returns the constants used by the headless harness and the
// report tool. It mirrors config.json; tests that need a tuned board build
// on top of it with sim options.
func DefaultConfig() Config {
	return Config{
		Board: BoardConfig{
			Width:         10,
			Height:        10,
			TileSize:      32,
			TileSpace:     2,
			FallMin:       10,
			FallMax:       200,
			FallRate:      0.5,
			PowerInterval: 4,
		},
		Ship: ShipConfig{
			Size:           30,
			MoveSpeed:      6.5,
			TurnSpeed:      15,
			Cooldown:       20,
			FallRate:       0.5,
			FallMin:        1,
			FallMax:        8,
			RandFactor:     0.1,
			DriftTolerance: 1,
			DriftSpeed:     0.325,
			SpeedDamping:   0.75,
			Epsilon:        0.01,
			NumCompanions:  3,
			NumEnemies:     6,
		},
		Photon: PhotonConfig{
			Capacity:  512,
			Speed:     10,
			Lifespan:  40,
			Knockback: 34,
		},
		Player: PlayerConfig{
			FollowDelay:   8,
			MaxCompanions: 10,
			DesyncTiles:   2,
			CompanionCost: 5,
		},
		Game: GameConfig{
			NudgeAmount:  0.1,
			NudgeLimit:   100,
			PlanInterval: 10,
		},
	}
}

// TestSim is a headless simulation harness used by tests and the report
// tool. It mirrors the app's tick loop but has no ebiten dependency and
// supports deterministic seeding and structured logging.
type TestSim struct {
	Session *Session
	SimLog  *SimLog
}

// simOptionKind controls the pass in which an option is applied.
type simOptionKind int

const (
	simOptConfig  simOptionKind = iota // config and seed tweaks, applied first
	simOptSession                      // primary controller, applied at build
)

// SimOption is a builder function applied to a TestSim during construction.
type SimOption struct {
	kind simOptionKind
	fn   func(*simBuild)
}

type simBuild struct {
	cfg     Config
	seed    int64
	primary Controller
	verbose bool
}

// WithSeed fixes the RNG seed for a deterministic run.
func WithSeed(seed int64) SimOption {
	return SimOption{simOptConfig, func(b *simBuild) { b.seed = seed }}
}

// WithBoardSize overrides the grid dimensions.
func WithBoardSize(w, h int) SimOption {
	return SimOption{simOptConfig, func(b *simBuild) {
		b.cfg.Board.Width = w
		b.cfg.Board.Height = h
	}}
}

// WithFleet overrides the waiting companion and enemy counts.
func WithFleet(companions, enemies int) SimOption {
	return SimOption{simOptConfig, func(b *simBuild) {
		b.cfg.Ship.NumCompanions = companions
		b.cfg.Ship.NumEnemies = enemies
	}}
}

// WithConfig applies an arbitrary config tweak.
func WithConfig(fn func(*Config)) SimOption {
	return SimOption{simOptConfig, func(b *simBuild) { fn(&b.cfg) }}
}

// WithScript drives the lead with a fixed command sequence. The last
// command repeats once the script runs out.
func WithScript(codes ...ControlCode) SimOption {
	return SimOption{simOptSession, func(b *simBuild) {
		b.primary = NewScriptController(codes...)
	}}
}

// WithController drives the lead with an arbitrary controller.
func WithController(c Controller) SimOption {
	return SimOption{simOptSession, func(b *simBuild) { b.primary = c }}
}

// WithVerbose enables per-tick position logging.
func WithVerbose(v bool) SimOption {
	return SimOption{simOptConfig, func(b *simBuild) { b.verbose = v }}
}

// NewTestSim constructs a headless sim: config options first, then the
// session. The default is the stock config, seed 1, and an idle lead.
func NewTestSim(opts ...SimOption) *TestSim {
	b := simBuild{
		cfg:     DefaultConfig(),
		seed:    1,
		primary: IdleController{},
	}
	for _, o := range opts {
		if o.kind == simOptConfig {
			o.fn(&b)
		}
	}
	for _, o := range opts {
		if o.kind == simOptSession {
			o.fn(&b)
		}
	}
	return &TestSim{
		Session: NewSession(b.cfg, b.seed, b.primary, zerolog.Nop()),
		SimLog:  NewSimLog(b.verbose),
	}
}

// Step advances the simulation n ticks, draining events into the sim log
// after every tick.
func (ts *TestSim) Step(n int) {
	for i := 0; i < n; i++ {
		ts.Session.Step()
		tick := ts.Session.Ticks()
		for _, ev := range ts.Session.DrainEvents() {
			label := fmt.Sprintf("S%d", ev.ShipID)
			at := fmt.Sprintf("at (%d,%d)",
				ts.Session.Board().ScreenToBoard(ev.X),
				ts.Session.Board().ScreenToBoard(ev.Y))
			switch ev.Kind {
			case EventFire:
				ts.SimLog.Add(tick, label, "fire", "volley", at, 0)
			case EventBump:
				ts.SimLog.Add(tick, label, "bump", "hit", at, 0)
			case EventFall:
				ts.SimLog.Add(tick, label, "fall", "ship_fell", at, 0)
			case EventPickup:
				ts.SimLog.Add(tick, label, "pickup", "companion", at, float64(ts.Session.Chain().Len()))
			}
		}
		if lead := ts.Session.Chain().Lead(); lead != nil {
			ts.SimLog.AddVerbose(tick, "S0", "state", "lead_pos",
				fmt.Sprintf("(%.1f, %.1f)", lead.X, lead.Y), 0)
		}
	}
}
