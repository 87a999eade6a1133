package app

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/rs/zerolog"

	"github.com/tilefall/tilefall/internal/audio"
	"github.com/tilefall/tilefall/internal/game"
	"github.com/tilefall/tilefall/internal/input"
	"github.com/tilefall/tilefall/internal/render"
)

// state is the app-level screen: the simulation only runs in statePlaying.
type state int

const (
	stateReady state = iota
	statePlaying
	stateOver
)

// App is the ebiten shell around one Session. It owns the keyboard, the
// renderer, and the audio engine; the session itself never sees ebiten.
type App struct {
	cfg  game.Config
	log  zerolog.Logger
	seed int64

	state    state
	session  *game.Session
	keyboard *input.Keyboard
	renderer *render.Renderer
	audio    *audio.Engine
	snap     game.Snapshot
}

func New(cfg game.Config, seed int64, log zerolog.Logger) *App {
	a := &App{
		cfg:      cfg,
		log:      log,
		seed:     seed,
		keyboard: input.NewKeyboard(),
		renderer: render.New(cfg.Board.Width, cfg.Board.Height, cfg.Board.TileSize, cfg.Board.TileSpace),
		audio:    audio.NewEngine(),
	}
	if err := a.audio.Initialize(); err != nil {
		// No speaker is not fatal; the game runs silent.
		log.Warn().Err(err).Msg("audio disabled")
	}
	a.newSession()
	return a
}

// newSession builds a fresh session from the current seed. The keyboard is
// the lead's controller for the whole app lifetime.
func (a *App) newSession() {
	a.session = game.NewSession(a.cfg, a.seed, a.keyboard, a.log)
	a.log.Info().Int64("seed", a.seed).Msg("session start")
}

// ScreenSize returns the window dimensions for ebiten.SetWindowSize.
func (a *App) ScreenSize() (int, int) { return a.renderer.ScreenSize() }

func (a *App) Update() error {
	a.keyboard.Poll()
	sel := a.keyboard.Selection()

	if sel&game.SelectExit != 0 {
		a.audio.Close()
		return ebiten.Termination
	}

	switch a.state {
	case stateReady:
		if sel&game.SelectBegin != 0 {
			a.state = statePlaying
		}

	case statePlaying:
		if sel&game.SelectReset != 0 {
			a.restart()
			return nil
		}
		a.session.Step()
		a.audio.HandleEvents(a.session.DrainEvents())
		if a.session.Status() != game.StatusPlaying {
			a.state = stateOver
			a.log.Info().
				Int64("ticks", a.session.Ticks()).
				Int("coins", a.session.Chain().Coins()).
				Bool("victory", a.session.Status() == game.StatusVictory).
				Msg("session over")
		}

	case stateOver:
		if sel&(game.SelectBegin|game.SelectReset) != 0 {
			a.restart()
			a.state = statePlaying
		}
	}
	return nil
}

// restart reseeds so a retry is not a replay of the same run.
func (a *App) restart() {
	a.seed++
	a.newSession()
	a.state = statePlaying
}

func (a *App) Draw(screen *ebiten.Image) {
	a.session.Snapshot(&a.snap)
	a.renderer.Draw(screen, &a.snap, a.banner())
}

func (a *App) banner() string {
	switch a.state {
	case stateReady:
		return "TILEFALL  -  PRESS ENTER"
	case stateOver:
		if a.snap.Status == game.StatusVictory {
			return "VICTORY  -  ENTER TO PLAY AGAIN"
		}
		return "DEFEAT  -  ENTER TO PLAY AGAIN"
	}
	return ""
}

func (a *App) Layout(_, _ int) (int, int) {
	return a.renderer.ScreenSize()
}
