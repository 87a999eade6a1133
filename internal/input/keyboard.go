package input

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/tilefall/tilefall/internal/game"
)

// Keyboard reads ebiten key state once per tick and exposes the result
// through the game's Controller and Selector interfaces. Movement is
// level-triggered (held keys); selections are edge-triggered so a held key
// cannot repeat a reset.
type Keyboard struct {
	prevKeys  map[ebiten.Key]bool
	action    game.ControlCode
	selection game.Selection
}

func NewKeyboard() *Keyboard {
	return &Keyboard{prevKeys: make(map[ebiten.Key]bool)}
}

// Poll samples the key state. Call exactly once per Update, before the
// session tick consumes Action and Selection.
func (k *Keyboard) Poll() {
	k.action = k.readAction()
	k.selection = k.readSelection()
}

// Action implements game.Controller with the most recent poll result.
func (k *Keyboard) Action() game.ControlCode { return k.action }

// Selection implements game.Selector with the most recent poll result.
func (k *Keyboard) Selection() game.Selection { return k.selection }

func (k *Keyboard) readAction() game.ControlCode {
	// Opposing directions cancel rather than letting one win arbitrarily.
	horiz := 0
	if ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
		horiz--
	}
	if ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
		horiz++
	}
	vert := 0
	if ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyArrowUp) {
		vert--
	}
	if ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyArrowDown) {
		vert++
	}

	code := game.ControlNone
	switch {
	case horiz < 0:
		code |= game.ControlMoveLeft
	case horiz > 0:
		code |= game.ControlMoveRight
	case vert < 0:
		code |= game.ControlMoveUp
	case vert > 0:
		code |= game.ControlMoveDown
	}
	if ebiten.IsKeyPressed(ebiten.KeySpace) {
		code |= game.ControlFire
	}
	return code
}

func (k *Keyboard) readSelection() game.Selection {
	currentKeys := map[ebiten.Key]bool{}
	sel := game.SelectNone

	selectKeys := []struct {
		key ebiten.Key
		bit game.Selection
	}{
		{ebiten.KeyEnter, game.SelectBegin},
		{ebiten.KeyR, game.SelectReset},
		{ebiten.KeyEscape, game.SelectExit},
	}
	for _, sk := range selectKeys {
		currentKeys[sk.key] = ebiten.IsKeyPressed(sk.key)
		if currentKeys[sk.key] && !k.prevKeys[sk.key] {
			sel |= sk.bit
		}
	}

	k.prevKeys = currentKeys
	return sel
}
