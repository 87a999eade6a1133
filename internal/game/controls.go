package game

// ControlCode is a bit-vector of simultaneous ship commands. Movement bits
// are mutually exclusive by convention (input sources cancel conflicting
// directions before emitting a code); the fire bit combines with any of them.
type ControlCode int

const (
	ControlNone      ControlCode = 0x00
	ControlMoveLeft  ControlCode = 0x01
	ControlMoveRight ControlCode = 0x02
	ControlMoveUp    ControlCode = 0x04
	ControlMoveDown  ControlCode = 0x08
	ControlFire      ControlCode = 0x10
)

// Selection is a bit-vector of game-state requests. Only the primary input
// source produces selections; AI and replay controllers never do.
type Selection int

const (
	SelectNone  Selection = 0x00
	SelectBegin Selection = 0x01
	SelectReset Selection = 0x02
	SelectExit  Selection = 0x04
)

// Controller supplies one command per tick for a single ship. The core does
// not care whether the implementation reads a keyboard, runs pathfinding, or
// replays history.
type Controller interface {
	Action() ControlCode
}

// Selector supplies game-state selections. Implemented by the human input
// source only.
type Selector interface {
	Selection() Selection
}

// ScriptController replays a fixed command sequence, then holds the final
// command forever. Used by the headless harness and tests.
type ScriptController struct {
	codes []ControlCode
	pos   int
}

// NewScriptController creates a controller that emits the given codes in
// order. An empty script emits ControlNone forever.
func NewScriptController(codes ...ControlCode) *ScriptController {
	return &ScriptController{codes: codes}
}

// Action returns the next scripted command.
func (c *ScriptController) Action() ControlCode {
	if len(c.codes) == 0 {
		return ControlNone
	}
	if c.pos >= len(c.codes) {
		return c.codes[len(c.codes)-1]
	}
	code := c.codes[c.pos]
	c.pos++
	return code
}

// IdleController always returns ControlNone. Waiting companions use it until
// they are collected into the chain.
type IdleController struct{}

// Action implements Controller.
func (IdleController) Action() ControlCode { return ControlNone }
