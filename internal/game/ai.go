package game

// EnemyController chases the front of the companion chain with BFS
// pathfinding. Replanning is decimated: a controller replans only on ticks
// where (ship id + tick count) hits its plan interval, so the fleet spreads
// its planning cost across ticks instead of stampeding on the same one.
type EnemyController struct {
	id    int
	board *Board
	fleet *Fleet
	chain *Chain

	planInterval int64
	move         ControlCode
	ticks        int64
}

func NewEnemyController(id int, board *Board, fleet *Fleet, chain *Chain, planInterval int) *EnemyController {
	return &EnemyController{
		id:           id,
		board:        board,
		fleet:        fleet,
		chain:        chain,
		planInterval: int64(planInterval),
	}
}

// Action returns the enemy's command for this tick. Between replans it
// repeats the last planned move.
func (a *EnemyController) Action() ControlCode {
	a.ticks++
	if (int64(a.id)+a.ticks)%a.planInterval == 0 {
		a.markGoalTiles()
		ship := a.fleet.Get(a.id)
		cx := a.board.ScreenToBoard(ship.X)
		cy := a.board.ScreenToBoard(ship.Y)
		a.move = PlanNextStep(a.board, cx, cy)
	}
	return a.move
}

// markGoalTiles starts a fresh planning pass: clear all marks, then mark the
// chain lead's tile as the goal. A wiped-out chain or an unsafe lead tile
// leaves no goals, which the planner resolves to standing still.
func (a *EnemyController) markGoalTiles() {
	a.board.ClearMarks()
	lead := a.chain.Lead()
	if lead == nil || !lead.Active() {
		return
	}
	tx := a.board.ScreenToBoard(lead.X)
	ty := a.board.ScreenToBoard(lead.Y)
	if a.board.IsSafeAt(tx, ty) {
		a.board.SetGoal(tx, ty)
	}
}
