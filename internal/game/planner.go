package game

// plannerNode is one queued BFS cell. dir is the command that took the very
// first step out of the start cell on the path reaching this node; it is
// propagated unchanged through every later expansion.
type plannerNode struct {
	x, y int
	dir  ControlCode
}

// PlanNextStep runs a breadth-first search over the board's goal and visited
// marks and returns the single command that starts the shortest path from
// (cx, cy) to the nearest goal tile. The caller marks goals (and clears old
// marks) first.
//
// Returns ControlNone when the start cell is itself a goal, and when the
// search exhausts the board without reaching one. Exploration order is
// fixed, so the result is deterministic for a given board state.
func PlanNextStep(board *Board, cx, cy int) ControlCode {
	if board.IsGoal(cx, cy) {
		return ControlNone
	}

	// The queue never exceeds the cell count: cells are marked visited when
	// enqueued, never re-enqueued.
	queue := make([]plannerNode, 0, board.Width()*board.Height())

	seed := func(x, y int, dir ControlCode) {
		if board.IsSafeAt(x, y) {
			queue = append(queue, plannerNode{x, y, dir})
			board.SetVisited(x, y)
		}
	}
	seed(cx-1, cy, ControlMoveLeft)
	seed(cx+1, cy, ControlMoveRight)
	seed(cx, cy-1, ControlMoveUp)
	seed(cx, cy+1, ControlMoveDown)

	for head := 0; head < len(queue); head++ {
		cur := queue[head]
		if board.IsGoal(cur.x, cur.y) {
			return cur.dir
		}
		next := [4][2]int{
			{cur.x, cur.y + 1},
			{cur.x, cur.y - 1},
			{cur.x + 1, cur.y},
			{cur.x - 1, cur.y},
		}
		for _, n := range next {
			if board.IsSafeAt(n[0], n[1]) && !board.IsVisited(n[0], n[1]) {
				board.SetVisited(n[0], n[1])
				queue = append(queue, plannerNode{n[0], n[1], cur.dir})
			}
		}
	}
	return ControlNone
}
