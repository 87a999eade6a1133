package game

import (
	"testing"

	"github.com/rs/zerolog"
)

func openBoard(t *testing.T, w, h int) *Board {
	t.Helper()
	cfg := testBoardConfig()
	cfg.Width = w
	cfg.Height = h
	return NewBoard(cfg, zerolog.Nop())
}

func TestPlanNextStep_GoalAtStart(t *testing.T) {
	b := openBoard(t, 5, 5)
	b.ClearMarks()
	b.SetGoal(2, 2)
	if got := PlanNextStep(b, 2, 2); got != ControlNone {
		t.Fatalf("move = %#x, want ControlNone", got)
	}
}

func TestPlanNextStep_StraightLine(t *testing.T) {
	b := openBoard(t, 5, 5)
	b.ClearMarks()
	b.SetGoal(4, 1)
	if got := PlanNextStep(b, 1, 1); got != ControlMoveRight {
		t.Fatalf("move = %#x, want ControlMoveRight", got)
	}
}

func TestPlanNextStep_Unreachable(t *testing.T) {
	b := openBoard(t, 5, 5)
	// Wall the goal corner off by destroying its only approaches.
	b.DestroyTileAt(3, 4)
	b.DestroyTileAt(4, 3)
	b.ClearMarks()
	b.SetGoal(4, 4)
	if got := PlanNextStep(b, 0, 0); got != ControlNone {
		t.Fatalf("move = %#x, want ControlNone for an unreachable goal", got)
	}
}

func TestPlanNextStep_NoGoals(t *testing.T) {
	b := openBoard(t, 5, 5)
	b.ClearMarks()
	if got := PlanNextStep(b, 2, 2); got != ControlNone {
		t.Fatalf("move = %#x, want ControlNone with no goals marked", got)
	}
}

func TestPlanNextStep_TieBreaksBySeedOrder(t *testing.T) {
	// Goals one step left and one step right: the left seed is enqueued
	// first, so it wins deterministically.
	b := openBoard(t, 5, 5)
	b.ClearMarks()
	b.SetGoal(1, 2)
	b.SetGoal(3, 2)
	if got := PlanNextStep(b, 2, 2); got != ControlMoveLeft {
		t.Fatalf("move = %#x, want ControlMoveLeft on a tie", got)
	}
}

func TestPlanNextStep_RoutesAroundHoles(t *testing.T) {
	// A destroyed tile straight ahead forces a detour; the initiating
	// direction of the detour path must be returned, not the blocked one.
	b := openBoard(t, 5, 5)
	b.DestroyTileAt(1, 2)
	b.DestroyTileAt(2, 2)
	b.DestroyTileAt(3, 2)
	b.DestroyTileAt(4, 2)
	b.ClearMarks()
	b.SetGoal(2, 4)
	got := PlanNextStep(b, 2, 0)
	if got != ControlMoveLeft {
		t.Fatalf("move = %#x, want ControlMoveLeft through the gap at x=0", got)
	}
}

func TestPlanNextStep_DeterministicRepeat(t *testing.T) {
	b := openBoard(t, 5, 5)
	for i := 0; i < 3; i++ {
		b.ClearMarks()
		b.SetGoal(0, 4)
		got := PlanNextStep(b, 4, 0)
		if i == 0 {
			continue
		}
		b.ClearMarks()
		b.SetGoal(0, 4)
		if again := PlanNextStep(b, 4, 0); again != got {
			t.Fatalf("run %d: move %#x != %#x", i, again, got)
		}
	}
}
