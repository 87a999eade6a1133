package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"strings"

	"github.com/atotto/clipboard"

	"github.com/tilefall/tilefall/internal/game"
)

type runStats struct {
	runIndex int
	seed     int64

	outcome     string
	outcomeTick int64

	volleys  int
	hits     int
	falls    int
	pickups  int
	coins    int
	chainLen int
	enemies  int

	firstHitTick    int64
	firstFallTick   int64
	firstPickupTick int64
}

// randomPilot drives the lead on a random walk: hold a direction for a few
// ticks, fire in bursts. Deterministic per seed so report runs reproduce.
type randomPilot struct {
	rng  *rand.Rand
	code game.ControlCode
	hold int
}

func newRandomPilot(seed int64) *randomPilot {
	return &randomPilot{rng: rand.New(rand.NewSource(seed))}
}

func (p *randomPilot) Action() game.ControlCode {
	if p.hold <= 0 {
		dirs := []game.ControlCode{
			game.ControlMoveLeft, game.ControlMoveRight,
			game.ControlMoveUp, game.ControlMoveDown,
			game.ControlNone,
		}
		p.code = dirs[p.rng.Intn(len(dirs))]
		if p.rng.Intn(3) == 0 {
			p.code |= game.ControlFire
		}
		p.hold = 4 + p.rng.Intn(10)
	}
	p.hold--
	return p.code
}

func main() {
	var runs int
	var ticks int
	var seedBase int64
	var seedStep int64
	var copyOut bool
	var verbose bool

	flag.IntVar(&runs, "runs", 5, "number of headless simulation runs")
	flag.IntVar(&ticks, "ticks", 3600, "tick limit per run")
	flag.Int64Var(&seedBase, "seed-base", 42, "base RNG seed for run 1")
	flag.Int64Var(&seedStep, "seed-step", 1, "seed increment between runs")
	flag.BoolVar(&copyOut, "copy", false, "copy the report to the clipboard")
	flag.BoolVar(&verbose, "v", false, "include the full event log per run")
	flag.Parse()

	if runs <= 0 {
		fmt.Println("error: -runs must be > 0")
		return
	}
	if ticks <= 0 {
		fmt.Println("error: -ticks must be > 0")
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "=== Headless Run Report ===\n")
	fmt.Fprintf(&sb, "runs=%d ticks=%d seed_base=%d seed_step=%d\n\n", runs, ticks, seedBase, seedStep)

	all := make([]runStats, 0, runs)
	for i := 0; i < runs; i++ {
		seed := seedBase + int64(i)*seedStep
		stats := runOnce(&sb, i+1, seed, ticks, verbose)
		all = append(all, stats)
	}
	printAggregate(&sb, all)

	fmt.Print(sb.String())
	if copyOut {
		if err := clipboard.WriteAll(sb.String()); err != nil {
			fmt.Fprintf(os.Stderr, "clipboard: %v\n", err)
		} else {
			fmt.Println("(report copied to clipboard)")
		}
	}
}

func runOnce(sb *strings.Builder, runIndex int, seed int64, ticks int, verbose bool) runStats {
	ts := game.NewTestSim(
		game.WithSeed(seed),
		game.WithController(newRandomPilot(seed)),
	)

	outcome := "timeout"
	var outcomeTick int64
	for t := 0; t < ticks; t++ {
		ts.Step(1)
		if st := ts.Session.Status(); st != game.StatusPlaying {
			outcomeTick = ts.Session.Ticks()
			if st == game.StatusVictory {
				outcome = "victory"
			} else {
				outcome = "defeat"
			}
			break
		}
	}
	if outcome == "timeout" {
		outcomeTick = ts.Session.Ticks()
	}

	stats := runStats{
		runIndex:        runIndex,
		seed:            seed,
		outcome:         outcome,
		outcomeTick:     outcomeTick,
		volleys:         ts.SimLog.CountCategory("fire", "volley"),
		hits:            ts.SimLog.CountCategory("bump", "hit"),
		falls:           ts.SimLog.CountCategory("fall", "ship_fell"),
		pickups:         ts.SimLog.CountCategory("pickup", "companion"),
		coins:           ts.Session.Chain().Coins(),
		chainLen:        ts.Session.Chain().Len(),
		enemies:         ts.Session.Fleet().NumActiveEnemies(),
		firstHitTick:    firstTick(ts.SimLog, "bump", "hit"),
		firstFallTick:   firstTick(ts.SimLog, "fall", "ship_fell"),
		firstPickupTick: firstTick(ts.SimLog, "pickup", "companion"),
	}

	fmt.Fprintf(sb, "--- Run %d (seed=%d) ---\n", stats.runIndex, stats.seed)
	fmt.Fprintf(sb, "outcome: %s at T=%d\n", stats.outcome, stats.outcomeTick)
	fmt.Fprintf(sb, "event_totals: volleys=%d hits=%d falls=%d pickups=%d\n",
		stats.volleys, stats.hits, stats.falls, stats.pickups)
	fmt.Fprintf(sb, "phase_markers: first_hit=%d first_fall=%d first_pickup=%d\n",
		stats.firstHitTick, stats.firstFallTick, stats.firstPickupTick)
	fmt.Fprintf(sb, "end_state: coins=%d chain=%d enemies_left=%d\n",
		stats.coins, stats.chainLen, stats.enemies)
	if verbose {
		sb.WriteString(ts.SimLog.Format())
	}
	sb.WriteString(ts.SimLog.Summary(ts.Session))
	sb.WriteByte('\n')
	return stats
}

// firstTick returns the tick of the earliest matching entry, or -1.
func firstTick(sl *game.SimLog, category, key string) int64 {
	entries := sl.Filter(category, key)
	if len(entries) == 0 {
		return -1
	}
	return entries[0].Tick
}

func printAggregate(sb *strings.Builder, all []runStats) {
	victories := 0
	defeats := 0
	totalVolleys := 0
	totalHits := 0
	totalFalls := 0
	totalPickups := 0
	totalCoins := 0
	var totalTicks int64

	for _, rs := range all {
		switch rs.outcome {
		case "victory":
			victories++
		case "defeat":
			defeats++
		}
		totalVolleys += rs.volleys
		totalHits += rs.hits
		totalFalls += rs.falls
		totalPickups += rs.pickups
		totalCoins += rs.coins
		totalTicks += rs.outcomeTick
	}

	n := float64(len(all))
	fmt.Fprintf(sb, "=== Aggregate (%d runs) ===\n", len(all))
	fmt.Fprintf(sb, "outcomes: victory=%d defeat=%d timeout=%d\n",
		victories, defeats, len(all)-victories-defeats)
	fmt.Fprintf(sb, "avg_per_run: volleys=%.1f hits=%.1f falls=%.1f pickups=%.1f coins=%.1f ticks=%.1f\n",
		float64(totalVolleys)/n, float64(totalHits)/n, float64(totalFalls)/n,
		float64(totalPickups)/n, float64(totalCoins)/n, float64(totalTicks)/n)
}
