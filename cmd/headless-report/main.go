package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"

	"fortio.org/cli"
	"fortio.org/log"

	"github.com/Garsondee/oled-pong/internal/pong"
)

type runStats struct {
	runIndex int
	seed     int64

	ticks       int
	finished    bool
	winner      pong.Side
	playerScore int
	cpuScore    int

	firstPointTick int
	playerReturns  int
	cpuReturns     int
	walls          int
	skippedServes  int
	longestRally   int
}

// pilotConfig shapes the autopilot player.
type pilotConfig struct {
	lag   int // ticks between seeing the ball and turning the knob
	noise int // max raw-sample error added per read
}

// autopilot turns the knob toward where the ball was lag reads ago, with
// some hand shake. It only sees the ball through the session, the same way a
// person only sees the panel.
type autopilot struct {
	cfg     pilotConfig
	rng     *rand.Rand
	session *pong.Session
	history []int
}

func newAutopilot(cfg pilotConfig, seed int64) *autopilot {
	return &autopilot{
		cfg: cfg,
		rng: rand.New(rand.NewSource(seed ^ 0x5eed)), // #nosec G404 -- simulation
	}
}

func (a *autopilot) Read(channel int) int {
	if channel != pong.PotChannel || a.session == nil {
		return 0
	}
	a.history = append(a.history, a.session.Ball.Y())
	if len(a.history) > a.cfg.lag+1 {
		a.history = a.history[1:]
	}
	target := a.history[0] - pong.PaddleHeight/2
	sample := positionToSample(target)
	if a.cfg.noise > 0 {
		sample += a.rng.Intn(2*a.cfg.noise+1) - a.cfg.noise
	}
	return sample
}

// positionToSample is the inverse of pong.MapSample, clamped to the ADC range.
func positionToSample(pos int) int {
	pos = max(0, min(pos, pong.PaddleTrack))
	return pos * pong.SampleMax / pong.PaddleTrack
}

func main() {
	os.Exit(Main())
}

func Main() int {
	var runs int
	var ticks int
	var seedBase int64
	var seedStep int64
	var pilot pilotConfig
	var verbose bool

	flag.IntVar(&runs, "runs", 5, "number of headless matches")
	flag.IntVar(&ticks, "ticks", 20000, "tick limit per match")
	flag.Int64Var(&seedBase, "seed-base", 42, "base RNG seed for run 1")
	flag.Int64Var(&seedStep, "seed-step", 1, "seed increment between runs")
	flag.IntVar(&pilot.lag, "lag", 2, "autopilot reaction lag in ticks")
	flag.IntVar(&pilot.noise, "noise", 40, "autopilot knob noise in raw samples")
	flag.BoolVar(&verbose, "v", false, "print every match log")
	cli.Main()

	if runs <= 0 {
		return log.FErrf("-runs must be > 0")
	}
	if ticks <= 0 {
		return log.FErrf("-ticks must be > 0")
	}
	if pilot.lag < 0 || pilot.noise < 0 {
		return log.FErrf("-lag and -noise must be >= 0")
	}

	fmt.Printf("=== Headless Match Report ===\n")
	fmt.Printf("runs=%d ticks=%d seed_base=%d seed_step=%d lag=%d noise=%d\n\n",
		runs, ticks, seedBase, seedStep, pilot.lag, pilot.noise)

	all := make([]runStats, 0, runs)
	for i := 0; i < runs; i++ {
		seed := seedBase + int64(i)*seedStep
		stats, ml := runMatch(i+1, seed, ticks, pilot)
		all = append(all, stats)
		printRun(stats)
		if verbose {
			fmt.Print(ml.Format())
			fmt.Println()
		}
	}

	printAggregate(all)
	return 0
}

func runMatch(runIndex int, seed int64, ticks int, pilot pilotConfig) (runStats, *pong.MatchLog) {
	ap := newAutopilot(pilot, seed)
	tm := pong.NewTestMatch(
		pong.WithMatchSeed(seed),
		pong.WithInput(ap),
	)
	ap.session = tm.Session
	tm.RunUntil(func(tm *pong.TestMatch) bool {
		return tm.Session.State() == pong.StateGameOver
	}, ticks)

	s := tm.Session
	rs := runStats{
		runIndex:    runIndex,
		seed:        seed,
		ticks:       s.Ticks(),
		finished:    s.State() == pong.StateGameOver,
		winner:      s.Winner(),
		playerScore: s.Player.Score.Value(),
		cpuScore:    s.CPU.Score.Value(),
	}
	statsFromLog(&rs, tm.Log.Entries())
	return rs, tm.Log
}

// statsFromLog fills the event counts. A rally is the run of paddle returns
// between two points.
func statsFromLog(rs *runStats, entries []pong.MatchLogEntry) {
	rs.firstPointTick = -1
	rally := 0
	for _, e := range entries {
		switch {
		case e.Category == "rally" && e.Key == "return":
			if e.Side == pong.SidePlayer {
				rs.playerReturns++
			} else {
				rs.cpuReturns++
			}
			rally++
			rs.longestRally = max(rs.longestRally, rally)
		case e.Category == "ball" && e.Key == "wall":
			rs.walls++
		case e.Category == "score" && e.Key == "point":
			if rs.firstPointTick < 0 {
				rs.firstPointTick = e.Tick
			}
			rally = 0
		case e.Category == "serve" && e.Key == "reset_skipped":
			rs.skippedServes++
		}
	}
}

func printRun(rs runStats) {
	fmt.Printf("--- Run %d (seed=%d) ---\n", rs.runIndex, rs.seed)
	result := "unfinished"
	if rs.finished {
		result = "winner=" + rs.winner.String()
	}
	fmt.Printf("result: %s score=%d-%d ticks=%d first_point=%d\n",
		result, rs.playerScore, rs.cpuScore, rs.ticks, rs.firstPointTick)
	fmt.Printf("events: player_returns=%d cpu_returns=%d walls=%d skipped_serves=%d longest_rally=%d\n",
		rs.playerReturns, rs.cpuReturns, rs.walls, rs.skippedServes, rs.longestRally)
	fmt.Println()
}

func printAggregate(all []runStats) {
	var playerWins, cpuWins, unfinished int
	var totalPlayerReturns, totalCPUReturns, totalWalls, totalSkipped int
	finishTicks := make([]int, 0, len(all))
	pointTicks := make([]int, 0, len(all))
	longest := 0

	for _, rs := range all {
		switch {
		case !rs.finished:
			unfinished++
		case rs.winner == pong.SidePlayer:
			playerWins++
		default:
			cpuWins++
		}
		if rs.finished {
			finishTicks = append(finishTicks, rs.ticks)
		}
		if rs.firstPointTick >= 0 {
			pointTicks = append(pointTicks, rs.firstPointTick)
		}
		totalPlayerReturns += rs.playerReturns
		totalCPUReturns += rs.cpuReturns
		totalWalls += rs.walls
		totalSkipped += rs.skippedServes
		longest = max(longest, rs.longestRally)
	}

	fmt.Println("=== Aggregate ===")
	fmt.Printf("runs=%d player_wins=%d cpu_wins=%d unfinished=%d player_win_rate=%.0f%%\n",
		len(all), playerWins, cpuWins, unfinished, percent(playerWins, len(all)))
	fmt.Printf("avg_ticks: to_game_over=%s to_first_point=%s\n",
		avgTickString(finishTicks), avgTickString(pointTicks))
	fmt.Printf("avg_events_per_run: player_returns=%.1f cpu_returns=%.1f walls=%.1f skipped_serves=%.1f\n",
		avg(totalPlayerReturns, len(all)), avg(totalCPUReturns, len(all)), avg(totalWalls, len(all)), avg(totalSkipped, len(all)))
	fmt.Printf("longest_rally=%d\n", longest)
}

func avg(sum int, n int) float64 {
	if n <= 0 {
		return 0
	}
	return float64(sum) / float64(n)
}

func percent(k, n int) float64 {
	return avg(k*100, n)
}

func avgTickString(vals []int) string {
	if len(vals) == 0 {
		return "n/a"
	}
	sum := 0
	for _, v := range vals {
		sum += v
	}
	return fmt.Sprintf("%.1f", float64(sum)/float64(len(vals)))
}
