package main

import (
	"flag"
	"fmt"
	"log"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/Garsondee/Alien-Invaders/internal/config"
	"github.com/Garsondee/Alien-Invaders/internal/invaders"
)

type runStats struct {
	runIndex int
	seed     int64
	err      error

	report invaders.SessionReport

	firstShipHit  int
	firstClear    int
	shipHits      int
	pointsFromLog float64
	phaseChanges  int
}

func main() {
	var runs int
	var frames int
	var seedBase int64
	var seedStep int64
	var cfgPath string
	var verbose bool

	flag.IntVar(&runs, "runs", 5, "number of headless autopilot runs")
	flag.IntVar(&frames, "frames", 3600, "frame budget per run")
	flag.Int64Var(&seedBase, "seed-base", 42, "base RNG seed for run 1")
	flag.Int64Var(&seedStep, "seed-step", 1, "seed increment between runs")
	flag.StringVar(&cfgPath, "config", "", "path to a .toml or .yaml config file")
	flag.BoolVar(&verbose, "verbose", false, "log every bolt fired")
	flag.Parse()

	if runs <= 0 {
		fmt.Println("error: -runs must be > 0")
		return
	}
	if frames <= 0 {
		fmt.Println("error: -frames must be > 0")
		return
	}

	cfg, err := config.LoadOrDefaults(cfgPath)
	if err != nil {
		log.Fatal(err)
	}
	logger, err := config.NewLogger(cfg.Logging)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = logger.Sync() }()

	fmt.Printf("=== Headless Invaders Report ===\n")
	fmt.Printf("runs=%d frames=%d seed_base=%d seed_step=%d\n\n", runs, frames, seedBase, seedStep)

	all := make([]runStats, 0, runs)
	for i := 0; i < runs; i++ {
		seed := seedBase + int64(i)*seedStep
		rs := runAutopilot(i+1, seed, frames, cfg, verbose, logger)
		if rs.err != nil {
			logger.Error("run failed", zap.Int("run", rs.runIndex), zap.Int64("seed", seed), zap.Error(rs.err))
		}
		all = append(all, rs)
		printRun(rs)
	}

	printAggregate(all)
}

func runAutopilot(runIndex int, seed int64, frames int, cfg *config.Config, verbose bool, logger *zap.Logger) runStats {
	ts := invaders.NewTestSim(
		invaders.WithConfig(cfg),
		invaders.WithSeed(seed),
		invaders.WithVerbose(verbose),
		invaders.WithSimLogger(logger.With(zap.Int("run", runIndex))),
	)
	err := ts.RunFrames(frames)
	return collect(runIndex, seed, ts.Session.Report(), ts.SimLog, err)
}

func collect(runIndex int, seed int64, report invaders.SessionReport, sl *invaders.SimLog, err error) runStats {
	return runStats{
		runIndex:      runIndex,
		seed:          seed,
		err:           err,
		report:        report,
		firstShipHit:  sl.FirstFrame("hit", "ship", ""),
		firstClear:    sl.FirstFrame("wave", "cleared", ""),
		shipHits:      sl.CountCategory("hit", "ship"),
		pointsFromLog: sl.SumCategory("hit", "alien"),
		phaseChanges:  sl.CountCategory("phase", "change"),
	}
}

func printRun(rs runStats) {
	r := rs.report
	fmt.Printf("--- Run %d (seed=%d) ---\n", rs.runIndex, rs.seed)
	fmt.Printf("outcome=%s phase=%s frames=%d\n", r.Outcome, r.Phase, r.Frames)
	fmt.Printf("score=%d lives=%d waves_cleared=%d aliens_killed=%d ships_lost=%d\n",
		r.Score, r.Lives, r.WavesCleared, r.AliensKilled, r.ShipsLost)
	fmt.Printf("phase_markers: first_hit=%d first_ship_hit=%d first_clear=%d phase_changes=%d\n",
		r.FirstHit, rs.firstShipHit, rs.firstClear, rs.phaseChanges)
	if rs.err != nil {
		fmt.Printf("error: %v\n", rs.err)
	}
	fmt.Println()
}

func printAggregate(all []runStats) {
	totalScore := 0
	totalKills := 0
	totalWaves := 0
	totalShipsLost := 0
	errors := 0
	hitFrames := make([]int, 0, len(all))
	clearFrames := make([]int, 0, len(all))
	best := -1

	for i, rs := range all {
		totalScore += rs.report.Score
		totalKills += rs.report.AliensKilled
		totalWaves += rs.report.WavesCleared
		totalShipsLost += rs.report.ShipsLost
		if rs.err != nil {
			errors++
		}
		if rs.report.FirstHit >= 0 {
			hitFrames = append(hitFrames, rs.report.FirstHit)
		}
		if rs.firstClear >= 0 {
			clearFrames = append(clearFrames, rs.firstClear)
		}
		if best < 0 || rs.report.Score > all[best].report.Score {
			best = i
		}
	}

	fmt.Println("=== Aggregate ===")
	fmt.Printf("runs=%d errors=%d\n", len(all), errors)
	fmt.Printf("avg_per_run: score=%.1f aliens_killed=%.1f waves_cleared=%.1f ships_lost=%.1f\n",
		avg(totalScore, len(all)), avg(totalKills, len(all)), avg(totalWaves, len(all)), avg(totalShipsLost, len(all)))
	fmt.Printf("phase_marker_avg_frames: first_hit=%s first_clear=%s\n",
		avgFrameString(hitFrames), avgFrameString(clearFrames))
	fmt.Printf("outcomes: %s\n", formatOutcomes(outcomeCounts(all)))
	if best >= 0 {
		fmt.Printf("best_run=%d seed=%d score=%d\n", all[best].runIndex, all[best].seed, all[best].report.Score)
	}
}

func outcomeCounts(all []runStats) map[string]int {
	counts := map[string]int{}
	for _, rs := range all {
		counts[rs.report.Outcome.String()]++
	}
	return counts
}

func formatOutcomes(counts map[string]int) string {
	if len(counts) == 0 {
		return "none"
	}
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%d", k, counts[k]))
	}
	return strings.Join(parts, " ")
}

func avg(sum int, n int) float64 {
	if n <= 0 {
		return 0
	}
	return float64(sum) / float64(n)
}

func avgFrameString(vals []int) string {
	if len(vals) == 0 {
		return "n/a"
	}
	sum := 0
	for _, v := range vals {
		sum += v
	}
	return fmt.Sprintf("%.1f", float64(sum)/float64(len(vals)))
}
