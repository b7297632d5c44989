package main

import (
	"fmt"
	"math/rand/v2"
	"os"
	"time"

	"github.com/pkg/errors"

	"github.com/sheikhrachel/go-life/model"
	"github.com/sheikhrachel/go-life/utils"
	"github.com/sheikhrachel/go-life/view"
)

const patternRandom = "random"

var errStopped = errors.New("generation limit reached")

// game bundles the universe with the host state driving it
type game struct {
	config   utils.Config
	universe *model.Universe
	rng      *rand.Rand
	renderer *view.TerminalRenderer
	stats    *utils.Stats
	history  model.History

	stagnantCount  int
	lastRestartGen int
	lastFrameTime  time.Time
	generation     int
}

// newGame sets up the initial game state
func newGame(config utils.Config) (*game, error) {
	u, err := model.NewEmptyUniverse(config.Width, config.Height)
	if err != nil {
		return nil, errors.Wrap(err, "[newGame] failed to create universe")
	}

	g := &game{
		config:        config,
		universe:      u,
		rng:           model.NewRand(config.Seed),
		renderer:      view.NewTerminalRenderer(os.Stdout, config.Color),
		stats:         utils.NewStats(),
		lastFrameTime: time.Now(),
	}
	if err = g.seed(); err != nil {
		return nil, err
	}
	return g, nil
}

// seed fills the universe with the configured pattern
func (g *game) seed() error {
	g.universe.Clear()
	g.history.Reset()

	if g.config.Pattern == patternRandom || g.config.Pattern == "" {
		g.universe.Randomize(g.rng, g.config.RandomDensity)
		return nil
	}

	p, ok := model.LookupPattern(g.config.Pattern)
	if !ok {
		return errors.Errorf("[seed] unknown pattern: %s", g.config.Pattern)
	}
	center := model.Coord{Row: g.universe.Height() / 2, Column: g.universe.Width() / 2}
	return g.universe.Place(p, center)
}

// injectRandomLife adds a few live cells to break up stagnation
func (g *game) injectRandomLife() error {
	coords := make([]model.Coord, g.config.InjectionCount)
	for i := range coords {
		coords[i] = model.Coord{
			Row:    g.rng.IntN(g.universe.Height()),
			Column: g.rng.IntN(g.universe.Width()),
		}
	}
	if err := g.universe.SetCells(coords); err != nil {
		return errors.Wrap(err, "[injectRandomLife] failed to revive cells")
	}
	g.stats.Injected(len(coords))
	return nil
}

// frame renders the current generation and advances the universe once. It
// reports done when the generation limit is reached.
func (g *game) frame() (done bool, err error) {
	frameStart := time.Now()
	living := g.universe.CountLiving()
	g.stats.Frame(living, frameStart.Sub(g.lastFrameTime))
	g.lastFrameTime = frameStart

	stagnant := g.history.IsStagnant(g.universe)
	g.history.Record(g.universe)
	if stagnant {
		g.stagnantCount++
	} else {
		g.stagnantCount = 0
	}

	g.renderer.Clear()
	g.displayGameStatus(living, stagnant)
	if err = g.renderer.Display(g.universe); err != nil {
		return false, errors.Wrap(err, "[frame] failed to render")
	}

	if g.config.MaxGenerations > 0 && g.generation >= g.config.MaxGenerations {
		fmt.Printf("\nReached maximum generations limit (%d)\n", g.config.MaxGenerations)
		return true, nil
	}

	if restart, reason := g.checkRestartConditions(living); restart && g.config.AutoRestart {
		fmt.Printf("Restarting due to %s...\n", reason)
		if err = g.seed(); err != nil {
			return false, err
		}
		g.stats.Restart()
		g.lastRestartGen = g.generation
		g.stagnantCount = 0
	} else if g.stagnantCount >= 2 && g.config.InjectionCount > 0 {
		if err = g.injectRandomLife(); err != nil {
			return false, err
		}
	}

	g.universe.Tick()
	g.generation++
	return false, nil
}

// checkRestartConditions determines if the game should restart
func (g *game) checkRestartConditions(living int) (bool, string) {
	if living == 0 {
		return true, "extinction"
	}
	if g.config.StagnationThreshold > 0 && g.stagnantCount >= g.config.StagnationThreshold {
		return true, "stagnation detected"
	}
	return false, ""
}

// displayGameInfo shows the initial game information
func displayGameInfo(g *game) {
	fmt.Printf("Grid: %dx%d | Pattern: %s | Initial living cells: %d\n",
		g.universe.Width(), g.universe.Height(), g.config.Pattern, g.universe.CountLiving())
	fmt.Println("Press Ctrl+C to exit gracefully")
	fmt.Println()
}

// displayGameStatus shows the current game status
func (g *game) displayGameStatus(living int, stagnant bool) {
	status := "Active"
	if stagnant {
		status = "Stagnant"
	}
	if living == 0 {
		status = "Extinct"
	}

	density := float64(living) / float64(len(g.universe.Cells())) * 100
	g.renderer.Status("Gen:", "%d | Living: %d | Density: %.1f%% | Status: %s",
		g.generation, living, density, status)
	g.renderer.Status("Perf:", "%.1f gen/sec | Avg Pop: %.1f | Runtime: %.1fs",
		g.stats.GenerationsPerSecond, g.stats.AveragePopulation, g.stats.Runtime().Seconds())
	if g.generation > g.lastRestartGen {
		g.renderer.Status("Since restart:", "%d", g.generation-g.lastRestartGen)
	}
}

// displayFinalStats prints the summary on shutdown
func displayFinalStats(g *game) {
	fmt.Printf("\nFinal stats: %d generations in %.1f seconds, %d restarts, %d cells injected\n",
		g.generation, g.stats.Runtime().Seconds(), g.stats.Restarts, g.stats.InjectedCells)
	fmt.Printf("Average: %.1f gen/sec, %.1f avg population\n",
		g.stats.GenerationsPerSecond, g.stats.AveragePopulation)
}
