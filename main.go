package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/integrii/flaggy"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/sheikhrachel/go-life/model"
	"github.com/sheikhrachel/go-life/utils"
	"github.com/sheikhrachel/go-life/view"
)

const defaultConfigFile = "config.json"

func main() {
	config, err := initConfig(os.Args[1:])
	if err != nil {
		log.Fatalf("go-life: %v", err)
	}

	g, err := newGame(config)
	if err != nil {
		log.Fatalf("go-life: %v", err)
	}

	if config.Interactive {
		ui, err := view.NewConsoleUI(g.universe, g.rng, config.RandomDensity, config.FrameRate)
		if err != nil {
			log.Fatalf("go-life: failed to start terminal UI: %v", err)
		}
		if err = ui.Start(); err != nil {
			log.Fatalf("go-life: %v", err)
		}
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err = run(ctx, g); err != nil {
		log.Fatalf("go-life: %v", err)
	}
}

// initConfig loads the config file and applies command line overrides on top of it
func initConfig(args []string) (utils.Config, error) {
	var (
		configFile = defaultConfigFile
		flags      = utils.DefaultConfig()
		noColor    bool
	)

	parser := flaggy.NewParser("go-life")
	parser.Description = "Conway's Game of Life on a toroidal grid"
	parser.ShowHelpOnUnexpected = true
	parser.String(&configFile, "c", "config", "Path to a JSON config file")
	parser.Int(&flags.Width, "x", "width", "Width of the universe")
	parser.Int(&flags.Height, "y", "height", "Height of the universe")
	parser.Duration(&flags.FrameRate, "i", "interval", "Interval between generations, for example 150ms")
	parser.Int(&flags.MaxGenerations, "s", "maxSteps", "Stop after this many generations (0 runs forever)")
	parser.String(&flags.Pattern, "p", "pattern", "Initial pattern ["+strings.Join(append([]string{patternRandom}, model.PatternNames()...), "|")+"]")
	parser.UInt64(&flags.Seed, "r", "seed", "Random seed (0 picks one from the clock)")
	parser.Bool(&flags.Interactive, "n", "interactive", "Start the interactive terminal UI")
	parser.Bool(&flags.AutoRestart, "a", "autoRestart", "Reseed when the universe dies out or stagnates")
	parser.Bool(&noColor, "", "noColor", "Disable colored output")

	if err := parser.ParseArgs(args); err != nil {
		return utils.Config{}, errors.Wrap(err, "[initConfig] failed to parse flags")
	}

	config, err := utils.LoadConfig(configFile)
	if err != nil {
		if !os.IsNotExist(errors.Cause(err)) {
			return config, err
		}
		fmt.Printf("Using default configuration (%s not found)\n", configFile)
		config = utils.DefaultConfig()
	}

	applyFlags(&config, flags, utils.DefaultConfig())
	if noColor {
		config.Color = false
	}

	if err = config.Validate(); err != nil {
		return config, err
	}
	return config, nil
}

// applyFlags copies every flag that differs from its default onto config
func applyFlags(config *utils.Config, flags, defaults utils.Config) {
	if flags.Width != defaults.Width {
		config.Width = flags.Width
	}
	if flags.Height != defaults.Height {
		config.Height = flags.Height
	}
	if flags.FrameRate != defaults.FrameRate {
		config.FrameRate = flags.FrameRate
	}
	if flags.MaxGenerations != defaults.MaxGenerations {
		config.MaxGenerations = flags.MaxGenerations
	}
	if flags.Pattern != defaults.Pattern {
		config.Pattern = flags.Pattern
	}
	if flags.Seed != defaults.Seed {
		config.Seed = flags.Seed
	}
	if flags.Interactive {
		config.Interactive = true
	}
	if flags.AutoRestart {
		config.AutoRestart = true
	}
}

// run drives the streaming game loop until ctx is cancelled or the generation limit is reached
func run(ctx context.Context, g *game) error {
	displayGameInfo(g)

	eg, ctx := errgroup.WithContext(ctx)
	frames := make(chan struct{})

	eg.Go(func() error {
		defer close(frames)
		ticker := time.NewTicker(max(g.config.FrameRate, time.Millisecond))
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return nil
			case <-ticker.C:
				select {
				case frames <- struct{}{}:
				case <-ctx.Done():
					return nil
				}
			}
		}
	})

	eg.Go(func() (err error) {
		defer func() {
			if r := recover(); r != nil {
				err = errors.Errorf("[run] panic at generation %d: %v", g.universe.Generation(), r)
			}
		}()

		for range frames {
			done, err := g.frame()
			if err != nil {
				return err
			}
			if done {
				return errStopped
			}
		}
		return nil
	})

	err := eg.Wait()
	displayFinalStats(g)
	if errors.Is(err, errStopped) {
		return nil
	}
	return err
}
