// Command ls-galaxy is a terminal galaxy explorer: procedural galaxies,
// solar systems to dive into, and warps between them.
package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand/v2"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/litescript/ls-galaxy/internal/audio"
	"github.com/litescript/ls-galaxy/internal/config"
	"github.com/litescript/ls-galaxy/internal/galaxy"
	"github.com/litescript/ls-galaxy/internal/logging"
	"github.com/litescript/ls-galaxy/internal/solar"
	"github.com/litescript/ls-galaxy/internal/state"
	"github.com/litescript/ls-galaxy/internal/ui"
	"github.com/litescript/ls-galaxy/internal/view"
)

// CLI flags for headless mode
var (
	summaryMode bool
	solarMode   bool
	frameMode   bool
)

const (
	defaultCols = 80
	defaultRows = 24
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	// Flags override the environment.
	flag.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level (debug, info, warn, error)")
	flag.StringVar(&cfg.LogFile, "log-file", cfg.LogFile, "Write logs to this file (TUI logs are discarded otherwise)")
	flag.Uint64Var(&cfg.Seed, "seed", cfg.Seed, "Random seed (0 picks one from the clock)")
	flag.StringVar(&cfg.Quality, "quality", cfg.Quality, "Particle quality (prototype, full)")
	flag.StringVar(&cfg.Archetype, "archetype", cfg.Archetype, "Initial galaxy (spiral, barred, elliptical, irregular, dwarf)")
	flag.IntVar(&cfg.FPS, "fps", cfg.FPS, "Frames per second")
	flag.BoolVar(&cfg.Sound, "sound", cfg.Sound, "Play warp and arrival sounds")
	flag.Float64Var(&cfg.Volume, "volume", cfg.Volume, "Sound volume (0-1)")
	flag.BoolVar(&summaryMode, "summary", false, "Print galaxy statistics instead of the TUI")
	flag.BoolVar(&solarMode, "solar", false, "Spawn a solar system and print it")
	flag.BoolVar(&frameMode, "frame", false, "Print one rendered frame")
	flag.Parse()

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}
	if cfg.Seed == 0 {
		cfg.Seed = uint64(time.Now().UnixNano())
	}

	// Create context with cancellation
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	stateCfg := state.DefaultConfig()
	stateCfg.Seed = cfg.Seed
	stateCfg.Archetype = cfg.GalaxyArchetype()
	stateCfg.Quality = cfg.ViewQuality()
	stateCfg.MaxEvents = cfg.MaxEvents

	headless := summaryMode || solarMode || frameMode
	if headless {
		logger := logging.New(cfg.Level())
		if err := runHeadless(cfg, stateCfg, logger); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	// The TUI owns the terminal, so logs only go to a file.
	logger, err := logging.Open(cfg.LogFile, cfg.Level())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Close()

	log := logger.With("main")
	log.Info("starting seed=%d archetype=%s quality=%s", cfg.Seed, stateCfg.Archetype, stateCfg.Quality)

	var player audio.Player = audio.Nop{}
	if cfg.Sound {
		sp, err := audio.NewSpeakerPlayer(cfg.Volume, cfg.Seed)
		if err != nil {
			log.Warn("sound disabled: %v", err)
		} else {
			player = sp
		}
	}
	defer player.Close()

	stateMgr := state.NewManager(stateCfg)
	model := ui.New(stateMgr, ui.Options{
		FrameInterval: cfg.FrameInterval(),
		Color:         true,
		Player:        player,
		Logger:        logger,
	})

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(ctx))

	// Run TUI (blocks until quit)
	if _, err := p.Run(); err != nil && ctx.Err() == nil {
		log.Error("tui: %v", err)
		fmt.Fprintf(os.Stderr, "Error running TUI: %v\n", err)
		os.Exit(1)
	}
	log.Info("shutdown after %d frames", stateMgr.Snapshot().Frames)
}

// runHeadless handles all headless modes without starting the TUI.
func runHeadless(cfg config.Config, stateCfg state.Config, logger *logging.Logger) error {
	isTTY := term.IsTerminal(int(os.Stdout.Fd()))
	log := logger.With("headless")

	if summaryMode {
		rng := rand.New(rand.NewPCG(cfg.Seed, cfg.Seed^0x9e3779b97f4a7c15))
		archetypes := galaxy.All()
		if flagSet("archetype") || os.Getenv("LSG_ARCHETYPE") != "" {
			archetypes = []galaxy.Archetype{stateCfg.Archetype}
		}
		fields := make([]*galaxy.Field, 0, len(archetypes))
		for _, a := range archetypes {
			fields = append(fields, galaxy.Generate(rng, a, stateCfg.Quality.ParticleCount()))
		}
		galaxy.WriteSummary(os.Stdout, fields...)
	}

	if !solarMode && !frameMode {
		return nil
	}

	stateMgr := state.NewManager(stateCfg)
	if solarMode {
		// Move off the core and into range, then dive in.
		stateMgr.Pan(view.CoreRadius*8, 0)
		stateMgr.Zoom(view.EnterRange / 2 / stateMgr.Camera().TargetDistance())
		if cue := stateMgr.Apply(view.Enter); cue != view.CueArrive {
			return fmt.Errorf("could not enter a solar system (mode %s)", stateMgr.Mode())
		}
		snap := stateMgr.Snapshot()
		if summaryMode {
			fmt.Println()
		}
		solar.WriteSummary(os.Stdout, snap.System)
		log.Debug("spawned %s with %d bodies", snap.System.Name, len(snap.System.Bodies))
	}

	if frameMode {
		cols, rows := defaultCols, defaultRows
		if isTTY {
			if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 && h > 1 {
				cols, rows = w, h-1
			}
		}
		if summaryMode || solarMode {
			fmt.Println()
		}
		fmt.Println(ui.RenderFrame(stateMgr.Snapshot(), cols, rows, isTTY))
	}
	return nil
}

func flagSet(name string) bool {
	set := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == name {
			set = true
		}
	})
	return set
}
