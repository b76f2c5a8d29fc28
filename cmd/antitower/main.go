package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/pkg/profile"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/antitower/server/internal/config"
	coresys "github.com/antitower/server/internal/core/system"
	"github.com/antitower/server/internal/data"
	"github.com/antitower/server/internal/hud"
	"github.com/antitower/server/internal/input"
	"github.com/antitower/server/internal/persist"
	"github.com/antitower/server/internal/scripting"
	"github.com/antitower/server/internal/system"
	"github.com/antitower/server/internal/world"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

// ── Startup display helpers ────────────────────────────────────────

func printBanner(name string) {
	fmt.Println()
	fmt.Println("\033[36;1m  ┌───────────────────────────────────────────┐\033[0m")
	fmt.Println("\033[36;1m  │\033[0m             Anti-Tower  v0.1.0            \033[36;1m│\033[0m")
	fmt.Println("\033[36;1m  │\033[0m        tower defence, inside out          \033[36;1m│\033[0m")
	fmt.Println("\033[36;1m  └───────────────────────────────────────────┘\033[0m")
	fmt.Println()
	fmt.Printf("  \033[1mserver:\033[0m %s\n\n", name)
}

func printSection(title string) {
	lineLen := max(3, 46-len(title)-1)
	fmt.Printf("  \033[33m── %s %s\033[0m\n", title, strings.Repeat("─", lineLen))
}

func printStat(label string, count int) {
	numStr := fmt.Sprintf("%d", count)
	dotsLen := max(3, 42-len(label)-len(numStr))
	fmt.Printf("  %s \033[90m%s\033[0m \033[32m%s\033[0m\n", label, strings.Repeat("·", dotsLen), numStr)
}

func printOK(msg string) {
	fmt.Printf("  \033[32m✓\033[0m %s\n", msg)
}

func printSkip(msg string) {
	fmt.Printf("  \033[90m–\033[0m %s\n", msg)
}

func printReady(msg string) {
	fmt.Printf("  \033[32m▶\033[0m %s\n", msg)
}

// ── Main simulation logic ─────────────────────────────────────────

func run() error {
	// 1. Load config
	cfgPath := "config/antitower.toml"
	if p := os.Getenv("ANTITOWER_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.Load(cfgPath)
	usingDefaults := false
	if errors.Is(err, fs.ErrNotExist) {
		cfg, err = config.Defaults(), nil
		cfg.Server.StartTime = time.Now().Unix()
		usingDefaults = true
	}
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	terminal := cfg.Input.Driver == "terminal"
	if terminal && cfg.Logging.File == "" {
		cfg.Logging.File = "antitower.log" // the screen owns stdout
	}

	// 2. Init logger
	log, err := newLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()
	if usingDefaults {
		log.Warn("config file not found, using defaults", zap.String("path", cfgPath))
	}

	printBanner(cfg.Server.Name)

	switch cfg.Profile.Mode {
	case "cpu":
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(cfg.Profile.Path), profile.NoShutdownHook).Stop()
	case "mem":
		defer profile.Start(profile.MemProfileAllocs, profile.ProfilePath(cfg.Profile.Path), profile.NoShutdownHook).Stop()
	}

	// 3. Load data tables
	printSection("data")
	archetypes, err := data.LoadArchetypeTable(cfg.Data.Archetypes)
	if errors.Is(err, fs.ErrNotExist) {
		log.Warn("archetype file not found, using built-in table", zap.String("path", cfg.Data.Archetypes))
		archetypes, err = data.DefaultArchetypes(), nil
	}
	if err != nil {
		return fmt.Errorf("archetypes: %w", err)
	}
	printStat("archetypes", archetypes.Count())

	spawns, err := data.LoadSpawnList(cfg.Data.Spawns)
	if err != nil {
		return fmt.Errorf("spawn list: %w", err)
	}
	printStat("startup placements", len(spawns))

	// 4. Lua rules
	var lua *scripting.Engine
	if cfg.Scripting.Enabled {
		lua, err = scripting.NewEngine(cfg.Scripting.Dir, log)
		if err != nil {
			return fmt.Errorf("scripting: %w", err)
		}
		defer lua.Close()
		printOK("lua scripts loaded from " + cfg.Scripting.Dir)
	} else {
		printSkip("lua scripting disabled")
	}
	fmt.Println()

	// 5. World state
	ws := world.NewState(archetypes, world.NewSettings(cfg), log)
	ws.Populate(spawns)
	feed := hud.NewEventFeed(ws.Bus, log)
	text := hud.NewFormatter(cfg.Display.Language)

	// 6. Optional PostgreSQL ledger
	printSection("database")
	var (
		extra   []coresys.System
		persSys *system.PersistenceSystem
		matches *persist.MatchRepo
		matchID int64
	)
	if cfg.Database.Enabled {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		db, err := persist.NewDB(ctx, cfg.Database, log)
		if err != nil {
			return fmt.Errorf("database: %w", err)
		}
		defer db.Close()
		printOK("PostgreSQL connected")

		if err := persist.RunMigrations(ctx, db.Pool, log); err != nil {
			return fmt.Errorf("migrations: %w", err)
		}
		printOK("migrations applied")

		matches = persist.NewMatchRepo(db)
		if matchID, err = matches.Start(ctx, cfg.Server.Name); err != nil {
			return fmt.Errorf("start match: %w", err)
		}
		interval := int(cfg.Database.FlushInterval / cfg.Simulation.TickRate)
		persSys = system.NewPersistenceSystem(ws, persist.NewLedgerRepo(db), matchID, log, interval)
		extra = append(extra, persSys)
	} else {
		printSkip("database disabled, ledger kept in memory")
	}
	fmt.Println()

	// 7. Input driver and display
	keys := input.NewState()
	var (
		driver input.Driver
		term   *input.TerminalDriver
		screen *hud.TerminalHUD
	)
	if terminal {
		scr, err := tcell.NewScreen()
		if err != nil {
			return fmt.Errorf("terminal: %w", err)
		}
		if err := scr.Init(); err != nil {
			return fmt.Errorf("terminal init: %w", err)
		}
		term = input.NewTerminalDriver(scr)
		driver = term
		screen = hud.NewTerminalHUD(scr, text, feed)
	} else {
		driver = input.NewScriptDriver(lua, log)
	}
	defer driver.Close()

	// 8. Systems
	runner := system.NewPipeline(ws, system.Options{
		Lua:    lua,
		Driver: driver,
		Keys:   keys,
		Extra:  extra,
	})

	// 9. Game loop
	shutdownCh := make(chan os.Signal, 1)
	signal.Notify(shutdownCh, syscall.SIGINT, syscall.SIGTERM)
	var quitCh <-chan struct{}
	if term != nil {
		quitCh = term.Quit()
	}

	tick := cfg.Simulation.TickRate
	ticker := time.NewTicker(tick)
	defer ticker.Stop()

	printSection("ready")
	printReady(fmt.Sprintf("game loop started (tick: %s, input: %s)", tick, cfg.Input.Driver))
	fmt.Println()

	statusEvery := uint64(max(1, int(5*time.Second/tick)))
	finish := func(reason string) {
		log.Info("stopping", zap.String("reason", reason))
		if persSys != nil {
			persSys.Flush()
		}
		if matches != nil {
			c := feed.Counts()
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := matches.Record(ctx, matchID, persist.MatchSummary{
				Ticks:     ws.Tick(),
				Elapsed:   ws.Elapsed(),
				FinalMana: ws.Mana(),
				Spawned:   c.Spawned,
				Died:      c.Died,
				Expired:   c.Expired,
			}); err != nil {
				log.Error("record match failed", zap.Error(err))
			}
		}
		log.Info("simulation stopped",
			zap.Uint64("ticks", ws.Tick()),
			zap.Duration("elapsed", ws.Elapsed()),
			zap.String("mana", text.Mana(ws.Mana())))
	}

	for {
		select {
		case <-ticker.C:
			runner.Tick(tick)
			if screen != nil {
				screen.Draw(ws)
			} else if ws.Tick()%statusEvery == 0 {
				c := feed.Counts()
				log.Info(text.Mana(ws.Mana()),
					zap.Int("entities", ws.EntityCount()),
					zap.Int("spawned", c.Spawned),
					zap.Int("died", c.Died))
			}
			if cfg.Simulation.MaxTicks > 0 && ws.Tick() >= uint64(cfg.Simulation.MaxTicks) {
				finish("max ticks reached")
				return nil
			}
		case sig := <-shutdownCh:
			finish(sig.String())
			return nil
		case <-quitCh:
			finish("quit key")
			return nil
		}
	}
}

func newLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		zapCfg.EncoderConfig.ConsoleSeparator = "  "
		zapCfg.DisableCaller = true
		zapCfg.DisableStacktrace = true
	}
	if cfg.File != "" {
		zapCfg.OutputPaths = []string{cfg.File}
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	return zapCfg.Build()
}
