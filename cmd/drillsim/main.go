package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/deepdrill/drillsim/internal/config"
	"github.com/deepdrill/drillsim/internal/core/event"
	"github.com/deepdrill/drillsim/internal/data"
	"github.com/deepdrill/drillsim/internal/persist"
	"github.com/deepdrill/drillsim/internal/scripting"
	"github.com/deepdrill/drillsim/internal/sim"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

// ── Startup display helpers ────────────────────────────────────────

func printBanner() {
	fmt.Println()
	fmt.Println("\033[36;1m  ┌───────────────────────────────────────────┐\033[0m")
	fmt.Println("\033[36;1m  │\033[0m             drillsim  v0.1.0              \033[36;1m│\033[0m")
	fmt.Println("\033[36;1m  │\033[0m        headless descent simulator         \033[36;1m│\033[0m")
	fmt.Println("\033[36;1m  └───────────────────────────────────────────┘\033[0m")
	fmt.Println()
}

func printSection(title string) {
	lineLen := max(46-len(title)-1, 3)
	fmt.Printf("  \033[33m── %s %s\033[0m\n", title, strings.Repeat("─", lineLen))
}

func printStat(label string, count int) {
	numStr := fmt.Sprintf("%d", count)
	dotsLen := max(42-len(label)-len(numStr), 3)
	fmt.Printf("  %s \033[90m%s\033[0m \033[32m%s\033[0m\n", label, strings.Repeat("·", dotsLen), numStr)
}

func printOK(msg string) {
	fmt.Printf("  \033[32m✓\033[0m %s\n", msg)
}

func printReady(msg string) {
	fmt.Printf("  \033[32m▶\033[0m %s\n", msg)
}

// ── Main loop ─────────────────────────────────────────────────────

func run() error {
	// 1. Load config
	cfgPath := "config/drillsim.toml"
	if p := os.Getenv("DRILLSIM_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// 2. Init logger
	log, err := newLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	printBanner()

	// 3. Catalogs and scripts
	printSection("Catalogs")
	minerals, err := data.LoadMineralTable(cfg.Data.MineralList)
	if err != nil {
		return fmt.Errorf("minerals: %w", err)
	}
	printStat("mineral kinds", minerals.Count())
	shop, err := data.LoadShopTable(cfg.Data.ShopList)
	if err != nil {
		return fmt.Errorf("shop: %w", err)
	}
	printStat("shop items", shop.Count())

	lua, err := scripting.NewEngine(cfg.Data.ScriptsDir, log)
	if err != nil {
		return fmt.Errorf("scripts: %w", err)
	}
	defer lua.Close()
	if lua.HasValuation() {
		printOK("mineral_value hook loaded")
	} else {
		printOK("default mineral pricing")
	}
	fmt.Println()

	// 4. Optional run history
	var runs runStore
	if cfg.Database.DSN != "" {
		printSection("Database")
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		db, err := persist.NewDB(ctx, cfg.Database, log)
		if err != nil {
			return fmt.Errorf("database: %w", err)
		}
		defer db.Close()
		printOK("PostgreSQL connected")

		version, err := persist.RunMigrations(ctx, db.Pool)
		if err != nil {
			return fmt.Errorf("migrations: %w", err)
		}
		printOK(fmt.Sprintf("schema at version %d", version))
		runs = persist.NewRunRepo(db)
		fmt.Println()
	}

	// 5. Simulation
	seed := cfg.Game.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	s := sim.New(sim.Options{
		Game:     cfg.Game,
		Minerals: minerals,
		Shop:     shop,
		Valuer:   lua,
		Rand:     rand.New(rand.NewSource(seed)),
		Log:      log,
	})

	rec := newRecorder(runs, seed, log)
	finished := 0
	event.Subscribe(s.Bus(), func(ev event.LaunchSucceeded) {
		log.Info("launch", zap.Stringer("run", ev.RunID), zap.Float64("speed", ev.TargetSpeed))
	})
	event.Subscribe(s.Bus(), func(ev event.ItemPurchased) {
		log.Info("purchase", zap.Stringer("node", ev.Node), zap.Int64("cost", ev.Cost), zap.Int("tier", ev.Tier))
	})
	event.Subscribe(s.Bus(), func(ev event.MineralCollected) {
		log.Debug("collected", zap.Stringer("kind", ev.Kind), zap.Int64("value", ev.Value))
	})
	event.Subscribe(s.Bus(), func(ev event.PhaseEnded) {
		finished++
		sum := ev.Summary
		log.Info("run finished",
			zap.Stringer("run", sum.RunID),
			zap.Float64("duration", sum.Duration),
			zap.Float64("max_depth", sum.MaxDepth),
			zap.Int64("earned", sum.MoneyEarned),
			zap.Int("collected", sum.Collected),
			zap.Int("bounces", sum.Bounces),
			zap.Int64("money", s.Money()),
		)
		rec.add(sum)
	})
	pilot := newAutopilot(s, log.Named("autopilot"))

	// 6. Start tick loop
	shutdownCh := make(chan os.Signal, 1)
	signal.Notify(shutdownCh, syscall.SIGINT, syscall.SIGTERM)

	ticker := time.NewTicker(cfg.Loop.TickRate)
	defer ticker.Stop()

	printSection("Running")
	printReady(fmt.Sprintf("seed %d", seed))
	printReady(fmt.Sprintf("tick loop started (tick: %s)", cfg.Loop.TickRate))
	fmt.Println()

	for {
		select {
		case <-ticker.C:
			if cfg.Loop.Autopilot {
				pilot.step()
			}
			s.Tick(cfg.Loop.TickRate)
			rec.flushIfFull()
			if cfg.Loop.MaxRuns > 0 && finished >= cfg.Loop.MaxRuns {
				rec.flush()
				log.Info("run limit reached", zap.Int("runs", finished))
				return nil
			}
		case sig := <-shutdownCh:
			log.Info("shutdown signal", zap.String("signal", sig.String()))
			rec.flush()
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
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	return zapCfg.Build()
}
