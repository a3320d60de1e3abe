// Command suburbfall runs the suburban collapse colony simulation.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/nvandermeer/suburbfall/internal/api"
	"github.com/nvandermeer/suburbfall/internal/chronicle"
	"github.com/nvandermeer/suburbfall/internal/config"
	"github.com/nvandermeer/suburbfall/internal/notify"
	"github.com/nvandermeer/suburbfall/internal/sim"
)

var (
	flagConfig string
	flagDB     string
	flagPort   int
	flagSeed   int64
)

func main() {
	root := &cobra.Command{
		Use:   "suburbfall",
		Short: "Suburban collapse colony simulation",
		Long: "Suburbfall simulates a backyard survivor colony through resource runs,\n" +
			"rival factions, conspiracy events, and visiting traders.",
	}

	run := &cobra.Command{
		Use:   "run",
		Short: "Run the simulation with the HTTP API",
		RunE:  runSimulation,
	}
	run.Flags().StringVarP(&flagConfig, "config", "c", "", "path to tuning YAML (optional)")
	run.Flags().StringVar(&flagDB, "db", "data/suburbfall.db", "chronicle database path")
	run.Flags().IntVarP(&flagPort, "port", "p", 8080, "HTTP API port")
	run.Flags().Int64Var(&flagSeed, "seed", 0, "world seed (0 = random)")

	root.AddCommand(run)

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func runSimulation(cmd *cobra.Command, args []string) error {
	// .env is optional; environment wins over file values.
	if err := godotenv.Load(); err == nil {
		slog.Debug("loaded .env")
	}

	level := slog.LevelInfo
	if os.Getenv("SUBURBFALL_DEBUG") != "" {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	cfg := config.Default()
	if flagConfig != "" {
		loaded, err := config.Load(flagConfig)
		if err != nil {
			return fmt.Errorf("load tuning: %w", err)
		}
		cfg = loaded
		slog.Info("tuning loaded", "path", flagConfig)
	}
	if flagSeed != 0 {
		cfg.Seed = flagSeed
	}

	if dir := filepath.Dir(flagDB); dir != "." {
		os.MkdirAll(dir, 0755)
	}
	archive, err := chronicle.Open(flagDB)
	if err != nil {
		return fmt.Errorf("open chronicle: %w", err)
	}
	defer archive.Close()
	slog.Info("chronicle opened", "path", flagDB)

	bus := notify.NewBus()
	world := sim.NewWorld(cfg, bus)

	archive.Attach(bus, func() (int, string) {
		return world.Clock.Day(), world.Clock.String()
	})
	archive.SaveMeta("seed", fmt.Sprintf("%d", cfg.Seed))

	// End-of-day summary rows. Bus callbacks run inside the tick, so world
	// state can be read directly here.
	bus.Subscribe(func(n notify.Notification) {
		if n.Kind != notify.KindDayChanged {
			return
		}
		stockJSON, _ := json.Marshal(world.Ledger.All())
		stats := chronicle.DailyStats{
			Day:            world.Clock.Day(),
			Survivors:      world.Roster.Count(),
			Wanderers:      len(world.Roster.Wanderers()),
			Buildings:      len(world.Yard.Buildings()),
			ConspiracyHeat: world.Shared.ConspiracyHeat(),
			StockpileJSON:  string(stockJSON),
		}
		if err := archive.RecordDailyStats(stats); err != nil {
			slog.Error("daily stats record failed", "error", err)
		}
	})

	adminKey := os.Getenv("SUBURBFALL_ADMIN_KEY")
	if adminKey == "" {
		slog.Warn("SUBURBFALL_ADMIN_KEY not set, admin POST endpoints disabled")
	}

	server := &api.Server{
		World:    world,
		Archive:  archive,
		Port:     flagPort,
		AdminKey: adminKey,
	}
	server.Start()

	ctx, cancel := context.WithCancel(context.Background())
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		slog.Info("received signal, shutting down", "signal", sig)
		cancel()
	}()

	fmt.Printf("Suburbfall is live: %d survivors holding the cul-de-sac.\n", world.Roster.Count())
	fmt.Printf("API: http://localhost:%d/api/v1/status\n", flagPort)
	fmt.Println("Starting simulation... (Ctrl+C to stop)")

	world.Loop(ctx)

	fmt.Println("Simulation stopped. Chronicle saved.")
	return nil
}
