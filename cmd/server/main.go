package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/christopherhurt/AmbiguousGame/config"
	"github.com/christopherhurt/AmbiguousGame/handlers"
	"github.com/christopherhurt/AmbiguousGame/logging"
	"github.com/christopherhurt/AmbiguousGame/mapgen"
	"github.com/christopherhurt/AmbiguousGame/metrics"
	"github.com/christopherhurt/AmbiguousGame/persistence"
	"github.com/christopherhurt/AmbiguousGame/services"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML config file (defaults to $GAME_CONFIG)")
	seedFlag := flag.Uint64("seed", 0, "world seed, overrides world.seed; 0 derives one from the clock")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if err := logging.Init(logging.ParseLevel(cfg.Log.Level), cfg.Log.File); err != nil {
		log.Fatalf("Failed to initialize logging: %v", err)
	}
	defer logging.Close()

	if err := run(cfg, *seedFlag); err != nil {
		logging.Error("%v", err)
		logging.Close()
		os.Exit(1)
	}
}

func run(cfg *config.Config, seedOverride uint64) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	seed := cfg.World.Seed
	if seedOverride != 0 {
		seed = seedOverride
	}
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	params, err := cfg.GenerationParams()
	if err != nil {
		return err
	}
	world, err := mapgen.Generate(seed, params)
	if err != nil {
		return fmt.Errorf("world generation failed: %w", err)
	}
	logging.Info("Generated %dx%d world seed=%d land=%d islands=%d objects=%d in %s",
		world.Map.Cols, world.Map.Rows, world.Seed, world.Stats.LandTiles, world.Stats.Islands,
		world.Stats.Objects, world.Stats.Elapsed)

	colliders, err := cfg.ColliderSet()
	if err != nil {
		return err
	}
	worldService := services.NewWorldService(world, colliders)
	// A world nobody can stand on is not worth serving
	if _, err := worldService.FindSpawn(); err != nil {
		return fmt.Errorf("world generation failed: %w", err)
	}
	playerService := services.NewPlayerService(worldService)

	collector := metrics.New()
	collector.ObserveWorld(world.Stats)

	archive, err := persistence.Open(ctx, cfg.Archive)
	if err != nil {
		return fmt.Errorf("failed to initialize archive: %w", err)
	}
	if archive != nil {
		defer archive.Close()
		name := cfg.Archive.Name + "-generated"
		if err := archive.SaveWorld(ctx, name, worldService.Snapshot()); err != nil {
			logging.Warn("Failed to archive %s: %v", name, err)
		} else {
			logging.Info("Archived world as %s", name)
		}
	}

	session := handlers.NewSessionServer(worldService, playerService, collector, handlers.Options{
		SendBuffer: cfg.Server.SendBuffer,
		ReadLimit:  cfg.Server.ReadLimit,
	})

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", session.ServeWS)
	gameServer := &http.Server{Addr: fmt.Sprintf(":%d", cfg.Server.Port), Handler: mux}

	metricsMux := http.NewServeMux()
	metricsMux.Handle("/metrics", collector.Handler())
	metricsServer := &http.Server{Addr: fmt.Sprintf(":%d", cfg.Server.MetricsPort), Handler: metricsMux}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return session.Run(gctx)
	})
	g.Go(func() error {
		logging.Info("Server starting on port %d", cfg.Server.Port)
		return listen(gameServer)
	})
	g.Go(func() error {
		logging.Info("Metrics on port %d", cfg.Server.MetricsPort)
		return listen(metricsServer)
	})
	g.Go(func() error {
		<-gctx.Done()
		logging.Info("Shutting down...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return errors.Join(gameServer.Shutdown(shutdownCtx), metricsServer.Shutdown(shutdownCtx))
	})
	err = g.Wait()

	// The session loop has stopped, so the map is no longer being edited
	if archive != nil {
		saveCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		name := cfg.Archive.Name + "-final"
		if serr := archive.SaveWorld(saveCtx, name, worldService.Snapshot()); serr != nil {
			logging.Warn("Failed to archive %s: %v", name, serr)
		} else {
			logging.Info("Archived world as %s", name)
		}
	}
	return err
}

func listen(srv *http.Server) error {
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("listen %s: %w", srv.Addr, err)
	}
	return nil
}
