package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jwebster45206/scene-engine/internal/config"
	"github.com/jwebster45206/scene-engine/internal/game"
	"github.com/jwebster45206/scene-engine/internal/logger"
	"github.com/jwebster45206/scene-engine/internal/storage"
	"github.com/jwebster45206/scene-engine/pkg/nav"
	"github.com/jwebster45206/scene-engine/pkg/scene"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	log := logger.Setup(cfg)

	manifest, err := config.LoadWorld(cfg.DataDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load world manifest: %v\n", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	saveStore := newSaveStore(cfg, log)
	defer func() {
		_ = saveStore.Close() // Ignore error in defer
	}()

	saved, err := saveStore.LoadLatest(ctx)
	if err != nil {
		log.Warn("could not read save, starting fresh", "error", err)
	}
	var start *nav.Pointer
	if saved != nil {
		start = saved.Pointer
	}

	var program *tea.Program
	view := newTeaView(func(msg tea.Msg) {
		program.Send(msg)
	})

	g, err := game.New(game.Options{
		DataDir:  cfg.DataDir,
		Manifest: manifest,
		View:     view,
		Start:    start,
		Logger:   log,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to start game: %v\n", err)
		os.Exit(1)
	}
	if saved != nil {
		g.Restore(saved)
	}

	program = tea.NewProgram(NewConsoleUI(),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion())

	saver := game.NewAutoSaver(saveStore, g, log)
	go func() {
		var runErr error
		for {
			var result any
			result, runErr = saver.Step(ctx)
			if runErr != nil || result == nil {
				break
			}
			if s, ok := result.(string); ok && s == scene.ChoiceExit {
				break
			}
		}
		if ctx.Err() != nil {
			runErr = nil
		}
		program.Send(gameDoneMsg{err: runErr})
	}()

	if _, err := program.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running program: %v\n", err)
		os.Exit(1)
	}
	cancel()
}

// newSaveStore picks the configured save backend. An unreachable Redis
// degrades to the file store so a session can always start.
func newSaveStore(cfg *config.Config, log *slog.Logger) storage.SaveStore {
	if cfg.SaveBackend == "redis" {
		store := storage.NewRedisSaveStore(cfg.RedisAddr, log)
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		if err := store.Ping(ctx); err == nil {
			return store
		}
		log.Warn("redis unreachable, falling back to file saves", "addr", cfg.RedisAddr)
		_ = store.Close() // Ignore error on fallback
	}
	return storage.NewFileSaveStore(cfg.SaveFile, log)
}
