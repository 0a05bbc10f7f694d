package ui

import (
	"context"
	"errors"
	"time"

	"deskcalc/internal/config"
	"deskcalc/internal/logging"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// RunOptions configures an interactive session.
type RunOptions struct {
	Options

	// ConfigPath, when set, is watched for theme changes.
	ConfigPath    string
	WatcherLogger *zap.Logger
}

// Run shows the calculator until the user quits or ctx is cancelled. The
// config watcher, if any, runs alongside the program and stops with it.
func Run(ctx context.Context, opts RunOptions) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	start := time.Now()
	defer func() {
		logging.UI("session ended after %s", time.Since(start).Round(time.Second))
	}()

	m := NewModel(opts.Options)
	defer m.Close()

	p := tea.NewProgram(m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	)

	g, gctx := errgroup.WithContext(ctx)

	if opts.ConfigPath != "" {
		w, err := config.NewWatcher(opts.ConfigPath, func(cfg *config.Config) {
			p.Send(ThemeMsg{Dark: cfg.UI.IsDark()})
		}, opts.WatcherLogger)
		if err != nil {
			// The calculator works without live reload.
			m.logger.Warn("config watch disabled", zap.Error(err))
		} else {
			g.Go(func() error {
				return w.Run(gctx)
			})
		}
	}

	g.Go(func() error {
		defer cancel()
		_, err := p.Run()
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return err
	})

	return g.Wait()
}
