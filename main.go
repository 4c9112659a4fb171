package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/llehouerou/reelpreview/internal/app"
	"github.com/llehouerou/reelpreview/internal/config"
	"github.com/llehouerou/reelpreview/internal/errmsg"
	"github.com/llehouerou/reelpreview/internal/logging"
	"github.com/llehouerou/reelpreview/internal/mpris"
	"github.com/llehouerou/reelpreview/internal/notify"
	"github.com/llehouerou/reelpreview/internal/playback"
	"github.com/llehouerou/reelpreview/internal/player"
	"github.com/llehouerou/reelpreview/internal/reel"
	"github.com/llehouerou/reelpreview/internal/stderr"
)

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintln(os.Stderr, "usage: reelpreview REEL.yaml")
		os.Exit(2)
	}

	if err := run(os.Args[1]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(path string) error {
	cfg, err := config.Load()
	if err != nil {
		return errors.New(errmsg.Format(errmsg.OpConfigLoad, err))
	}

	log, closeLog, err := logging.New(cfg.GetLogConfig())
	if err != nil {
		return errors.New(errmsg.Format(errmsg.OpLogInit, err))
	}
	defer closeLog()

	// Audio backends write to fd 2, which would tear the TUI.
	if err := stderr.Start(log); err != nil {
		log.Warn("stderr capture unavailable", zap.Error(err))
	}
	defer stderr.Stop()

	r, err := reel.Load(path, cfg.Durations)
	if err != nil {
		return errors.New(errmsg.FormatWith(errmsg.OpReelLoad, path, err))
	}

	var p player.Interface
	if cfg.AudioEnabled() {
		pl := player.New()
		pl.SetVolume(cfg.GetAudioConfig().Volume)
		p = pl
	}

	opts := app.Options{
		Config:   cfg,
		Logger:   log,
		Player:   p,
		Autoplay: true,
	}
	if cfg.Notify.Finished {
		opts.Notifier = notify.New(log)
	}

	var media *mpris.Adapter
	if cfg.Notify.MPRIS {
		opts.OnSession = func(ctrl *playback.Controller, title string) {
			if media != nil {
				media.SetSession(ctrl, title)
				return
			}
			a, err := mpris.New(ctrl, title, log)
			if err != nil {
				log.Warn("media controls unavailable", zap.Error(err))
				return
			}
			media = a
		}
	}

	m, err := app.New(r, opts)
	if err != nil {
		return errors.New(errmsg.FormatWith(errmsg.OpReelBuild, path, err))
	}
	defer m.Close()
	if media != nil {
		defer func() { _ = media.Close() }()
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		if err := reel.Watch(ctx, path, cfg.Durations, m.ReelChanged); err != nil {
			log.Warn("reel watch stopped", zap.String("path", path), zap.Error(err))
		}
	}()

	log.Info("preview started", zap.String("reel", path), zap.Int("segments", len(r.Segments)))
	if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
		return errors.New(errmsg.Format(errmsg.OpInitialize, err))
	}
	return nil
}
