package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/sync/errgroup"

	"go-surface/capture"
	"go-surface/config"
	"go-surface/debug"
	"go-surface/midi"
	"go-surface/protocol"
	"go-surface/surface"
	"go-surface/theme"
	"go-surface/tui"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	applyDebug(cfg)
	defer debug.Disable()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	g, ctx := errgroup.WithContext(ctx)

	// Every encoder bank hangs off the fanout: the terminal view always,
	// a knob box while one is plugged in.
	bridge := tui.NewBridge()
	encoders := surface.NewFanout()
	encoders.Attach("tui", bridge)

	var link midi.HostLink
	var opts []protocol.Option
	if cfg.Capture.Enabled {
		rec, closeStore, err := startCapture(cfg)
		if err != nil {
			return err
		}
		defer closeStore()
		opts = append(opts, protocol.WithTap(rec.Tap))
		g.Go(func() error { return rec.Run(ctx) })
	}

	disp := protocol.NewDispatcher(nil, &link, opts...)
	s := surface.New(disp, bridge, encoders)
	s.Apply(settingsOf(cfg))
	loop := surface.NewLoop(s, disp, 256)

	devices := midi.NewDeviceManager(midi.Match{
		Host:  cfg.Host.Port,
		Knobs: cfg.Knobs.Port,
		Map: midi.KnobMap{
			Channel:   cfg.Knobs.Channel,
			FirstCC:   cfg.Knobs.FirstCC,
			FirstNote: cfg.Knobs.FirstNote,
		},
	}, time.Duration(cfg.Host.PollMS)*time.Millisecond)

	g.Go(func() error { return loop.Run(ctx) })
	g.Go(func() error { return devices.Run(ctx) })
	g.Go(func() error {
		for ev := range devices.Events() {
			handleDevice(g, ev, &link, encoders, loop)
			bridge.Post(tui.LinkMsg{ID: ev.ID, Connected: ev.Type == midi.DeviceConnected})
		}
		return nil
	})

	if path, err := config.ConfigPath(); err == nil {
		g.Go(func() error {
			return config.Watch(ctx, path, func(next *config.Config) {
				applyDebug(next)
				loop.PushSettings(settingsOf(next))
				debug.Log("config", "reloaded %s", path)
			})
		})
	}

	th := theme.Load(cfg.UI.Palette)
	model := tui.NewModel(th, loop.PushInput, cfg.Encoders.Coarse)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(ctx))
	bridge.Attach(p.Send)
	g.Go(func() error {
		_, err := p.Run()
		stop()
		if errors.Is(err, tea.ErrProgramKilled) {
			return nil
		}
		return err
	})

	return g.Wait()
}

// handleDevice routes a hot-plugged port pair into the loop. Pumps end
// when the device manager closes the port.
func handleDevice(g *errgroup.Group, ev midi.DeviceEvent, link *midi.HostLink, encoders *surface.Fanout, loop *surface.Loop) {
	if ev.Type == midi.DeviceDisconnected {
		link.Clear(ev.ID)
		encoders.Detach(ev.ID)
		return
	}
	switch c := ev.Controller.(type) {
	case *midi.HostPort:
		link.Set(c)
		loop.Resync()
		g.Go(func() error {
			for f := range c.Frames() {
				loop.PushFrame(f)
			}
			return nil
		})
	case *midi.KnobBox:
		encoders.Attach(c.ID(), c)
		g.Go(func() error {
			for in := range c.Inputs() {
				loop.PushInput(in)
			}
			return nil
		})
	}
}

func settingsOf(cfg *config.Config) surface.Settings {
	st := surface.DefaultSettings()
	if cfg.Encoders.Sensitivity > 0 {
		st.Sensitivity = cfg.Encoders.Sensitivity
	}
	return st
}

func applyDebug(cfg *config.Config) {
	switch {
	case cfg.Debug.Enabled && !debug.Enabled():
		if err := debug.Enable(cfg.DebugPath()); err != nil {
			fmt.Fprintf(os.Stderr, "debug log: %v\n", err)
		}
	case !cfg.Debug.Enabled && debug.Enabled():
		debug.Disable()
	}
}

// startCapture opens the capture store and begins a session.
func startCapture(cfg *config.Config) (*capture.Recorder, func(), error) {
	store, err := capture.Open(cfg.CapturePath())
	if err != nil {
		return nil, nil, err
	}
	sess, err := store.Begin(cfg.Host.Port)
	if err != nil {
		store.Close()
		return nil, nil, err
	}
	debug.Log("capture", "session %s in %s", sess.ID, cfg.CapturePath())
	closeStore := func() {
		if err := store.Close(); err != nil {
			debug.Warn("capture", "close: %v", err)
		}
	}
	return capture.NewRecorder(store, sess.ID), closeStore, nil
}
