package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/wamphlett/softbox-controller/config"
	"github.com/wamphlett/softbox-controller/pkg/controller"
	"github.com/wamphlett/softbox-controller/pkg/display"
	"github.com/wamphlett/softbox-controller/pkg/indicator"
	"github.com/wamphlett/softbox-controller/pkg/mqtt"
	"github.com/wamphlett/softbox-controller/pkg/panel"
	"github.com/wamphlett/softbox-controller/pkg/sampler"
	"github.com/wamphlett/softbox-controller/pkg/websocket"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	cfg := config.New()

	logger, closeLog, err := newLogger(cfg.Display)
	if err != nil {
		return err
	}
	defer closeLog()

	opts := []controller.Opt{controller.WithLogger(logger)}

	if cfg.MQTTPublisher.Enabled {
		p, err := mqtt.New(cfg.MQTTPublisher, logger)
		if err != nil {
			return fmt.Errorf("mqtt: %w", err)
		}
		defer p.Close()
		opts = append(opts, controller.WithPublisher(p))
	}

	if cfg.Indicator.Enabled {
		ind, err := indicator.Open(cfg.Indicator.LEDPin)
		if err != nil {
			return fmt.Errorf("indicator: %w", err)
		}
		defer ind.Close()
		opts = append(opts, controller.WithPublisher(ind))
	}

	var s *sampler.Sampler
	if cfg.Input.Enabled {
		adc, err := sampler.Open(cfg.Input.Bus, cfg.Input.Address)
		if err != nil {
			return fmt.Errorf("input: %w", err)
		}
		s = sampler.New(adc, cfg.Input.PollRate)
	}

	if cfg.WebSocket.Enabled {
		hub := websocket.NewHub(cfg.WebSocket, logger)
		opts = append(opts, controller.WithRenderer(hub))
		go func() {
			if err := hub.ListenAndServe(ctx, cfg.WebSocket.Address); err != nil {
				logger.Println("websocket:", err)
				stop()
			}
		}()
	}

	var disp *display.Display
	if !cfg.Display.Headless {
		disp, err = display.New(cfg.Display, logger)
		if err != nil {
			return fmt.Errorf("display: %w", err)
		}
		defer disp.Close()
		opts = append(opts, controller.WithRenderer(disp))
	}

	c, err := controller.New(cfg.Controller, opts...)
	if err != nil {
		return err
	}
	c.Start()
	defer c.Shutdown()

	if s != nil {
		s.Start()
		defer s.Stop()

		switch cfg.Input.Mode {
		case config.InputButtons:
			p := panel.New(cfg.Input, s, c, logger)
			p.Start()
			defer p.Stop()
		default:
			k := sampler.NewKnob(s, c, cfg.Input.ReadRate, cfg.Input.DeadBand)
			k.Start()
			defer k.Stop()
		}
	}

	if disp != nil {
		return disp.Run(ctx, c)
	}

	// wait for shutdown
	<-ctx.Done()
	return nil
}

// newLogger writes to stderr when headless. Otherwise the terminal belongs
// to the display, so logs go to the configured file or nowhere.
func newLogger(cfg *config.Display) (*log.Logger, func() error, error) {
	noop := func() error { return nil }
	if cfg.Headless {
		return log.New(os.Stderr, "softbox: ", log.LstdFlags), noop, nil
	}
	if cfg.LogFile == "" {
		return log.New(io.Discard, "", 0), noop, nil
	}
	f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	return log.New(f, "softbox: ", log.LstdFlags), f.Close, nil
}
