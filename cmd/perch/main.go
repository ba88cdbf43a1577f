package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/cartoon-raccoon/perch/internal/config"
	"github.com/cartoon-raccoon/perch/internal/engine"
	"github.com/cartoon-raccoon/perch/internal/util"
	"github.com/cartoon-raccoon/perch/internal/x11"
)

func main() {
	home, _ := os.UserHomeDir()
	defaultConfig := filepath.Join(home, ".config", "perch", "config.yaml")

	cfgPath := flag.String("config", defaultConfig, "path to YAML config")
	logLevel := flag.String("log-level", "info", "log level (trace|debug|info|warn|error)")
	flag.Parse()

	logger := util.NewLogger(util.ParseLogLevel(*logLevel))

	raw, err := os.ReadFile(*cfgPath)
	cfg := config.Default()
	switch {
	case err == nil:
		cfg, err = config.Parse(raw)
		if err != nil {
			exitErr(fmt.Errorf("load config: %w", err))
		}
	case errors.Is(err, os.ErrNotExist) && *cfgPath == defaultConfig:
		logger.Infof("no config at %s, using defaults", defaultConfig)
		raw = nil
	default:
		exitErr(fmt.Errorf("read config: %w", err))
	}

	conn, err := x11.Connect(logger)
	if err != nil {
		exitErr(err)
	}
	defer conn.Close()

	m := engine.New(conn, logger, cfg)
	if err := m.Setup(); err != nil {
		exitErr(fmt.Errorf("setup: %w", err))
	}
	if err := m.BindConfig(conn.KeycodeOf); err != nil {
		exitErr(fmt.Errorf("bind keys: %w", err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reloadRequests, err := watchConfig(logger, *cfgPath)
	if err != nil {
		logger.Warnf("config watch disabled: %v", err)
		reloadRequests = make(chan string)
	}

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)

	reload := func(reason string) {
		logger.Infof("%s, reloading config", reason)
		next, err := os.ReadFile(*cfgPath)
		if err != nil {
			logger.Errorf("reload: %v", err)
			return
		}
		cfg, err := config.Parse(next)
		if err != nil {
			logger.Errorf("reload: %v", err)
			return
		}
		if diff := config.Diff(raw, next); diff != "" {
			logger.Debugf("config changes:\n%s", diff)
		}
		raw = next
		m.SetConfig(cfg)
		logger.Infof("config reloaded; keybind changes take effect on restart")
	}

	errs := make(chan error, 1)
	go func() {
		errs <- m.Run(ctx)
	}()

	for {
		select {
		case err := <-errs:
			if err != nil && !errors.Is(err, context.Canceled) {
				logger.Errorf("manager exited: %v", err)
				os.Exit(1)
			}
			logger.Infof("manager stopped")
			return
		case reason := <-reloadRequests:
			reload(reason)
		case sig := <-sigs:
			switch sig {
			case syscall.SIGHUP:
				reload("received SIGHUP")
			case os.Interrupt, syscall.SIGTERM:
				logger.Infof("received %s, shutting down", sig)
				cancel()
			}
		}
	}
}

func exitErr(err error) {
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	os.Exit(1)
}
