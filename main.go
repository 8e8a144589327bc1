/*
Buddha renders a gilded statue on a marble table under a sky dome, lit by
light shafts with dust floating through them. The camera orbits on its own;
ESC or closing the window quits.
*/
package main

import (
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/spaghettifunk/buddha/buddha"
	"github.com/spaghettifunk/buddha/engine"
	"github.com/spaghettifunk/buddha/engine/config"
	"github.com/spaghettifunk/buddha/engine/core"
)

func main() {
	configPath := flag.String("config", config.DefaultPath, "path to the TOML configuration")
	flag.Parse()

	// run has already shut the engine down when it returns
	if err := run(*configPath); err != nil {
		core.LogFatal(err.Error())
	}
}

func run(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	level, err := core.ParseLogLevel(cfg.Log.Level)
	if err != nil {
		return err
	}
	core.LogSetLevel(level)
	core.LogSetPrefix(cfg.Application.Name)

	demo, err := buddha.NewBuddhaDemo(cfg)
	if err != nil {
		return err
	}

	e, err := engine.New(demo.Game)
	if err != nil {
		return err
	}
	defer func() {
		if err := e.Shutdown(); err != nil {
			core.LogError("shutdown failed: %s", err)
		}
	}()

	if err := e.Initialize(); err != nil {
		return err
	}

	watcher, err := config.NewWatcher(configPath)
	if err != nil {
		// hot reload is a convenience, the demo runs without it
		core.LogWarn("config hot reload disabled: %s", err)
	}
	defer watcher.Close()
	e.WatchConfig(watcher.Updates())

	// signal channel to capture system calls
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)
	defer signal.Stop(sigCh)

	// the GL context belongs to this thread, so shutdown happens here once Run returns
	go func() {
		<-sigCh
		e.Quit()
	}()

	return e.Run()
}
