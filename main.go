/*
The testbed application. It opens a window, pushes the editor layer and runs
until the window is closed or the process is interrupted.
*/
package main

import (
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/spaghettifunk/stratum/engine"
	"github.com/spaghettifunk/stratum/engine/core"
	"github.com/spaghettifunk/stratum/engine/platform"
	"github.com/spaghettifunk/stratum/testbed"
)

func main() {
	configPath := flag.String("config", "config.toml", "path to the application config")
	flag.Parse()

	config, err := engine.LoadConfig(*configPath)
	if os.IsNotExist(err) {
		core.LogWarn("config %s not found, using defaults", *configPath)
		config, err = engine.DefaultConfig(), nil
	}
	if err != nil {
		core.LogFatal("%s", err)
	}

	app, err := engine.New(config, engine.Options{Window: newWindow})
	if err != nil {
		core.LogFatal("failed to create application: %s", err)
	}
	app.PushLayer(testbed.NewEditor(app))

	// signal channel to capture system calls
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)

	// the run loop owns the application, so a signal only asks it to close
	go func() {
		<-sigCh
		app.Dispatcher().QueueEvent(core.WindowCloseEvent{})
	}()

	runErr := app.Run()
	if err := app.Shutdown(); err != nil {
		core.LogError("shutdown: %s", err)
	}
	if runErr != nil {
		core.LogFatal("%s", runErr)
	}
}

func newWindow(cfg *engine.ApplicationConfig, input *core.Input, dispatcher *core.EventDispatcher) (engine.Window, error) {
	window, err := platform.NewWindow(platform.WindowConfig{
		Title:  cfg.Name,
		X:      cfg.Window.X,
		Y:      cfg.Window.Y,
		Width:  cfg.Window.Width,
		Height: cfg.Window.Height,
		VSync:  cfg.Window.VSync,
	}, input, dispatcher)
	if err != nil {
		return nil, err
	}
	return window, nil
}
