// Command bootstrap opens a window, brings up a Vulkan instance and logical
// device for the first graphics-capable GPU, and idles until the window is
// closed.
package main

import (
	"flag"
	"fmt"
	"os"
	"runtime"

	"github.com/cockroachdb/errors"
	"github.com/sirupsen/logrus"

	"github.com/vkngwrapper/bootstrap/internal/bootstrap"
	"github.com/vkngwrapper/bootstrap/internal/config"
	"github.com/vkngwrapper/bootstrap/internal/logging"
	"github.com/vkngwrapper/bootstrap/internal/vulkan"
	"github.com/vkngwrapper/bootstrap/internal/window"
)

type Application struct {
	config config.Config
	logger *logrus.Logger

	window  *window.Window
	context *bootstrap.Bootstrapper
}

func (app *Application) Run() error {
	err := app.initWindow()
	if err != nil {
		return err
	}
	defer app.window.Destroy()

	err = app.initVulkan()
	if err != nil {
		return err
	}
	defer app.cleanup()

	app.mainLoop()
	return nil
}

func (app *Application) initWindow() error {
	var err error
	app.window, err = window.Open(app.config.WindowTitle, int32(app.config.WindowWidth), int32(app.config.WindowHeight))
	return err
}

func (app *Application) initVulkan() error {
	loader, err := vulkan.NewLoader(app.window.ProcAddr())
	if err != nil {
		return err
	}

	severity, err := app.config.Severity()
	if err != nil {
		return err
	}

	app.context = bootstrap.New(loader, app.logger, bootstrap.Options{
		ApplicationName:  app.config.ApplicationName,
		EngineName:       app.config.EngineName,
		Diagnostics:      app.config.Diagnostics,
		MinSeverity:      severity,
		Requirement:      bootstrap.QueueGraphics,
		WindowExtensions: app.window.RequiredExtensions(),
	})

	// Bootstrap releases whatever it acquired before returning an error.
	return app.context.Bootstrap()
}

func (app *Application) mainLoop() {
	app.logger.Info("ready; close the window to exit")
	bootstrap.IdleLoop(app.window)
}

func (app *Application) cleanup() {
	app.context.Close()
}

func main() {
	runtime.LockOSThread()

	cfg, err := config.Load(os.Args[1:], os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		os.Exit(0)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	level, err := cfg.EffectiveLogLevel()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	logger, err := logging.New(os.Stderr, level.String(), cfg.LogFormat)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	app := &Application{
		config: cfg,
		logger: logger,
	}

	err = app.Run()
	if err != nil {
		logger.Debugf("%+v", err)
		logger.Fatalln(err)
	}
}
