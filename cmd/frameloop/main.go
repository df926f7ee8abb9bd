package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/lixenwraith/frameloop/config"
	"github.com/lixenwraith/frameloop/engine"
	"github.com/lixenwraith/frameloop/game"
	"github.com/lixenwraith/frameloop/input"
	"github.com/lixenwraith/frameloop/status"
	"github.com/lixenwraith/frameloop/window"
)

var (
	configFlag = flag.String("config", "", "Path to a .toml or .yaml config file")
	debugFlag  = flag.Bool("debug", false, "Write logs to logs/frameloop.log")
	titleFlag  = flag.String("title", "", "Window title, overrides the config")
	colorFlag  = flag.String("color", "auto", "Color mode: auto, truecolor, 256")
	writeFlag  = flag.String("write-config", "", "Write the effective config as TOML to this path and exit")
)

func main() {
	flag.Parse()
	os.Exit(run())
}

func run() (code int) {
	var term *window.Terminal
	defer func() {
		if r := recover(); r != nil {
			var f finalizer
			if term != nil {
				f = term
			}
			code = reportCrash(r, f, os.Stderr)
		}
	}()

	if logFile := setupLogging(*debugFlag); logFile != nil {
		defer logFile.Close()
	}
	applyColorMode(*colorFlag)

	cfg := config.Default()
	if *configFlag != "" {
		loaded, err := config.Load(*configFlag)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
			return 1
		}
		cfg = loaded
	}
	if *titleFlag != "" {
		cfg.Window.Title = *titleFlag
	}
	if *writeFlag != "" {
		if err := writeConfig(*writeFlag, cfg); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to write config: %v\n", err)
			return 1
		}
		return 0
	}

	up, down, quit, err := bindKeys(cfg.Input)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid key binding: %v\n", err)
		return 1
	}

	clock := engine.NewSystemClock()
	keyboard := input.NewKeyboard(clock, cfg.Input.HoldTimeout.Duration)
	opener := window.NewTerminalOpener(window.TerminalOptions{Keys: keyboard, QuitKey: quit})

	reg := status.NewRegistry()
	logic := game.NewTintLogic(keyboard, game.TintOptions{
		Up:         up,
		Down:       down,
		Steps:      cfg.Scene.ColorSteps,
		CellAspect: cfg.Window.CellAspect,
		Status:     reg,
	})

	eng := engine.New(cfg.Window.Title, logic,
		engine.WithConfig(cfg),
		engine.WithClock(clock),
		engine.WithSampler(keyboard),
		engine.WithStatus(reg),
		engine.WithLogger(log.Default()),
		engine.WithOpener(window.OpenerFunc(func(title string, w, h int) (window.Window, error) {
			win, err := opener.Open(title, w, h)
			if t, ok := win.(*window.Terminal); ok {
				term = t
			}
			return win, err
		})),
	)

	err = eng.StartGame()
	log.Printf("[main] %s", reg.Summary())
	if err != nil {
		log.Printf("[main] %v", err)
		fmt.Fprintf(os.Stderr, "frameloop: %v\n", err)
		return 1
	}
	return 0
}

// writeConfig saves cfg as a TOML file that -config accepts
func writeConfig(path string, cfg config.Config) error {
	data, err := config.EncodeTOML(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// bindKeys resolves the configured key names
func bindKeys(ic config.InputConfig) (up, down, quit input.Key, err error) {
	if up, err = input.ParseKey(ic.Up); err != nil {
		return
	}
	if down, err = input.ParseKey(ic.Down); err != nil {
		return
	}
	quit, err = input.ParseKey(ic.Quit)
	return
}

// applyColorMode steers tcell's color detection through its environment variables
func applyColorMode(mode string) {
	switch mode {
	case "256":
		os.Setenv("TCELL_TRUECOLOR", "disable")
	case "truecolor", "true", "24bit":
		os.Setenv("COLORTERM", "truecolor")
	}
}
