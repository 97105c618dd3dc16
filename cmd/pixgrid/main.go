package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"runtime/debug"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"github.com/lixenwraith/pixgrid/codec"
	"github.com/lixenwraith/pixgrid/config"
	"github.com/lixenwraith/pixgrid/logger"
	"github.com/lixenwraith/pixgrid/session"
	"github.com/lixenwraith/pixgrid/sound"
)

func main() {
	cfgPath := flag.String("config", config.DefaultPath, "yaml config file")
	verbose := flag.Bool("v", false, "verbose logging")
	rows := flag.Int("rows", 0, "grid rows (overrides config)")
	cols := flag.Int("cols", 0, "grid columns (overrides config)")
	format := flag.String("format", "", "export format: Plain, Formatted or Colored")
	importPath := flag.String("import", "", "grid file to load at startup")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	if *rows > 0 {
		cfg.Grid.Rows = *rows
	}
	if *cols > 0 {
		cfg.Grid.Cols = *cols
	}
	if *format != "" {
		cfg.Export.Format = *format
	}
	if *verbose {
		cfg.Log.Verbose = true
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	// stderr belongs to the screen, so logs go to a file
	l, err := logger.New(cfg.Log.Verbose, cfg.Log.File)
	if err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}
	defer l.Sync() //nolint:errcheck
	ctx := logger.NewContext(context.Background(), l)

	player := sound.NewPlayer(cfg.Sound)
	if err := player.Init(); err != nil {
		l.Warn("audio unavailable", zap.Error(err))
	}
	defer player.Close()

	sess, err := session.New(ctx, cfg, player)
	if err != nil {
		l.Error("new session", zap.Error(err))
		fmt.Fprintf(os.Stderr, "session: %v\n", err)
		os.Exit(1)
	}
	if *importPath != "" {
		if _, err := sess.ImportFile(*importPath, codec.ModeReplace); err != nil {
			fmt.Fprintf(os.Stderr, "import: %v\n", err)
			os.Exit(1)
		}
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create screen: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize screen: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		screen.Fini()
		if r := recover(); r != nil {
			l.Error("crash", zap.Any("panic", r), zap.ByteString("stack", debug.Stack()))
			fmt.Fprintf(os.Stderr, "CRASH: %v\n%s\n", r, debug.Stack())
			os.Exit(2)
		}
	}()

	l.Info("started",
		zap.Int("rows", cfg.Grid.Rows),
		zap.Int("cols", cfg.Grid.Cols),
		zap.Stringer("format", sess.Format))
	NewEditor(screen, sess).Run()
}
