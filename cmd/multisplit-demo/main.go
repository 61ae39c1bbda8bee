// Copyright © 2026 MultiSplit contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: cmd/multisplit-demo/main.go
// Summary: Implements the CLI harness for the reference tcell demo host.
// Usage: Executed by developers to drive a multisplit.Engine interactively.
// Notes: Focuses on wiring flags, config, and lifecycle around the engine.

// Command multisplit-demo is a reference host: it drives a multisplit.Engine
// with a real terminal through tcell, rendering the reconciled layout as
// bordered boxes and routing keyboard input to the engine's command
// surface. It exists to exercise the engine the way a real terminal
// multiplexer or editor would, not as a production application.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"runtime/pprof"
	"sync/atomic"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"golang.org/x/term"

	"github.com/texelation/multisplit"
	"github.com/texelation/multisplit/geometry"
	"github.com/texelation/multisplit/model"
	"github.com/texelation/multisplit/persist"
)

func main() {
	tcell.SetEncodingFallback(tcell.EncodingFallbackASCII)

	simulate := flag.Bool("simulate", false, "Use a tcell simulation screen instead of the real terminal")
	layoutPath := flag.String("layout", "", "Path to autosave/restore the layout (default: ~/.config/multisplit/layout.json)")
	fromScratch := flag.Bool("from-scratch", false, "Start from scratch, ignoring any saved layout")
	cpuProfile := flag.String("pprof-cpu", "", "Write CPU profile to file")
	memProfile := flag.String("pprof-mem", "", "Write heap profile to file on exit")
	verboseLogs := flag.Bool("verbose-logs", false, "Enable verbose demo logging")
	flag.Parse()

	if !*verboseLogs {
		if f := logFile(); f != nil {
			defer f.Close()
			log.SetOutput(f)
		} else {
			log.SetOutput(io.Discard)
		}
	}

	cfg, err := Load()
	if err != nil {
		log.Printf("Warning: failed to load config: %v, using defaults", err)
		cfg = Default()
	}

	if *cpuProfile != "" {
		f, err := os.Create(*cpuProfile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to create CPU profile: %v\n", err)
			os.Exit(1)
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			fmt.Fprintf(os.Stderr, "failed to start CPU profile: %v\n", err)
			os.Exit(1)
		}
		defer func() {
			pprof.StopCPUProfile()
			_ = f.Close()
		}()
	}

	var screen tcell.Screen
	if *simulate {
		simScreen := tcell.NewSimulationScreen("ansi")
		// tcell's simulation screen defaults to 80x24 until Init; ask the
		// real terminal how big it actually is so the demo looks right
		// even before a resize event ever arrives.
		if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 && h > 0 {
			simScreen.SetSize(w, h)
		}
		screen = simScreen
	} else {
		s, err := tcell.NewScreen()
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to create screen: %v\n", err)
			os.Exit(1)
		}
		screen = s
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "failed to init screen: %v\n", err)
		os.Exit(1)
	}
	defer screen.Fini()

	path := *layoutPath
	if path == "" {
		path = defaultLayoutPath()
	}

	engine := multisplit.New(newDemoProvider(), multisplit.Options{
		Epsilon:         cfg.Epsilon,
		HistoryCapacity: cfg.UndoDepth,
	})

	loaded := false
	if !*fromScratch && path != "" {
		if data, err := os.ReadFile(path); err == nil {
			if err := engine.Load(data); err != nil {
				log.Printf("Warning: failed to load layout from %s: %v, starting fresh", path, err)
			} else {
				loaded = true
				log.Printf("Layout restored from %s", path)
			}
		}
	}
	if !loaded {
		if _, err := engine.InsertInitial("welcome"); err != nil {
			fmt.Fprintf(os.Stderr, "failed to create initial pane: %v\n", err)
			os.Exit(1)
		}
	}

	var newPaneSeq atomic.Int64
	nextWidgetID := func() model.WidgetId {
		n := newPaneSeq.Add(1)
		return model.WidgetId(fmt.Sprintf("pane-%d", n))
	}

	store, err := persist.OpenSQLiteStore(defaultStorePath())
	if err != nil {
		log.Printf("Warning: failed to open layout store: %v, named snapshots disabled", err)
		store = nil
	} else {
		defer store.Close()
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	events := make(chan tcell.Event, 16)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			events <- ev
		}
	}()

	quit := false
	width, height := screen.Size()
	render := func() {
		layout := engine.Layout(geometry.Rect{X: 0, Y: 0, W: width, H: height}, cfg.HandleThickness)
		renderFrame(screen, engine, layout)
	}
	render()

	for !quit {
		select {
		case sig := <-sigCh:
			log.Printf("received signal %v, shutting down", sig)
			quit = true
		case ev := <-events:
			switch e := ev.(type) {
			case *tcell.EventResize:
				width, height = e.Size()
				screen.Sync()
			case *tcell.EventKey:
				outer := geometry.Rect{X: 0, Y: 0, W: width, H: height}
				quit = handleKey(engine, e, nextWidgetID, store, outer, cfg.HandleThickness)
			}
			render()
		}
	}

	if path != "" {
		if data, err := engine.Save(true); err == nil {
			if err := os.MkdirAll(filepath.Dir(path), 0755); err == nil {
				if err := os.WriteFile(path, data, 0644); err != nil {
					log.Printf("Warning: failed to autosave layout: %v", err)
				}
			}
		}
	}

	if *memProfile != "" {
		f, err := os.Create(*memProfile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to create heap profile: %v\n", err)
		} else {
			if err := pprof.WriteHeapProfile(f); err != nil {
				fmt.Fprintf(os.Stderr, "failed to write heap profile: %v\n", err)
			}
			_ = f.Close()
		}
	}
}

// handleKey routes one keyboard event to the engine's command surface.
// Returns true if the demo should exit.
func handleKey(engine *multisplit.Engine, e *tcell.EventKey, nextWidgetID func() model.WidgetId, store *persist.SQLiteStore, outer geometry.Rect, handleThickness int) bool {
	focused := engine.FocusedPane()

	switch e.Key() {
	case tcell.KeyCtrlC:
		return true
	case tcell.KeyLeft:
		mustNotify(engine.Navigate(outer, handleThickness, model.Left))
	case tcell.KeyRight:
		mustNotify(engine.Navigate(outer, handleThickness, model.Right))
	case tcell.KeyUp:
		mustNotify(engine.Navigate(outer, handleThickness, model.Up))
	case tcell.KeyDown:
		mustNotify(engine.Navigate(outer, handleThickness, model.Down))
	case tcell.KeyTab:
		mustNotify(engine.FocusNext())
	case tcell.KeyBacktab:
		mustNotify(engine.FocusPrevious())
	case tcell.KeyCtrlU:
		mustNotify(engine.Undo())
	case tcell.KeyCtrlR:
		mustNotify(engine.Redo())
	case tcell.KeyRune:
		switch e.Rune() {
		case 'q':
			return true
		case 's':
			if focused != "" {
				_, err := engine.Split(focused, model.Right, nextWidgetID(), 0.5)
				mustNotify(err)
			}
		case 'v':
			if focused != "" {
				_, err := engine.Split(focused, model.Down, nextWidgetID(), 0.5)
				mustNotify(err)
			}
		case 'c':
			if focused != "" {
				mustNotify(engine.Close(focused))
			}
		case 'w':
			if store != nil {
				mustNotify(store.Save("demo", engine.Tree(), true))
			}
		}
	}
	return false
}

func mustNotify(err error) {
	if err != nil {
		log.Printf("command error: %v", err)
	}
}

func defaultLayoutPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "multisplit", "layout.json")
}

func defaultStorePath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = os.TempDir()
	} else {
		dir = filepath.Join(dir, "multisplit")
	}
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "layouts.db")
}

func logFile() *os.File {
	dir, err := os.UserConfigDir()
	if err != nil {
		return nil
	}
	_ = os.MkdirAll(filepath.Join(dir, "multisplit"), 0755)
	f, err := os.OpenFile(filepath.Join(dir, "multisplit", "demo.log"), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil
	}
	return f
}
