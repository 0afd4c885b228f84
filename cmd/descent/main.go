package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"github.com/vinser/descent/internal/app"
	"github.com/vinser/descent/internal/flags"
	"github.com/vinser/descent/internal/level"
	"github.com/vinser/descent/internal/state"
)

var version = "dev"

func main() {
	// A missing .env is fine, the flags and the saved state cover everything
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "Warning: error loading .env file: %v\n", err)
	}

	fl, custom := flags.Parse()
	if err := run(fl, custom); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func run(fl *flags.Flags, custom bool) error {
	if fl.Debug {
		f, err := tea.LogToFile("descent.log", "descent")
		if err != nil {
			return err
		}
		defer f.Close()
	} else {
		log.SetOutput(io.Discard)
	}
	log.Printf("descent %s", version)

	st := state.Load()
	if custom {
		st = applyFlags(st, fl)
	}

	if fl.JSON {
		return exportJSON(os.Stdout, st, fl.Depth)
	}

	st.InitSound()
	defer st.SoundManager.Close()

	m, err := app.New(st, fl.Depth)
	if err != nil {
		return err
	}
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err = p.Run()
	return err
}

// applyFlags overrides the saved settings with the ones given on the
// command line or in the environment.
func applyFlags(st *state.State, fl *flags.Flags) *state.State {
	if fl.Reset {
		st = state.New()
	}
	if fl.Width > 0 {
		st.Width = min(fl.Width, state.MaxWidth)
	}
	if fl.Height > 0 {
		st.Height = min(fl.Height, state.MaxHeight)
	}
	if fl.StepsPerRow != 0 {
		st.StepsPerRow = fl.StepsPerRow
	}
	if fl.Sprite != "" {
		st.SpriteSize = fl.Sprite
	}
	if fl.Mute {
		st.Mute = true
	}
	if fl.Seed != 0 {
		if st.LevelSeeds == nil {
			st.LevelSeeds = make(map[int]int64)
		}
		st.LevelSeeds[fl.Depth] = fl.Seed
	}
	return st
}

// exportJSON writes the layout of depth as JSON without starting the preview.
// The seed used is saved so the preview shows the same layout later.
func exportJSON(w io.Writer, st *state.State, depth int) error {
	lvl, err := level.New(depth, st.SeedFor(depth), level.Config{
		Width:       st.Width,
		Height:      st.Height,
		StepsPerRow: st.StepsPerRow,
		SpriteSize:  st.SpriteSize,
	})
	if err != nil {
		return err
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(lvl.Map); err != nil {
		return err
	}
	if err := st.Save(); err != nil {
		return fmt.Errorf("save state: %w", err)
	}
	return nil
}
