package flags

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Flags stores the parsed command-line options.
// Zero values mean "keep the saved setting".
type Flags struct {
	Width       int
	Height      int
	Seed        int64
	StepsPerRow int
	Depth       int
	Sprite      string
	Mute        bool
	Reset       bool
	JSON        bool
	Debug       bool
}

// Environment variables consulted for flags that are not given.
const (
	EnvWidth       = "DESCENT_WIDTH"
	EnvHeight      = "DESCENT_HEIGHT"
	EnvStepsPerRow = "DESCENT_STEPS_PER_ROW"
	EnvSpriteSize  = "DESCENT_SPRITE_SIZE"
)

// Parse parses the command line and exits on invalid input.
// The second result reports whether anything was set.
func Parse() (*Flags, bool) {
	fl, custom, err := ParseArgs(os.Args[0], os.Args[1:], os.Getenv)
	if errors.Is(err, flag.ErrHelp) {
		os.Exit(0)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	return fl, custom
}

// ParseArgs parses args, falling back to getenv for the grid settings.
func ParseArgs(name string, args []string, getenv func(string) string) (*Flags, bool, error) {
	fl := &Flags{}
	fs := NewFlagSetWithVisit(name, flag.ContinueOnError)

	fs.IntVar(&fl.Width, "width", "w", 0, "Grid width in cells")
	fs.IntVar(&fl.Height, "height", "H", 0, "Grid height in cells, at least 2")
	fs.Int64Var(&fl.Seed, "seed", "s", 0, "Seed of the starting depth, 0 keeps the saved one")
	fs.IntVar(&fl.StepsPerRow, "steps-per-row", "", 0, "Walk budget per row, negative for no limit")
	fs.IntVar(&fl.Depth, "depth", "d", 0, "Depth to start the preview at")
	fs.StringVar(&fl.Sprite, "sprite-size", "", "", "Sprite size: small, medium, or large")
	fs.BoolVar(&fl.Mute, "mute", "", false, "Mute all sounds")
	fs.BoolVar(&fl.Reset, "reset", "r", false, "Reset saved seeds and settings")
	fs.BoolVar(&fl.JSON, "json", "j", false, "Print one generated map as JSON and exit")
	fs.BoolVar(&fl.Debug, "debug", "", false, "Write a debug log to descent.log")

	if err := fs.Parse(args); err != nil {
		return nil, false, err
	}
	custom := fs.HasCustom()

	fromEnv := []struct {
		flag string
		env  string
		dst  *int
	}{
		{"width", EnvWidth, &fl.Width},
		{"height", EnvHeight, &fl.Height},
		{"steps-per-row", EnvStepsPerRow, &fl.StepsPerRow},
	}
	for _, e := range fromEnv {
		if fs.IsCustom(e.flag) {
			continue
		}
		v := getenv(e.env)
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, false, fmt.Errorf("invalid %s %q: %w", e.env, v, err)
		}
		*e.dst = n
		custom = true
	}
	if !fs.IsCustom("sprite-size") {
		if v := getenv(EnvSpriteSize); v != "" {
			fl.Sprite = v
			custom = true
		}
	}

	if err := fl.normalize(); err != nil {
		fs.Usage()
		return nil, false, err
	}
	return fl, custom, nil
}

func (fl *Flags) normalize() error {
	if fl.Width < 0 {
		return fmt.Errorf("invalid width: %d. Use a positive number", fl.Width)
	}
	if fl.Height < 0 || fl.Height == 1 {
		return fmt.Errorf("invalid height: %d. Use 2 or more", fl.Height)
	}
	if fl.Depth < 0 {
		return fmt.Errorf("invalid depth: %d. Use 0 or more", fl.Depth)
	}

	fl.Sprite = strings.ToLower(fl.Sprite)
	if fl.Sprite != "" && fl.Sprite != "small" && fl.Sprite != "medium" && fl.Sprite != "large" {
		return fmt.Errorf("invalid sprite size: %s. Use 'small', 'medium' or 'large'", fl.Sprite)
	}
	return nil
}
