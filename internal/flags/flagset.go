package flags

import (
	"flag"
	"fmt"
	"io"
	"sort"
	"strings"
)

type FlagSetWithVisit struct {
	fs       *flag.FlagSet
	visited  map[string]bool
	aliases  map[string]string // short name → long name
	usageMap map[string]string // long name → usage string
}

func NewFlagSetWithVisit(name string, handling flag.ErrorHandling) *FlagSetWithVisit {
	fs := flag.NewFlagSet(name, handling)

	fsv := &FlagSetWithVisit{
		fs:       fs,
		visited:  make(map[string]bool),
		aliases:  make(map[string]string),
		usageMap: make(map[string]string),
	}

	// Override default usage
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage of %s:\n", name)
		fsv.printUsage(fs.Output())
	}

	return fsv
}

func (fsv *FlagSetWithVisit) SetOutput(w io.Writer) {
	fsv.fs.SetOutput(w)
}

func (fsv *FlagSetWithVisit) register(name, short, usage string) {
	if short != "" {
		fsv.aliases[short] = name
	}
	fsv.usageMap[name] = usage
}

// Register a bool flag with optional short alias
func (fsv *FlagSetWithVisit) BoolVar(p *bool, name, short string, value bool, usage string) {
	fsv.fs.BoolVar(p, name, value, usage)
	fsv.register(name, short, usage)
}

// Register a string flag with optional short alias
func (fsv *FlagSetWithVisit) StringVar(p *string, name, short, value, usage string) {
	fsv.fs.StringVar(p, name, value, usage)
	fsv.register(name, short, usage)
}

// Register an int flag with optional short alias
func (fsv *FlagSetWithVisit) IntVar(p *int, name, short string, value int, usage string) {
	fsv.fs.IntVar(p, name, value, usage)
	fsv.register(name, short, usage)
}

// Register an int64 flag with optional short alias
func (fsv *FlagSetWithVisit) Int64Var(p *int64, name, short string, value int64, usage string) {
	fsv.fs.Int64Var(p, name, value, usage)
	fsv.register(name, short, usage)
}

// Expand short aliases and parse args
func (fsv *FlagSetWithVisit) Parse(args []string) error {
	if err := fsv.fs.Parse(fsv.expandAliases(args)); err != nil {
		return err
	}
	fsv.fs.Visit(func(f *flag.Flag) {
		fsv.visited[f.Name] = true
	})
	return nil
}

// Replace short flags (e.g. -r) with full names (e.g. -reset)
func (fsv *FlagSetWithVisit) expandAliases(args []string) []string {
	expanded := make([]string, 0, len(args))
	for _, arg := range args {
		if arg == "--" {
			// Everything after the terminator is positional
			return append(expanded, args[len(expanded):]...)
		}
		// Match: -r or -r=value
		if len(arg) < 2 || arg[0] != '-' || arg[1] == '-' {
			expanded = append(expanded, arg)
			continue
		}
		name, value, hasValue := strings.Cut(arg[1:], "=")
		full, ok := fsv.aliases[name]
		switch {
		case !ok:
			expanded = append(expanded, arg)
		case hasValue:
			expanded = append(expanded, "-"+full+"="+value)
		default:
			expanded = append(expanded, "-"+full)
		}
	}
	return expanded
}

// Check if a specific flag was explicitly set
func (fsv *FlagSetWithVisit) IsCustom(name string) bool {
	return fsv.visited[name]
}

// Check if any non-default flags were set
func (fsv *FlagSetWithVisit) HasCustom() bool {
	hasCustom := false
	fsv.fs.Visit(func(f *flag.Flag) {
		if f.Value.String() != f.DefValue {
			hasCustom = true
		}
	})
	return hasCustom
}

func (fsv *FlagSetWithVisit) Usage() {
	fsv.fs.Usage()
}

// Print formatted usage with short aliases
func (fsv *FlagSetWithVisit) printUsage(w io.Writer) {
	var names []string
	var nameLen int
	for name := range fsv.usageMap {
		names = append(names, name)
		nameLen = max(nameLen, len(name))
	}
	sort.Strings(names)

	shorts := make(map[string]string, len(fsv.aliases))
	for s, full := range fsv.aliases {
		shorts[full] = s
	}
	for _, name := range names {
		usage := fsv.usageMap[name]
		if short, ok := shorts[name]; ok {
			fmt.Fprintf(w, "  -%s, -%-*s\t%s\n", short, nameLen, name, usage)
		} else {
			fmt.Fprintf(w, "      -%-*s\t%s\n", nameLen, name, usage)
		}
	}
}
