// Package feature manages feature flags which change behavior that users may
// depend on. Flags are selected through a comma separated list such as
// "legacy-exit-status=true,numeric-drive-type=false".
package feature

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

type state string

// FlagName is the kebab-case name of a feature flag.
type FlagName string

const (
	// Alpha features are disabled by default and may change between releases.
	Alpha state = "alpha"
	// Beta features are enabled by default.
	Beta state = "beta"
	// Stable features are always enabled.
	Stable state = "stable"
	// Deprecated features are always disabled.
	Deprecated state = "deprecated"
)

// FlagDesc describes a single feature flag.
type FlagDesc struct {
	Type        state
	Description string
}

// FlagSet holds the registered flags and their current value.
type FlagSet struct {
	flags   map[FlagName]FlagDesc
	enabled map[FlagName]bool
}

// New returns an empty FlagSet.
func New() *FlagSet {
	return &FlagSet{}
}

func (s state) enabledByDefault() bool {
	switch s {
	case Alpha, Deprecated:
		return false
	case Beta, Stable:
		return true
	default:
		panic("unknown feature phase")
	}
}

// SetFlags replaces all registered flags and resets them to their defaults.
func (f *FlagSet) SetFlags(flags map[FlagName]FlagDesc) {
	f.flags = make(map[FlagName]FlagDesc, len(flags))
	f.enabled = make(map[FlagName]bool, len(flags))

	for name, flag := range flags {
		f.flags[name] = flag
		f.enabled[name] = flag.Type.enabledByDefault()
	}
}

// Apply parses the flag selection in flags. Stable and deprecated flags cannot
// be changed, selecting them only produces a warning passed to logWarning.
func (f *FlagSet) Apply(flags string, logWarning func(string)) error {
	if flags == "" {
		return nil
	}

	selection := make(map[FlagName]bool)
	for _, flag := range strings.Split(flags, ",") {
		name, value, found := strings.Cut(strings.TrimSpace(flag), "=")
		if !found {
			value = "true"
		}

		isEnabled, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("failed to parse value %q for feature flag %v: %w", value, name, err)
		}

		selection[FlagName(name)] = isEnabled
	}

	for name, value := range selection {
		flag, ok := f.flags[name]
		if !ok {
			return fmt.Errorf("unknown feature flag %q", name)
		}

		switch flag.Type {
		case Alpha, Beta:
			f.enabled[name] = value
		case Stable:
			logWarning(fmt.Sprintf("feature flag %q is always enabled and will be removed in a future release", name))
		case Deprecated:
			logWarning(fmt.Sprintf("feature flag %q is always disabled and will be removed in a future release", name))
		default:
			panic("unknown feature phase")
		}
	}

	return nil
}

// Enabled returns the current value of the flag. It panics for unknown flags.
func (f *FlagSet) Enabled(name FlagName) bool {
	isEnabled, ok := f.enabled[name]
	if !ok {
		panic(fmt.Sprintf("unknown feature flag %v", name))
	}

	return isEnabled
}

// Help contains information about a feature.
type Help struct {
	Name        string
	Type        string
	Default     bool
	Description string
}

// List returns the registered flags sorted by name.
func (f *FlagSet) List() []Help {
	help := make([]Help, 0, len(f.flags))
	for name, flag := range f.flags {
		help = append(help, Help{
			Name:        string(name),
			Type:        string(flag.Type),
			Default:     flag.Type.enabledByDefault(),
			Description: flag.Description,
		})
	}

	sort.Slice(help, func(i, j int) bool {
		return help[i].Name < help[j].Name
	})

	return help
}
