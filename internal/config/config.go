// Package config holds solver-wide ambient settings: build metadata, the
// test-mode flag consulted by decoded-type String() methods, and the
// SolverOptions a host can load from YAML before embedding the solver.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Version is the current coraline module version.
var Version = "0.1.0"

// IsTestMode indicates fresh-variable names should be normalized (t0, t1, ...
// collapse to a stable placeholder) so that decoded-type output is
// deterministic in tests. Set once at process startup.
var IsTestMode = false

// SolverOptions controls defaults for an embedding host. None of these
// override a `NewGraph` call's explicit `rectypes` argument; they exist for
// hosts that want to source their defaults from a config file rather than
// hard-coding them.
type SolverOptions struct {
	// RectypesDefault is the rectypes flag a host should pass to NewGraph when
	// it has no more specific preference (e.g. a REPL default).
	RectypesDefault bool `yaml:"rectypesDefault"`

	// MaxUnifyDepth bounds recursive descent into nested structures during
	// unification, guarding against pathological inputs. Zero means
	// unbounded.
	MaxUnifyDepth int `yaml:"maxUnifyDepth"`
}

// DefaultSolverOptions mirrors the conservative defaults a fresh solver
// instance would use absent any configuration file.
func DefaultSolverOptions() SolverOptions {
	return SolverOptions{
		RectypesDefault: false,
		MaxUnifyDepth:   0,
	}
}

// LoadSolverOptions reads SolverOptions from a YAML file at path.
func LoadSolverOptions(path string) (SolverOptions, error) {
	opts := DefaultSolverOptions()

	data, err := os.ReadFile(path)
	if err != nil {
		return opts, fmt.Errorf("config: read %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &opts); err != nil {
		return opts, fmt.Errorf("config: parse %s: %w", path, err)
	}

	return opts, nil
}
