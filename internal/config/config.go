// Package config resolves run options from an optional YAML file and the
// environment. Precedence, lowest to highest: file, environment, command
// flags (applied by the caller).
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// Options are the run-scoped settings of a proofrun invocation.
type Options struct {
	// Suite filters suites by substring containment.
	Suite string `yaml:"suite" envconfig:"SUITE"`
	// Proof filters proofs by substring containment.
	Proof string `yaml:"proof" envconfig:"PROOF"`
	// Quiet suppresses per-suite/per-proof announcements. Resolved from Q
	// by hand below: the variable's mere presence counts as enabled.
	Quiet bool `yaml:"quiet" ignored:"true"`
	// ResultsFile, when set, is the destination of the results journal.
	ResultsFile string `yaml:"results_file" envconfig:"RESULTS_FILE"`
}

// Load reads options from path (skipped when empty or missing) and overlays
// the environment on top.
func Load(path string) (Options, error) {
	var opts Options

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return opts, fmt.Errorf("reading config file %s: %w", path, err)
			}
		} else if err := yaml.Unmarshal(data, &opts); err != nil {
			return opts, fmt.Errorf("parsing config file %s: %w", path, err)
		}
	}

	if err := envconfig.Process("", &opts); err != nil {
		return opts, fmt.Errorf("reading environment: %w", err)
	}

	// Q toggles quiet by presence: Q= and Q=1 both enable it, while an
	// explicit boolean value is honored (Q=false disables a file setting).
	if raw, ok := os.LookupEnv("Q"); ok {
		if v, err := strconv.ParseBool(raw); err == nil {
			opts.Quiet = v
		} else {
			opts.Quiet = true
		}
	}

	return opts, nil
}
