package cli

import (
	"fmt"
	"time"

	"github.com/BurntSushi/toml"
)

// fileConfig mirrors the resolve flags in a TOML defaults file. Pointer
// fields distinguish "unset" from an explicit false.
//
// Example:
//
//	runners = ["ubuntu-latest", "macos-14"]
//	min-version = "3.10"
//	pre-releases = false
//	freethreaded = true
//	implementations = ["cpython", "pypy"]
//	timeout = "10s"
type fileConfig struct {
	Runners         []string `toml:"runners"`
	MinVersion      string   `toml:"min-version"`
	MaxVersion      string   `toml:"max-version"`
	Prereleases     *bool    `toml:"pre-releases"`
	Freethreaded    *bool    `toml:"freethreaded"`
	Implementations []string `toml:"implementations"`
	CheckPlatform   *bool    `toml:"check-platform"`
	Timeout         string   `toml:"timeout"`
}

// applyConfig loads the TOML file named by --config (if any) and fills in
// every option whose flag was not set on the command line. Explicit flags
// always win over file values.
//
// changed reports whether the named flag was set explicitly; it is the
// cobra FlagSet's Changed method in production.
func (o *resolveOpts) applyConfig(changed func(name string) bool) error {
	if o.configPath == "" {
		return nil
	}

	var cfg fileConfig
	if _, err := toml.DecodeFile(o.configPath, &cfg); err != nil {
		return fmt.Errorf("config %s: %w", o.configPath, err)
	}

	if len(cfg.Runners) > 0 && !changed("runner") {
		o.runners = cfg.Runners
	}
	if cfg.MinVersion != "" && !changed("min") {
		o.minVersion = cfg.MinVersion
	}
	if cfg.MaxVersion != "" && !changed("max") {
		o.maxVersion = cfg.MaxVersion
	}
	if cfg.Prereleases != nil && !changed("pre-releases") {
		o.prereleases = *cfg.Prereleases
	}
	if cfg.Freethreaded != nil && !changed("freethreaded") {
		o.freethreaded = *cfg.Freethreaded
	}
	if len(cfg.Implementations) > 0 && !changed("implementation") {
		o.implementations = cfg.Implementations
	}
	if cfg.CheckPlatform != nil && !changed("check-platform") {
		o.checkPlatform = *cfg.CheckPlatform
	}
	if cfg.Timeout != "" && !changed("timeout") {
		d, err := time.ParseDuration(cfg.Timeout)
		if err != nil {
			return fmt.Errorf("config %s: timeout: %w", o.configPath, err)
		}
		o.timeout = d
	}
	return nil
}
