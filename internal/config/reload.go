// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package config

import (
	"encoding/json"
	"os"
	"os/signal"
	"syscall"

	"github.com/pmezard/go-difflib/difflib"

	"sentrywall.dev/sentrywall/internal/errors"
	"sentrywall.dev/sentrywall/internal/logging"
)

// Reloader owns the live Config for one sentrywalld process and applies
// SIGHUP-triggered reloads: load, render a diff against the running
// config, log it, then swap.
type Reloader struct {
	path    string
	current *Config
	onApply func(*Config)
}

// NewReloader wraps an already-loaded Config for path, calling onApply
// with the new Config every time a reload applies a change.
func NewReloader(path string, initial *Config, onApply func(*Config)) *Reloader {
	return &Reloader{path: path, current: initial, onApply: onApply}
}

// Current returns the presently-active Config.
func (r *Reloader) Current() *Config { return r.current }

// Reload re-reads r.path, logs a unified diff against the running config,
// and swaps it in. A malformed file leaves the running config untouched.
func (r *Reloader) Reload() error {
	next, err := Load(r.path)
	if err != nil {
		return errors.Wrap(err, errors.KindValidation, "reload config")
	}

	diff, err := Diff(r.current, next)
	if err != nil {
		return errors.Wrap(err, errors.KindInternal, "diff config")
	}
	if diff == "" {
		logging.Default().Info("config reload: no changes", "path", r.path)
		return nil
	}
	logging.Default().Info("config reload: applying changes", "path", r.path, "diff", diff)

	r.current = next
	if r.onApply != nil {
		r.onApply(next)
	}
	return nil
}

// Diff renders a unified diff between the JSON rendering of two configs,
// in the teacher's running-vs-staged preview style. An empty string means
// no difference.
func Diff(running, staged *Config) (string, error) {
	runningJSON, err := json.MarshalIndent(running, "", "  ")
	if err != nil {
		return "", err
	}
	stagedJSON, err := json.MarshalIndent(staged, "", "  ")
	if err != nil {
		return "", err
	}
	if string(runningJSON) == string(stagedJSON) {
		return "", nil
	}

	ud := difflib.UnifiedDiff{
		A:        difflib.SplitLines(string(runningJSON)),
		B:        difflib.SplitLines(string(stagedJSON)),
		FromFile: "running",
		ToFile:   "staged",
		Context:  3,
	}
	return difflib.GetUnifiedDiffString(ud)
}

// WatchSIGHUP spawns a goroutine that calls r.Reload on every SIGHUP until
// stop is closed.
func (r *Reloader) WatchSIGHUP(stop <-chan struct{}) {
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGHUP)

	go func() {
		defer signal.Stop(sig)
		for {
			select {
			case <-stop:
				return
			case <-sig:
				if err := r.Reload(); err != nil {
					logging.Default().Error("config reload failed", "error", err)
				}
			}
		}
	}()
}
