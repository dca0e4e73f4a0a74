// Package config resolves postgen's options from flags and POSTGEN_*
// environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// RootMode selects how the target root is found when no explicit root is
// given.
type RootMode string

const (
	// RootModeCwd uses the working directory the hook was started from.
	RootModeCwd RootMode = "cwd"
	// RootModeSelf uses the directory holding the postgen executable.
	RootModeSelf RootMode = "self"
)

// Keys shared by flags, env vars and viper lookups.
const (
	KeyRoot           = "root"
	KeyRootMode       = "root-mode"
	KeySelf           = "self"
	KeyRemoveEmptyCmd = "remove-empty-cmd"
	KeyDryRun         = "dry-run"
	KeyVerbose        = "verbose"
)

// EnvPrefix is prepended to every environment override (POSTGEN_ROOT_MODE...).
const EnvPrefix = "POSTGEN"

// ErrInvalidRootMode is returned for a root-mode other than cwd or self.
var ErrInvalidRootMode = errors.New("invalid root mode")

// Config is the resolved set of options for one run.
type Config struct {
	Root           string // Absolute target root
	Self           string // Absolute path removed as the final step
	RemoveEmptyCmd bool
	DryRun         bool
	Verbose        bool
}

// NewViper returns a viper instance with postgen's defaults and env binding.
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetDefault(KeyRootMode, string(RootModeCwd))
	v.SetDefault(KeyRemoveEmptyCmd, false)
	v.SetDefault(KeyDryRun, false)
	v.SetDefault(KeyVerbose, false)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return v
}

// Resolver supplies process facts. Tests replace them.
type Resolver struct {
	Getwd      func() (string, error)
	Executable func() (string, error)
}

// DefaultResolver asks the running process.
func DefaultResolver() Resolver {
	return Resolver{
		Getwd:      os.Getwd,
		Executable: executable,
	}
}

func executable() (string, error) {
	path, err := os.Executable()
	if err != nil {
		return "", err
	}
	return filepath.EvalSymlinks(path)
}

// Load builds a Config from v.
func Load(v *viper.Viper, r Resolver) (*Config, error) {
	cfg := &Config{
		RemoveEmptyCmd: v.GetBool(KeyRemoveEmptyCmd),
		DryRun:         v.GetBool(KeyDryRun),
		Verbose:        v.GetBool(KeyVerbose),
	}

	self := v.GetString(KeySelf)
	if self == "" {
		exe, err := r.Executable()
		if err != nil {
			return nil, fmt.Errorf("locating postgen executable: %w", err)
		}
		self = exe
	}
	self, err := filepath.Abs(self)
	if err != nil {
		return nil, fmt.Errorf("resolving self path: %w", err)
	}
	cfg.Self = self

	root := v.GetString(KeyRoot)
	if root == "" {
		mode := RootMode(strings.ToLower(strings.TrimSpace(v.GetString(KeyRootMode))))
		switch mode {
		case RootModeCwd:
			root, err = r.Getwd()
			if err != nil {
				return nil, fmt.Errorf("reading working directory: %w", err)
			}
		case RootModeSelf:
			root = filepath.Dir(self)
		default:
			return nil, fmt.Errorf("%w %q (want %q or %q)", ErrInvalidRootMode, mode, RootModeCwd, RootModeSelf)
		}
	}
	root, err = filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolving root: %w", err)
	}
	cfg.Root = root

	return cfg, nil
}
