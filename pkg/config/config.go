// Package config loads named resilience profiles from YAML or JSON.
//
// A profile pairs a retry policy with an optional timeout:
//
//	profiles:
//	  payments:
//	    retry:
//	      shape: exponential
//	      base_delay: 100ms
//	      max_retries: 3
//	      max_delay: 2s
//	      jitter: 0.2
//	    timeout: 5s
//
// Profile names must not contain the key delimiter; see WithDelim.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"

	"github.com/jzx17/gofx/pkg/retry"
)

// Format is a configuration encoding
type Format string

const (
	// FormatYAML is YAML
	FormatYAML Format = "yaml"
	// FormatJSON is JSON
	FormatJSON Format = "json"
)

var (
	// ErrEmptyPath indicates no file path was given
	ErrEmptyPath = errors.New("gofx/config: empty config path")

	// ErrUnsupportedFormat indicates an unknown encoding or file extension
	ErrUnsupportedFormat = errors.New("gofx/config: unsupported config format")

	// ErrLoadFailed indicates the file could not be read
	ErrLoadFailed = errors.New("gofx/config: failed to load config")

	// ErrParseFailed indicates the data is not valid for its format
	ErrParseFailed = errors.New("gofx/config: failed to parse config")

	// ErrInvalidProfile indicates a profile that does not describe a usable policy
	ErrInvalidProfile = errors.New("gofx/config: invalid profile")

	// ErrProfileNotFound is returned by Profiles.Get for unknown names
	ErrProfileNotFound = errors.New("gofx/config: profile not found")
)

// ProfileConfig is the raw form of one profile.
type ProfileConfig struct {
	Retry   *retry.PolicyConfig `koanf:"retry"`
	Timeout string              `koanf:"timeout"`
}

// Profile is a validated profile.
type Profile struct {
	Name string

	// Retry is the zero Policy when HasRetry is false
	Retry    retry.Policy
	HasRetry bool

	// Timeout is zero when no timeout is configured
	Timeout time.Duration
}

// Profiles maps profile names to profiles.
type Profiles map[string]Profile

// Get returns the named profile.
func (p Profiles) Get(name string) (Profile, error) {
	profile, ok := p[name]
	if !ok {
		return Profile{}, fmt.Errorf("%w: %q", ErrProfileNotFound, name)
	}
	return profile, nil
}

// Names returns the profile names in sorted order.
func (p Profiles) Names() []string {
	names := make([]string, 0, len(p))
	for name := range p {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Load reads profiles from a file, detecting the format from its extension
// (.yaml, .yml or .json).
func Load(path string, opts ...Option) (Profiles, error) {
	if path == "" {
		return nil, ErrEmptyPath
	}
	format, err := detectFormat(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadFailed, err)
	}
	return FromBytes(data, format, opts...)
}

// FromBytes reads profiles from data in the given format. Empty data yields
// no profiles.
//
// Keys are split on the delimiter, "." by default, so a profile name
// containing it (orders.v2) is read as a nested key and is not found under
// its name.
// Choose another delimiter with WithDelim to use such names.
func FromBytes(data []byte, format Format, opts ...Option) (Profiles, error) {
	options := defaultOptions()
	for _, opt := range opts {
		opt(options)
	}

	k := koanf.New(options.Delim)
	if len(data) > 0 {
		if err := loadData(k, data, format); err != nil {
			return nil, err
		}
	} else if !isValidFormat(format) {
		return nil, ErrUnsupportedFormat
	}

	var raw map[string]ProfileConfig
	if err := k.UnmarshalWithConf(options.Root, &raw, koanf.UnmarshalConf{Tag: options.Tag}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParseFailed, err)
	}

	profiles := make(Profiles, len(raw))
	for name, pc := range raw {
		profile, err := pc.build(name)
		if err != nil {
			return nil, err
		}
		profiles[name] = profile
	}
	return profiles, nil
}

func (pc ProfileConfig) build(name string) (Profile, error) {
	profile := Profile{Name: name}
	if pc.Retry != nil {
		policy, err := pc.Retry.Build()
		if err != nil {
			return Profile{}, fmt.Errorf("%w %q: retry: %w", ErrInvalidProfile, name, err)
		}
		profile.Retry, profile.HasRetry = policy, true
	}
	if pc.Timeout != "" {
		d, err := time.ParseDuration(pc.Timeout)
		if err != nil {
			return Profile{}, fmt.Errorf("%w %q: timeout: %w", ErrInvalidProfile, name, err)
		}
		if d <= 0 {
			return Profile{}, fmt.Errorf("%w %q: timeout must be positive", ErrInvalidProfile, name)
		}
		profile.Timeout = d
	}
	return profile, nil
}

func detectFormat(path string) (Format, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("%w: unknown extension %s", ErrUnsupportedFormat, ext)
	}
}

func isValidFormat(format Format) bool {
	return format == FormatYAML || format == FormatJSON
}

func loadData(k *koanf.Koanf, data []byte, format Format) error {
	var parser koanf.Parser
	switch format {
	case FormatYAML:
		parser = yaml.Parser()
	case FormatJSON:
		parser = json.Parser()
	default:
		return ErrUnsupportedFormat
	}

	if err := k.Load(rawbytes.Provider(data), parser); err != nil {
		return fmt.Errorf("%w: %w", ErrParseFailed, err)
	}
	return nil
}
