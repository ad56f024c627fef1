// Package vergen generates build-time provenance facts (build timestamp,
// commit hash, commit date, target triple and semantic version) from the
// enclosing git repository and the build environment.
//
// It is meant to run as a pre-build step, either through the vergen CLI or
// from a small program invoked by go generate:
//
//	//go:generate go tool vergen generate
//
// Facts are emitted either as build-step directives
// ("cargo:rustc-env=VERGEN_SHA=...") or as a Go file of string constants.
package vergen

import (
	"log/slog"
	"time"

	"github.com/spf13/afero"
	"go.inout.gg/foundations/debug"

	"go.inout.gg/vergen/internal/clock"
	"go.inout.gg/vergen/pkg/gitinfo"
)

// DefaultFlags is what a build script usually wants: every fact and the
// rebuild trigger, with the semantic version taken from git.
const DefaultFlags = AllFlags ^ SemverFromPkg

// Clock provides the build instant.
type Clock interface {
	Now() time.Time
}

// Config is the configuration for the Generator.
//
// Use NewConfig to instantiate a new instance.
//
// Every field is optional. Inspector defaults to running git in the current
// directory, Fs to the OS filesystem, Clock to the wall clock, Logger to
// slog.Default and WorkDir to ".". An empty GitDir is located from WorkDir
// upwards, the way git finds its repository.
type Config struct {
	Logger    *slog.Logger      // optional
	Inspector gitinfo.Inspector // optional
	Fs        afero.Fs          // optional
	Clock     Clock             // optional
	GitDir    string            // optional
	WorkDir   string            // optional
	Env       Env               // optional
}

// Option is a function that configures a Config.
type Option func(*Config)

// WithLogger adds a logger to the Config.
func WithLogger(l *slog.Logger) Option {
	return func(c *Config) { c.Logger = l }
}

// WithInspector sets the source of VCS data.
func WithInspector(i gitinfo.Inspector) Option {
	return func(c *Config) { c.Inspector = i }
}

// WithFs sets the filesystem HEAD is read from and version files are
// written to.
func WithFs(fs afero.Fs) Option {
	return func(c *Config) { c.Fs = fs }
}

// WithClock sets the clock the build timestamp is read from.
func WithClock(clk Clock) Option {
	return func(c *Config) { c.Clock = clk }
}

// WithGitDir sets the git directory, relative to the Fs root.
func WithGitDir(dir string) Option {
	return func(c *Config) { c.GitDir = dir }
}

// WithWorkDir sets the directory the git directory is searched from when
// no GitDir is given. It may be anywhere below the repository root.
func WithWorkDir(dir string) Option {
	return func(c *Config) { c.WorkDir = dir }
}

// WithEnv sets the build environment.
func WithEnv(env Env) Option {
	return func(c *Config) { c.Env = env }
}

// NewConfig creates a new Config and applies the provided configurations.
func NewConfig(opts ...Option) *Config {
	//nolint:exhaustruct
	config := &Config{}
	for _, o := range opts {
		o(config)
	}

	config.defaults()

	debug.Assert(config.Logger != nil, "Logger is required")
	debug.Assert(config.Inspector != nil, "Inspector is required")
	debug.Assert(config.Fs != nil, "Fs is required")
	debug.Assert(config.Clock != nil, "Clock is required")

	return config
}

func (c *Config) defaults() {
	if c.Logger == nil {
		c.Logger = slog.Default()
	}

	if c.Inspector == nil {
		//nolint:exhaustruct
		c.Inspector = gitinfo.New(&gitinfo.ExecRunner{})
	}

	if c.Fs == nil {
		c.Fs = afero.NewOsFs()
	}

	if c.Clock == nil {
		c.Clock = clock.System{}
	}

	if c.WorkDir == "" {
		c.WorkDir = "."
	}
}

// Generator derives facts and renders them.
//
// A Generator holds no state between calls: every call re-queries git and
// re-reads the clock.
type Generator struct {
	logger    *slog.Logger
	inspector gitinfo.Inspector
	fs        afero.Fs
	clock     Clock
	gitDir    string
	workDir   string
	env       Env
}

// NewGenerator creates a new Generator with the given config.
func NewGenerator(config *Config) *Generator {
	debug.Assert(config.Logger != nil, "config.Logger must be defined")
	debug.Assert(config.Inspector != nil, "config.Inspector must be defined")
	debug.Assert(config.Fs != nil, "config.Fs must be defined")
	debug.Assert(config.Clock != nil, "config.Clock must be defined")

	return &Generator{
		logger:    config.Logger,
		inspector: config.Inspector,
		fs:        config.Fs,
		clock:     config.Clock,
		gitDir:    config.GitDir,
		workDir:   config.WorkDir,
		env:       config.Env,
	}
}
