// Package config loads the planner/server parameters that spec.md §6
// treats as boundary concerns: listen port, accepted peer address, grid
// dimensions, robot start pose, and the collision margins C1 enforces.
// Everything here is ambient plumbing around the core planner, not the
// core itself -- the core packages take plain values or a *gridspace.Grid,
// never a *config.Config, so they stay usable as a library.
package config

import (
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/go-viper/mapstructure/v2"
	"github.com/pkg/errors"
	"github.com/spf13/viper"

	"go.viam.com/photonav/gridspace"
)

// Config bundles everything cmd/photonav-serve needs to stand up the
// boundary described in spec.md §6.
type Config struct {
	// Port is the fixed TCP listen port (spec.md default 50000).
	Port int `mapstructure:"port"`
	// AcceptedPeer is the only remote address the one-shot server accepts
	// a connection from (spec.md default 192.168.8.8).
	AcceptedPeer string `mapstructure:"accepted_peer"`
	// RequestTimeout is the wall-clock budget spec.md §5 allows the
	// boundary to enforce per request; zero disables it. Exceeding it
	// surfaces as server.ErrTimeout, which §7 treats like Unreachable.
	RequestTimeout time.Duration `mapstructure:"request_timeout"`

	// LogFile, if set, routes cmd/photonav-serve's logs through
	// logging.NewFileAppender (lumberjack-backed rotation) instead of
	// stdout. Empty keeps the default console appender. A CLI --log-file
	// flag overrides this.
	LogFile string `mapstructure:"log_file"`

	// GridWidth and GridHeight are the grid's cell dimensions (default 20x20).
	GridWidth  int `mapstructure:"grid_width"`
	GridHeight int `mapstructure:"grid_height"`

	// RobotStartX, RobotStartY, RobotStartDir are the default robot pose
	// cmd/photonav-plan offers in its prompts. server.Plan always takes
	// the robot pose from the request and does not fall back to these.
	RobotStartX   int    `mapstructure:"robot_start_x"`
	RobotStartY   int    `mapstructure:"robot_start_y"`
	RobotStartDir string `mapstructure:"robot_start_dir"`

	SafeMargin      int  `mapstructure:"safe_margin"`
	DangerMargin    int  `mapstructure:"danger_margin"`
	DangerPenalty   int  `mapstructure:"danger_penalty"`
	BigTurn         bool `mapstructure:"big_turn"`
	MaxCandidates   int  `mapstructure:"max_candidates"`
	StandoffOffsetK int  `mapstructure:"standoff_offset_k"`
}

// Default returns the baseline configuration, matching spec.md §6's CLI
// defaults exactly.
func Default() Config {
	return Config{
		Port:            50000,
		AcceptedPeer:    "192.168.8.8",
		RequestTimeout:  0,
		LogFile:         "",
		GridWidth:       20,
		GridHeight:      20,
		RobotStartX:     1,
		RobotStartY:     1,
		RobotStartDir:   "N",
		SafeMargin:      gridspace.DefaultSafeMargin,
		DangerMargin:    gridspace.DefaultDangerMargin,
		DangerPenalty:   gridspace.DefaultObstaclePenalty,
		BigTurn:         false,
		MaxCandidates:   8,
		StandoffOffsetK: 2,
	}
}

// Margins extracts the gridspace.Margins this configuration implies.
func (c Config) Margins() gridspace.Margins {
	return gridspace.Margins{Safe: c.SafeMargin, Danger: c.DangerMargin, DangerPenalty: c.DangerPenalty}
}

// Load reads configuration from the given file (JSON, YAML, or TOML,
// detected by extension, per viper's usual behavior), falling back to
// Default() for any field the file doesn't set. An empty path returns
// Default() unchanged.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return Config{}, errors.Wrapf(err, "reading config %s", path)
	}
	decoded, err := decode(v)
	if err != nil {
		return Config{}, errors.Wrapf(err, "decoding config %s", path)
	}
	return decoded, nil
}

// Watch installs a callback invoked whenever the backing file at path
// changes, using viper's fsnotify-based watcher. Per spec.md §5's
// synchronous concurrency model, the callback is expected to only take
// effect between requests, never preempt one in flight.
func Watch(path string, onChange func(Config)) error {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return errors.Wrapf(err, "reading config %s", path)
	}
	v.OnConfigChange(func(fsnotify.Event) {
		decoded, err := decode(v)
		if err != nil {
			return
		}
		onChange(decoded)
	})
	v.WatchConfig()
	return nil
}

// decode applies v's settings onto a fresh Default() config via
// mapstructure/v2 directly, rather than viper.Unmarshal's bundled v1
// fork, so both Load and Watch's reload callback share one explicit
// decode path and RequestTimeout's time.Duration field decodes the same
// way ("5s"-style strings) on the initial load and every hot reload.
func decode(v *viper.Viper) (Config, error) {
	cfg := Default()
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &cfg,
		WeaklyTypedInput: true,
		DecodeHook:       mapstructure.StringToTimeDurationHookFunc(),
	})
	if err != nil {
		return Config{}, errors.Wrap(err, "building config decoder")
	}
	if err := decoder.Decode(v.AllSettings()); err != nil {
		return Config{}, errors.Wrap(err, "decoding config")
	}
	return cfg, nil
}
