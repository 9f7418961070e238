package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/spf13/viper"

	"chessbot/engine"
)

// cfgFile is looked up under the XDG config directories.
var cfgFile = "chessbot/config.yaml"

// InvalidConfig reports a configuration value out of range.
type InvalidConfig struct {
	err string
}

func (e *InvalidConfig) Error() string {
	return fmt.Sprintf("config error: %s", e.err)
}

type SearchConfig struct {
	Depth      int `mapstructure:"depth"`
	MoveTimeMs int `mapstructure:"movetime_ms"`
	HashMB     int `mapstructure:"hash_mb"`
	Threads    int `mapstructure:"threads"`
	SkillLevel int `mapstructure:"skill_level"`
}

// MoveTime is the default per-move time limit.
func (s SearchConfig) MoveTime() time.Duration {
	return time.Duration(s.MoveTimeMs) * time.Millisecond
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

type EngineConfig struct {
	Name   string `mapstructure:"name"`
	Author string `mapstructure:"author"`
}

type Config struct {
	Engine EngineConfig   `mapstructure:"engine"`
	Search SearchConfig   `mapstructure:"search"`
	Eval   engine.Weights `mapstructure:"eval"`
	Log    LogConfig      `mapstructure:"log"`
	// File is the config file that was read, empty when running on defaults.
	File string `mapstructure:"-"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Engine: EngineConfig{Name: "ChessBot 1.0", Author: "ChessBot developers"},
		Search: SearchConfig{
			Depth:      engine.DefaultDepth,
			MoveTimeMs: 1000,
			HashMB:     engine.DefaultHashMB,
			Threads:    1,
			SkillLevel: 10,
		},
		Eval: engine.DefaultWeights,
		Log:  LogConfig{Level: "info"},
	}
}

func setDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("engine.name", d.Engine.Name)
	v.SetDefault("engine.author", d.Engine.Author)
	v.SetDefault("search.depth", d.Search.Depth)
	v.SetDefault("search.movetime_ms", d.Search.MoveTimeMs)
	v.SetDefault("search.hash_mb", d.Search.HashMB)
	v.SetDefault("search.threads", d.Search.Threads)
	v.SetDefault("search.skill_level", d.Search.SkillLevel)
	v.SetDefault("eval.material", d.Eval.Material)
	v.SetDefault("eval.placement", d.Eval.Placement)
	v.SetDefault("eval.mobility", d.Eval.Mobility)
	v.SetDefault("eval.king_safety", d.Eval.KingSafety)
	v.SetDefault("eval.pawn_structure", d.Eval.PawnStructure)
	v.SetDefault("log.level", d.Log.Level)
}

// Load builds the configuration from defaults, an optional file and
// CHESSBOT_* environment variables (e.g. CHESSBOT_SEARCH_DEPTH). An empty
// path searches the XDG config directories for chessbot/config.yaml; a
// missing file there is not an error.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix("CHESSBOT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path == "" {
		if found, err := xdg.SearchConfigFile(cfgFile); err == nil {
			path = found
		}
	}
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	cfg := Default()
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.File = path
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	var errs []error
	if c.Search.Depth <= 0 || c.Search.Depth >= engine.MaxPly {
		errs = append(errs, &InvalidConfig{fmt.Sprintf("search.depth must be in 1..%d, got %d", engine.MaxPly-1, c.Search.Depth)})
	}
	if c.Search.HashMB <= 0 {
		errs = append(errs, &InvalidConfig{fmt.Sprintf("search.hash_mb must be positive, got %d", c.Search.HashMB)})
	}
	if c.Search.MoveTimeMs < 0 {
		errs = append(errs, &InvalidConfig{fmt.Sprintf("search.movetime_ms must not be negative, got %d", c.Search.MoveTimeMs)})
	}
	if c.Search.SkillLevel < 0 || c.Search.SkillLevel > 20 {
		errs = append(errs, &InvalidConfig{fmt.Sprintf("search.skill_level must be in 0..20, got %d", c.Search.SkillLevel)})
	}
	return errors.Join(errs...)
}
