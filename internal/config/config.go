package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/mitchelldurbincs/Hexatron/internal/matchbox"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Library  LibraryConfig  `mapstructure:"library"`
	Learning LearningConfig `mapstructure:"learning"`
	Game     GameConfig     `mapstructure:"game"`
	Log      LogConfig      `mapstructure:"log"`
	UI       UIConfig       `mapstructure:"ui"`
}

// LibraryConfig locates the pattern library files
type LibraryConfig struct {
	// Path is the live library, rewritten after every learning step
	Path string `mapstructure:"path"`
	// DefaultPath is the read-only library used to seed and reset; empty
	// means the copy built into the binary
	DefaultPath string `mapstructure:"default_path"`
}

// LearningConfig holds the reinforcement settings
type LearningConfig struct {
	Mode           string        `mapstructure:"mode"`
	MaxPool        int           `mapstructure:"max_pool"`
	ConfirmUpdates bool          `mapstructure:"confirm_updates"`
	Binding        BindingConfig `mapstructure:"binding"`
}

// BindingConfig names the pool action for each learning mode and game result
type BindingConfig struct {
	Fast ResultActions `mapstructure:"fast"`
	Slow ResultActions `mapstructure:"slow"`
}

// ResultActions holds one action per game result, seen from the human
type ResultActions struct {
	Win  string `mapstructure:"win"`
	Lose string `mapstructure:"lose"`
}

// GameConfig holds session settings
type GameConfig struct {
	// Seed for the computer's bead draws; 0 seeds from the clock
	Seed          uint64 `mapstructure:"seed"`
	SelfPlayGames int    `mapstructure:"selfplay_games"`
}

// LogConfig holds logging settings
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// UIConfig holds UI/client configuration
type UIConfig struct {
	Window        WindowConfig `mapstructure:"window"`
	TileSize      int          `mapstructure:"tile_size"`
	AIDelayFrames int          `mapstructure:"ai_delay_frames"`
}

// WindowConfig holds window settings
type WindowConfig struct {
	Width  int    `mapstructure:"width"`
	Height int    `mapstructure:"height"`
	Title  string `mapstructure:"title"`
}

var (
	// Global config instance
	mu  sync.RWMutex
	cfg *Config
	v   *viper.Viper
)

// setViperDefaults sets all default values using Viper's SetDefault
func setViperDefaults(v *viper.Viper) {
	// Library files
	v.SetDefault("library.path", "hexatron_library.txt")
	v.SetDefault("library.default_path", "")

	// Learning
	v.SetDefault("learning.mode", string(matchbox.ModeFast))
	v.SetDefault("learning.max_pool", matchbox.DefaultMaxPool)
	v.SetDefault("learning.confirm_updates", true)
	v.SetDefault("learning.binding.fast.win", string(matchbox.ActionPrune))
	v.SetDefault("learning.binding.fast.lose", string(matchbox.ActionNone))
	v.SetDefault("learning.binding.slow.win", string(matchbox.ActionNone))
	v.SetDefault("learning.binding.slow.lose", string(matchbox.ActionReinforce))

	// Game
	v.SetDefault("game.seed", 0)
	v.SetDefault("game.selfplay_games", 100)

	// Logging
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")

	// UI
	v.SetDefault("ui.window.width", 480)
	v.SetDefault("ui.window.height", 600)
	v.SetDefault("ui.window.title", "Hexatron")
	v.SetDefault("ui.tile_size", 120)
	v.SetDefault("ui.ai_delay_frames", 30)
}

// Init initializes the configuration
func Init(configPath string) error {
	nv := viper.New()

	// Set defaults before loading any config
	setViperDefaults(nv)

	// Set config file
	if configPath != "" {
		nv.SetConfigFile(configPath)
	} else {
		// Default config locations
		nv.SetConfigName("config")
		nv.SetConfigType("yaml")
		nv.AddConfigPath(".")
		nv.AddConfigPath("./config")
		nv.AddConfigPath("/etc/hexatron")
	}

	// Set environment variable prefix
	nv.SetEnvPrefix("HEX")
	nv.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	nv.AutomaticEnv()

	// Read config file
	if err := nv.ReadInConfig(); err != nil {
		// A missing file, named or not, falls back to the defaults
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("error reading config file: %w", err)
		}
	}

	c, err := decode(nv)
	if err != nil {
		return err
	}

	mu.Lock()
	v, cfg = nv, c
	mu.Unlock()
	return nil
}

func decode(v *viper.Viper) (*Config, error) {
	c := &Config{}
	if err := v.Unmarshal(c); err != nil {
		return nil, fmt.Errorf("unable to decode config into struct: %w", err)
	}
	if err := Validate(c); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return c, nil
}

// Get returns the global config instance
func Get() *Config {
	mu.RLock()
	c := cfg
	mu.RUnlock()
	if c == nil {
		// Initialize with defaults if not already initialized
		if err := Init(""); err != nil {
			panic("failed to initialize config with defaults: " + err.Error())
		}
		mu.RLock()
		c = cfg
		mu.RUnlock()
	}
	return c
}

// GetViper returns the viper instance for advanced usage
func GetViper() *viper.Viper {
	mu.RLock()
	defer mu.RUnlock()
	if v == nil {
		panic("config not initialized - call Init() first")
	}
	return v
}

// LoadEnvironmentConfig merges config.<env>.yaml over the loaded config
func LoadEnvironmentConfig(env string) error {
	if env == "" {
		return nil
	}
	v := GetViper()

	envFile := fmt.Sprintf("config.%s.yaml", env)
	v.SetConfigFile(envFile)
	if err := v.MergeInConfig(); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("error merging environment config %s: %w", envFile, err)
		}
	}
	return reload(v)
}

func reload(v *viper.Viper) error {
	c, err := decode(v)
	if err != nil {
		return err
	}
	mu.Lock()
	cfg = c
	mu.Unlock()
	return nil
}

// Set allows runtime config updates. Values that fail validation are kept in
// viper but not in the decoded config.
func Set(key string, value interface{}) error {
	v := GetViper()
	v.Set(key, value)
	return reload(v)
}

// GetString gets a string value from config
func GetString(key string) string {
	return GetViper().GetString(key)
}

// GetInt gets an int value from config
func GetInt(key string) int {
	return GetViper().GetInt(key)
}

// GetBool gets a bool value from config
func GetBool(key string) bool {
	return GetViper().GetBool(key)
}

// ConfigFilePath returns the path of the loaded config file
func ConfigFilePath() string {
	return GetViper().ConfigFileUsed()
}

// WatchConfig enables hot-reloading of the config file. onChange receives the
// new config, or the error that kept the previous one in place.
func WatchConfig(onChange func(*Config, error)) {
	v := GetViper()
	v.OnConfigChange(func(e fsnotify.Event) {
		err := reload(v)
		if onChange != nil {
			onChange(Get(), err)
		}
	})
	v.WatchConfig()
}

// Binding converts the configured actions into a learning binding.
func (c *Config) Binding() (matchbox.Binding, error) {
	b := matchbox.Binding{}
	for mode, actions := range map[matchbox.Mode]ResultActions{
		matchbox.ModeFast: c.Learning.Binding.Fast,
		matchbox.ModeSlow: c.Learning.Binding.Slow,
	} {
		win, err := matchbox.ParseAction(actions.Win)
		if err != nil {
			return nil, fmt.Errorf("learning.binding.%s.win: %w", mode, err)
		}
		lose, err := matchbox.ParseAction(actions.Lose)
		if err != nil {
			return nil, fmt.Errorf("learning.binding.%s.lose: %w", mode, err)
		}
		b[mode] = map[matchbox.Result]matchbox.Action{
			matchbox.ResultWin:  win,
			matchbox.ResultLose: lose,
		}
	}
	return b, nil
}

// LearningMode parses learning.mode.
func (c *Config) LearningMode() (matchbox.Mode, error) {
	return matchbox.ParseMode(c.Learning.Mode)
}

// Validate checks that all configuration values are valid
func Validate(c *Config) error {
	if strings.TrimSpace(c.Library.Path) == "" {
		return fmt.Errorf("library.path must be set")
	}
	if c.Library.DefaultPath != "" && c.Library.DefaultPath == c.Library.Path {
		return fmt.Errorf("library.default_path must differ from library.path")
	}

	if _, err := c.LearningMode(); err != nil {
		return fmt.Errorf("learning.mode: %w", err)
	}
	if c.Learning.MaxPool <= 0 {
		return fmt.Errorf("learning.max_pool must be positive")
	}
	if _, err := c.Binding(); err != nil {
		return err
	}

	if c.Game.SelfPlayGames < 0 {
		return fmt.Errorf("game.selfplay_games must be non-negative")
	}

	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level must be one of debug, info, warn, error")
	}
	switch c.Log.Format {
	case "console", "json":
	default:
		return fmt.Errorf("log.format must be console or json")
	}

	if c.UI.Window.Width <= 0 || c.UI.Window.Height <= 0 {
		return fmt.Errorf("ui.window dimensions must be positive")
	}
	if c.UI.TileSize <= 0 {
		return fmt.Errorf("ui.tile_size must be positive")
	}
	if c.UI.TileSize*3 > c.UI.Window.Width || c.UI.TileSize*3 > c.UI.Window.Height {
		return fmt.Errorf("ui.tile_size too large for the window")
	}
	if c.UI.AIDelayFrames < 0 {
		return fmt.Errorf("ui.ai_delay_frames must be non-negative")
	}

	return nil
}
