package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

// Config is chip8vm's full application configuration: the ambient app/
// logger sections plus the Chip8Settings the core actually reads.
type Config struct {
	App    App           `mapstructure:"app"`
	Logger Logger        `mapstructure:"logger"`
	Chip8  Chip8Settings `mapstructure:"chip8"`
}

// App is ambient metadata; the core never reads it.
type App struct {
	Name string `mapstructure:"name"`
}

// Logger configures internal/logging. The core never reads it either.
type Logger struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Chip8Settings are the only fields the core consumes: cycles_per_frame
// and the two quirk toggles. Scale is read by internal/hostui, not the core
// itself; DefaultROMFolder and STEqualsBuzzer are loaded but not read by
// any package.
type Chip8Settings struct {
	Scale              uint32 `mapstructure:"scale"`
	CyclesPerFrame     uint32 `mapstructure:"cycles_per_frame"`
	DefaultROMFolder   string `mapstructure:"default_ch8_folder"`
	STEqualsBuzzer     bool   `mapstructure:"st_equals_buzzer"`
	ShiftUsesVY        bool   `mapstructure:"bit_shift_instructions_use_vy"`
	LoadStoreAdvancesI bool   `mapstructure:"store_read_instructions_change_i"`
}

// Default returns a Config with the standard CHIP-8 quirk defaults and sane
// ambient values. cmd/run.go falls back to it when Load fails (e.g.
// `chip8vm run` invoked outside a configured install).
func Default() *Config {
	return &Config{
		App:    App{Name: "chip8vm"},
		Logger: Logger{Level: "info", Format: "console"},
		Chip8: Chip8Settings{
			Scale:              16,
			CyclesPerFrame:     12,
			DefaultROMFolder:   "roms",
			STEqualsBuzzer:     true,
			ShiftUsesVY:        false,
			LoadStoreAdvancesI: true,
		},
	}
}

// Load reads config/<env>.local.yaml if present, else config/<env>.yaml,
// under dir. This mirrors original_source's Config::from_folder precedence
// (shared/config/config.rs).
func Load(env Environment, dir string) (*Config, error) {
	candidates := []string{
		filepath.Join(dir, fmt.Sprintf("%s.local.yaml", env)),
		filepath.Join(dir, fmt.Sprintf("%s.yaml", env)),
	}

	var selected string
	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			selected = path
			break
		}
	}
	if selected == "" {
		return nil, errors.Errorf("no configuration file found in %s for environment %s", dir, env)
	}

	v := viper.New()
	v.SetConfigFile(selected)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		return nil, errors.Wrapf(err, "failed to read configuration file %s", selected)
	}

	cfg := Default()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.Wrap(err, "failed to parse configuration")
	}
	return cfg, nil
}
