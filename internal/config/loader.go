package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileName is the engine configuration file looked up in config directories.
const FileName = "retromorph.yaml"

// Load loads the engine configuration.
// Search order: customPath -> ~/.retromorph/configs/retromorph.yaml ->
// ./configs/retromorph.yaml -> embedded default -> hardcoded default.
// Files are decoded over the defaults, so partial files are valid.
func Load(customPath string) (EngineConfig, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return DefaultEngineConfig(), fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := Parse(data)
		if err != nil {
			return DefaultEngineConfig(), fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath(FileName); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := Parse(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", FileName)); err == nil {
		if cfg, err := Parse(data); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := Parse(defaultEngineYAML)
	if err != nil {
		return DefaultEngineConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// Parse decodes YAML over the hardcoded defaults and validates the result.
func Parse(data []byte) (EngineConfig, error) {
	cfg := DefaultEngineConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate rejects configurations the engine cannot run with.
func (c EngineConfig) Validate() error {
	var errs []error
	if c.Cycle.Length <= 0 {
		errs = append(errs, errors.New("cycle.length must be positive"))
	}
	if c.Cycle.SnakeEnd <= 0 || c.Cycle.SnakeEnd >= c.Cycle.FlappyEnd || c.Cycle.FlappyEnd >= c.Cycle.Length {
		errs = append(errs, errors.New("cycle thresholds must satisfy 0 < snake_end < flappy_end < length"))
	}
	if c.Timing.FrameCap <= 0 || c.Timing.StallClamp <= 0 {
		errs = append(errs, errors.New("timing.frame_cap and timing.stall_clamp must be positive"))
	}
	if c.Timing.StallThreshold < c.Timing.FrameCap {
		errs = append(errs, errors.New("timing.stall_threshold must not be below frame_cap"))
	}
	if c.Timing.MaxSnakeSteps < 1 {
		errs = append(errs, errors.New("timing.max_snake_steps must be at least 1"))
	}
	if c.Snake.MinTick <= 0 || c.Snake.InitialTick < c.Snake.MinTick {
		errs = append(errs, errors.New("snake ticks must satisfy 0 < min_tick <= initial_tick"))
	}
	if c.Snake.QueueDepth < 1 {
		errs = append(errs, errors.New("snake.queue_depth must be at least 1"))
	}
	if c.Snake.StartLength < 1 {
		errs = append(errs, errors.New("snake.start_length must be at least 1"))
	}
	if c.Flappy.SpawnMin < 1 || c.Cat.SpawnMin < 1 {
		errs = append(errs, errors.New("spawn_min must be at least 1 frame"))
	}
	if c.Difficulty.SpeedFactor <= 0 {
		errs = append(errs, errors.New("difficulty.speed_factor must be positive"))
	}
	return errors.Join(errs...)
}

// ApplyPreset modifies the config based on a difficulty preset.
func ApplyPreset(cfg *EngineConfig, preset DifficultyPreset) {
	if preset == DifficultyFixed {
		cfg.Difficulty.Enabled = false
		cfg.Difficulty.SpeedFactor = 1.0
		return
	}
	cfg.Difficulty.Enabled = true
	cfg.Difficulty.SpeedFactor = SpeedFactorForPreset(preset)
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".retromorph", "configs", filename)
}
