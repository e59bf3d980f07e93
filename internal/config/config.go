// Package config provides YAML-based engine tuning and difficulty presets
// for RetroMorph.
package config

import "time"

// EngineConfig contains every tunable constant of the game engine.
type EngineConfig struct {
	Cycle       CycleConfig       `yaml:"cycle"`
	Timing      TimingConfig      `yaml:"timing"`
	Snake       SnakeConfig       `yaml:"snake"`
	Flappy      FlappyConfig      `yaml:"flappy"`
	Cat         CatConfig         `yaml:"cat"`
	Branding    BrandingConfig    `yaml:"branding"`
	Difficulty  DifficultyConfig  `yaml:"difficulty"`
	Leaderboard LeaderboardConfig `yaml:"leaderboard"`
}

// CycleConfig defines the score ranges of one Snake -> Flappy -> Cat loop.
type CycleConfig struct {
	Length    int `yaml:"length"`     // Points per full loop
	SnakeEnd  int `yaml:"snake_end"`  // cyclePos below this is Snake
	FlappyEnd int `yaml:"flappy_end"` // cyclePos below this is Flappy, the rest is Cat
}

// TimingConfig defines the frame scheduler constants.
type TimingConfig struct {
	Morph           time.Duration `yaml:"morph"`
	RestartCooldown time.Duration `yaml:"restart_cooldown"`
	FrameCap        time.Duration `yaml:"frame_cap"`       // Frames closer than this skip logic
	StallThreshold  time.Duration `yaml:"stall_threshold"` // Deltas above this are treated as a stall
	StallClamp      time.Duration `yaml:"stall_clamp"`     // Delta used after a stall
	MaxSnakeSteps   int           `yaml:"max_snake_steps"` // Catch-up bound per frame
	ShakeDecay      float64       `yaml:"shake_decay"`     // Per processed frame
	PulseDecay      float64       `yaml:"pulse_decay"`
}

// SnakeConfig defines the metronome and autopilot parameters for Snake.
type SnakeConfig struct {
	InitialTick  time.Duration `yaml:"initial_tick"`
	MinTick      time.Duration `yaml:"min_tick"`
	ScorePenalty time.Duration `yaml:"score_penalty"` // Subtracted from the tick per point
	LoopScaling  float64       `yaml:"loop_scaling"`  // Tick divisor is 1 + loop*LoopScaling
	FoodPoints   int           `yaml:"food_points"`
	QueueDepth   int           `yaml:"queue_depth"`
	StartLength  int           `yaml:"start_length"`   // Plus one segment per loop
	FloodFillCap int           `yaml:"flood_fill_cap"` // Autopilot survival search bound
}

// FlappyConfig defines physics, pipes and autopilot for Flappy.
// Velocities are canvas pixels per processed frame.
type FlappyConfig struct {
	FlapImpulse  float64 `yaml:"flap_impulse"`
	Gravity      float64 `yaml:"gravity"`
	MaxFall      float64 `yaml:"max_fall"`
	SpawnBase    int     `yaml:"spawn_base"`     // Frames between pipes at loop 0
	SpawnPerLoop int     `yaml:"spawn_per_loop"` // Frames removed per loop
	SpawnMin     int     `yaml:"spawn_min"`
	SpeedBase    float64 `yaml:"speed_base"`
	SpeedPerLoop float64 `yaml:"speed_per_loop"`
	PipePoints   int     `yaml:"pipe_points"`
	PipeWidth    float64 `yaml:"pipe_width"`   // In grid cells
	GapBase      float64 `yaml:"gap_base"`     // Fraction of canvas height
	GapPerLoop   float64 `yaml:"gap_per_loop"` // Fraction removed per loop
	GapMinCells  float64 `yaml:"gap_min_cells"`
	GapFloor     float64 `yaml:"gap_floor"` // Absolute minimum fraction of canvas height
	BirdSize     float64 `yaml:"bird_size"` // In grid cells
	BirdX        float64 `yaml:"bird_x"`    // Fraction of canvas width
	HitboxInset  float64 `yaml:"hitbox_inset"`
	AITarget     float64 `yaml:"ai_target"`    // Fraction down the gap
	AILookahead  int     `yaml:"ai_lookahead"` // Frames
}

// CatConfig defines physics, obstacles and autopilot for the Cat runner.
// Jump and gravity are fractions of canvas height.
type CatConfig struct {
	JumpImpulse    float64 `yaml:"jump_impulse"`
	Gravity        float64 `yaml:"gravity"`
	SpeedBase      float64 `yaml:"speed_base"`
	SpeedPerLoop   float64 `yaml:"speed_per_loop"`
	SpawnBase      int     `yaml:"spawn_base"`
	SpawnPerLoop   int     `yaml:"spawn_per_loop"`
	SpawnMin       int     `yaml:"spawn_min"`
	ObstaclePoints int     `yaml:"obstacle_points"`
	BirdChance     float64 `yaml:"bird_chance"`
	MercyCells     float64 `yaml:"mercy_cells"`    // Airborne bottom-edge forgiveness
	CatX           float64 `yaml:"cat_x"`          // Fraction of canvas width
	GroundRows     int     `yaml:"ground_rows"`    // Rows below the running line
	AIScanBehind   float64 `yaml:"ai_scan_behind"` // Grid cells
	AIScanAhead    float64 `yaml:"ai_scan_ahead"`  // Pixels
	AICactusLead   float64 `yaml:"ai_cactus_lead"` // Multiplied by ground speed
	AIBirdAhead    float64 `yaml:"ai_bird_ahead"`  // Pixels
}

// BrandingConfig is the reserved top-left rectangle used for occlusion.
type BrandingConfig struct {
	WidthCells  float64 `yaml:"width_cells"`
	HeightCells float64 `yaml:"height_cells"`
}

// LeaderboardConfig points the client at the remote API.
type LeaderboardConfig struct {
	BaseURL      string        `yaml:"base_url"`
	PublicKey    string        `yaml:"public_key"`
	Timeout      time.Duration `yaml:"timeout"`
	DisplayLimit int           `yaml:"display_limit"`
}

// DifficultyConfig scales speeds and controls loop-count progression.
type DifficultyConfig struct {
	Enabled     bool    `yaml:"enabled"`      // false pins difficulty to loop 0
	SpeedFactor float64 `yaml:"speed_factor"` // Applied to ground, pipe and snake speed
	MaxLoop     int     `yaml:"max_loop"`     // 0 means unbounded
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// SpeedFactorForPreset returns the speed multiplier for a difficulty preset.
func SpeedFactorForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.7
	case DifficultyHard:
		return 1.3
	default:
		return 1.0
	}
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}

// ParsePreset validates a preset name. The empty string means normal.
func ParsePreset(name string) (DifficultyPreset, bool) {
	switch p := DifficultyPreset(name); p {
	case "":
		return DifficultyNormal, true
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, true
	default:
		return DifficultyNormal, false
	}
}
