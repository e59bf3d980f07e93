package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/retromorph.yaml
var defaultEngineYAML []byte

// DefaultEngineConfig returns the built-in engine configuration.
func DefaultEngineConfig() EngineConfig {
	return EngineConfig{
		Cycle: CycleConfig{
			Length:    450,
			SnakeEnd:  150,
			FlappyEnd: 300,
		},
		Timing: TimingConfig{
			Morph:           1500 * time.Millisecond,
			RestartCooldown: 3 * time.Second,
			FrameCap:        16 * time.Millisecond,
			StallThreshold:  200 * time.Millisecond,
			StallClamp:      16 * time.Millisecond,
			MaxSnakeSteps:   2,
			ShakeDecay:      0.9,
			PulseDecay:      0.05,
		},
		Snake: SnakeConfig{
			InitialTick:  150 * time.Millisecond,
			MinTick:      70 * time.Millisecond,
			ScorePenalty: 50 * time.Microsecond,
			LoopScaling:  0.05,
			FoodPoints:   10,
			QueueDepth:   2,
			StartLength:  4,
			FloodFillCap: 100,
		},
		Flappy: FlappyConfig{
			FlapImpulse:  -15.2,
			Gravity:      1.6,
			MaxFall:      11,
			SpawnBase:    95,
			SpawnPerLoop: 8,
			SpawnMin:     55,
			SpeedBase:    4,
			SpeedPerLoop: 0.6,
			PipePoints:   10,
			PipeWidth:    1.5,
			GapBase:      0.36,
			GapPerLoop:   0.02,
			GapMinCells:  3,
			GapFloor:     0.26,
			BirdSize:     0.8,
			BirdX:        0.2,
			HitboxInset:  4,
			AITarget:     0.8,
			AILookahead:  4,
		},
		Cat: CatConfig{
			JumpImpulse:    0.048,
			Gravity:        0.004,
			SpeedBase:      6,
			SpeedPerLoop:   0.75,
			SpawnBase:      85,
			SpawnPerLoop:   6,
			SpawnMin:       45,
			ObstaclePoints: 10,
			BirdChance:     0.35,
			MercyCells:     0.2,
			CatX:           0.15,
			GroundRows:     1,
			AIScanBehind:   4,
			AIScanAhead:    400,
			AICactusLead:   13.5,
			AIBirdAhead:    350,
		},
		Branding: BrandingConfig{
			WidthCells:  10,
			HeightCells: 2,
		},
		Difficulty: DifficultyConfig{
			Enabled:     true,
			SpeedFactor: 1.0,
		},
		Leaderboard: LeaderboardConfig{
			Timeout:      5 * time.Second,
			DisplayLimit: 10,
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultEngineYAML
}
