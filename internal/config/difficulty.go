package config

import "time"

// Scaler turns the raw loop count into difficulty parameters.
type Scaler struct {
	cfg DifficultyConfig
}

// NewScaler creates a difficulty scaler.
func NewScaler(cfg DifficultyConfig) *Scaler {
	if cfg.SpeedFactor <= 0 {
		cfg.SpeedFactor = 1.0
	}
	return &Scaler{cfg: cfg}
}

// Loop returns the loop count difficulty formulas should use.
// Progression disabled pins it to 0; MaxLoop caps it when set.
func (s *Scaler) Loop(loop int) int {
	if !s.cfg.Enabled || loop < 0 {
		return 0
	}
	if s.cfg.MaxLoop > 0 && loop > s.cfg.MaxLoop {
		return s.cfg.MaxLoop
	}
	return loop
}

// Speed scales a per-frame velocity by the preset factor.
func (s *Scaler) Speed(v float64) float64 {
	return v * s.cfg.SpeedFactor
}

// Interval scales a step interval inversely to the preset factor.
func (s *Scaler) Interval(d time.Duration) time.Duration {
	return time.Duration(float64(d) / s.cfg.SpeedFactor)
}

// LoopFor computes floor(score/cycle) for non-negative scores.
func LoopFor(score, cycle int) int {
	if cycle <= 0 || score <= 0 {
		return 0
	}
	return score / cycle
}
