package flappy

// Autopilot reports whether the bird should flap this frame.
//
// It aims the bird's center at a point AITarget of the way down the next
// gap. It flaps when the position predicted AILookahead frames out would
// put the hitbox below the gap floor, or when the bird is below target and
// falling and a flap would not reach the gap ceiling.
func (g *Game) Autopilot() bool {
	size := g.BirdSize()
	inset := g.cfg.HitboxInset
	center := g.birdY + size/2

	gapTop, gapBottom := g.height*0.3, g.height*0.7
	if p, ok := g.nextPipe(g.BirdX()); ok {
		gapTop, gapBottom = p.GapY, p.GapBottom()
	}
	target := gapTop + g.cfg.AITarget*(gapBottom-gapTop)

	predicted := g.predict(center, g.vel, g.cfg.AILookahead)
	if predicted+size/2-inset >= gapBottom {
		return true
	}

	if center > target && g.vel > 0 {
		peak := g.flapPeak(center)
		return peak-size/2+inset > gapTop
	}
	return false
}

// predict integrates the bird's center forward without flapping.
func (g *Game) predict(y, vel float64, frames int) float64 {
	for range frames {
		vel = min(vel+g.cfg.Gravity, g.cfg.MaxFall)
		y += vel
	}
	return y
}

// flapPeak returns the highest center position reached after flapping now.
func (g *Game) flapPeak(y float64) float64 {
	vel := g.cfg.FlapImpulse
	peak := y
	for vel < 0 && g.cfg.Gravity > 0 {
		vel = min(vel+g.cfg.Gravity, g.cfg.MaxFall)
		y += vel
		peak = min(peak, y)
	}
	return peak
}
