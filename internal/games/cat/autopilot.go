package cat

// Decision is the autopilot's output for one frame.
type Decision struct {
	Jump bool
	Duck bool
}

// Autopilot scans obstacles from AIScanBehind grid cells behind the cat to
// AIScanAhead pixels ahead. It jumps for a cactus closer than AICactusLead
// times the ground speed and ducks for a bird inside AIBirdAhead. Jump wins
// over duck, and neither is chosen while already airborne.
func (g *Game) Autopilot() Decision {
	var d Decision
	if g.jumping {
		return d
	}

	catX := g.CatX()
	behind := -g.cfg.AIScanBehind * g.grid
	lead := g.cfg.AICactusLead * g.speed

	for _, o := range g.obstacles {
		dx := o.X - catX
		if dx < behind || dx > g.cfg.AIScanAhead {
			continue
		}
		switch {
		case o.Kind == KindCactus:
			if dx <= lead && o.X+o.Width(g.grid) >= catX {
				d.Jump = true
			}
		case o.Kind.IsBird():
			if dx <= g.cfg.AIBirdAhead {
				d.Duck = true
			}
		}
	}
	if d.Jump {
		d.Duck = false
	}
	return d
}

// Apply performs a decision: jump, or hold or release the duck.
func (g *Game) Apply(d Decision) {
	if d.Jump {
		g.Jump()
		return
	}
	g.SetDuck(d.Duck)
}
