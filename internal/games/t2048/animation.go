package t2048

// Animation constants
const (
	slideAnimationDuration = 8 // ~133ms at 60fps
	popAnimationDuration   = 6 // ~100ms at 60fps
)

// AnimationPhase represents the current phase of animation.
type AnimationPhase int

const (
	PhaseNone AnimationPhase = iota
	PhaseSlide
	PhasePop
)

// TileAnimation represents an animated tile.
type TileAnimation struct {
	Value    int      // Value drawn while moving
	From     Position // Start cell
	To       Position // End cell
	Progress float64  // 0.0 → 1.0
	Merged   bool     // Absorbed by the tile at To
}

// animator plays back one turn: first the slides from the transition list,
// then a pop for the spawned tile. The session board is already final; the
// animator only decides what to draw on top of it.
type animator struct {
	phase  AnimationPhase
	ticks  int
	slides []TileAnimation
	// cells whose final content is hidden until the slide ends, mapped to
	// the value shown there meanwhile (0 = nothing)
	hidden  map[Position]int
	spawned *PlacedTile
}

// start begins the slide phase for a turn that moved.
func (a *animator) start(turn Turn) {
	a.slides = a.slides[:0]
	a.hidden = make(map[Position]int, len(turn.Transitions)+1)

	for _, tr := range turn.Transitions {
		value := tr.Value
		if tr.Merged {
			value = tr.Value / 2
			// The absorbing tile keeps its pre-merge value until the slide lands.
			a.hidden[tr.To] = value
		} else if _, ok := a.hidden[tr.To]; !ok {
			a.hidden[tr.To] = 0
		}
		a.slides = append(a.slides, TileAnimation{
			Value:  value,
			From:   tr.From,
			To:     tr.To,
			Merged: tr.Merged,
		})
	}

	// A tile that slid and then absorbed another shows its pre-merge value
	// while moving, and its destination cell stays empty.
	for i, s := range a.slides {
		if !s.Merged {
			if v, ok := a.hidden[s.To]; ok && v != 0 {
				a.slides[i].Value = v
				a.hidden[s.To] = 0
			}
		}
	}

	a.spawned = turn.Spawned
	if a.spawned != nil {
		a.hidden[a.spawned.Position] = 0
	}

	a.phase = PhaseSlide
	a.ticks = 0
}

// update advances the animation state by one tick.
func (a *animator) update() {
	if a.phase == PhaseNone {
		return
	}

	a.ticks++

	var duration int
	switch a.phase {
	case PhaseSlide:
		duration = slideAnimationDuration
	case PhasePop:
		duration = popAnimationDuration
	}

	progress := float64(a.ticks) / float64(duration)
	if progress > 1.0 {
		progress = 1.0
	}
	for i := range a.slides {
		a.slides[i].Progress = progress
	}

	if a.ticks >= duration {
		a.finish()
	}
}

// finish completes the current phase.
func (a *animator) finish() {
	if a.phase == PhaseSlide && a.spawned != nil {
		a.phase = PhasePop
		a.ticks = 0
		a.slides = a.slides[:0]
		a.hidden = map[Position]int{a.spawned.Position: 0}
		return
	}

	*a = animator{}
}

// active reports whether an animation is running.
func (a *animator) active() bool {
	return a.phase != PhaseNone
}

// hiddenValue reports whether the final tile at p is hidden and, if so,
// which value to draw there instead (0 = leave empty).
func (a *animator) hiddenValue(p Position) (int, bool) {
	if a.hidden == nil {
		return 0, false
	}
	v, ok := a.hidden[p]
	return v, ok
}

// easeOutQuad provides smooth deceleration for animation.
func easeOutQuad(t float64) float64 {
	return t * (2 - t)
}

// interpolatePosition calculates the current cell position during animation.
func (a *TileAnimation) interpolatePosition() (x, y float64) {
	t := easeOutQuad(a.Progress)
	x = float64(a.From.X) + (float64(a.To.X)-float64(a.From.X))*t
	y = float64(a.From.Y) + (float64(a.To.Y)-float64(a.From.Y))*t
	return x, y
}
