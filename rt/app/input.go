package app

// Input is the held state of the movement keys.
type Input struct {
	Forward  bool
	Backward bool
	Left     bool
	Right    bool
	Up       bool
	Down     bool
	Fast     bool
}

// Axes converts held keys into per-frame movement along the camera's
// forward and right vectors and the world up axis.
func (in Input) Axes(speed, acceleration float32) (forward, right, up float32) {
	step := speed
	if in.Fast {
		step *= acceleration
	}
	axis := func(pos, neg bool) float32 {
		var v float32
		if pos {
			v += step
		}
		if neg {
			v -= step
		}
		return v
	}
	return axis(in.Forward, in.Backward), axis(in.Right, in.Left), axis(in.Up, in.Down)
}

func (in Input) Moving() bool {
	return in.Forward || in.Backward || in.Left || in.Right || in.Up || in.Down
}
