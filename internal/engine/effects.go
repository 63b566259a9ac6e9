package engine

// DimBrightness is the background level outside search mode.
const DimBrightness = 0.4

const rampSteps = 16

// Brightness is the background filter level for a search state.
func Brightness(search bool) float64 {
	if search {
		return 1
	}
	return DimBrightness
}

func (c *Controller) applyFilter() {
	c.display.SetBrightness(Brightness(c.st.Search))
}

// changeBackground swaps the background and calls done when the swap has
// settled: at once without a transition, after TransitionTimeout with one.
func (c *Controller) changeBackground(t task, image string, transition bool, done func()) {
	c.display.SetBackground(image, transition)
	if !transition {
		done()
		return
	}
	t.after(TransitionTimeout, done)
}

// ramp raises brightness from DimBrightness to 1 over RampDuration in equal
// steps, then calls done.
func (c *Controller) ramp(t task, done func()) {
	step := RampDuration / rampSteps
	c.display.SetBrightness(DimBrightness)

	var tick func(k int)
	tick = func(k int) {
		c.display.SetBrightness(DimBrightness + (1-DimBrightness)*float64(k)/rampSteps)
		if k == rampSteps {
			done()
			return
		}
		t.after(step, func() { tick(k + 1) })
	}
	t.after(step, func() { tick(1) })
}
