package workflow

// LoopPolicy selects how the refinement loop decides to reloop.
type LoopPolicy string

const (
	// LoopStrictCount always reloops until the iteration cap is reached.
	LoopStrictCount LoopPolicy = "strict_count"
	// LoopEarlyExit stops as soon as feedback reports no further improvement
	// is needed, within the iteration cap. Preferred: it avoids wasted
	// iterations on content that is already good.
	LoopEarlyExit LoopPolicy = "early_exit"
)

// DefaultMaxIterations caps the refinement loop.
const DefaultMaxIterations = 4

// LoopConfig bounds the refinement loop. Count is the sole authority for
// termination; the policy can only end the loop earlier, never extend it.
type LoopConfig struct {
	Policy        LoopPolicy
	MaxIterations int
}

func (c LoopConfig) maxIterations() int {
	if c.MaxIterations <= 0 {
		return DefaultMaxIterations
	}
	return c.MaxIterations
}

// Continue reports whether the loop should run another pass for this state.
func (c LoopConfig) Continue(st *State) bool {
	if st.Count >= c.maxIterations() {
		return false
	}
	if c.Policy == LoopEarlyExit && st.Feedback != nil && !st.Feedback.Needed {
		return false
	}
	return true
}
