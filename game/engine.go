package game

import "go-scoundrel/entities"

// Engine holds the current state and applies actions to it one at a time.
// It is not safe for concurrent use.
type Engine struct {
	state entities.GameState
}

func NewEngine(highScore int) *Engine {
	return &Engine{state: NewState(highScore)}
}

// Dispatch applies a and returns a snapshot of the new state.
func (e *Engine) Dispatch(a Action) entities.GameState {
	e.state = Reduce(e.state, a)
	return e.State()
}

func (e *Engine) State() entities.GameState {
	return cloneState(e.state)
}

// RestoreEngine resumes play from a saved snapshot.
func RestoreEngine(s entities.GameState) *Engine {
	return &Engine{state: cloneState(s)}
}
