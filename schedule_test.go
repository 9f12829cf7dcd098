package starfield

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var Overlay = Stage{Name: "Overlay"}

func TestSystemBuilder(t *testing.T) {
	fn := func() {}
	sched := System(fn)
	assert.Equal(t, Update, sched.inStage)
	assert.False(t, sched.runAlways)
	assert.False(t, sched.stateProvided)

	sched = sched.InStage(Render).InState(OnExit(StateRunning))
	assert.Equal(t, Render, sched.inStage)
	assert.True(t, sched.stateProvided)
	assert.Equal(t, exit, sched.inStatePhase)
	assert.Equal(t, StateRunning, sched.inState)

	assert.True(t, System(fn).InState(Always()).runAlways)
	assert.True(t, System(fn).RunAlways().runAlways)
}

func TestUseStage(t *testing.T) {
	app := NewAppBuilder().UseStates(StateRunning, StateExit).Build()
	app.UseStage(Overlay, AfterStage(Render))

	idx := func(s Stage) int {
		for i, st := range app.stages {
			if st.Name == s.Name {
				return i
			}
		}
		return -1
	}
	require.NotEqual(t, -1, idx(Overlay))
	assert.Equal(t, idx(Render)+1, idx(Overlay))
	assert.Contains(t, app.systems, Overlay.Name)

	before := Stage{Name: "Setup"}
	app.UseStage(before, BeforeStage(Prelude))
	assert.Equal(t, 0, idx(before))

	assert.Panics(t, func() { app.UseStage(Stage{Name: "x"}, AfterStage(Stage{Name: "missing"})) })
}

func TestUseSystem_Panics(t *testing.T) {
	stateless := NewAppBuilder().Build()
	assert.PanicsWithValue(t, "Trying to use a stateful system in a stateless app.", func() {
		stateless.UseSystem(System(func() {}).InState(OnEnter(StateRunning)))
	})
	assert.Panics(t, func() {
		stateless.UseSystem(System(func() {}).InStage(Stage{Name: "nope"}))
	})

	stateful := NewAppBuilder().UseStates(StateRunning, StateExit).Build()
	assert.PanicsWithValue(t, "State 7 doesn't exist", func() {
		stateful.UseSystem(System(func() {}).InState(OnEnter(State(7))))
	})
}
