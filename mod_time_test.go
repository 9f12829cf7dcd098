package starfield

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTimeSystem(t *testing.T) {
	now := time.Unix(1000, 0)
	tr := newTime(func() time.Time { return now })

	now = now.Add(16 * time.Millisecond)
	timeSystem(tr)
	assert.Equal(t, 16*time.Millisecond, tr.Dt)
	assert.Equal(t, 16*time.Millisecond, tr.Elapsed)

	now = now.Add(20 * time.Millisecond)
	timeSystem(tr)
	assert.Equal(t, 20*time.Millisecond, tr.Dt)
	assert.Equal(t, 36*time.Millisecond, tr.Elapsed)
}

func TestTimeModule_Install(t *testing.T) {
	app := NewAppBuilder().UseModule(TimeModule{}).Build()
	tr, ok := Resource[Time](app)
	assert.True(t, ok)
	assert.False(t, tr.Start.IsZero())
	assert.Len(t, app.systemsStateless[Prelude.Name], 1)
}
