package timing_test

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/smil-anim/timing-go/pkg/timing"
)

func TestTimeOrdering(t *testing.T) {
	tests := []struct {
		name string
		a, b timing.Time
		want int
	}{
		{"definite before definite", seconds(1), seconds(2), -1},
		{"equal", seconds(3), seconds(3), 0},
		{"negative before zero", seconds(-1), 0, -1},
		{"definite before indefinite", seconds(1e6), timing.Indefinite, -1},
		{"indefinite before unresolved", timing.Indefinite, timing.Unresolved, -1},
		{"unresolved after definite", timing.Unresolved, seconds(-5), 1},
		{"unresolved equals unresolved", timing.Unresolved, timing.Unresolved, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.Compare(tt.b))
			assert.Equal(t, -tt.want, tt.b.Compare(tt.a))
		})
	}
}

func TestTimeAddKeepsSentinels(t *testing.T) {
	assert.Equal(t, seconds(7), seconds(5).Add(2*time.Second))
	assert.Equal(t, seconds(3), seconds(5).Add(-2*time.Second))
	assert.Equal(t, timing.Indefinite, timing.Indefinite.Add(time.Second))
	assert.Equal(t, timing.Unresolved, timing.Unresolved.Add(-time.Second))
}

func TestTimeAddSaturates(t *testing.T) {
	const maxDur = time.Duration(math.MaxInt64)
	const minDur = time.Duration(math.MinInt64)

	assert.Equal(t, timing.Latest, seconds(1).Add(maxDur))
	assert.Equal(t, timing.Latest, timing.Latest.Add(1))
	assert.True(t, seconds(1).Add(maxDur).IsDefinite())
	assert.Equal(t, timing.Earliest, seconds(-1).Add(minDur))
	assert.Equal(t, timing.Earliest, timing.Earliest.Add(-1))
	assert.True(t, seconds(-1).Add(minDur).IsDefinite())

	assert.Equal(t, timing.Latest-1, timing.Latest.Add(-1))
	assert.Equal(t, timing.Time(0), timing.Earliest.Add(maxDur))
	assert.Equal(t, timing.Time(-2), timing.Latest.Add(minDur))
}

func TestTimePredicates(t *testing.T) {
	assert.True(t, seconds(0).IsDefinite())
	assert.True(t, timing.Indefinite.IsResolved())
	assert.False(t, timing.Indefinite.IsDefinite())
	assert.True(t, timing.Indefinite.IsIndefinite())
	assert.False(t, timing.Unresolved.IsResolved())
	assert.False(t, timing.Unresolved.IsDefinite())
}

func TestTimeMin(t *testing.T) {
	assert.Equal(t, seconds(2), timing.Min(seconds(2), seconds(3)))
	assert.Equal(t, seconds(2), timing.Min(timing.Indefinite, seconds(2)))
	assert.Equal(t, timing.Indefinite, timing.Min(timing.Unresolved, timing.Indefinite))
}

func TestTimeString(t *testing.T) {
	assert.Equal(t, "2.5s", seconds(2.5).String())
	assert.Equal(t, "indefinite", timing.Indefinite.String())
	assert.Equal(t, "unresolved", timing.Unresolved.String())
	assert.Equal(t, "begin", timing.Begin.String())
	assert.Equal(t, "end", timing.End.String())
}
