package timing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sec(n int) Time {
	return FromDuration(time.Duration(n) * time.Second)
}

func TestInstanceListSorted(t *testing.T) {
	var l InstanceList
	a := NewInstanceTime(nil, sec(5), true, false)
	b := NewInstanceTime(nil, sec(3), true, false)
	c := NewInstanceTime(nil, sec(5), true, false)
	d := NewInstanceTime(nil, Indefinite, true, false)
	e := NewInstanceTime(nil, sec(1), true, false)

	for _, it := range []*InstanceTime{a, b, c, d, e} {
		l.Insert(it)
	}

	require.Equal(t, 5, l.Len())
	assert.Equal(t, []Time{sec(1), sec(3), sec(5), sec(5), Indefinite}, l.Times())
	// Equal values keep insertion order.
	assert.Same(t, a, l.At(2))
	assert.Same(t, c, l.At(3))
}

func TestInstanceListInsertTwice(t *testing.T) {
	var l InstanceList
	it := NewInstanceTime(nil, sec(1), true, false)
	l.Insert(it)
	l.Insert(it)
	assert.Equal(t, 1, l.Len())
}

func TestInstanceListRepositionKeepsTieOrder(t *testing.T) {
	var l InstanceList
	a := NewInstanceTime(nil, sec(5), false, true)
	b := NewInstanceTime(nil, sec(7), false, true)
	l.Insert(a)
	l.Insert(b)

	// b moves onto a's value and still sorts after it.
	require.True(t, b.setTime(sec(5)))
	l.Reposition(b)
	assert.Same(t, a, l.At(0))
	assert.Same(t, b, l.At(1))

	// a moves past b.
	require.True(t, a.setTime(sec(9)))
	l.Reposition(a)
	assert.Equal(t, []Time{sec(5), sec(9)}, l.Times())
	assert.Same(t, a, l.At(1))
}

func TestInstanceTimeFixed(t *testing.T) {
	it := NewInstanceTime(nil, sec(2), true, false)
	assert.False(t, it.setTime(sec(4)))
	assert.Equal(t, sec(2), it.Time())

	rev := NewInstanceTime(nil, sec(2), false, true)
	assert.True(t, rev.setTime(sec(4)))
	assert.False(t, rev.setTime(sec(4)), "same value is not a change")
	rev.freeze()
	assert.True(t, rev.IsFixed())
	assert.False(t, rev.setTime(sec(6)))
	assert.Equal(t, sec(4), rev.Time())
}

func TestInstanceListClearResettable(t *testing.T) {
	var l InstanceList
	keep := NewInstanceTime(nil, sec(1), true, false)
	drop1 := NewInstanceTime(nil, sec(2), true, true)
	drop2 := NewInstanceTime(nil, sec(3), false, true)
	l.Insert(keep)
	l.Insert(drop1)
	l.Insert(drop2)

	removed := l.ClearResettable()
	assert.Equal(t, []*InstanceTime{drop1, drop2}, removed)
	assert.Equal(t, 1, l.Len())
	assert.Same(t, keep, l.At(0))
	assert.Empty(t, l.ClearResettable())
}

func TestInstanceListRemove(t *testing.T) {
	var l InstanceList
	a := NewInstanceTime(nil, sec(1), true, false)
	l.Insert(a)
	assert.True(t, l.Remove(a))
	assert.False(t, l.Remove(a))
	assert.False(t, l.Contains(a))
}

func TestInstanceListFirstDefinite(t *testing.T) {
	var l InstanceList
	assert.Nil(t, l.FirstDefinite())

	l.Insert(NewInstanceTime(nil, Indefinite, true, false))
	l.Insert(NewInstanceTime(nil, Unresolved, false, true))
	assert.Nil(t, l.FirstDefinite())

	neg := NewInstanceTime(nil, sec(-2), true, false)
	l.Insert(neg)
	assert.Same(t, neg, l.FirstDefinite())
}

func TestInstanceListFirstAfter(t *testing.T) {
	var l InstanceList
	for _, s := range []int{2, 4, 6} {
		l.Insert(NewInstanceTime(nil, sec(s), true, false))
	}

	require.NotNil(t, l.FirstAfter(sec(4)))
	assert.Equal(t, sec(6), l.FirstAfter(sec(4)).Time())
	assert.Equal(t, sec(2), l.FirstAfter(sec(0)).Time())
	assert.Nil(t, l.FirstAfter(sec(6)))
}

func TestInstanceTimeString(t *testing.T) {
	assert.Equal(t, "2s", NewInstanceTime(nil, sec(2), true, false).String())
	assert.Equal(t, "2s~", NewInstanceTime(nil, sec(2), false, true).String())
}

func TestIntervalEdgesAndDependents(t *testing.T) {
	iv := NewInterval(sec(1), sec(4), 1)
	assert.Equal(t, sec(1), iv.Edge(Begin))
	assert.Equal(t, sec(4), iv.Edge(End))

	assert.False(t, iv.SetBegin(sec(1)))
	assert.True(t, iv.SetEnd(sec(5)))
	assert.Equal(t, sec(5), iv.End())

	it := NewInstanceTime(nil, sec(7), false, true)
	iv.AddDependent(it, End)
	iv.AddDependent(it, End)
	assert.Len(t, iv.Dependents(End), 1)
	assert.Empty(t, iv.Dependents(Begin))

	deps := iv.Dependents(End)
	deps[0] = nil
	assert.Same(t, it, iv.Dependents(End)[0], "Dependents returns a copy")

	iv.RemoveDependent(it, End)
	assert.Empty(t, iv.Dependents(End))
}
