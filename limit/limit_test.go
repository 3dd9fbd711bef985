package limit

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// fakeView reports a fixed entry count.
type fakeView int

func (v fakeView) Len() int { return int(v) }

func TestBehaviorString(t *testing.T) {
	assert.Equal(t, "Accept", Accept.String())
	assert.Equal(t, "Evict", Evict.String())
	assert.Equal(t, "Reject", Reject.String())
	assert.Equal(t, "Behavior(?)", Behavior(42).String())
}

func TestUnlimited(t *testing.T) {
	l := NewUnlimited[string, int]()
	v := 1
	k := "k"

	assert.False(t, l.IsOversized(fakeView(1<<30)))
	assert.Equal(t, Accept, l.OnAdd(fakeView(0), "a", &v))
	assert.Equal(t, Accept, l.OnUpdate(fakeView(0), "a", &v, &k, &v))
	l.OnRemove(fakeView(0), "a", &v)
}

func TestCountOnAdd(t *testing.T) {
	l := NewCount[string, int](2)
	v := 1

	assert.Equal(t, Accept, l.OnAdd(fakeView(0), "a", &v))
	assert.Equal(t, Accept, l.OnAdd(fakeView(1), "b", &v))
	assert.Equal(t, Evict, l.OnAdd(fakeView(2), "c", &v))
	assert.Equal(t, Evict, l.OnAdd(fakeView(5), "d", &v))
}

func TestCountZeroRejects(t *testing.T) {
	l := NewCount[string, int](0)
	v := 1
	assert.Equal(t, Reject, l.OnAdd(fakeView(0), "a", &v))
}

func TestCountOversized(t *testing.T) {
	l := NewCount[string, int](3)
	assert.False(t, l.IsOversized(fakeView(3)))
	assert.True(t, l.IsOversized(fakeView(4)))

	l.SetLimit(2)
	assert.Equal(t, 2, l.Limit())
	assert.True(t, l.IsOversized(fakeView(3)))
}

func TestCountUpdateAlwaysAccepts(t *testing.T) {
	l := NewCount[string, int](1)
	v := 1
	k := "k"
	assert.Equal(t, Accept, l.OnUpdate(fakeView(1), "a", &v, &k, &v))
}
