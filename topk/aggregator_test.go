package topk

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAggregatorBasic(t *testing.T) {
	a := New(3)
	a.Offer(3, 7.0)
	a.Offer(0, 3.0)
	a.Offer(2, 11.0)
	a.Offer(6, 12.0)
	a.Offer(12, 18.0)

	got := a.Sorted()
	want := []Result{{12, 18.0}, {6, 12.0}, {2, 11.0}}
	assert.Equal(t, want, got)
}

func TestAggregatorTieBreak(t *testing.T) {
	a := New(2)
	a.Offer(5, 1.0)
	a.Offer(3, 1.0)
	a.Offer(9, 1.0)

	got := a.Sorted()
	assert.Equal(t, []Result{{3, 1.0}, {5, 1.0}}, got)
}

func TestAggregatorThreshold(t *testing.T) {
	a := New(2)
	assert.Equal(t, 0.0, a.Threshold())
	a.Offer(1, 5.0)
	assert.Equal(t, 0.0, a.Threshold())
	a.Offer(2, 9.0)
	assert.Equal(t, 5.0, a.Threshold())
	a.Offer(3, 7.0)
	assert.Equal(t, 7.0, a.Threshold())
}
