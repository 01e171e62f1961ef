package series

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRingBuffer_LastNInArrivalOrder(t *testing.T) {
	for _, n := range []int{1, 2, 5, 16} {
		for _, pushes := range []int{n, n + 1, 2*n + 3, 7*n - 1} {
			r := NewRingBuffer(n)
			var all []float64
			for i := 0; i < pushes; i++ {
				v := float64(i*3 - 7)
				r.Push(v)
				all = append(all, v)
				assert.True(t, r.mirrored(), "slot copies diverged after push %d (n=%d)", i, n)
			}
			assert.Equal(t, all[len(all)-n:], r.Tail(n), "n=%d pushes=%d", n, pushes)
			assert.Equal(t, pushes, r.Total())
			assert.Equal(t, n, r.Retained())
		}
	}
}

func TestRingBuffer_PartialFill(t *testing.T) {
	r := NewRingBuffer(8)
	assert.Nil(t, r.Tail(4))

	r.Push(1)
	r.Push(2)
	r.Push(3)
	assert.Equal(t, []float64{1, 2, 3}, r.Tail(8))
	assert.Equal(t, []float64{2, 3}, r.Tail(2))
	assert.Equal(t, 3, r.Retained())
}

func TestRingBuffer_MinimumSize(t *testing.T) {
	r := NewRingBuffer(0)
	assert.Equal(t, 1, r.Size())
	r.Push(4)
	r.Push(5)
	assert.Equal(t, []float64{5}, r.Tail(3))
}

func TestAppendBuffer_Tail(t *testing.T) {
	b := NewAppendBuffer()
	for i := 0; i < 6; i++ {
		b.Push(float64(i))
	}
	assert.Equal(t, []float64{3, 4, 5}, b.Tail(3))
	assert.Equal(t, 6, b.Total())
	assert.Equal(t, 6, b.Retained())
	assert.Nil(t, b.Tail(-1))
}

func TestParseDiscipline(t *testing.T) {
	d, ok := ParseDiscipline("ring")
	assert.True(t, ok)
	assert.Equal(t, Ring, d)

	d, ok = ParseDiscipline("")
	assert.True(t, ok)
	assert.Equal(t, Append, d)

	_, ok = ParseDiscipline("circular")
	assert.False(t, ok)
}

func TestColor_Hex(t *testing.T) {
	assert.Equal(t, "#32FF0A", Color{R: 50, G: 255, B: 10}.Hex())
}
