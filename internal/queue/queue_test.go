package queue

import (
	"fmt"
	"testing"

	. "github.com/ava12/jtree/internal/test"
)

func TestComputeMask(t *testing.T) {
	for i := 0; i <= 33; i++ {
		name := fmt.Sprintf("%d elements", i)
		t.Run(name, func(t *testing.T) {
			mask := computeMask(i)
			Assert(t, mask >= minSize, "expecting at least %d, got %d", minSize, mask)
			Assert(t, mask&(mask+1) == 0, "expecting 2^n - 1, got %b", mask)
			Assert(t, mask >= i, "expecting mask >= %d, got %d", i, mask)
		})
	}
}

func TestEmpty(t *testing.T) {
	q := New[int]()
	ExpectInt(t, minSize+1, len(q.items))
	ExpectBool(t, true, q.IsEmpty())
	_, ok := q.First()
	ExpectBool(t, false, ok)
}

func TestFifoOrder(t *testing.T) {
	q := New(1, 2, 3)
	ExpectInt(t, 3, q.Len())
	for i := 4; i <= 20; i++ {
		q.Append(i)
	}
	ExpectInt(t, 20, q.Len())
	for i := 1; i <= 20; i++ {
		v, ok := q.First()
		ExpectBool(t, true, ok)
		ExpectInt(t, i, v)
	}
	ExpectBool(t, true, q.IsEmpty())
}

func TestWrapAndGrow(t *testing.T) {
	q := New[int]()
	q.Append(1).Append(2).Append(3)
	q.First()
	q.First()
	q.Append(4).Append(5)
	ExpectInt(t, minSize, q.mask)
	q.Append(6)
	ExpectInt(t, minSize<<1|1, q.mask)
	for _, expected := range []int{3, 4, 5, 6} {
		v, _ := q.First()
		ExpectInt(t, expected, v)
	}
}
