package ringbuffer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func TestBasicWriteRead(t *testing.T) {
	buf := New(10)
	buf.Write([]float32{1, 2, 3})

	assert.Equal(t, 3, buf.Count())
	assert.Equal(t, []float32{1, 2, 3}, buf.Read(3))
	assert.True(t, buf.IsEmpty())
}

func TestReadPartial(t *testing.T) {
	buf := New(10)
	buf.Write([]float32{1, 2, 3, 4, 5})

	first := buf.Read(3)
	assert.Equal(t, []float32{1, 2, 3}, first)
	assert.Equal(t, 2, buf.Count())

	rest := buf.Read(10) // request more than available
	assert.Equal(t, []float32{4, 5}, rest)
	assert.True(t, buf.IsEmpty())
}

func TestOverflowDropsOldest(t *testing.T) {
	buf := New(4)
	buf.Write([]float32{1, 2, 3, 4})
	buf.Write([]float32{5, 6}) // overflow: drops 1, 2

	assert.Equal(t, 4, buf.Count())
	assert.Equal(t, []float32{3, 4, 5, 6}, buf.Read(4))
}

func TestWriteLargerThanCapacity(t *testing.T) {
	buf := New(3)
	buf.Write([]float32{1, 2, 3, 4, 5}) // only last 3 kept

	assert.Equal(t, 3, buf.Count())
	assert.Equal(t, []float32{3, 4, 5}, buf.Read(3))
}

func TestWraparound(t *testing.T) {
	buf := New(4)

	buf.Write([]float32{1, 2, 3})
	buf.Read(2) // discard 1, 2; readIndex = 2

	buf.Write([]float32{4, 5, 6}) // wraps around

	assert.Equal(t, 4, buf.Count())
	assert.Equal(t, []float32{3, 4, 5, 6}, buf.Read(4))
}

func TestResetClearsBuffer(t *testing.T) {
	buf := New(10)
	buf.Write([]float32{1, 2, 3})
	buf.Reset()

	assert.True(t, buf.IsEmpty())
	assert.Equal(t, 0, buf.Count())
	assert.Nil(t, buf.Read(10))
}

func TestEmptyOperations(t *testing.T) {
	buf := New(10)

	assert.True(t, buf.IsEmpty())
	assert.Nil(t, buf.Read(5))

	buf.Write(nil)
	assert.True(t, buf.IsEmpty())
}

// TestNeverExceedsCapacity checks that for any sequence of writes, Count()
// never exceeds the buffer's capacity, regardless of input sizes.
func TestNeverExceedsCapacity(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		capacity := rapid.IntRange(1, 64).Draw(t, "capacity")
		buf := New(capacity)

		writes := rapid.SliceOfN(rapid.SliceOfN(rapid.Float32(), 0, 32), 0, 16).Draw(t, "writes")
		for _, w := range writes {
			buf.Write(w)
			assert.LessOrEqual(t, buf.Count(), capacity)
			assert.LessOrEqual(t, buf.Count(), buf.Capacity())
		}
	})
}

// TestReadNeverExceedsRequestedOrAvailable checks that Read never returns
// more samples than requested, nor more than were available.
func TestReadNeverExceedsRequestedOrAvailable(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		capacity := rapid.IntRange(1, 64).Draw(t, "capacity")
		buf := New(capacity)

		written := rapid.SliceOfN(rapid.Float32(), 0, 64).Draw(t, "written")
		buf.Write(written)

		available := buf.Count()
		readCount := rapid.IntRange(0, 128).Draw(t, "readCount")
		out := buf.Read(readCount)

		assert.LessOrEqual(t, len(out), readCount)
		wantLen := readCount
		if wantLen > available {
			wantLen = available
		}
		assert.Equal(t, wantLen, len(out))
	})
}

// TestWriteThenReadAllReturnsLastCapacitySamples checks that writing a
// single batch and reading it all back yields exactly the trailing
// `capacity` elements of the input (all of it when shorter), in order — the
// documented drop-oldest/truncate-to-tail overflow behavior.
func TestWriteThenReadAllReturnsLastCapacitySamples(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		capacity := rapid.IntRange(1, 32).Draw(t, "capacity")
		samples := rapid.SliceOfN(rapid.Float32(), 0, 128).Draw(t, "samples")

		buf := New(capacity)
		buf.Write(samples)

		// Read returns nil when there is nothing to read, so an empty batch
		// is expected back as nil.
		want := append([]float32(nil), samples...)
		if len(want) > capacity {
			want = want[len(want)-capacity:]
		}
		got := buf.Read(buf.Count())
		assert.Equal(t, want, got)
		assert.True(t, buf.IsEmpty())
	})
}
