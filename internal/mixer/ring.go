package mixer

import "sync"

// RingBuffer is a circular accumulator with one read cursor. Writes mix into
// the slots ahead of the cursor; reads zero each slot they consume. Wrapping
// past unread audio overwrites it by accumulation, which is accepted.
type RingBuffer struct {
	mu     sync.Mutex
	buf    []float32
	cursor int
}

func NewRingBuffer(capacity int) *RingBuffer {
	if capacity < 1 {
		capacity = 1
	}
	return &RingBuffer{buf: make([]float32, capacity)}
}

func (r *RingBuffer) Capacity() int { return len(r.buf) }

// Add mixes samples in starting at the read cursor. Anything beyond the
// capacity is dropped.
func (r *RingBuffer) Add(samples []float32) {
	if len(samples) > len(r.buf) {
		samples = samples[:len(r.buf)]
	}
	r.mu.Lock()
	n := len(r.buf)
	pos := r.cursor
	for _, s := range samples {
		r.buf[pos] += s
		pos++
		if pos == n {
			pos = 0
		}
	}
	r.mu.Unlock()
}

// Drain adds the next len(dst) buffered samples into dst, zeroes them and
// advances the cursor.
func (r *RingBuffer) Drain(dst []float32) {
	r.mu.Lock()
	n := len(r.buf)
	pos := r.cursor
	for i := range dst {
		dst[i] += r.buf[pos]
		r.buf[pos] = 0
		pos++
		if pos == n {
			pos = 0
		}
	}
	r.cursor = pos
	r.mu.Unlock()
}

func (r *RingBuffer) Cursor() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.cursor
}

// Snapshot copies the buffer in storage order.
func (r *RingBuffer) Snapshot() []float32 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]float32(nil), r.buf...)
}
