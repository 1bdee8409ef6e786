// Package audio delivers a mono sample source to an output device.
package audio

import (
	"encoding/binary"
	"math"
	"sync"
)

type SampleSource interface {
	Process(dst []float32)
}

// StreamReader renders a mono source as interleaved float32 little-endian
// frames, duplicating each sample across channels.
type StreamReader struct {
	mu       sync.Mutex
	source   SampleSource
	channels int
	buf      []float32
}

func NewStreamReader(source SampleSource, channels int) *StreamReader {
	if channels < 1 {
		channels = 1
	}
	return &StreamReader{source: source, channels: channels}
}

func (r *StreamReader) Read(p []byte) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	frameBytes := 4 * r.channels
	frames := len(p) / frameBytes
	if frames == 0 {
		return 0, nil
	}
	if cap(r.buf) < frames {
		r.buf = make([]float32, frames)
	}
	r.buf = r.buf[:frames]
	r.source.Process(r.buf)
	off := 0
	for _, s := range r.buf {
		u := math.Float32bits(s)
		for ch := 0; ch < r.channels; ch++ {
			binary.LittleEndian.PutUint32(p[off:], u)
			off += 4
		}
	}
	return frames * frameBytes, nil
}

func (r *StreamReader) Close() error { return nil }
