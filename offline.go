package claudible

import (
	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/transforms"
)

const renderBlock = 1024

// RenderSamples pulls seconds of mono output from the engine's mixer
// without a device, in device-sized blocks. It must not be used while the
// engine is started: the mixer has a single reader.
func RenderSamples(e *Engine, seconds float64) []float32 {
	frames := int(float64(e.sr) * seconds)
	if frames <= 0 {
		return []float32{}
	}
	out := make([]float32, frames)
	for off := 0; off < frames; off += renderBlock {
		end := min(off+renderBlock, frames)
		e.mixer.Process(out[off:end])
	}
	return out
}

// RenderBuffer is RenderSamples wrapped in a go-audio buffer.
func RenderBuffer(e *Engine, seconds float64) *goaudio.Float32Buffer {
	return &goaudio.Float32Buffer{
		Format: &goaudio.Format{NumChannels: 1, SampleRate: e.sr},
		Data:   RenderSamples(e, seconds),
	}
}

// RenderPCM renders and converts to signed integer PCM at bitDepth.
func RenderPCM(e *Engine, seconds float64, bitDepth int) (*goaudio.IntBuffer, error) {
	buf := RenderBuffer(e, seconds)
	if err := transforms.PCMScaleF32(buf, bitDepth); err != nil {
		return nil, err
	}
	return buf.AsIntBuffer(), nil
}
