package effects

import "math"

// SoftClip is a tanh waveshaper. Output stays inside (-ceiling, ceiling).
type SoftClip struct {
	drive   float32
	ceiling float32
}

func NewSoftClip(drive, ceiling float32) *SoftClip {
	if drive <= 0 {
		drive = 1
	}
	if ceiling <= 0 {
		ceiling = 1
	}
	return &SoftClip{drive: drive, ceiling: ceiling}
}

func (s *SoftClip) Process(x float32) float32 {
	return s.ceiling * float32(math.Tanh(float64(x*s.drive/s.ceiling)))
}

func (s *SoftClip) Reset() {}
