package effects

// Processor transforms a mono signal one sample at a time.
type Processor interface {
	Process(x float32) float32
	Reset()
}

// Chain applies a sequence of processors in order.
type Chain struct {
	stages []Processor
}

func NewChain(stages ...Processor) *Chain {
	return &Chain{stages: stages}
}

func (c *Chain) Process(x float32) float32 {
	for _, s := range c.stages {
		x = s.Process(x)
	}
	return x
}

// ProcessBlock runs the chain in place over buf.
func (c *Chain) ProcessBlock(buf []float32) {
	for i := range buf {
		buf[i] = c.Process(buf[i])
	}
}

func (c *Chain) Reset() {
	for _, s := range c.stages {
		s.Reset()
	}
}

func clamp[T float32 | float64](v, lo, hi T) T {
	return min(max(v, lo), hi)
}
