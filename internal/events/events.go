// Package events carries the three triggers the monitor raises and the
// engine plays.
package events

import "sync/atomic"

type Kind int

const (
	Grain Kind = iota
	Chime
	Attention
)

func (k Kind) String() string {
	switch k {
	case Grain:
		return "grain"
	case Chime:
		return "chime"
	case Attention:
		return "attention"
	}
	return "unknown"
}

// Event is one trigger. Token is only meaningful for Grain; an empty token
// asks for an untokened, non-deterministic grain.
type Event struct {
	Kind  Kind
	Token string
}

// Handler receives triggers synchronously on the caller's goroutine.
type Handler interface {
	Grain(token string)
	Chime()
	Attention()
}

// Dispatch routes e to the matching Handler method.
func Dispatch(h Handler, e Event) {
	switch e.Kind {
	case Grain:
		h.Grain(e.Token)
	case Chime:
		h.Chime()
	case Attention:
		h.Attention()
	}
}

// Funcs adapts plain functions to Handler. Nil fields are ignored.
type Funcs struct {
	OnGrain     func(token string)
	OnChime     func()
	OnAttention func()
}

func (f Funcs) Grain(token string) {
	if f.OnGrain != nil {
		f.OnGrain(token)
	}
}

func (f Funcs) Chime() {
	if f.OnChime != nil {
		f.OnChime()
	}
}

func (f Funcs) Attention() {
	if f.OnAttention != nil {
		f.OnAttention()
	}
}

// Fanout delivers every trigger to each handler in order.
type Fanout []Handler

func (f Fanout) Grain(token string) {
	for _, h := range f {
		h.Grain(token)
	}
}

func (f Fanout) Chime() {
	for _, h := range f {
		h.Chime()
	}
}

func (f Fanout) Attention() {
	for _, h := range f {
		h.Attention()
	}
}

// Counter counts triggers per kind before passing them on. Next may be nil.
type Counter struct {
	Next   Handler
	counts [3]atomic.Int64
}

func (c *Counter) Grain(token string) {
	c.counts[Grain].Add(1)
	if c.Next != nil {
		c.Next.Grain(token)
	}
}

func (c *Counter) Chime() {
	c.counts[Chime].Add(1)
	if c.Next != nil {
		c.Next.Chime()
	}
}

func (c *Counter) Attention() {
	c.counts[Attention].Add(1)
	if c.Next != nil {
		c.Next.Attention()
	}
}

func (c *Counter) Count(k Kind) int64 {
	if k < Grain || k > Attention {
		return 0
	}
	return c.counts[k].Load()
}
