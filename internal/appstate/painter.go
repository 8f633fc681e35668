package appstate

import (
	"context"
	"sync"
)

// painter draws frames on its own goroutine. A newer frame cancels the one
// in flight, up to frameDropThreshold consecutive times, and replaces any
// frame still queued.
type painter struct {
	draw func(context.Context, paintState)

	mu      sync.Mutex
	cancel  context.CancelFunc
	dropped int

	frames chan paintState
	done   chan struct{}
}

func newPainter(draw func(context.Context, paintState)) *painter {
	p := &painter{
		draw:   draw,
		frames: make(chan paintState, 1),
		done:   make(chan struct{}),
	}
	go p.loop()
	return p
}

func (p *painter) loop() {
	defer close(p.done)
	for st := range p.frames {
		ctx, cancel := context.WithCancel(context.Background())
		p.mu.Lock()
		p.cancel = cancel
		p.mu.Unlock()
		p.draw(ctx, st)
		p.mu.Lock()
		p.cancel = nil
		if ctx.Err() == nil {
			p.dropped = 0
		}
		p.mu.Unlock()
		cancel()
	}
}

// request queues st. Only the event loop may call it.
func (p *painter) request(st paintState) {
	p.mu.Lock()
	if p.cancel != nil && p.dropped < frameDropThreshold {
		p.cancel()
		p.dropped++
	}
	p.mu.Unlock()
	select {
	case p.frames <- st:
	default:
		select {
		case <-p.frames:
		default:
		}
		p.frames <- st
	}
}

// stop cancels the frame in flight, if any.
func (p *painter) stop() {
	p.mu.Lock()
	if p.cancel != nil {
		p.cancel()
	}
	p.mu.Unlock()
}

// close stops drawing and waits for the goroutine to exit, so the window can
// be released safely afterwards.
func (p *painter) close() {
	p.stop()
	close(p.frames)
	<-p.done
}
