package appstate

import (
	"context"
	"sync/atomic"
	"testing"
	"time"
)

func TestPainterCloseWaitsForFrameInFlight(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	var finished atomic.Bool
	p := newPainter(func(ctx context.Context, st paintState) {
		close(started)
		// Past its cancellation check a frame still uploads and publishes.
		<-release
		finished.Store(true)
	})
	p.request(paintState{width: 1, height: 1})
	<-started

	closed := make(chan struct{})
	go func() {
		p.close()
		close(closed)
	}()
	select {
	case <-closed:
		t.Fatal("close returned while a frame was still drawing")
	case <-time.After(50 * time.Millisecond):
	}
	close(release)
	select {
	case <-closed:
	case <-time.After(time.Second):
		t.Fatal("close did not return after the frame finished")
	}
	if !finished.Load() {
		t.Fatal("frame did not finish before close returned")
	}
}

func TestPainterNewFrameCancelsFrameInFlight(t *testing.T) {
	first := make(chan struct{})
	drawn := make(chan paintState, 2)
	var canceled atomic.Bool
	p := newPainter(func(ctx context.Context, st paintState) {
		if st.width == 1 {
			close(first)
			<-ctx.Done()
			canceled.Store(true)
			return
		}
		drawn <- st
	})
	p.request(paintState{width: 1, height: 1})
	<-first
	p.request(paintState{width: 2, height: 2})

	select {
	case st := <-drawn:
		if st.width != 2 {
			t.Fatalf("drew %+v", st)
		}
	case <-time.After(time.Second):
		t.Fatal("second frame was never drawn")
	}
	if !canceled.Load() {
		t.Fatal("first frame was not canceled")
	}
	p.close()
}

func TestPainterStopsDroppingAfterThreshold(t *testing.T) {
	p := &painter{frames: make(chan paintState, 1), done: make(chan struct{})}
	var cancels int
	p.cancel = func() { cancels++ }
	for i := 0; i < frameDropThreshold+5; i++ {
		p.request(paintState{width: i + 1, height: 1})
	}
	if cancels != frameDropThreshold {
		t.Fatalf("canceled %d frames, want %d", cancels, frameDropThreshold)
	}
	if st := <-p.frames; st.width != frameDropThreshold+5 {
		t.Fatalf("queued frame %+v, want the latest", st)
	}
}
