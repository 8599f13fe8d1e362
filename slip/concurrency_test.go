package slip_test

import (
	"bytes"
	"sync"
	"testing"

	"github.com/flashstub/core/slip"
)

// TestConcurrentProducerConsumer drives RecvByte from a goroutine standing
// in for the interrupt producer while the test goroutine polls
// GetFrameState the way the foreground loop does, mirroring the
// single-producer/single-consumer discipline spec §4.1/§5 requires.
// The codec drops a frame when every buffer is busy, so the producer
// takes a slot token before each frame and the consumer returns it after
// Reset; at most four frames are ever outstanding, one per buffer.
func TestConcurrentProducerConsumer(t *testing.T) {
	const buffers = 4
	c := slip.New(slip.WithBuffers(buffers))
	const n = 500
	slots := make(chan struct{}, buffers)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < n; i++ {
			slots <- struct{}{}
			feed(c, encodeRef([]byte{byte(i), byte(i >> 8)}))
		}
	}()

	received := 0
	for received < n {
		switch c.GetFrameState() {
		case slip.Complete:
			got, err := c.FrameData()
			if err != nil {
				t.Fatalf("FrameData: %v", err)
			}
			if len(got) != 2 {
				t.Fatalf("unexpected frame length %d", len(got))
			}
			_ = bytes.Clone(got)
			c.Reset()
			<-slots
			received++
		case slip.Error:
			c.Reset()
		default:
			// Idle: spin, matching the foreground's busy-poll shape.
		}
	}
	wg.Wait()
}
