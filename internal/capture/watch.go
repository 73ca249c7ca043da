package capture

import (
	"context"
	"image"
	"log"
	"time"
)

var canvasBoundsFn = CanvasBounds

// WatchCanvas polls the monitor layout every interval and sends the canvas
// size whenever it differs from the previous reading. The first reading is
// taken as the baseline and not sent. The channel closes when ctx ends.
func WatchCanvas(ctx context.Context, interval time.Duration) <-chan image.Point {
	out := make(chan image.Point, 1)
	go func() {
		defer close(out)
		last, err := canvasBoundsFn()
		if err != nil {
			log.Printf("watch canvas: %v", err)
		}
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}
			size, err := canvasBoundsFn()
			if err != nil || size == last {
				continue
			}
			last = size
			select {
			case out <- size:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out
}
