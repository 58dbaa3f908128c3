package server

import (
	"context"
	"iter"

	"golang.org/x/sync/errgroup"
)

// DefaultStreamBuffer is the channel capacity between ranking and the wire.
const DefaultStreamBuffer = 4

// Pipe moves items to send through a channel of capacity buffer. A producer
// goroutine blocks once the channel is full, so a slow client holds back
// production instead of growing memory. The first send error or a cancelled
// ctx ends delivery; neither is an error for the caller. Pipe returns the
// number of items sent and never leaves a goroutine running.
func Pipe[T any](ctx context.Context, items iter.Seq[T], buffer int, send func(T) error) int {
	if buffer < 1 {
		buffer = 1
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	ch := make(chan T, buffer)
	var g errgroup.Group

	g.Go(func() error {
		defer close(ch)
		for item := range items {
			if ctx.Err() != nil {
				return nil
			}
			select {
			case ch <- item:
			case <-ctx.Done():
				return nil
			}
		}
		return nil
	})

	sent := 0
	g.Go(func() error {
		for {
			select {
			case item, ok := <-ch:
				if !ok || ctx.Err() != nil {
					return nil
				}
				if err := send(item); err != nil {
					cancel()
					return nil
				}
				sent++
			case <-ctx.Done():
				return nil
			}
		}
	})

	g.Wait()
	return sent
}
