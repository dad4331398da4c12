package segment

import "context"

// EventKind tags a streamed parse notification.
type EventKind int

// Event kinds. Exactly one terminal event (Done or Error) is delivered per
// stream, after any number of Progress events.
const (
	EventProgress EventKind = iota
	EventDone
	EventError
)

// Event is one ordered notification from a streaming parse.
type Event struct {
	Kind     EventKind
	Progress Progress // set when Kind == EventProgress
	Result   *Result  // set when Kind == EventDone
	Err      error    // set when Kind == EventError
}

// Stream runs Parse on its own goroutine and delivers ordered events on the
// returned channel: zero or more Progress events, then exactly one Done or
// Error event, then the channel is closed. The caller owns draining the
// channel; delivery order is the order events were produced.
func (s *Segmenter) Stream(ctx context.Context, src Source) <-chan Event {
	ch := make(chan Event, 1)

	go func() {
		defer close(ch)

		// Per-invocation copy so hooking progress does not mutate s.
		sub := *s
		prev := sub.progressFn
		sub.progressFn = func(p Progress) {
			if prev != nil {
				prev(p)
			}
			ch <- Event{Kind: EventProgress, Progress: p}
		}

		result, err := sub.Parse(ctx, src)
		if err != nil {
			ch <- Event{Kind: EventError, Err: err}
			return
		}
		ch <- Event{Kind: EventDone, Result: result}
	}()

	return ch
}
