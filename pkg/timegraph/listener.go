package timegraph

import "github.com/smil-anim/timing-go/pkg/timing"

type eventKey struct {
	target string
	name   string
}

// listener is an event, key or alarm subscription.
type listener struct {
	fn        func(timing.Time)
	remove    func()
	cancelled bool
}

// Cancel implements timing.Subscription. A cancelled listener never fires,
// even if it was already collected for delivery.
func (l *listener) Cancel() {
	if l.cancelled {
		return
	}
	l.cancelled = true
	if l.remove != nil {
		l.remove()
	}
}

func (l *listener) fire(t timing.Time) {
	if !l.cancelled {
		l.fn(t)
	}
}

func snapshot(ls []*listener) []*listener {
	out := make([]*listener, len(ls))
	copy(out, ls)
	return out
}

func without(ls []*listener, l *listener) []*listener {
	for i, x := range ls {
		if x == l {
			return append(ls[:i], ls[i+1:]...)
		}
	}
	return ls
}
