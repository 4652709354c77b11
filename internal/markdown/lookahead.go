package markdown

// lookaheadCap bounds how many events the transform can inspect ahead of
// the cursor. A heading whose text spans more events is only partially
// scanned for its anchor; that trade-off keeps memory constant for
// arbitrarily large documents.
const lookaheadCap = 8

// Lookahead sits in front of a Stream and exposes peeking without
// consuming: peeked events remain available to Next in order.
type Lookahead struct {
	src      Stream
	buf      []Event
	capacity int
	done     bool
}

// NewLookahead wraps src with a peek window of the given capacity.
func NewLookahead(src Stream, capacity int) *Lookahead {
	if capacity < 1 {
		capacity = 1
	}
	return &Lookahead{src: src, buf: make([]Event, 0, capacity), capacity: capacity}
}

// Peek returns the event i positions ahead of the cursor without consuming
// anything. It fails beyond the end of the stream or the window capacity.
func (l *Lookahead) Peek(i int) (Event, bool) {
	if i >= l.capacity {
		return Event{}, false
	}
	for len(l.buf) <= i && !l.done {
		ev, ok := l.src.Next()
		if !ok {
			l.done = true
			break
		}
		l.buf = append(l.buf, ev)
	}
	if i < len(l.buf) {
		return l.buf[i], true
	}
	return Event{}, false
}

// Next implements Stream, draining buffered events first.
func (l *Lookahead) Next() (Event, bool) {
	if len(l.buf) > 0 {
		ev := l.buf[0]
		l.buf = l.buf[1:]
		return ev, true
	}
	if l.done {
		return Event{}, false
	}
	return l.src.Next()
}
