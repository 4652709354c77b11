package markdown

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sliceStream struct {
	events []Event
	pos    int
}

func (s *sliceStream) Next() (Event, bool) {
	if s.pos >= len(s.events) {
		return Event{}, false
	}
	ev := s.events[s.pos]
	s.pos++
	return ev, true
}

func textEvents(texts ...string) []Event {
	events := make([]Event, len(texts))
	for i, t := range texts {
		events[i] = Event{Kind: EventText, Text: t}
	}
	return events
}

func TestLookahead_PeekDoesNotConsume(t *testing.T) {
	la := NewLookahead(&sliceStream{events: textEvents("a", "b", "c")}, 4)

	ev, ok := la.Peek(1)
	require.True(t, ok)
	assert.Equal(t, "b", ev.Text)

	// peeked events still arrive in order
	for _, want := range []string{"a", "b", "c"} {
		ev, ok := la.Next()
		require.True(t, ok)
		assert.Equal(t, want, ev.Text)
	}
	_, ok = la.Next()
	assert.False(t, ok)
}

func TestLookahead_PeekPastEnd(t *testing.T) {
	la := NewLookahead(&sliceStream{events: textEvents("a")}, 4)

	_, ok := la.Peek(3)
	assert.False(t, ok)

	ev, ok := la.Next()
	require.True(t, ok)
	assert.Equal(t, "a", ev.Text)
}

func TestLookahead_CapacityBoundsPeek(t *testing.T) {
	la := NewLookahead(&sliceStream{events: textEvents("a", "b", "c", "d")}, 2)

	_, ok := la.Peek(2)
	assert.False(t, ok, "peek beyond capacity must fail even with events available")

	ev, ok := la.Peek(1)
	require.True(t, ok)
	assert.Equal(t, "b", ev.Text)
}

func TestLookahead_InterleavedPeekAndNext(t *testing.T) {
	la := NewLookahead(&sliceStream{events: textEvents("a", "b", "c")}, 2)

	_, _ = la.Peek(1)
	ev, _ := la.Next()
	assert.Equal(t, "a", ev.Text)

	peeked, ok := la.Peek(1)
	require.True(t, ok)
	assert.Equal(t, "c", peeked.Text)

	ev, _ = la.Next()
	assert.Equal(t, "b", ev.Text)
}
