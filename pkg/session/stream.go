package session

import (
	"context"
	"sync"

	"github.com/lexhub/authcore/pkg/principal"
)

// Change is one principal-change event. Principal is nil when the
// session ended (logout or teardown after a 401).
type Change struct {
	Principal *principal.Principal
}

// Subscriber receives principal-change events from a Manager. Events
// are delivered non-blocking: a subscriber that stops draining its
// channel misses events rather than stalling the session.
type Subscriber struct {
	ch     chan Change
	closed bool
	mu     sync.RWMutex
}

func newSubscriber(buffer int) *Subscriber {
	return &Subscriber{ch: make(chan Change, buffer)}
}

// Changes returns the event channel. It is closed when the subscriber
// is closed or the manager shuts down.
func (s *Subscriber) Changes() <-chan Change {
	return s.ch
}

// Close detaches the subscriber. Idempotent.
func (s *Subscriber) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.closed {
		close(s.ch)
		s.closed = true
	}
}

func (s *Subscriber) send(c Change) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return false
	}

	select {
	case s.ch <- c:
		return true
	default:
		return false
	}
}

// stream fans principal changes out to subscribers. Publication is
// synchronous with the state write that caused it; only delivery into
// each subscriber's buffer is decoupled.
type stream struct {
	mu        sync.RWMutex
	subs      map[*Subscriber]struct{}
	buffer    int
	closed    bool
	cleanupWg sync.WaitGroup
}

func newStream(buffer int) *stream {
	return &stream{
		subs:   make(map[*Subscriber]struct{}),
		buffer: max(buffer, 1),
	}
}

func (st *stream) subscribe(ctx context.Context) *Subscriber {
	st.mu.Lock()
	defer st.mu.Unlock()

	sub := newSubscriber(st.buffer)
	if st.closed {
		sub.Close()
		return sub
	}
	st.subs[sub] = struct{}{}

	if ctx.Done() != nil {
		st.cleanupWg.Add(1)
		go func() {
			defer st.cleanupWg.Done()
			<-ctx.Done()
			st.unsubscribe(sub)
		}()
	}

	return sub
}

func (st *stream) publish(c Change) {
	st.mu.RLock()
	defer st.mu.RUnlock()

	if st.closed {
		return
	}

	for sub := range st.subs {
		if !sub.send(c) {
			// Slow or closed subscribers are detached off the write
			// path to keep publication from blocking on them.
			go st.unsubscribe(sub)
		}
	}
}

func (st *stream) unsubscribe(sub *Subscriber) {
	st.mu.Lock()
	defer st.mu.Unlock()

	delete(st.subs, sub)
	sub.Close()
}

func (st *stream) close() {
	st.mu.Lock()
	if st.closed {
		st.mu.Unlock()
		return
	}
	st.closed = true
	for sub := range st.subs {
		sub.Close()
	}
	clear(st.subs)
	st.mu.Unlock()

	st.cleanupWg.Wait()
}
