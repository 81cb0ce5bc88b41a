package services

import (
	"sync"
)

// Notifier is the same-process change broadcast that replaces screen
// polling: every successful mutation publishes once, and subscribers
// drop off deterministically via the returned cancel func.
type Notifier struct {
	mu   sync.Mutex
	next int
	subs map[int]func()
}

func NewNotifier() *Notifier {
	return &Notifier{
		subs: make(map[int]func()),
	}
}

func (n *Notifier) Subscribe(fn func()) (cancel func()) {
	n.mu.Lock()
	defer n.mu.Unlock()
	id := n.next
	n.next++
	n.subs[id] = fn
	return func() {
		n.mu.Lock()
		defer n.mu.Unlock()
		delete(n.subs, id)
	}
}

func (n *Notifier) publish() {
	n.mu.Lock()
	fns := make([]func(), 0, len(n.subs))
	for _, fn := range n.subs {
		fns = append(fns, fn)
	}
	n.mu.Unlock()
	for _, fn := range fns {
		fn()
	}
}
