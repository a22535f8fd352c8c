package assistant

import (
	"sync"
	"time"
)

// Panel holds the advisories currently shown to the user and a transient
// unread flag. Update is driven by task-list changes, never polled.
type Panel struct {
	mu        sync.Mutex
	messages  []Message
	unread    bool
	open      bool
	now       func() time.Time
	listeners []func([]Message)
}

func NewPanel() *Panel {
	return &Panel{now: time.Now}
}

// Update re-evaluates tasks and marks the panel unread when there is something to show.
func (p *Panel) Update(tasks []Task) []Message {
	p.mu.Lock()
	msgs := Analyze(tasks, p.now())
	p.messages = msgs
	if len(msgs) > 0 {
		p.unread = true
	}
	listeners := append([]func([]Message){}, p.listeners...)
	p.mu.Unlock()

	for _, fn := range listeners {
		fn(msgs)
	}
	return msgs
}

// Toggle opens or closes the panel; either way the unread flag is cleared.
func (p *Panel) Toggle() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.open = !p.open
	p.unread = false
	return p.open
}

func (p *Panel) Messages() []Message {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]Message(nil), p.messages...)
}

// Unread reports whether the badge should be shown: new messages and the panel closed.
func (p *Panel) Unread() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.unread && !p.open
}

func (p *Panel) Open() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.open
}

// Subscribe registers fn to receive every recomputed message list.
func (p *Panel) Subscribe(fn func([]Message)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.listeners = append(p.listeners, fn)
}
