package service

import (
	"sync"

	"blogserver/internal/models"
)

// Buffer per subscriber; a slow consumer drops messages rather than
// blocking post creation.
const feedBuffer = 16

// PostFeed is an in-process broadcaster of newly created posts, consumed by
// the WebSocket feed endpoint.
type PostFeed struct {
	mu   sync.Mutex
	subs map[chan models.Post]struct{}
}

func NewPostFeed() *PostFeed {
	return &PostFeed{subs: make(map[chan models.Post]struct{})}
}

// Subscribe registers a new listener. The returned cancel func must be
// called when the listener goes away; it closes the channel.
func (f *PostFeed) Subscribe() (<-chan models.Post, func()) {
	ch := make(chan models.Post, feedBuffer)

	f.mu.Lock()
	f.subs[ch] = struct{}{}
	f.mu.Unlock()

	cancel := func() {
		f.mu.Lock()
		if _, ok := f.subs[ch]; ok {
			delete(f.subs, ch)
			close(ch)
		}
		f.mu.Unlock()
	}
	return ch, cancel
}

// Publish fans the post out to every subscriber without blocking.
func (f *PostFeed) Publish(p models.Post) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for ch := range f.subs {
		select {
		case ch <- p:
		default: // subscriber is behind; drop
		}
	}
}
