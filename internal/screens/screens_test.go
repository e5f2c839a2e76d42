package screens

import (
	"sync"

	"codenames-client/internal/protocol"
)

// fakeSender records every intent a screen emits.
type fakeSender struct {
	mu   sync.Mutex
	sent []protocol.ClientMessage
}

func (f *fakeSender) Send(msg protocol.ClientMessage) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, msg)
	return nil
}

func (f *fakeSender) messages() []protocol.ClientMessage {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]protocol.ClientMessage, len(f.sent))
	copy(out, f.sent)
	return out
}

func (f *fakeSender) types() []string {
	var out []string
	for _, m := range f.messages() {
		out = append(out, m.Type)
	}
	return out
}

func (f *fakeSender) countOf(msgType string) int {
	n := 0
	for _, m := range f.messages() {
		if m.Type == msgType {
			n++
		}
	}
	return n
}

func (f *fakeSender) reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = nil
}

// fakeIdentity is an in-memory identity store.
type fakeIdentity struct {
	mu sync.Mutex
	id string
}

func (f *fakeIdentity) Get() (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.id, f.id != ""
}

func (f *fakeIdentity) Set(id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.id = id
	return nil
}

// fakeNav records requested transitions.
type fakeNav struct {
	mu     sync.Mutex
	visits []ScreenID
}

func (f *fakeNav) GoTo(id ScreenID) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.visits = append(f.visits, id)
}

func (f *fakeNav) trail() []ScreenID {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]ScreenID, len(f.visits))
	copy(out, f.visits)
	return out
}

func newTestDeps(id string) (Deps, *fakeSender, *fakeIdentity, *fakeNav) {
	sender := &fakeSender{}
	ident := &fakeIdentity{id: id}
	nav := &fakeNav{}
	return Deps{Sender: sender, Identity: ident, Nav: nav}, sender, ident, nav
}

func rolePtr(r protocol.Role) *protocol.Role { return &r }
