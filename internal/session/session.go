package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"codenames-client/internal/protocol"
)

// Status is the tri-state connection status. Exactly one holds at any instant.
type Status string

const (
	StatusConnecting Status = "connecting"
	StatusOpen       Status = "open"
	StatusClosed     Status = "closed"
)

var ErrSessionClosed = errors.New("session closed")

const (
	writeTimeout   = 3 * time.Second
	queueWarnAt    = 256
	defaultBackoff = 500 * time.Millisecond
	maxBackoff     = 16 * time.Second
)

// transport is one established connection. The production implementation
// wraps a websocket conn; tests substitute their own.
type transport interface {
	Read(ctx context.Context) ([]byte, error)
	Write(ctx context.Context, data []byte) error
	Close() error
}

type dialFunc func(ctx context.Context, url string) (transport, error)

// Options configures a Session. OnFrame receives every raw inbound frame;
// OnStatus is called on every externally visible status transition.
type Options struct {
	Log      *zap.Logger
	OnFrame  func(data []byte)
	OnStatus func(s Status)

	// ReconnectAttempts caps consecutive failed connects before Run gives
	// up. Zero means retry forever.
	ReconnectAttempts int
	BackoffBase       time.Duration
}

// Session owns one connection at a time to the game server. Intents sent
// while the connection is not open accumulate in a FIFO queue and flush, in
// order, once the connection opens. Intents sent while open go straight out.
type Session struct {
	url  string
	opts Options
	log  *zap.Logger
	dial dialFunc

	mu       sync.Mutex
	status   Status
	conn     transport
	queue    []protocol.ClientMessage
	shutdown bool
}

func New(url string, opts Options) *Session {
	if opts.Log == nil {
		opts.Log = zap.NewNop()
	}
	if opts.BackoffBase <= 0 {
		opts.BackoffBase = defaultBackoff
	}
	return &Session{
		url:    url,
		opts:   opts,
		log:    opts.Log,
		dial:   dialWebsocket,
		status: StatusClosed,
	}
}

func (s *Session) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// QueueLen reports how many intents are waiting for the connection to open.
func (s *Session) QueueLen() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.queue)
}

// Run connects and pumps inbound frames until ctx is cancelled or Close is
// called. A dropped connection is re-established with exponential backoff;
// queued intents survive the gap and flush after the reconnect.
func (s *Session) Run(ctx context.Context) error {
	attempt := 0
	for {
		if s.isShutdown() {
			return nil
		}
		s.setStatus(StatusConnecting)

		conn, err := s.dial(ctx, s.url)
		if err != nil {
			s.setStatus(StatusClosed)
			if ctx.Err() != nil {
				return ctx.Err()
			}
			attempt++
			if s.opts.ReconnectAttempts > 0 && attempt >= s.opts.ReconnectAttempts {
				return fmt.Errorf("connect %s: %w", s.url, err)
			}
			s.log.Warn("connect failed, retrying",
				zap.String("url", s.url),
				zap.Int("attempt", attempt),
				zap.Error(err))
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(backoff(s.opts.BackoffBase, attempt)):
			}
			continue
		}
		attempt = 0

		if err := s.attach(ctx, conn); err != nil {
			_ = conn.Close()
			s.setStatus(StatusClosed)
			continue
		}

		err = s.readLoop(ctx, conn)
		s.detach(conn)
		if s.isShutdown() {
			return nil
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		s.log.Warn("connection lost, reconnecting", zap.Error(err))
	}
}

// Send transmits the intent immediately when the connection is open,
// otherwise appends it to the outbound queue. Never blocks on the queue and
// never drops an intent while the session is alive.
func (s *Session) Send(msg protocol.ClientMessage) error {
	s.mu.Lock()
	if s.shutdown {
		s.mu.Unlock()
		return ErrSessionClosed
	}
	if s.status != StatusOpen || s.conn == nil {
		s.queue = append(s.queue, msg)
		n := len(s.queue)
		s.mu.Unlock()
		if n >= queueWarnAt {
			s.log.Warn("outbound queue growing", zap.Int("pending", n))
		}
		return nil
	}
	conn := s.conn
	s.mu.Unlock()

	if err := s.write(context.Background(), conn, msg); err != nil {
		// The connection is going away; queue the intent so the
		// reconnect flushes it rather than losing it.
		s.mu.Lock()
		s.queue = append(s.queue, msg)
		s.mu.Unlock()
		return nil
	}
	return nil
}

// Close tears the session down and suppresses all further status reporting,
// so a late transport event can never revive a dead session's observers.
func (s *Session) Close() {
	s.mu.Lock()
	s.shutdown = true
	s.status = StatusClosed
	conn := s.conn
	s.conn = nil
	s.mu.Unlock()
	if conn != nil {
		_ = conn.Close()
	}
}

// attach installs the new connection, drains the queue front-to-back, and
// only then reports open. Each queued intent is removed only after its write
// is accepted, and Send calls racing the drain keep queueing behind it, so
// queue and fast-path sends never interleave out of order.
func (s *Session) attach(ctx context.Context, conn transport) error {
	s.mu.Lock()
	if s.shutdown {
		s.mu.Unlock()
		return ErrSessionClosed
	}
	s.conn = conn
	for len(s.queue) > 0 {
		if err := s.write(ctx, conn, s.queue[0]); err != nil {
			s.conn = nil
			s.mu.Unlock()
			return fmt.Errorf("flush queued intent: %w", err)
		}
		s.queue = s.queue[1:]
	}
	s.status = StatusOpen
	s.mu.Unlock()
	s.notify(StatusOpen)
	return nil
}

func (s *Session) detach(conn transport) {
	_ = conn.Close()
	s.mu.Lock()
	if s.conn == conn {
		s.conn = nil
	}
	s.mu.Unlock()
	s.setStatus(StatusClosed)
}

func (s *Session) readLoop(ctx context.Context, conn transport) error {
	for {
		data, err := conn.Read(ctx)
		if err != nil {
			return err
		}
		if s.opts.OnFrame != nil {
			s.opts.OnFrame(data)
		}
	}
}

func (s *Session) write(ctx context.Context, conn transport, msg protocol.ClientMessage) error {
	payload, err := msg.Encode()
	if err != nil {
		return fmt.Errorf("encode %s: %w", msg.Type, err)
	}
	wctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()
	return conn.Write(wctx, payload)
}

func (s *Session) setStatus(next Status) {
	s.mu.Lock()
	if s.shutdown || s.status == next {
		s.mu.Unlock()
		return
	}
	s.status = next
	s.mu.Unlock()
	s.notify(next)
}

func (s *Session) notify(st Status) {
	if s.opts.OnStatus != nil && !s.isShutdown() {
		s.opts.OnStatus(st)
	}
}

func (s *Session) isShutdown() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.shutdown
}

func backoff(base time.Duration, attempt int) time.Duration {
	d := base
	for i := 1; i < attempt; i++ {
		d *= 2
		if d >= maxBackoff {
			return maxBackoff
		}
	}
	return d
}
