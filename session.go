package serial

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
)

// Session is the caller's handle on one connection. It holds no device
// state: writes are queued for the worker goroutine, which owns the port.
type Session struct {
	device   string
	baudRate int

	mu         sync.Mutex
	pending    [][]byte
	terminated bool

	closeCh   chan struct{}
	closeOnce sync.Once
	done      chan struct{}
}

// OpenSession starts a worker for device and returns immediately. The
// outcome of acquiring the device is reported asynchronously as the first
// event: Opened, or a single Error when the device could not be opened
// (no Closed follows in that case since nothing was acquired).
//
// Cancelling ctx ends the session the same way Close does.
func OpenSession(ctx context.Context, device string, opts ...Option) (*Session, *EventQueue, error) {
	config, err := buildConfig(opts)
	if err != nil {
		return nil, nil, err
	}

	s := &Session{
		device:   device,
		baudRate: config.BaudRate,
		closeCh:  make(chan struct{}, 1),
		done:     make(chan struct{}),
	}
	events := newEventQueue()

	w := &worker{
		device:  device,
		config:  config,
		session: s,
		events:  events,
		logger:  config.Logger.With("device", device, "baud", config.BaudRate),
	}
	go w.run(ctx)

	return s, events, nil
}

// Device returns the path the session was opened with
func (s *Session) Device() string {
	return s.device
}

// BaudRate returns the baud rate the session was opened with
func (s *Session) BaudRate() int {
	return s.baudRate
}

// Write queues data for transmission. It returns ErrDisconnected once the
// worker has terminated; transmission failures arrive as Error events.
func (s *Session) Write(data []byte) error {
	payload := make([]byte, len(data))
	copy(payload, data)

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.terminated {
		return ErrDisconnected
	}
	s.pending = append(s.pending, payload)
	return nil
}

// Close asks the worker to stop. It does not wait: the Closed event is the
// confirmation. Calling Close more than once, or after the worker is gone,
// is a no-op.
func (s *Session) Close() error {
	s.closeOnce.Do(func() {
		select {
		case s.closeCh <- struct{}{}:
		default:
		}
	})
	return nil
}

// Done is closed when the worker goroutine has exited
func (s *Session) Done() <-chan struct{} {
	return s.done
}

// takePending removes and returns queued payloads in enqueue order
func (s *Session) takePending() [][]byte {
	s.mu.Lock()
	defer s.mu.Unlock()

	pending := s.pending
	s.pending = nil
	return pending
}

// terminate stops accepting writes and returns whatever was still queued
func (s *Session) terminate() [][]byte {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.terminated = true
	pending := s.pending
	s.pending = nil
	return pending
}

func (s *Session) closeRequested() bool {
	select {
	case <-s.closeCh:
		return true
	default:
		return false
	}
}

// worker owns the port for the lifetime of one session
type worker struct {
	device  string
	config  Config
	session *Session
	events  *EventQueue
	logger  *slog.Logger
}

func (w *worker) run(ctx context.Context) {
	defer close(w.session.done)

	port, err := w.config.opener(w.device, w.config)
	if err != nil {
		w.session.terminate()
		w.logger.Warn("open failed", "error", err)
		w.events.push(newError(fmt.Errorf("%w: %w", ErrOpenFailure, err)))
		return
	}

	w.logger.Info("session opened")
	w.events.push(Opened{})

	reason := w.loop(ctx, port)

	for _, payload := range w.session.terminate() {
		w.events.push(newError(fmt.Errorf("%w: write dropped (%d bytes): %w", ErrWriteFailure, len(payload), ErrDisconnected)))
	}
	if err := port.Close(); err != nil && !errors.Is(err, ErrPortClosed) {
		w.logger.Warn("close failed", "error", err)
	}

	w.logger.Info("session closed", "reason", reason)
	w.events.push(Closed{})
}

// loop runs until the session ends and returns why it ended
func (w *worker) loop(ctx context.Context, port Port) string {
	buf := make([]byte, w.config.ReadBufferSize)

	for {
		if ctx.Err() != nil {
			return "owner gone"
		}
		for _, payload := range w.session.takePending() {
			if _, err := port.Write(payload); err != nil {
				w.logger.Warn("write failed", "bytes", len(payload), "error", err)
				w.events.push(newError(fmt.Errorf("%w: %w", ErrWriteFailure, err)))
				continue
			}
			w.logger.Debug("wrote", "bytes", len(payload))
		}

		n, err := port.Read(buf)
		switch {
		case err == nil:
			if n > 0 {
				data := make([]byte, n)
				copy(data, buf[:n])
				w.events.push(Data{Bytes: data})
			}
		case errors.Is(err, ErrReadTimeout):
		default:
			w.logger.Error("read failed", "error", err)
			w.events.push(newError(fmt.Errorf("%w: %w", ErrReadFailure, err)))
			return "read error"
		}

		if w.session.closeRequested() {
			return "close requested"
		}
	}
}
