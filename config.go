package serial

import (
	"log/slog"
	"time"
)

// WriteMode represents the write synchronization mode
type WriteMode int

const (
	WriteModeBuffered WriteMode = iota // Default: kernel buffers writes
	WriteModeSynced                    // O_SYNC: writes block until hardware transmission
)

const (
	// DefaultReadTimeout bounds a single read so a session worker stays
	// responsive to writes and close requests.
	DefaultReadTimeout = 50 * time.Millisecond

	// MaxReadTimeout matches the largest VTIME value the line discipline accepts.
	MaxReadTimeout = 25500 * time.Millisecond

	DefaultReadBufferSize = 4096

	// DefaultWriteTimeout bounds how long a write waits for the output
	// queue to drain when the driver reports it full.
	DefaultWriteTimeout = 2 * time.Second
)

// Opener acquires a device for a session worker. The default opener is
// the termios implementation behind Open; tests substitute their own.
type Opener func(device string, config Config) (Port, error)

// Config holds the configuration for a serial port
type Config struct {
	BaudRate       int
	DataBits       int
	StopBits       int
	Parity         Parity
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	ReadBufferSize int       // Size of the buffer a session worker reads into
	WriteMode      WriteMode // Controls write synchronization behavior

	Logger *slog.Logger
	opener Opener
}

// Option is a functional option for configuring a serial port
type Option func(*Config) error

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() Config {
	return Config{
		BaudRate:       115200,
		DataBits:       8,
		StopBits:       1,
		Parity:         ParityNone,
		ReadTimeout:    DefaultReadTimeout,
		WriteTimeout:   DefaultWriteTimeout,
		ReadBufferSize: DefaultReadBufferSize,
		WriteMode:      WriteModeBuffered,
		Logger:         slog.New(slog.DiscardHandler),
		opener:         openPort,
	}
}

func buildConfig(opts []Option) (Config, error) {
	config := DefaultConfig()
	for _, opt := range opts {
		if err := opt(&config); err != nil {
			return Config{}, err
		}
	}
	return config, nil
}

// WithBaudRate sets the baud rate
func WithBaudRate(rate int) Option {
	return func(c *Config) error {
		if _, err := getBaudRate(rate); err != nil {
			return err
		}
		c.BaudRate = rate
		return nil
	}
}

// WithDataBits sets the number of data bits (5, 6, 7, or 8)
func WithDataBits(bits int) Option {
	return func(c *Config) error {
		if bits < 5 || bits > 8 {
			return ErrInvalidConfig
		}
		c.DataBits = bits
		return nil
	}
}

// WithStopBits sets the number of stop bits (1 or 2)
func WithStopBits(bits int) Option {
	return func(c *Config) error {
		if bits != 1 && bits != 2 {
			return ErrInvalidConfig
		}
		c.StopBits = bits
		return nil
	}
}

// WithParity sets the parity mode
func WithParity(parity Parity) Option {
	return func(c *Config) error {
		if parity < ParityNone || parity > ParitySpace {
			return ErrInvalidConfig
		}
		c.Parity = parity
		return nil
	}
}

// WithReadTimeout sets how long a single read waits for data.
// Zero makes reads non-blocking.
func WithReadTimeout(timeout time.Duration) Option {
	return func(c *Config) error {
		if timeout < 0 || timeout > MaxReadTimeout {
			return ErrInvalidConfig
		}
		c.ReadTimeout = timeout
		return nil
	}
}

// WithWriteTimeout sets how long a write may wait on a full output queue
func WithWriteTimeout(timeout time.Duration) Option {
	return func(c *Config) error {
		if timeout <= 0 {
			return ErrInvalidConfig
		}
		c.WriteTimeout = timeout
		return nil
	}
}

// WithReadBufferSize sets the size of the session read buffer
func WithReadBufferSize(size int) Option {
	return func(c *Config) error {
		if size <= 0 {
			return ErrInvalidConfig
		}
		c.ReadBufferSize = size
		return nil
	}
}

// WithWriteMode sets the write synchronization mode
func WithWriteMode(mode WriteMode) Option {
	return func(c *Config) error {
		c.WriteMode = mode
		return nil
	}
}

// WithSyncWrite enables synchronous writes (O_SYNC) for guaranteed transmission
func WithSyncWrite() Option {
	return WithWriteMode(WriteModeSynced)
}

// WithLogger sets the logger used by session workers
func WithLogger(logger *slog.Logger) Option {
	return func(c *Config) error {
		if logger == nil {
			return ErrInvalidConfig
		}
		c.Logger = logger
		return nil
	}
}

// WithOpener replaces the function used to acquire the device
func WithOpener(opener Opener) Option {
	return func(c *Config) error {
		if opener == nil {
			return ErrInvalidConfig
		}
		c.opener = opener
		return nil
	}
}
