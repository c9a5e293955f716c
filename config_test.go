package serial

import (
	"errors"
	"log/slog"
	"testing"
	"time"
)

func TestWithReadTimeout(t *testing.T) {
	tests := []struct {
		name    string
		timeout time.Duration
		wantErr bool
	}{
		{"0ms (non-blocking)", 0, false},
		{"50ms (default)", 50 * time.Millisecond, false},
		{"150ms", 150 * time.Millisecond, false},
		{"25500ms (max)", MaxReadTimeout, false},
		{"25600ms (exceeds max)", 25600 * time.Millisecond, true},
		{"-100ms (negative)", -100 * time.Millisecond, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := DefaultConfig()
			err := WithReadTimeout(tt.timeout)(&config)
			if (err != nil) != tt.wantErr {
				t.Errorf("WithReadTimeout(%v) error = %v, wantErr %v", tt.timeout, err, tt.wantErr)
			}
			if err == nil && config.ReadTimeout != tt.timeout {
				t.Errorf("ReadTimeout = %v, want %v", config.ReadTimeout, tt.timeout)
			}
		})
	}
}

func TestWithReadBufferSize(t *testing.T) {
	tests := []struct {
		size    int
		wantErr bool
	}{
		{1, false},
		{4096, false},
		{0, true},
		{-1, true},
	}

	for _, tt := range tests {
		config := DefaultConfig()
		err := WithReadBufferSize(tt.size)(&config)
		if (err != nil) != tt.wantErr {
			t.Errorf("WithReadBufferSize(%d) error = %v, wantErr %v", tt.size, err, tt.wantErr)
		}
		if err == nil && config.ReadBufferSize != tt.size {
			t.Errorf("ReadBufferSize = %d, want %d", config.ReadBufferSize, tt.size)
		}
	}
}

func TestWithWriteTimeout(t *testing.T) {
	config := DefaultConfig()
	if err := WithWriteTimeout(time.Second)(&config); err != nil {
		t.Fatalf("WithWriteTimeout failed: %v", err)
	}
	if config.WriteTimeout != time.Second {
		t.Errorf("WriteTimeout = %v, want 1s", config.WriteTimeout)
	}
	if err := WithWriteTimeout(0)(&config); err != ErrInvalidConfig {
		t.Errorf("Expected ErrInvalidConfig for zero timeout, got %v", err)
	}
}

func TestWithLoggerAndOpener(t *testing.T) {
	config := DefaultConfig()

	if err := WithLogger(nil)(&config); err != ErrInvalidConfig {
		t.Errorf("WithLogger(nil) = %v, want ErrInvalidConfig", err)
	}
	if err := WithOpener(nil)(&config); err != ErrInvalidConfig {
		t.Errorf("WithOpener(nil) = %v, want ErrInvalidConfig", err)
	}

	logger := slog.New(slog.DiscardHandler)
	if err := WithLogger(logger)(&config); err != nil {
		t.Fatalf("WithLogger failed: %v", err)
	}
	if config.Logger != logger {
		t.Error("Logger was not set")
	}

	called := false
	opener := func(string, Config) (Port, error) {
		called = true
		return nil, errors.New("unused")
	}
	if err := WithOpener(opener)(&config); err != nil {
		t.Fatalf("WithOpener failed: %v", err)
	}
	config.opener("/dev/x", config)
	if !called {
		t.Error("custom opener was not installed")
	}
}

func TestBuildConfigStopsAtFirstError(t *testing.T) {
	_, err := buildConfig([]Option{WithBaudRate(9600), WithDataBits(9), WithStopBits(2)})
	if err != ErrInvalidConfig {
		t.Errorf("Expected ErrInvalidConfig, got %v", err)
	}

	config, err := buildConfig([]Option{WithBaudRate(9600), WithSyncWrite()})
	if err != nil {
		t.Fatalf("buildConfig failed: %v", err)
	}
	if config.BaudRate != 9600 || config.WriteMode != WriteModeSynced {
		t.Errorf("unexpected config: %+v", config)
	}
}
