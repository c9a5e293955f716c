package cmd

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/allbin/serialterm"
)

// loopbackPort echoes writes back as input
type loopbackPort struct {
	mu       sync.Mutex
	pending  []byte
	written  []byte
	writeErr error
}

func (p *loopbackPort) Read(b []byte) (int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.pending) == 0 {
		return 0, serial.ErrReadTimeout
	}
	n := copy(b, p.pending)
	p.pending = p.pending[n:]
	return n, nil
}

func (p *loopbackPort) Write(b []byte) (int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.writeErr != nil {
		return 0, p.writeErr
	}
	p.written = append(p.written, b...)
	p.pending = append(p.pending, b...)
	return len(b), nil
}

func (p *loopbackPort) Close() error       { return nil }
func (p *loopbackPort) Drain() error       { return nil }
func (p *loopbackPort) FlushInput() error  { return nil }
func (p *loopbackPort) FlushOutput() error { return nil }

func openerFor(p serial.Port, err error) serial.Option {
	return serial.WithOpener(func(string, serial.Config) (serial.Port, error) {
		if err != nil {
			return nil, err
		}
		return p, nil
	})
}

func TestBuildPayload(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		hex     bool
		newline bool
		want    []byte
		wantErr bool
	}{
		{"plain", "AT", false, false, []byte("AT"), false},
		{"newline", "AT", false, true, []byte("AT\n"), false},
		{"hex", "48 65", true, false, []byte("He"), false},
		{"hex with prefix", "0x48 0x65", true, false, []byte("He"), false},
		{"hex ignores newline", "0a", true, true, []byte{0x0a}, false},
		{"bad hex", "4", true, false, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := buildPayload(tt.data, tt.hex, tt.newline)
			if (err != nil) != tt.wantErr {
				t.Fatalf("buildPayload() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !bytes.Equal(got, tt.want) {
				t.Errorf("buildPayload() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestReadSendInputPipe(t *testing.T) {
	got, err := readSendInput(strings.NewReader("hello\r\n"), &bytes.Buffer{})
	if err != nil {
		t.Fatal(err)
	}
	if got != "hello" {
		t.Errorf("readSendInput() = %q, want hello", got)
	}
}

func TestFilterDevices(t *testing.T) {
	devices := []serial.PortInfo{
		{Name: "ttyACM0"}, {Name: "ttyAMA0"}, {Name: "ttyS0"}, {Name: "ttySAC0"}, {Name: "ttyUSB0"},
	}

	tests := []struct {
		filter string
		want   []string
	}{
		{"", []string{"ttyACM0", "ttyAMA0", "ttyS0", "ttySAC0", "ttyUSB0"}},
		{"all", []string{"ttyACM0", "ttyAMA0", "ttyS0", "ttySAC0", "ttyUSB0"}},
		{"usb", []string{"ttyACM0", "ttyUSB0"}},
		{"USB", []string{"ttyACM0", "ttyUSB0"}},
		{"standard", []string{"ttyS0"}},
		{"arm", []string{"ttyAMA0"}},
	}

	for _, tt := range tests {
		t.Run(tt.filter, func(t *testing.T) {
			var got []string
			for _, d := range filterDevices(devices, tt.filter) {
				got = append(got, d.Name)
			}
			if fmt.Sprint(got) != fmt.Sprint(tt.want) {
				t.Errorf("filterDevices(%q) = %v, want %v", tt.filter, got, tt.want)
			}
		})
	}

	if err := validateFilter("bluetooth"); err == nil {
		t.Error("validateFilter should reject unknown filters")
	}
}

func TestRenderTable(t *testing.T) {
	var buf bytes.Buffer
	renderTable(&buf, []serial.PortInfo{
		{Name: "ttyUSB0", Description: "USB Serial Port", VendorID: "0403", ProductID: "6001", Manufacturer: "FTDI"},
		{Name: "ttyS0", Description: "Standard Serial Port"},
	})

	out := buf.String()
	for _, want := range []string{"Found 2 serial port(s)", "ttyUSB0", "0403:6001 FTDI", "Standard Serial Port"} {
		if !strings.Contains(out, want) {
			t.Errorf("renderTable output missing %q:\n%s", want, out)
		}
	}
}

func TestPrintPortInfo(t *testing.T) {
	var buf bytes.Buffer
	printPortInfo(&buf, &serial.PortInfo{
		Name: "ttyUSB0", Path: "/dev/ttyUSB0", Description: "USB Serial Port",
		VendorID: "0403", SerialNumber: "A1B2",
	})

	out := buf.String()
	for _, want := range []string{"/dev/ttyUSB0", "USB Device Information", "0403", "A1B2"} {
		if !strings.Contains(out, want) {
			t.Errorf("printPortInfo output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "Product ID") {
		t.Errorf("empty fields should be skipped:\n%s", out)
	}

	buf.Reset()
	printPortInfo(&buf, &serial.PortInfo{Name: "ttyS0", Path: "/dev/ttyS0"})
	if strings.Contains(buf.String(), "USB") {
		t.Errorf("non-USB port printed USB section:\n%s", buf.String())
	}
}

func TestRunSendEcho(t *testing.T) {
	port := &loopbackPort{}
	var stdout, stderr bytes.Buffer

	err := runSend(context.Background(), "/dev/fake", []byte("ping\n"), 200*time.Millisecond,
		&stdout, &stderr, openerFor(port, nil), serial.WithReadTimeout(5*time.Millisecond))
	if err != nil {
		t.Fatalf("runSend() error = %v\nstderr: %s", err, stderr.String())
	}
	if stdout.String() != "ping\n" {
		t.Errorf("stdout = %q, want echoed ping", stdout.String())
	}
	if string(port.written) != "ping\n" {
		t.Errorf("written = %q", port.written)
	}
}

func TestRunSendNoWait(t *testing.T) {
	port := &loopbackPort{}
	err := runSend(context.Background(), "/dev/fake", []byte("x"), 0,
		&bytes.Buffer{}, &bytes.Buffer{}, openerFor(port, nil), serial.WithReadTimeout(time.Millisecond))
	if err != nil {
		t.Fatalf("runSend() error = %v", err)
	}
	if string(port.written) != "x" {
		t.Errorf("written = %q, want x", port.written)
	}
}

func TestRunSendWriteFailure(t *testing.T) {
	port := &loopbackPort{writeErr: errors.New("EIO")}
	err := runSend(context.Background(), "/dev/fake", []byte("x"), 0,
		&bytes.Buffer{}, &bytes.Buffer{}, openerFor(port, nil), serial.WithReadTimeout(time.Millisecond))
	if !errors.Is(err, serial.ErrWriteFailure) {
		t.Errorf("runSend() error = %v, want ErrWriteFailure", err)
	}
}

func TestRunSendOpenFailure(t *testing.T) {
	err := runSend(context.Background(), "/dev/fake", []byte("x"), time.Second,
		&bytes.Buffer{}, &bytes.Buffer{}, openerFor(nil, serial.ErrPermissionDenied))
	if !errors.Is(err, serial.ErrOpenFailure) || !errors.Is(err, serial.ErrPermissionDenied) {
		t.Errorf("runSend() error = %v, want open failure", err)
	}
}

func TestRunListen(t *testing.T) {
	port := &loopbackPort{pending: []byte("Hi\n")}
	var stdout, capture bytes.Buffer

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	err := runListen(ctx, "/dev/fake", listenOptions{
		stdout:  &stdout,
		stderr:  &bytes.Buffer{},
		capture: &capture,
	}, openerFor(port, nil), serial.WithReadTimeout(time.Millisecond))
	if err != nil {
		t.Fatalf("runListen() error = %v", err)
	}
	if stdout.String() != "Hi\n" {
		t.Errorf("stdout = %q, want Hi", stdout.String())
	}
	if capture.String() != "Hi\n" {
		t.Errorf("capture = %q, want Hi", capture.String())
	}
}

func TestRunListenHex(t *testing.T) {
	port := &loopbackPort{pending: []byte("Hi")}
	var stdout bytes.Buffer

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	if err := runListen(ctx, "/dev/fake", listenOptions{stdout: &stdout, stderr: &bytes.Buffer{}, hex: true},
		openerFor(port, nil), serial.WithReadTimeout(time.Millisecond)); err != nil {
		t.Fatalf("runListen() error = %v", err)
	}
	if got := stdout.String(); got != "48 69  |Hi|\n" {
		t.Errorf("stdout = %q, want hex line", got)
	}
}

func TestRunListenOpenFailure(t *testing.T) {
	err := runListen(context.Background(), "/dev/fake", listenOptions{stdout: &bytes.Buffer{}, stderr: &bytes.Buffer{}},
		openerFor(nil, serial.ErrDeviceNotFound))
	if !errors.Is(err, serial.ErrDeviceNotFound) {
		t.Errorf("runListen() error = %v, want ErrDeviceNotFound", err)
	}
}
