// Package serial provides serial port access and a session model for
// interactive terminals on Linux.
//
// # Port Discovery
//
// List available serial ports together with USB metadata read from sysfs:
//
//	devices, err := serial.ListDevices()
//	for _, d := range devices {
//	    fmt.Printf("%s: %s %s\n", d.Path, d.Description, d.Label())
//	}
//
// An empty list is not an error. A failure to scan /dev wraps ErrEnumeration.
//
// # Direct Port Access
//
// Open configures the line in raw mode. Reads wait at most the configured
// read timeout and return ErrReadTimeout when nothing arrived:
//
//	port, err := serial.Open("/dev/ttyUSB0",
//	    serial.WithBaudRate(9600),
//	    serial.WithReadTimeout(100*time.Millisecond),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer port.Close()
//
// # Sessions
//
// OpenSession starts a background worker that owns the port and returns
// at once. The worker reports everything through an EventQueue:
//
//	session, events, err := serial.OpenSession(ctx, "/dev/ttyUSB0",
//	    serial.WithBaudRate(115200))
//	...
//	session.Write([]byte("AT\n"))
//	for _, ev := range events.Drain() {
//	    switch ev := ev.(type) {
//	    case serial.Opened:
//	    case serial.Data:
//	        os.Stdout.Write(ev.Bytes)
//	    case serial.Error:
//	        log.Print(ev.Message)
//	    case serial.Closed:
//	    }
//	}
//	session.Close()
//
// Events of one session are delivered in order. Opened precedes any Data or
// Error, and Closed is always last. A device that cannot be opened yields a
// single Error and no Closed. Write errors are reported and the session
// continues; a read error ends the session.
//
// # Error Handling
//
// Use errors.Is() for error type checking:
//
//	if errors.Is(err, serial.ErrDeviceNotFound) {
//	    // Handle missing device
//	}
//
// # Default Configuration
//
//   - BaudRate: 115200
//   - DataBits: 8
//   - StopBits: 1
//   - Parity: None
//   - ReadTimeout: 50ms
//   - ReadBufferSize: 4096
//   - WriteMode: Buffered
package serial
