package serial

import "errors"

// Predefined error types for robust error handling
var (
	ErrDeviceNotFound   = errors.New("serial device not found")
	ErrPermissionDenied = errors.New("permission denied accessing serial device")
	ErrDeviceInUse      = errors.New("serial device already in use")
	ErrDeviceGone       = errors.New("serial device hung up")
	ErrInvalidBaudRate  = errors.New("invalid baud rate")
	ErrInvalidConfig    = errors.New("invalid serial configuration")
	ErrPortClosed       = errors.New("serial port is closed")
	ErrWriteTimeout     = errors.New("write operation timed out")
	ErrReadTimeout      = errors.New("read operation timed out")

	// Session errors. The failure kinds are carried by Error events;
	// ErrDisconnected is returned synchronously by Session.Write.
	ErrEnumeration  = errors.New("serial device enumeration failed")
	ErrOpenFailure  = errors.New("failed to open serial device")
	ErrWriteFailure = errors.New("serial write failed")
	ErrReadFailure  = errors.New("serial read failed")
	ErrDisconnected = errors.New("serial session disconnected")

	// USB-related errors
	ErrUSBInfoNotAvailable  = errors.New("USB device information not available")
	ErrUSBResetNotAvailable = errors.New("usbreset utility not available")
)
