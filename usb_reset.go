package serial

import (
	"context"
	"fmt"
	"os/exec"
	"time"
)

// reenumerationDelay is how long a reset device typically needs to come back
const reenumerationDelay = 2 * time.Second

// ResetUSBDevice performs a USB-level reset of the device behind portPath.
// This can recover hardware that stopped responding without unplugging it.
//
// It requires the usbreset utility (usbutils) and usually root.
// ErrUSBInfoNotAvailable is returned for ports without USB metadata.
func ResetUSBDevice(ctx context.Context, portPath string) error {
	info, err := GetPortInfo(portPath)
	if err != nil {
		return fmt.Errorf("failed to get port info: %w", err)
	}

	if info.BusNumber == "" || info.DeviceNumber == "" {
		return ErrUSBInfoNotAvailable
	}

	if !IsUSBResetAvailable() {
		return ErrUSBResetNotAvailable
	}

	cmd := exec.CommandContext(ctx, "usbreset", formatUSBPath(info.BusNumber, info.DeviceNumber))
	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("usbreset failed: %w (output: %s)", err, string(output))
	}

	select {
	case <-time.After(reenumerationDelay):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// ResetUSBDeviceBySerial resets the USB device with the given serial
// number. Serial numbers survive re-enumeration where paths may not.
func ResetUSBDeviceBySerial(ctx context.Context, serialNumber string) error {
	devices, err := ListDevices()
	if err != nil {
		return err
	}

	for _, d := range devices {
		if d.SerialNumber == serialNumber {
			return ResetUSBDevice(ctx, d.Path)
		}
	}

	return fmt.Errorf("device with serial %s not found", serialNumber)
}

// IsUSBResetAvailable checks if usbreset utility is available in PATH
func IsUSBResetAvailable() bool {
	_, err := exec.LookPath("usbreset")
	return err == nil
}

// formatUSBPath builds the zero-padded BBB/DDD form usbreset expects
func formatUSBPath(bus, device string) string {
	return pad3(bus) + "/" + pad3(device)
}

func pad3(s string) string {
	for len(s) < 3 {
		s = "0" + s
	}
	return s
}
