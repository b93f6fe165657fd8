// Package serialport lists the serial ports of the host with their USB
// metadata, so STM32 virtual COM ports can be told apart from everything
// else.
package serialport

import (
	"fmt"
	"strings"

	"go.bug.st/serial/enumerator"
)

// STM32VendorID is the STMicroelectronics USB vendor ID as reported by the
// port enumerator.
const STM32VendorID = "0483"

// Port describes one serial port. The USB fields are only populated for
// USB-attached ports.
type Port struct {
	Name         string
	IsUSB        bool
	VID          string
	PID          string
	SerialNumber string
	Product      string
}

// List returns every serial port of the host.
func List() ([]Port, error) {
	details, err := enumerator.GetDetailedPortsList()
	if err != nil {
		return nil, fmt.Errorf("failed listing serial ports: %v", err)
	}
	ports := make([]Port, len(details))
	for i, detail := range details {
		ports[i] = Port{
			Name:         detail.Name,
			IsUSB:        detail.IsUSB,
			VID:          detail.VID,
			PID:          detail.PID,
			SerialNumber: detail.SerialNumber,
			Product:      detail.Product,
		}
	}
	return ports, nil
}

// FilterSTM32 keeps the USB ports belonging to STMicroelectronics hardware.
func FilterSTM32(ports []Port) []Port {
	result := make([]Port, 0)
	for _, port := range ports {
		if port.IsUSB && strings.EqualFold(port.VID, STM32VendorID) {
			result = append(result, port)
		}
	}
	return result
}

// String returns one formatted line per port.
func (port Port) String() string {
	if !port.IsUSB {
		return port.Name
	}
	return fmt.Sprintf("%s  %s:%s  %s  %s", port.Name, port.VID, port.PID, port.SerialNumber, port.Product)
}
