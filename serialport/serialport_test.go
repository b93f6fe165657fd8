package serialport_test

import (
	"testing"

	"github.com/stm32tools/usbreport/serialport"

	"github.com/stretchr/testify/assert"
)

func TestFilterSTM32(t *testing.T) {
	stm32Port := serialport.Port{Name: "COM3", IsUSB: true, VID: "0483", PID: "5740", SerialNumber: "205A336B4E43", Product: "STM32 Virtual ComPort"}
	lowercasePort := serialport.Port{Name: "COM4", IsUSB: true, VID: "0483", PID: "52A4"}
	otherVendorPort := serialport.Port{Name: "COM5", IsUSB: true, VID: "2341", PID: "0043"}
	legacyPort := serialport.Port{Name: "COM1", IsUSB: false}

	testCases := map[string]struct {
		ports    []serialport.Port
		expected []serialport.Port
	}{
		"no ports":             {[]serialport.Port{}, []serialport.Port{}},
		"keeps stm32 only":     {[]serialport.Port{stm32Port, otherVendorPort, legacyPort}, []serialport.Port{stm32Port}},
		"multiple stm32 ports": {[]serialport.Port{stm32Port, lowercasePort}, []serialport.Port{stm32Port, lowercasePort}},
		"non usb dropped":      {[]serialport.Port{legacyPort}, []serialport.Port{}},
	}

	for _, tc := range testCases {
		actual := serialport.FilterSTM32(tc.ports)
		assert.Equal(t, tc.expected, actual)
	}
}

func TestPortString(t *testing.T) {
	usbPort := serialport.Port{Name: "COM3", IsUSB: true, VID: "0483", PID: "5740", SerialNumber: "205A336B4E43", Product: "STM32 Virtual ComPort"}
	assert.Equal(t, "COM3  0483:5740  205A336B4E43  STM32 Virtual ComPort", usbPort.String())

	legacyPort := serialport.Port{Name: "COM1"}
	assert.Equal(t, "COM1", legacyPort.String())
}
