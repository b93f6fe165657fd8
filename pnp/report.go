package pnp

import (
	"encoding/json"
	"fmt"
	"os"
)

// JSON serializes the records as an indented JSON array. The top level is an
// array for every length including zero and one, so consumers only ever have
// to handle one shape.
func (deviceList DeviceList) JSON() ([]byte, error) {
	return json.MarshalIndent(deviceList.Records, "", "  ")
}

// WriteReport overwrites path with the JSON rendering of deviceList and
// returns the exact bytes written, so callers can dump the same text to the
// console afterwards.
func WriteReport(deviceList DeviceList, path string) ([]byte, error) {
	data, err := deviceList.JSON()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrWrite, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrWrite, err)
	}
	return data, nil
}
