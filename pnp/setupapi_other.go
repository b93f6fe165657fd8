//go:build !windows

package pnp

import "errors"

var errUnsupported = errors.New("device enumeration requires the windows PnP manager")

type unsupportedQuerier struct{}

// NewQuerier returns the device querier for the host platform. On anything
// but windows every query fails.
func NewQuerier() Querier {
	return unsupportedQuerier{}
}

func (unsupportedQuerier) PresentDevices() ([]DeviceInfo, error) {
	return nil, errUnsupported
}

func (unsupportedQuerier) Property(string, PropertyKey) (string, bool, error) {
	return "", false, errUnsupported
}
