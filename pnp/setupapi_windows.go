//go:build windows

package pnp

import (
	"fmt"
	"strings"

	"golang.org/x/sys/windows"
)

// Device property keys from devpkey.h. golang.org/x/sys/windows only ships a
// small selection and these two are not in it.
var (
	devpkeyFriendlyName = windows.DEVPROPKEY{
		FmtID: windows.DEVPROPGUID{Data1: 0xa45c254e, Data2: 0xdf1c, Data3: 0x4efd, Data4: [8]byte{0x80, 0x20, 0x67, 0xd1, 0x46, 0xa8, 0x50, 0xe0}},
		PID:   14,
	}
	devpkeyBusReportedDeviceDesc = windows.DEVPROPKEY{
		FmtID: windows.DEVPROPGUID{Data1: 0x540b947e, Data2: 0x8b40, Data3: 0x45bc, Data4: [8]byte{0xa8, 0xa2, 0x6a, 0x0b, 0x89, 0x4c, 0xbd, 0xa2}},
		PID:   4,
	}
)

// setupAPIQuerier implements Querier on top of the SetupDi device information
// API. Every call opens and closes its own device information set, the
// querier itself holds no state.
type setupAPIQuerier struct{}

// NewQuerier returns the device querier for the host platform.
func NewQuerier() Querier {
	return setupAPIQuerier{}
}

// openUSBDevices returns a device information set with all devices on the USB
// enumerator that are currently attached and recognized. The caller closes
// the set.
func openUSBDevices() (windows.DevInfo, error) {
	devInfoSet, err := windows.SetupDiGetClassDevsEx(nil, "USB", 0, windows.DIGCF_PRESENT|windows.DIGCF_ALLCLASSES, 0, "")
	if err != nil {
		return 0, fmt.Errorf("SetupDiGetClassDevsEx failed: %v", err)
	}
	return devInfoSet, nil
}

func (setupAPIQuerier) PresentDevices() ([]DeviceInfo, error) {
	devInfoSet, err := openUSBDevices()
	if err != nil {
		return nil, err
	}
	defer devInfoSet.Close()

	var devices []DeviceInfo
	for index := 0; ; index++ {
		devInfoData, err := devInfoSet.EnumDeviceInfo(index)
		if err == windows.ERROR_NO_MORE_ITEMS {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("SetupDiEnumDeviceInfo failed at index %d: %v", index, err)
		}
		deviceID, err := devInfoSet.DeviceInstanceID(devInfoData)
		if err != nil {
			return nil, fmt.Errorf("failed getting instance ID at index %d: %v", index, err)
		}
		devices = append(devices, DeviceInfo{DeviceID: deviceID, Status: devNodeStatus(devInfoData.DevInst)})
	}
	return devices, nil
}

// Property looks up one string property of the device with the given
// instance ID. A device without the property yields found=false.
func (setupAPIQuerier) Property(deviceID string, key PropertyKey) (string, bool, error) {
	propertyKey, err := devpropKey(key)
	if err != nil {
		return "", false, err
	}
	devInfoSet, devInfoData, err := findDevice(deviceID)
	if err != nil {
		return "", false, err
	}
	defer devInfoSet.Close()

	value, err := windows.SetupDiGetDeviceProperty(devInfoSet, devInfoData, propertyKey)
	if err == windows.ERROR_NOT_FOUND {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("SetupDiGetDeviceProperty failed for %s of %s: %v", key, deviceID, err)
	}
	text, ok := value.(string)
	if !ok {
		return "", false, fmt.Errorf("property %s of %s is not a string but %T", key, deviceID, value)
	}
	return text, true, nil
}

// findDevice locates the device information element for an instance ID. The
// returned set is only valid until closed and owns the element.
func findDevice(deviceID string) (windows.DevInfo, *windows.DevInfoData, error) {
	devInfoSet, err := openUSBDevices()
	if err != nil {
		return 0, nil, err
	}
	for index := 0; ; index++ {
		devInfoData, err := devInfoSet.EnumDeviceInfo(index)
		if err == windows.ERROR_NO_MORE_ITEMS {
			break
		}
		if err != nil {
			devInfoSet.Close()
			return 0, nil, fmt.Errorf("SetupDiEnumDeviceInfo failed at index %d: %v", index, err)
		}
		id, err := devInfoSet.DeviceInstanceID(devInfoData)
		if err != nil {
			devInfoSet.Close()
			return 0, nil, fmt.Errorf("failed getting instance ID at index %d: %v", index, err)
		}
		if strings.EqualFold(id, deviceID) {
			return devInfoSet, devInfoData, nil
		}
	}
	devInfoSet.Close()
	return 0, nil, fmt.Errorf("device %s is no longer present", deviceID)
}

func devpropKey(key PropertyKey) (*windows.DEVPROPKEY, error) {
	switch key {
	case PropertyFriendlyName:
		return &devpkeyFriendlyName, nil
	case PropertyBusReportedDesc:
		return &devpkeyBusReportedDeviceDesc, nil
	}
	return nil, fmt.Errorf("unknown device property %q", key)
}

// devNodeStatus folds the devnode status word into the three values the
// report uses. A failed status query marks the device Unknown instead of
// aborting the snapshot.
func devNodeStatus(devInst windows.DEVINST) string {
	var status, problemNumber uint32
	if err := windows.CM_Get_DevNode_Status(&status, &problemNumber, devInst, 0); err != nil {
		return StatusUnknown
	}
	if status&windows.DN_HAS_PROBLEM != 0 {
		return StatusError
	}
	return StatusOK
}
