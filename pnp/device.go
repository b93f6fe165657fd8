package pnp

import (
	"errors"
	"fmt"
	"strings"
)

// VendorID and ProductID identify the target hardware. VID 0483 is
// STMicroelectronics, PID 52A4 the board this tool reports on.
const (
	VendorID  = "0483"
	ProductID = "52A4"
)

// DevicePrefix is the instance-ID prefix shared by every matching device.
// Windows reports instance IDs uppercase, so the match is exact.
const DevicePrefix = `USB\VID_` + VendorID + `&PID_` + ProductID

// DefaultReportPath is where the report command writes its JSON, relative to
// the working directory.
const DefaultReportPath = "USB_Device_Info.json"

// Device status values as reported in DeviceRecord.Status.
const (
	StatusOK      = "OK"
	StatusError   = "Error"
	StatusUnknown = "Unknown"
)

// ErrQuery means the OS device-management subsystem could not be queried,
// f.ex. because of missing privileges or an unsupported platform.
var ErrQuery = errors.New("device query failed")

// ErrWrite means the report file could not be written.
var ErrWrite = errors.New("writing report failed")

// PropertyKey names a device property in the PnP property store. The values
// are the devpkey.h names so queriers can map them to platform keys.
type PropertyKey string

const (
	PropertyFriendlyName    PropertyKey = "DEVPKEY_Device_FriendlyName"
	PropertyBusReportedDesc PropertyKey = "DEVPKEY_Device_BusReportedDeviceDesc"
)

// DeviceInfo is one entry of the raw enumeration result, before filtering.
type DeviceInfo struct {
	DeviceID string
	Status   string
}

// Querier is the narrow interface in front of the platform's device
// management. Everything OS-specific sits behind these two calls.
type Querier interface {
	// PresentDevices returns one entry per device currently attached to and
	// recognized by the host.
	PresentDevices() ([]DeviceInfo, error)
	// Property looks up one property of a device. found is false when the
	// device does not expose the property, which is not an error.
	Property(deviceID string, key PropertyKey) (value string, found bool, err error)
}

// DeviceRecord is what the report carries per matching device. FriendlyName
// and BusReportedDescription are nil when the device does not expose the
// property, and serialize as null.
type DeviceRecord struct {
	DeviceID               string
	Status                 string
	FriendlyName           *string
	BusReportedDescription *string
}

// DeviceList is a simple wrapper for an
// array of DeviceRecord
type DeviceList struct {
	Records []DeviceRecord
}

// String returns a list of all matching device IDs in a formatted string
func (deviceList DeviceList) String() string {
	var sb strings.Builder
	for _, record := range deviceList.Records {
		sb.WriteString(record.DeviceID)
		sb.WriteString("\n")
	}
	return sb.String()
}

// CreateMapForJSONConverter creates a simple json ready map containing all
// matching device IDs
func (deviceList DeviceList) CreateMapForJSONConverter() map[string]interface{} {
	devices := make([]string, len(deviceList.Records))
	for i, record := range deviceList.Records {
		devices[i] = record.DeviceID
	}
	return map[string]interface{}{"deviceList": devices}
}

// Collect takes one snapshot of the attached devices: enumerate, keep the
// devices matching DevicePrefix, and look up the two descriptive properties
// for each of them. Records keep the OS enumeration order. No property is
// looked up for devices that do not match.
func Collect(q Querier) (DeviceList, error) {
	devices, err := q.PresentDevices()
	if err != nil {
		return DeviceList{}, fmt.Errorf("%w: %v", ErrQuery, err)
	}
	records := make([]DeviceRecord, 0)
	for _, device := range devices {
		if !strings.HasPrefix(device.DeviceID, DevicePrefix) {
			continue
		}
		record := DeviceRecord{DeviceID: device.DeviceID, Status: device.Status}
		record.FriendlyName, err = lookupProperty(q, device.DeviceID, PropertyFriendlyName)
		if err != nil {
			return DeviceList{}, err
		}
		record.BusReportedDescription, err = lookupProperty(q, device.DeviceID, PropertyBusReportedDesc)
		if err != nil {
			return DeviceList{}, err
		}
		records = append(records, record)
	}
	return DeviceList{Records: records}, nil
}

func lookupProperty(q Querier, deviceID string, key PropertyKey) (*string, error) {
	value, found, err := q.Property(deviceID, key)
	if err != nil {
		return nil, fmt.Errorf("%w: looking up %s of %s: %v", ErrQuery, key, deviceID, err)
	}
	if !found {
		return nil, nil
	}
	return &value, nil
}
