package can

import "fmt"

// A Device is a single CAN hardware (or virtual) interface opened for
// reception. Recv blocks until a frame arrives or the device fails.
type Device interface {
	Start() error         // Begin accepting Recv calls
	Stop() error          // Release the underlying interface
	Recv() (Frame, error) // Blocking receive, errors on hardware fault
	Running() bool        // Live status predicate
	Name() string         // Stable interface identity, e.g. "can0"
}

// Register a new CAN device driver type
// This should be called inside an init() function of the driver package
func RegisterDriver(driverType string, newDevice NewDeviceFunc) {
	driverRegistry[driverType] = newDevice
}

type NewDeviceFunc func(name string) (Device, error)

var driverRegistry = make(map[string]NewDeviceFunc)

// Create a new CAN device with the given driver.
// Currently supported : socketcan, virtual
func NewDevice(driver string, name string) (Device, error) {
	createDevice, ok := driverRegistry[driver]
	if !ok {
		return nil, fmt.Errorf("unsupported driver : %v", driver)
	}
	return createDevice(name)
}
