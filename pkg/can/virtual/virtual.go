package virtual

import (
	"errors"
	"sync"

	can "github.com/samsamfire/canmon/pkg/can"
)

// Virtual CAN device implementation, primarily used for testing.
// Frames are injected in-memory with [Device.Inject] and a hardware
// fault can be simulated with [Device.Fail].

func init() {
	can.RegisterDriver("virtual", NewVirtualDevice)
	can.RegisterDriver("virtualcan", NewVirtualDevice)
}

var ErrStopped = errors.New("virtual : device is stopped")

type Device struct {
	mu        sync.Mutex
	name      string
	rx        chan can.Frame
	done      chan struct{}
	closeOnce sync.Once
	recvErr   error
	isRunning bool
}

func NewVirtualDevice(name string) (can.Device, error) {
	return &Device{
		name: name,
		rx:   make(chan can.Frame, 256),
		done: make(chan struct{}),
	}, nil
}

// "Start" implementation of Device interface
func (d *Device) Start() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.isRunning = true
	return nil
}

// "Stop" implementation of Device interface
func (d *Device) Stop() error {
	d.mu.Lock()
	d.isRunning = false
	if d.recvErr == nil {
		d.recvErr = ErrStopped
	}
	d.mu.Unlock()
	d.closeOnce.Do(func() { close(d.done) })
	return nil
}

// "Recv" implementation of Device interface
// Blocks until a frame is injected or the device is stopped or failed.
func (d *Device) Recv() (can.Frame, error) {
	select {
	case frame := <-d.rx:
		return frame, nil
	case <-d.done:
		// Frames injected before the stop are still delivered
		select {
		case frame := <-d.rx:
			return frame, nil
		default:
		}
		d.mu.Lock()
		defer d.mu.Unlock()
		return can.Frame{}, d.recvErr
	}
}

func (d *Device) Running() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.isRunning
}

func (d *Device) Name() string {
	return d.name
}

// Inject queues a frame for delivery to the next Recv call.
func (d *Device) Inject(frame can.Frame) {
	select {
	case d.rx <- frame:
	case <-d.done:
	}
}

// Fail simulates a hardware fault : pending and future Recv calls
// return the given error once the injected backlog is drained.
func (d *Device) Fail(err error) {
	d.mu.Lock()
	d.isRunning = false
	d.recvErr = err
	d.mu.Unlock()
	d.closeOnce.Do(func() { close(d.done) })
}
