package bus

import (
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	can "github.com/samsamfire/canmon/pkg/can"
)

const (
	DefaultQueueSize  = 1024
	DefaultPutTimeout = 100 * time.Millisecond
)

// A Bus fans frames from any number of independently failing CAN devices
// into a single delivery queue drained by one consumer. Each attached
// device gets exactly one listener goroutine for its lifetime ; a shared
// stop signal terminates all of them on shutdown.
type Bus struct {
	logger *slog.Logger
	driver string

	// PutTimeout bounds how long a listener waits on a full delivery
	// queue before dropping the frame and exiting. Adjust before
	// attaching devices.
	PutTimeout time.Duration

	mu      sync.Mutex
	devices []can.Device
	spawned int

	frames   chan can.Record
	stop     chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
	dropped  atomic.Uint64
}

// NewBus creates a bus using the given device driver (e.g. "socketcan").
// Capacity <= 0 falls back to DefaultQueueSize.
func NewBus(logger *slog.Logger, driver string, capacity int) *Bus {
	if logger == nil {
		logger = slog.Default()
	}
	if capacity <= 0 {
		capacity = DefaultQueueSize
	}
	return &Bus{
		logger:     logger.With("service", "bus"),
		driver:     driver,
		PutTimeout: DefaultPutTimeout,
		frames:     make(chan can.Record, capacity),
		stop:       make(chan struct{}),
	}
}

// Attach constructs and starts a device for the given interface name and
// spawns its listener. Construction or start failure is returned to the
// caller and is fatal only to this one attach.
func (b *Bus) Attach(name string) error {
	dev, err := can.NewDevice(b.driver, name)
	if err != nil {
		return err
	}
	return b.AttachDevice(dev)
}

// AttachDevice starts and tracks an already constructed device. Useful
// for custom device backends.
func (b *Bus) AttachDevice(dev can.Device) error {
	if err := dev.Start(); err != nil {
		return err
	}
	b.mu.Lock()
	b.devices = append(b.devices, dev)
	b.spawned++
	b.mu.Unlock()
	b.wg.Add(1)
	go b.listen(dev)
	b.logger.Info("attached device", "interface", dev.Name())
	return nil
}

// Detach stops tracking a device. It does not signal or join the
// device's listener : the goroutine keeps running until it observes the
// shared stop signal or the device errors out. Callers needing an
// immediate stop must use ShutdownAll.
func (b *Bus) Detach(dev can.Device) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i, tracked := range b.devices {
		if tracked == dev {
			b.devices = append(b.devices[:i], b.devices[i+1:]...)
			return
		}
	}
}

// ShutdownAll detaches every device, raises the stop signal once and
// blocks until every spawned listener has exited. Devices are stopped so
// listeners blocked inside Recv wake up. Safe to call with no listeners.
func (b *Bus) ShutdownAll() {
	b.mu.Lock()
	devices := make([]can.Device, len(b.devices))
	copy(devices, b.devices)
	b.devices = b.devices[:0]
	count := b.spawned
	b.mu.Unlock()

	b.stopOnce.Do(func() { close(b.stop) })
	for _, dev := range devices {
		if err := dev.Stop(); err != nil {
			b.logger.Warn("device stop failed", "interface", dev.Name(), "error", err)
		}
	}
	b.logger.Info("waiting for bus listeners to close", "count", count)
	b.wg.Wait()
	b.logger.Info("all bus listeners closed", "count", count)
}

// Receive pops the next record off the delivery queue, waiting at most
// timeout. A nil result means the queue stayed empty : an expected
// outcome of the consumer poll loop, not an error.
func (b *Bus) Receive(timeout time.Duration) *can.Record {
	timer := time.NewTimer(timeout)
	defer timer.Stop()
	select {
	case rec := <-b.frames:
		return &rec
	case <-timer.C:
		return nil
	}
}

// ActiveDevices returns the tracked devices whose Running predicate
// reports true at call time.
func (b *Bus) ActiveDevices() []can.Device {
	b.mu.Lock()
	defer b.mu.Unlock()
	active := make([]can.Device, 0, len(b.devices))
	for _, dev := range b.devices {
		if dev.Running() {
			active = append(active, dev)
		}
	}
	return active
}

// Dropped reports how many frames were discarded on queue backpressure.
func (b *Bus) Dropped() uint64 {
	return b.dropped.Load()
}

// listen is the per-device receive loop. Two outcomes end it : the
// shared stop signal, or a device error (the listener then detaches its
// own device and exits, leaving every other listener untouched). A full
// delivery queue past PutTimeout drops the frame, bumps the drop counter
// and ends the listener. Known-lossy, kept explicit via Dropped.
func (b *Bus) listen(dev can.Device) {
	defer b.wg.Done()
	for {
		select {
		case <-b.stop:
			return
		default:
		}
		frame, err := dev.Recv()
		if err != nil {
			select {
			case <-b.stop:
				return
			default:
			}
			b.logger.Warn("device receive failed, detaching", "interface", dev.Name(), "error", err)
			b.Detach(dev)
			return
		}
		select {
		case b.frames <- can.NewRecord(frame, dev.Name()):
		case <-b.stop:
			return
		case <-time.After(b.PutTimeout):
			b.dropped.Add(1)
			b.logger.Warn("delivery queue full, dropping frame", "interface", dev.Name(), "dropped", b.dropped.Load())
			return
		}
	}
}
