package socketcan

import (
	"errors"
	"sync"

	sockcan "github.com/brutella/can"
	can "github.com/samsamfire/canmon/pkg/can"
)

// SocketCAN device driver, built on the implementation
// that can be found here : https://github.com/brutella/can

func init() {
	can.RegisterDriver("socketcan", NewSocketcanDevice)
}

var ErrClosed = errors.New("socketcan : device is closed")

type SocketcanDevice struct {
	mu      sync.Mutex
	name    string
	bus     *sockcan.Bus
	rx      chan can.Frame
	done    chan struct{}
	recvErr error
	running bool
}

func NewSocketcanDevice(name string) (can.Device, error) {
	bus, err := sockcan.NewBusForInterfaceWithName(name)
	if err != nil {
		return nil, err
	}
	return &SocketcanDevice{
		name: name,
		bus:  bus,
		rx:   make(chan can.Frame, 256),
		done: make(chan struct{}),
	}, nil
}

// "Start" implementation of Device interface
// brutella/can delivers frames through a callback, ConnectAndPublish
// runs the kernel receive loop until disconnect or a hardware fault.
func (s *SocketcanDevice) Start() error {
	s.bus.Subscribe(s)
	s.setRunning(true)
	go func() {
		err := s.bus.ConnectAndPublish()
		s.mu.Lock()
		if err != nil {
			s.recvErr = err
		} else {
			s.recvErr = ErrClosed
		}
		s.running = false
		s.mu.Unlock()
		close(s.done)
	}()
	return nil
}

// "Stop" implementation of Device interface
func (s *SocketcanDevice) Stop() error {
	s.setRunning(false)
	return s.bus.Disconnect()
}

// "Recv" implementation of Device interface
// Blocks until a frame is published by the kernel or the receive loop dies.
func (s *SocketcanDevice) Recv() (can.Frame, error) {
	select {
	case frame := <-s.rx:
		return frame, nil
	case <-s.done:
		// Drain anything published before the loop died
		select {
		case frame := <-s.rx:
			return frame, nil
		default:
		}
		s.mu.Lock()
		defer s.mu.Unlock()
		return can.Frame{}, s.recvErr
	}
}

// brutella/can specific "Handle" implementation
func (s *SocketcanDevice) Handle(frame sockcan.Frame) {
	// Convert brutella frame to canmon frame
	converted := can.Frame{ID: frame.ID, DLC: frame.Length, Flags: frame.Flags, Data: frame.Data}
	select {
	case s.rx <- converted:
	case <-s.done:
	}
}

func (s *SocketcanDevice) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

func (s *SocketcanDevice) Name() string {
	return s.name
}

func (s *SocketcanDevice) setRunning(running bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.running = running
}
