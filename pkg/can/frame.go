package can

import (
	"fmt"
	"strings"
)

const CanSffMask uint32 = 0x000007FF

// A CAN frame
type Frame struct {
	ID    uint32
	Flags uint8
	DLC   uint8
	Data  [8]byte
}

func NewFrame(id uint32, flags uint8, dlc uint8) Frame {
	return Frame{ID: id, Flags: flags, DLC: dlc}
}

// Payload returns the DLC-sized slice of the frame data.
func (f Frame) Payload() []byte {
	dlc := f.DLC
	if dlc > 8 {
		dlc = 8
	}
	return f.Data[:dlc]
}

// HexData renders the payload as space-separated hex bytes,
// e.g. "05 7F 00". Used as the raw fallback display text.
func (f Frame) HexData() string {
	parts := make([]string, 0, f.DLC)
	for _, b := range f.Payload() {
		parts = append(parts, fmt.Sprintf("%02X", b))
	}
	return strings.Join(parts, " ")
}

func (f Frame) String() string {
	return fmt.Sprintf("x%03X [%d] %s", f.ID&CanSffMask, f.DLC, f.HexData())
}
