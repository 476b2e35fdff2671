package can

import "time"

// A Record is one frame observation : the raw frame together with the
// interface it arrived on and the time it was read off the socket.
// Records are immutable once constructed.
type Record struct {
	Frame     Frame
	Interface string
	Timestamp time.Time
}

func NewRecord(frame Frame, ifaceName string) Record {
	return Record{Frame: frame, Interface: ifaceName, Timestamp: time.Now()}
}
