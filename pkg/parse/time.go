package parse

import (
	"encoding/binary"
	"fmt"
	"time"

	"github.com/samsamfire/canmon/pkg/msg"
)

// CANopen TIME_OF_DAY epoch
var canopenEpoch = time.Date(1984, time.January, 1, 0, 0, 0, 0, time.UTC)

// A TIME payload is milliseconds since midnight (28 bits) followed by
// days since the 1984-01-01 epoch (16 bits), little endian.
func (p *Parser) decodeTime(m msg.Message) (string, error) {
	if m.Frame.DLC < 6 {
		return "", fmt.Errorf("%w : TIME frame too short", ErrNotDecodable)
	}
	millis := binary.LittleEndian.Uint32(m.Frame.Data[0:4]) & 0x0FFFFFFF
	days := binary.LittleEndian.Uint16(m.Frame.Data[4:6])
	stamp := canopenEpoch.
		AddDate(0, 0, int(days)).
		Add(time.Duration(millis) * time.Millisecond)
	return stamp.Format("2006-01-02 15:04:05.000"), nil
}
