package parse

import (
	"fmt"

	"github.com/samsamfire/canmon/pkg/msg"
)

// NMT error control states carried in a heartbeat payload
var heartbeatStateMap = map[uint8]string{
	0x00: "Boot-up",
	0x04: "Stopped",
	0x05: "Operational",
	0x7F: "Pre-operational",
}

func (p *Parser) decodeHeartbeat(m msg.Message) (string, error) {
	if m.Frame.DLC < 1 {
		return "", fmt.Errorf("%w : heartbeat without payload", ErrNotDecodable)
	}
	state, ok := heartbeatStateMap[m.Frame.Data[0]]
	if !ok {
		return fmt.Sprintf("INVALID STATE (0x%02X)", m.Frame.Data[0]), nil
	}
	return state, nil
}
