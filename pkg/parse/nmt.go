package parse

import (
	"fmt"

	"github.com/samsamfire/canmon/pkg/msg"
)

// Available NMT commands (CiA 301)
const (
	nmtStartNode  uint8 = 0x01
	nmtStopNode   uint8 = 0x02
	nmtEnterPreOp uint8 = 0x80
	nmtResetNode  uint8 = 0x81
	nmtResetComm  uint8 = 0x82
)

var nmtCommandMap = map[uint8]string{
	nmtStartNode:  "Start Remote Node",
	nmtStopNode:   "Stop Remote Node",
	nmtEnterPreOp: "Enter Pre-operational",
	nmtResetNode:  "Reset Node",
	nmtResetComm:  "Reset Communication",
}

func (p *Parser) decodeNMT(m msg.Message) (string, error) {
	if m.Frame.DLC < 2 {
		return "", fmt.Errorf("%w : NMT command too short", ErrNotDecodable)
	}
	command, ok := nmtCommandMap[m.Frame.Data[0]]
	if !ok {
		return fmt.Sprintf("Unknown command (0x%02X)", m.Frame.Data[0]), nil
	}
	target := m.Frame.Data[1]
	if target == 0 {
		return fmt.Sprintf("%s - All Nodes", command), nil
	}
	return fmt.Sprintf("%s - %s", command, p.NodeName(target)), nil
}

func (p *Parser) decodeSync(m msg.Message) (string, error) {
	if m.Frame.DLC >= 1 {
		return fmt.Sprintf("SYNC (counter %d)", m.Frame.Data[0]), nil
	}
	return "SYNC", nil
}
