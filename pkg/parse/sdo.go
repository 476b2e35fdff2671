package parse

import (
	"encoding/binary"
	"fmt"

	"github.com/samsamfire/canmon/pkg/msg"
)

const sdoAbortCommand uint8 = 0x04

// Client command specifiers (request, COB-ID 0x600 + node)
var sdoClientCommandMap = map[uint8]string{
	0x00: "Download segment request",
	0x01: "Download request",
	0x02: "Upload request",
	0x03: "Upload segment request",
	0x04: "Abort",
	0x05: "Block upload request",
	0x06: "Block download request",
}

// Server command specifiers (response, COB-ID 0x580 + node)
var sdoServerCommandMap = map[uint8]string{
	0x00: "Upload segment response",
	0x01: "Download segment response",
	0x02: "Upload response",
	0x03: "Download response",
	0x04: "Abort",
	0x05: "Block download response",
	0x06: "Block upload response",
}

// SDO abort codes (CiA 301)
var sdoAbortMap = map[uint32]string{
	0x05030000: "Toggle bit not alternated",
	0x05040000: "SDO protocol timed out",
	0x05040001: "Command specifier not valid",
	0x05040005: "Out of memory",
	0x06010000: "Unsupported access to an object",
	0x06010001: "Attempt to read a write only object",
	0x06010002: "Attempt to write a read only object",
	0x06020000: "Object does not exist",
	0x06040041: "Object cannot be mapped to the PDO",
	0x06040042: "PDO length exceeded",
	0x06060000: "Access failed due to a hardware error",
	0x06070010: "Data type does not match",
	0x06090011: "Sub-index does not exist",
	0x06090030: "Value range of parameter exceeded",
	0x08000000: "General error",
	0x08000020: "Data cannot be transferred or stored",
	0x08000022: "Data cannot be transferred (device state)",
}

// decodeSDO renders the command specifier and, for expedited style
// transfers, the multiplexer (index, sub-index) with its EDS name when
// one is loaded for the addressed node.
func (p *Parser) decodeSDO(m msg.Message) (string, error) {
	if m.Frame.DLC < 4 {
		return "", fmt.Errorf("%w : SDO frame too short", ErrNotDecodable)
	}
	request := m.ArbID >= msg.FuncSDORx
	specifier := m.Frame.Data[0] >> 5
	commands := sdoServerCommandMap
	if request {
		commands = sdoClientCommandMap
	}
	command, ok := commands[specifier]
	if !ok {
		return fmt.Sprintf("Invalid command specifier (0x%02X)", specifier), nil
	}

	index := binary.LittleEndian.Uint16(m.Frame.Data[1:3])
	subIndex := m.Frame.Data[3]
	target := fmt.Sprintf("0x%04X sub %d", index, subIndex)
	if eds, found := p.eds[m.Node]; found {
		if name, known := eds.IndexName(index); known {
			target = fmt.Sprintf("%s (0x%04X sub %d)", name, index, subIndex)
		}
	}

	if specifier == sdoAbortCommand && m.Frame.DLC >= 8 {
		code := binary.LittleEndian.Uint32(m.Frame.Data[4:8])
		reason, known := sdoAbortMap[code]
		if !known {
			reason = fmt.Sprintf("0x%08X", code)
		}
		return fmt.Sprintf("Abort %s : %s", target, reason), nil
	}
	return fmt.Sprintf("%s %s", command, target), nil
}
