package parse

import (
	"testing"

	can "github.com/samsamfire/canmon/pkg/can"
	"github.com/samsamfire/canmon/pkg/msg"
	"github.com/stretchr/testify/assert"
)

func message(id uint32, data ...byte) msg.Message {
	frame := can.NewFrame(id, 0, uint8(len(data)))
	copy(frame.Data[:], data)
	return msg.NewMessage(can.NewRecord(frame, "vcan0"))
}

func TestDecodeHeartbeat(t *testing.T) {
	parser := NewParser(nil)
	cases := map[uint8]string{
		0x00: "Boot-up",
		0x04: "Stopped",
		0x05: "Operational",
		0x7F: "Pre-operational",
	}
	for state, expected := range cases {
		text, err := parser.Decode(message(0x701, state))
		assert.Nil(t, err)
		assert.Equal(t, expected, text)
	}
}

func TestDecodeHeartbeatInvalidState(t *testing.T) {
	parser := NewParser(nil)
	text, err := parser.Decode(message(0x701, 0x42))
	assert.Nil(t, err)
	assert.Equal(t, "INVALID STATE (0x42)", text)
}

func TestDecodeHeartbeatEmptyPayload(t *testing.T) {
	parser := NewParser(nil)
	_, err := parser.Decode(message(0x701))
	assert.ErrorIs(t, err, ErrNotDecodable)
}

func TestDecodeNMT(t *testing.T) {
	parser := NewParser(nil)
	text, err := parser.Decode(message(0x000, 0x01, 0x05))
	assert.Nil(t, err)
	assert.Equal(t, "Start Remote Node - 0x05", text)

	text, err = parser.Decode(message(0x000, 0x81, 0x00))
	assert.Nil(t, err)
	assert.Equal(t, "Reset Node - All Nodes", text)
}

func TestDecodeSync(t *testing.T) {
	parser := NewParser(nil)
	text, err := parser.Decode(message(0x080))
	assert.Nil(t, err)
	assert.Equal(t, "SYNC", text)

	text, err = parser.Decode(message(0x080, 0x03))
	assert.Nil(t, err)
	assert.Equal(t, "SYNC (counter 3)", text)
}

func TestDecodeTime(t *testing.T) {
	parser := NewParser(nil)
	// 1 day and 1 ms after the 1984-01-01 epoch
	text, err := parser.Decode(message(0x100, 0x01, 0x00, 0x00, 0x00, 0x01, 0x00))
	assert.Nil(t, err)
	assert.Equal(t, "1984-01-02 00:00:00.001", text)
}

func TestDecodeEmergency(t *testing.T) {
	parser := NewParser(nil)
	// code 0x3100 (mains voltage), register 0x04
	text, err := parser.Decode(message(0x085, 0x00, 0x31, 0x04))
	assert.Nil(t, err)
	assert.Equal(t, "Mains Voltage (0x3100, reg 0x04)", text)
}

func TestDecodeEmergencyUnknownCodeFallsBackToBase(t *testing.T) {
	parser := NewParser(nil)
	// 0x3105 is not listed, 0x3100 is
	text, err := parser.Decode(message(0x085, 0x05, 0x31, 0x04))
	assert.Nil(t, err)
	assert.Equal(t, "Mains Voltage (0x3105, reg 0x04)", text)
}

func TestDecodeSDO(t *testing.T) {
	parser := NewParser(nil)
	// expedited upload request of 0x1017 sub 0
	text, err := parser.Decode(message(0x605, 0x40, 0x17, 0x10, 0x00))
	assert.Nil(t, err)
	assert.Equal(t, "Upload request 0x1017 sub 0", text)
}

func TestDecodeSDOAbort(t *testing.T) {
	parser := NewParser(nil)
	// abort 0x06020000 : object does not exist
	text, err := parser.Decode(message(0x585, 0x80, 0x17, 0x10, 0x00, 0x00, 0x00, 0x02, 0x06))
	assert.Nil(t, err)
	assert.Equal(t, "Abort 0x1017 sub 0 : Object does not exist", text)
}

func TestDecodeSDOWithEDSName(t *testing.T) {
	parser := NewParser(nil)
	eds, err := LoadEDS("testdata/sample.eds")
	assert.Nil(t, err)
	parser.AddEDS(eds)

	text, err := parser.Decode(message(0x605, 0x40, 0x17, 0x10, 0x00))
	assert.Nil(t, err)
	assert.Equal(t, "Upload request Producer heartbeat time (0x1017 sub 0)", text)
}

func TestDecodePDO(t *testing.T) {
	parser := NewParser(nil)
	text, err := parser.Decode(message(0x181, 0xDE, 0xAD))
	assert.Nil(t, err)
	assert.Equal(t, "TPDO1 [DE AD]", text)

	text, err = parser.Decode(message(0x501, 0x01))
	assert.Nil(t, err)
	assert.Equal(t, "RPDO4 [01]", text)
}

func TestDecodeUnknownType(t *testing.T) {
	parser := NewParser(nil)
	_, err := parser.Decode(message(0x7E5, 0x01))
	assert.ErrorIs(t, err, ErrNotDecodable)
}

func TestTableKeepsRawTextWhenNotDecodable(t *testing.T) {
	parser := NewParser(nil)
	table := msg.NewTable(parser)
	table.Insert(can.NewRecord(can.Frame{ID: 0x7E5, DLC: 2, Data: [8]byte{0xAB, 0xCD}}, "vcan0"))
	assert.Equal(t, "AB CD", table.Window(0, 1)[0].Text)
}

func TestNodeName(t *testing.T) {
	parser := NewParser(nil)
	assert.Equal(t, "0x05", parser.NodeName(5))

	eds, err := LoadEDS("testdata/sample.eds")
	assert.Nil(t, err)
	parser.AddEDS(eds)
	assert.Equal(t, "ServoDrive", parser.NodeName(5))
}
