package can

import "testing"

func TestFrameHexData(t *testing.T) {
	frame := NewFrame(0x701, 0, 3)
	frame.Data = [8]byte{0x05, 0x7F, 0x00, 0xFF}
	if frame.HexData() != "05 7F 00" {
		t.Errorf("got %q", frame.HexData())
	}
}

func TestFramePayloadClampsDLC(t *testing.T) {
	frame := Frame{ID: 0x80, DLC: 12}
	if len(frame.Payload()) != 8 {
		t.Errorf("payload length %d", len(frame.Payload()))
	}
}

func TestFrameString(t *testing.T) {
	frame := NewFrame(0x181, 0, 2)
	frame.Data[0] = 0xDE
	frame.Data[1] = 0xAD
	if frame.String() != "x181 [2] DE AD" {
		t.Errorf("got %q", frame.String())
	}
}
