package msg

import (
	"fmt"
	"time"

	can "github.com/samsamfire/canmon/pkg/can"
)

// A Message is a classified frame observation : the latest known state
// for one arbitration id, carrying the decoded (or raw hex) display text.
type Message struct {
	ArbID     uint32
	Type      Type
	Supertype Type
	Node      uint8
	Text      string
	Interface string
	Timestamp time.Time
	Frame     can.Frame
}

// NewMessage classifies a record. The display text is the raw hex
// fallback, a decoder may replace it on table insertion.
func NewMessage(rec can.Record) Message {
	arbId := rec.Frame.ID & can.CanSffMask
	mType, node := Classify(rec.Frame)
	return Message{
		ArbID:     arbId,
		Type:      mType,
		Supertype: Supertype(mType),
		Node:      node,
		Text:      rec.Frame.HexData(),
		Interface: rec.Interface,
		Timestamp: rec.Timestamp,
		Frame:     rec.Frame,
	}
}

// CobId renders the arbitration id the way the dashboard displays it,
// e.g. "0x701".
func (m Message) CobId() string {
	return fmt.Sprintf("0x%03X", m.ArbID)
}
