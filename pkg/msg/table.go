package msg

import (
	"sort"

	can "github.com/samsamfire/canmon/pkg/can"
)

// A Decoder turns a classified message into human readable display text.
// It is optional : without one the table keeps the raw hex payload.
type Decoder interface {
	Decode(m Message) (string, error)
}

// A Table keeps the most recent Message per arbitration id and serves
// the filtered, windowed views the dashboard panes draw from.
// Iteration is always in ascending arbitration id order so scroll
// positions stay stable across redraws.
//
// The table is not goroutine safe : it is written by the single consumer
// draining the bus and read from that same loop.
type Table struct {
	decoder Decoder
	entries map[uint32]Message
}

func NewTable(decoder Decoder) *Table {
	return &Table{
		decoder: decoder,
		entries: make(map[uint32]Message),
	}
}

// Insert classifies the record and stores it, overwriting any previous
// entry for the same arbitration id. A failing decode falls back to the
// raw hex text for that one message. Returns the table for chaining.
func (t *Table) Insert(rec can.Record) *Table {
	message := NewMessage(rec)
	if t.decoder != nil {
		text, err := t.decoder.Decode(message)
		if err == nil {
			message.Text = text
		}
	}
	t.entries[message.ArbID] = message
	return t
}

// Filter returns a new table holding only the entries whose type or
// supertype is in the given set. The receiver is left untouched and the
// filtered copy shares the same decoder.
func (t *Table) Filter(types ...Type) *Table {
	wanted := make(map[Type]bool, len(types))
	for _, mType := range types {
		wanted[mType] = true
	}
	filtered := NewTable(t.decoder)
	for arbId, message := range t.entries {
		if wanted[message.Type] || wanted[message.Supertype] {
			filtered.entries[arbId] = message
		}
	}
	return filtered
}

// Window returns the slice of messages at index range [start, stop) in
// ascending arbitration id order. Bounds are clamped : stop never
// exceeds the table size, start never exceeds the clamped stop.
func (t *Table) Window(start int, stop int) []Message {
	messages := t.Messages()
	if stop > len(messages) {
		stop = len(messages)
	}
	if stop < 0 {
		stop = 0
	}
	if start > stop {
		start = stop
	}
	if start < 0 {
		start = 0
	}
	return messages[start:stop]
}

// Messages returns every entry in ascending arbitration id order.
func (t *Table) Messages() []Message {
	ids := make([]uint32, 0, len(t.entries))
	for arbId := range t.entries {
		ids = append(ids, arbId)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	messages := make([]Message, 0, len(ids))
	for _, arbId := range ids {
		messages = append(messages, t.entries[arbId])
	}
	return messages
}

func (t *Table) Contains(arbId uint32) bool {
	_, ok := t.entries[arbId]
	return ok
}

func (t *Table) Len() int {
	return len(t.entries)
}
