package msg

import (
	"errors"
	"testing"

	can "github.com/samsamfire/canmon/pkg/can"
	"github.com/stretchr/testify/assert"
)

func record(id uint32, data ...byte) can.Record {
	frame := can.NewFrame(id, 0, uint8(len(data)))
	copy(frame.Data[:], data)
	return can.NewRecord(frame, "vcan0")
}

func TestTableInsertOverwrites(t *testing.T) {
	table := NewTable(nil)
	ids := []uint32{0x701, 0x181, 0x701, 0x80, 0x181, 0x701}
	for _, id := range ids {
		table.Insert(record(id, 0x05))
	}
	// size equals the number of distinct arbitration ids
	assert.Equal(t, 3, table.Len())
	assert.True(t, table.Contains(0x701))
	assert.True(t, table.Contains(0x181))
	assert.True(t, table.Contains(0x80))
	assert.False(t, table.Contains(0x100))
}

func TestTableInsertLastWriteWins(t *testing.T) {
	table := NewTable(nil)
	table.Insert(record(0x701, 0x05))
	table.Insert(record(0x701, 0x7F))
	messages := table.Window(0, 1)
	assert.Len(t, messages, 1)
	assert.Equal(t, uint8(0x7F), messages[0].Frame.Data[0])
}

func TestTableInsertChains(t *testing.T) {
	table := NewTable(nil)
	table.Insert(record(0x701, 0x05)).Insert(record(0x702, 0x04))
	assert.Equal(t, 2, table.Len())
}

func TestTableWindowOrderingAndClamping(t *testing.T) {
	table := NewTable(nil)
	for _, id := range []uint32{0x701, 0x80, 0x181} {
		table.Insert(record(id, 0x05))
	}
	window := table.Window(0, 3)
	assert.Equal(t, []uint32{0x80, 0x181, 0x701}, []uint32{window[0].ArbID, window[1].ArbID, window[2].ArbID})

	// stop clamps to table size
	assert.Len(t, table.Window(0, 100), 3)
	// start clamps to the clamped stop
	assert.Len(t, table.Window(50, 100), 0)
	assert.Len(t, table.Window(1, 3), 2)
	assert.Len(t, table.Window(-1, 2), 2)
	assert.Len(t, table.Window(2, 1), 0)
}

func TestTableWindowContiguousAscending(t *testing.T) {
	table := NewTable(nil)
	for id := uint32(0x701); id <= 0x710; id++ {
		table.Insert(record(id, 0x05))
	}
	window := table.Window(3, 8)
	assert.Len(t, window, 5)
	for i := 1; i < len(window); i++ {
		assert.Less(t, window[i-1].ArbID, window[i].ArbID)
	}
}

func TestTableFilter(t *testing.T) {
	table := NewTable(nil)
	table.Insert(record(0x701, 0x05)) // heartbeat
	table.Insert(record(0x181))       // pdo
	table.Insert(record(0x80))        // sync
	table.Insert(record(0x7E5))       // unknown

	hb := table.Filter(TypeHeartbeat)
	assert.Equal(t, 1, hb.Len())
	// receiver untouched
	assert.Equal(t, 4, table.Len())

	// supertype filtering groups every non-heartbeat service
	misc := table.Filter(TypeMisc)
	assert.Equal(t, 2, misc.Len())
	assert.True(t, misc.Contains(0x181))
	assert.True(t, misc.Contains(0x80))
}

func TestTableFilterMonotonic(t *testing.T) {
	table := NewTable(nil)
	table.Insert(record(0x701, 0x05))
	table.Insert(record(0x181))
	table.Insert(record(0x80))

	narrow := table.Filter(TypePDO).Window(0, 10)
	wide := table.Filter(TypePDO, TypeSync).Window(0, 10)
	wideIds := make(map[uint32]bool)
	for _, m := range wide {
		wideIds[m.ArbID] = true
	}
	for _, m := range narrow {
		assert.True(t, wideIds[m.ArbID], "filtered subset must stay within the union filter")
	}
}

type fixedDecoder struct {
	text string
	err  error
}

func (d fixedDecoder) Decode(m Message) (string, error) {
	return d.text, d.err
}

func TestTableDecoder(t *testing.T) {
	table := NewTable(fixedDecoder{text: "Operational"})
	table.Insert(record(0x701, 0x05))
	assert.Equal(t, "Operational", table.Window(0, 1)[0].Text)
}

func TestTableDecoderFailureFallsBackToRaw(t *testing.T) {
	table := NewTable(fixedDecoder{err: errors.New("boom")})
	table.Insert(record(0x701, 0x05, 0x7F))
	assert.Equal(t, "05 7F", table.Window(0, 1)[0].Text)
}

func TestTableFilterSharesDecoder(t *testing.T) {
	table := NewTable(fixedDecoder{text: "decoded"})
	table.Insert(record(0x701, 0x05))
	filtered := table.Filter(TypeHeartbeat)
	filtered.Insert(record(0x702, 0x05))
	assert.Equal(t, "decoded", filtered.Window(0, 2)[1].Text)
}
