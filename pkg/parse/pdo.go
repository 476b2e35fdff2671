package parse

import (
	"fmt"

	"github.com/samsamfire/canmon/pkg/msg"
)

// PDO COB-ID base ranges (CiA 301 pre-defined connection set)
var pdoRanges = []struct {
	base uint32
	name string
}{
	{0x180, "TPDO1"},
	{0x200, "RPDO1"},
	{0x280, "TPDO2"},
	{0x300, "RPDO2"},
	{0x380, "TPDO3"},
	{0x400, "RPDO3"},
	{0x480, "TPDO4"},
	{0x500, "RPDO4"},
}

// PDO payload layout is application specific (it would take the mapping
// objects of the producing node to decode), so the dashboard shows the
// connection set name with the raw bytes.
func (p *Parser) decodePDO(m msg.Message) (string, error) {
	for _, r := range pdoRanges {
		if m.ArbID > r.base && m.ArbID <= r.base+0x7F {
			return fmt.Sprintf("%s [%s]", r.name, m.Frame.HexData()), nil
		}
	}
	return "", fmt.Errorf("%w : id 0x%03X outside PDO ranges", ErrNotDecodable, m.ArbID)
}
