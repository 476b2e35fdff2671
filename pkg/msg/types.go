package msg

import (
	can "github.com/samsamfire/canmon/pkg/can"
)

// A Type tags a CAN frame with the CANopen service it belongs to,
// derived from the function code part of the 11-bit COB-ID (CiA 301).
type Type uint8

const (
	TypeUnknown Type = iota
	TypeHeartbeat
	TypeNMT
	TypeSync
	TypeTime
	TypeEmcy
	TypeSDO
	TypePDO
	// TypeMisc is a supertype only : it groups every non-heartbeat
	// service for pane-level filtering and never tags a message directly.
	TypeMisc
)

var typeNameMap = map[Type]string{
	TypeUnknown:   "UNKNOWN",
	TypeHeartbeat: "HB",
	TypeNMT:       "NMT",
	TypeSync:      "SYNC",
	TypeTime:      "TIME",
	TypeEmcy:      "EMCY",
	TypeSDO:       "SDO",
	TypePDO:       "PDO",
	TypeMisc:      "MISC",
}

func (t Type) String() string {
	name, ok := typeNameMap[t]
	if !ok {
		return "UNKNOWN"
	}
	return name
}

// CANopen function code bases (CiA 301)
const (
	FuncNMT       uint32 = 0x000
	FuncSync      uint32 = 0x080
	FuncEmcy      uint32 = 0x081 // 0x080 + node id, node id > 0
	FuncTime      uint32 = 0x100
	FuncPDOStart  uint32 = 0x181 // TPDO1 through RPDO4
	FuncPDOEnd    uint32 = 0x57F
	FuncSDOTx     uint32 = 0x580
	FuncSDORx     uint32 = 0x600
	FuncSDOEnd    uint32 = 0x67F
	FuncHeartbeat uint32 = 0x700
	FuncHBEnd     uint32 = 0x77F
)

const nodeIdMask uint32 = 0x7F

// Classify maps an 11-bit arbitration id onto its CANopen service type
// and the node id it addresses. Fixed broadcast ids (NMT, SYNC, TIME)
// report node 0 ; NMT commands carry the target node in the payload.
// Classification is a pure function of id and payload : the same frame
// always classifies identically.
func Classify(frame can.Frame) (Type, uint8) {
	id := frame.ID & can.CanSffMask
	switch {
	case id == FuncNMT:
		if frame.DLC >= 2 {
			return TypeNMT, frame.Data[1]
		}
		return TypeNMT, 0
	case id == FuncSync:
		return TypeSync, 0
	case id >= FuncEmcy && id < FuncTime:
		return TypeEmcy, uint8(id & nodeIdMask)
	case id == FuncTime:
		return TypeTime, 0
	case id >= FuncPDOStart && id <= FuncPDOEnd:
		return TypePDO, uint8(id & nodeIdMask)
	case id >= FuncSDOTx && id <= FuncSDOEnd:
		return TypeSDO, uint8(id & nodeIdMask)
	case id >= FuncHeartbeat && id <= FuncHBEnd:
		return TypeHeartbeat, uint8(id & nodeIdMask)
	default:
		return TypeUnknown, 0
	}
}

// Supertype returns the coarse pane-filtering group of a service type.
func Supertype(t Type) Type {
	switch t {
	case TypeHeartbeat:
		return TypeHeartbeat
	case TypeNMT, TypeSync, TypeTime, TypeEmcy, TypeSDO, TypePDO:
		return TypeMisc
	default:
		return TypeUnknown
	}
}
