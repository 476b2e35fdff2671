package parse

import (
	"encoding/binary"
	"fmt"

	"github.com/samsamfire/canmon/pkg/msg"
)

// Emergency error codes (CiA 301 / CiA 401)
const (
	emcyNoError          uint16 = 0x0000
	emcyGeneric          uint16 = 0x1000
	emcyCurrent          uint16 = 0x2000
	emcyCurrentInput     uint16 = 0x2100
	emcyCurrentInside    uint16 = 0x2200
	emcyCurrentOutput    uint16 = 0x2300
	emcyVoltage          uint16 = 0x3000
	emcyVoltageMains     uint16 = 0x3100
	emcyVoltageInside    uint16 = 0x3200
	emcyVoltageOutput    uint16 = 0x3300
	emcyTemperature      uint16 = 0x4000
	emcyTempAmbient      uint16 = 0x4100
	emcyTempDevice       uint16 = 0x4200
	emcyHardware         uint16 = 0x5000
	emcySoftwareDevice   uint16 = 0x6000
	emcySoftwareInternal uint16 = 0x6100
	emcySoftwareUser     uint16 = 0x6200
	emcyDataSet          uint16 = 0x6300
	emcyAdditionalModule uint16 = 0x7000
	emcyMonitoring       uint16 = 0x8000
	emcyCommunication    uint16 = 0x8100
	emcyCanOverrun       uint16 = 0x8110
	emcyCanPassive       uint16 = 0x8120
	emcyHeartbeat        uint16 = 0x8130
	emcyBusOffRecovered  uint16 = 0x8140
	emcyCanIdCollision   uint16 = 0x8150
	emcyProtocolError    uint16 = 0x8200
	emcyPdoLength        uint16 = 0x8210
	emcyPdoLengthExc     uint16 = 0x8220
	emcySyncDataLength   uint16 = 0x8240
	emcyRpdoTimeout      uint16 = 0x8250
	emcyExternalError    uint16 = 0x9000
	emcyAdditionalFunc   uint16 = 0xF000
	emcyDeviceSpecific   uint16 = 0xFF00
)

var emergencyCodeMap = map[uint16]string{
	emcyNoError:          "Reset or No Error",
	emcyGeneric:          "Generic Error",
	emcyCurrent:          "Current",
	emcyCurrentInput:     "Current, device input side",
	emcyCurrentInside:    "Current inside the device",
	emcyCurrentOutput:    "Current, device output side",
	emcyVoltage:          "Voltage",
	emcyVoltageMains:     "Mains Voltage",
	emcyVoltageInside:    "Voltage inside the device",
	emcyVoltageOutput:    "Output Voltage",
	emcyTemperature:      "Temperature",
	emcyTempAmbient:      "Ambient Temperature",
	emcyTempDevice:       "Device Temperature",
	emcyHardware:         "Device Hardware",
	emcySoftwareDevice:   "Device Software",
	emcySoftwareInternal: "Internal Software",
	emcySoftwareUser:     "User Software",
	emcyDataSet:          "Data Set",
	emcyAdditionalModule: "Additional Modules",
	emcyMonitoring:       "Monitoring",
	emcyCommunication:    "Communication",
	emcyCanOverrun:       "CAN Overrun (Objects lost)",
	emcyCanPassive:       "CAN in Error Passive Mode",
	emcyHeartbeat:        "Life Guard Error or Heartbeat Error",
	emcyBusOffRecovered:  "Recovered from bus off",
	emcyCanIdCollision:   "CAN-ID collision",
	emcyProtocolError:    "Protocol Error",
	emcyPdoLength:        "PDO not processed due to length error",
	emcyPdoLengthExc:     "PDO length exceeded",
	emcySyncDataLength:   "Unexpected SYNC data length",
	emcyRpdoTimeout:      "RPDO timeout",
	emcyExternalError:    "External Error",
	emcyAdditionalFunc:   "Additional Functions",
	emcyDeviceSpecific:   "Device specific",
}

// An emergency payload carries the error code (2 bytes, little endian),
// the error register (1 byte) and 5 manufacturer specific bytes.
func (p *Parser) decodeEmergency(m msg.Message) (string, error) {
	if m.Frame.DLC < 3 {
		return "", fmt.Errorf("%w : emergency frame too short", ErrNotDecodable)
	}
	code := binary.LittleEndian.Uint16(m.Frame.Data[0:2])
	register := m.Frame.Data[2]
	description, ok := emergencyCodeMap[code]
	if !ok {
		// Fall back to the profile base, e.g. 0x21xx -> Current
		description, ok = emergencyCodeMap[code&0xFF00]
		if !ok {
			description = "Unknown error"
		}
	}
	return fmt.Sprintf("%s (0x%04X, reg 0x%02X)", description, code, register), nil
}
