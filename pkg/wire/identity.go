package wire

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"unicode/utf8"
)

// deviceNameLen is the full device name record: one reserved byte the
// firmware owns followed by up to 59 bytes of UTF-8.
const deviceNameLen = 60

// DecodeDeviceName decodes the user-visible device name. The first byte
// is firmware-owned and skipped; the rest is zero-padded UTF-8. An
// unnamed device decodes to the empty string.
func DecodeDeviceName(data []byte) (string, error) {
	if len(data) < 1 {
		return "", decodeErrShort("device name", 1, len(data))
	}
	name := data[1:]
	if i := bytes.IndexByte(name, 0); i >= 0 {
		name = name[:i]
	}
	return string(name), nil
}

// PatchDeviceName builds the 60-byte record to write a new name,
// carrying over the firmware-owned first byte from the current record.
func PatchDeviceName(current []byte, name string) ([]byte, error) {
	if len(current) < 1 {
		return nil, decodeErrShort("device name", 1, len(current))
	}
	if !utf8.ValidString(name) {
		return nil, fmt.Errorf("device name is not valid UTF-8")
	}
	if len(name) > deviceNameLen-1 {
		return nil, rangeErr("device name", len(name), "at most 59 bytes")
	}

	data := make([]byte, deviceNameLen)
	data[0] = current[0]
	copy(data[1:], name)
	return data, nil
}

// DecodeModelNumber decodes the model number string, for example
// "ECO16BT".
func DecodeModelNumber(data []byte) (string, error) {
	return decodeString("model number", data)
}

// DecodeManufacturerName decodes the manufacturer name string.
func DecodeManufacturerName(data []byte) (string, error) {
	return decodeString("manufacturer name", data)
}

// DecodeSoftwareRevision decodes the software revision string. The
// format is "app;ble;bootloader"; see model.ParseVersion for the
// application version within it.
func DecodeSoftwareRevision(data []byte) (string, error) {
	return decodeString("software revision", data)
}

func decodeString(format string, data []byte) (string, error) {
	if i := bytes.IndexByte(data, 0); i >= 0 {
		data = data[:i]
	}
	if !utf8.Valid(data) {
		return "", &DecodeError{Format: format, Message: "payload is not valid UTF-8"}
	}
	return string(data), nil
}

// DecodeHardwareRevision decodes the hardware revision number from its
// 4-byte payload.
func DecodeHardwareRevision(data []byte) (uint32, error) {
	if len(data) < 4 {
		return 0, decodeErrShort("hardware revision", 4, len(data))
	}
	return binary.LittleEndian.Uint32(data[0:4]), nil
}

// ManufacturingDate is the production date characteristic.
type ManufacturingDate struct {
	Day   uint8
	Month uint8
	Year  uint16
}

// String formats the date as YYYY-MM-DD.
func (d ManufacturingDate) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

// DecodeManufacturingDate decodes the 4-byte manufacturing date
// payload.
//
// Layout: [0] day, [1] month, [2:4] year uint16.
func DecodeManufacturingDate(data []byte) (*ManufacturingDate, error) {
	if len(data) < 4 {
		return nil, decodeErrShort("manufacturing date", 4, len(data))
	}
	return &ManufacturingDate{
		Day:   data[0],
		Month: data[1],
		Year:  binary.LittleEndian.Uint16(data[2:4]),
	}, nil
}

// DecodeFactoryResetID decodes the pairing credential from its 4-byte
// payload. Outside the pairing window the device reports zero.
func DecodeFactoryResetID(data []byte) (uint32, error) {
	if len(data) < 4 {
		return 0, decodeErrShort("factory reset id", 4, len(data))
	}
	return binary.LittleEndian.Uint32(data[0:4]), nil
}

// EncodeFactoryResetID encodes the pairing credential for the
// authentication write.
func EncodeFactoryResetID(id uint32) []byte {
	data := make([]byte, 4)
	binary.LittleEndian.PutUint32(data, id)
	return data
}
