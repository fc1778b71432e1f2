// Package wire defines the binary characteristic formats for Ensto BLE
// thermostats.
//
// Every characteristic has a fixed byte layout documented on its codec
// functions. Multi-byte integers are little-endian. Temperatures are
// signed fixed-point values scaled by 10 or 100 depending on the field;
// Decode divides, Encode rounds half away from zero before the integer
// conversion.
//
// # Sentinels
//
// The device reports "no data" with reserved bit patterns rather than a
// separate presence flag:
//   - 0xFF for single-byte on/off ratios
//   - 0x7FFF for signed 16-bit temperatures
//
// Decoders map these to nil pointer fields, never to a numeric value.
//
// # Validation
//
// Encode functions validate every field against its documented range and
// return *OutOfRangeError before any bytes are produced. Decode functions
// return *DecodeError for buffers shorter than the minimum valid length
// or with a structurally invalid shape.
//
// # Split transfer
//
// Large characteristics (calendar days, monitoring data, power consumption
// history) travel in the split frame format handled by package transport.
// The codecs here operate on the fully reassembled payload with trailing
// zero padding already stripped, and tolerate payloads shortened by that
// stripping where the device itself pads with zeros.
package wire
