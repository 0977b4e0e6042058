// Package endian provides byte order utilities for the simple8b word
// stream.
//
// The codec itself hands 64-bit words to its sink and reads them back in
// machine-native byte order; this package supplies that native-order
// engine, plus explicit little- and big-endian engines for callers who
// persist packed buffers across machines and need a fixed order.
//
// EndianEngine combines ByteOrder and AppendByteOrder from
// encoding/binary into one interface, so a single value serves both
// in-place reads and appending writes:
//
//	engine := endian.GetNativeEngine()
//	buf = engine.AppendUint64(buf, word) // write one code word
//	word = engine.Uint64(buf[i*8:])      // read one back
//
// All engines are immutable and safe for concurrent use.
package endian

import (
	"encoding/binary"
	"unsafe"
)

// EndianEngine combines ByteOrder and AppendByteOrder interfaces from
// encoding/binary into a single interface for convenient byte order
// operations.
//
// It is satisfied by binary.LittleEndian and binary.BigEndian, so every
// engine returned here interoperates with standard library code.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// CheckEndianness uses a fixed integer value to determine the host's byte order.
func CheckEndianness() binary.ByteOrder {
	// 0x0100 is 256. For a little-endian system, the LSB (0x00) is first.
	// For a big-endian system, the MSB (0x01) is first.
	var i uint16 = 0x0100

	// Inspect the byte at the lowest memory address.
	b := (*[2]byte)(unsafe.Pointer(&i))
	if b[0] == 0x01 {
		return binary.BigEndian
	}

	return binary.LittleEndian
}

// IsNativeLittleEndian reports whether the host is little-endian.
func IsNativeLittleEndian() bool {
	return CheckEndianness() == binary.LittleEndian
}

// IsNativeBigEndian reports whether the host is big-endian.
func IsNativeBigEndian() bool {
	return CheckEndianness() == binary.BigEndian
}

// GetNativeEngine returns the engine matching the host's byte order.
//
// This is the order the codec uses for code words: a decoder with the
// native engine reads exactly what a builder's sink wrote on the same
// machine. Buffers that travel between machines of different byte order
// are the caller's concern; pick a fixed engine for those.
func GetNativeEngine() EndianEngine {
	if IsNativeBigEndian() {
		return binary.BigEndian
	}

	return binary.LittleEndian
}

// GetLittleEndianEngine returns the little-endian engine.
func GetLittleEndianEngine() EndianEngine {
	return binary.LittleEndian
}

// GetBigEndianEngine returns the big-endian engine.
func GetBigEndianEngine() EndianEngine {
	return binary.BigEndian
}
