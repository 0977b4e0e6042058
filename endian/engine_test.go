package endian

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCheckEndianness(t *testing.T) {
	order := CheckEndianness()
	require.NotNil(t, order)
	require.Equal(t, order == binary.LittleEndian, IsNativeLittleEndian())
	require.Equal(t, order == binary.BigEndian, IsNativeBigEndian())
	require.NotEqual(t, IsNativeLittleEndian(), IsNativeBigEndian())
}

func TestGetNativeEngine_MatchesHost(t *testing.T) {
	engine := GetNativeEngine()
	require.Equal(t, CheckEndianness(), binary.ByteOrder(engine))
}

func TestEngines_RoundTrip(t *testing.T) {
	const word = uint64(0x0102030405060708)

	for _, engine := range []EndianEngine{
		GetNativeEngine(),
		GetLittleEndianEngine(),
		GetBigEndianEngine(),
	} {
		buf := engine.AppendUint64(nil, word)
		require.Len(t, buf, 8)
		require.Equal(t, word, engine.Uint64(buf))
	}
}

func TestEngines_ByteOrderDiffers(t *testing.T) {
	const word = uint64(0x0102030405060708)

	little := GetLittleEndianEngine().AppendUint64(nil, word)
	big := GetBigEndianEngine().AppendUint64(nil, word)

	require.Equal(t, []byte{8, 7, 6, 5, 4, 3, 2, 1}, little)
	require.Equal(t, []byte{1, 2, 3, 4, 5, 6, 7, 8}, big)
}
