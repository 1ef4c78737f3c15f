package hashid

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCodecRoundTrip(t *testing.T) {
	codec, err := NewCodec("test-salt")
	require.NoError(t, err)

	for _, id := range []uint{1, 42, 100000} {
		encoded, err := codec.Encode(id)
		require.NoError(t, err)
		require.GreaterOrEqual(t, len(encoded), 8)

		decoded, ok := codec.Decode(encoded)
		require.True(t, ok)
		require.Equal(t, id, decoded)
	}
}

func TestCodecStableAcrossInstances(t *testing.T) {
	a, err := NewCodec("same-salt")
	require.NoError(t, err)
	b, err := NewCodec("same-salt")
	require.NoError(t, err)

	encodedA, err := a.Encode(7)
	require.NoError(t, err)
	encodedB, err := b.Encode(7)
	require.NoError(t, err)
	require.Equal(t, encodedA, encodedB)
}

func TestCodecRejectsGarbage(t *testing.T) {
	codec, err := NewCodec("test-salt")
	require.NoError(t, err)

	for _, bad := range []string{"", "!!!", "短", "abc def"} {
		_, ok := codec.Decode(bad)
		require.False(t, ok, "input: %q", bad)
	}
}

func TestNewCodecRequiresSalt(t *testing.T) {
	_, err := NewCodec("")
	require.Error(t, err)
}
