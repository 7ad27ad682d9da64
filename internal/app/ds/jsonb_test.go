package ds

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStringListValueAndScan(t *testing.T) {
	list := StringList{"ipad", "apple_pencil"}

	v, err := list.Value()
	require.NoError(t, err)
	assert.JSONEq(t, `["ipad","apple_pencil"]`, v.(string))

	var decoded StringList
	require.NoError(t, decoded.Scan(v))
	assert.Equal(t, list, decoded)
}

func TestStringListNil(t *testing.T) {
	var list StringList
	v, err := list.Value()
	require.NoError(t, err)
	assert.Equal(t, "[]", v)

	var decoded StringList
	require.NoError(t, decoded.Scan(nil))
	assert.Nil(t, decoded)
}

func TestStringMapValueAndScan(t *testing.T) {
	m := StringMap{"ipad": "SN123", "macbook": "SN456"}

	v, err := m.Value()
	require.NoError(t, err)

	var decoded StringMap
	require.NoError(t, decoded.Scan([]byte(v.(string))))
	assert.Equal(t, m, decoded)
}

func TestStringMapNilAndUnsupported(t *testing.T) {
	var m StringMap
	v, err := m.Value()
	require.NoError(t, err)
	assert.Equal(t, "{}", v)

	var decoded StringMap
	require.NoError(t, decoded.Scan(nil))
	assert.Nil(t, decoded)

	assert.Error(t, decoded.Scan(42))
}
