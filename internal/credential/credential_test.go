package credential

import (
	"encoding/base64"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeProducesPNG(t *testing.T) {
	encoded, err := Encode(1, "Alice", "a@x.com")
	require.NoError(t, err)

	raw, err := base64.StdEncoding.DecodeString(encoded)
	require.NoError(t, err)
	require.Greater(t, len(raw), 8)
	assert.Equal(t, []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}, raw[:8])
}

func TestEncodeDeterministic(t *testing.T) {
	a, err := Encode(7, "Bob", "b@x.com")
	require.NoError(t, err)
	b, err := Encode(7, "Bob", "b@x.com")
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestDecodePayload(t *testing.T) {
	payload, err := json.Marshal(Credential{ID: 3, Name: "Alice", Email: "a@x.com"})
	require.NoError(t, err)

	c, err := Decode(string(payload))
	require.NoError(t, err)
	assert.Equal(t, Credential{ID: 3, Name: "Alice", Email: "a@x.com"}, c)
}

func TestDecodeMalformed(t *testing.T) {
	cases := map[string]string{
		"not json":    "scan me",
		"empty":       "",
		"missing id":  `{"name":"Alice","email":"a@x.com"}`,
		"zero id":     `{"id":0,"name":"Alice","email":"a@x.com"}`,
		"negative id": `{"id":-4,"name":"Alice","email":"a@x.com"}`,
	}
	for name, text := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Decode(text)
			assert.ErrorIs(t, err, ErrMalformed)
		})
	}
}
