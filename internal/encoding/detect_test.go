package encoding_test

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"

	enc "github.com/mfreitas/contas/internal/encoding"
)

func readAll(t *testing.T, input []byte) string {
	t.Helper()

	r, err := enc.NewUTF8Reader(bytes.NewReader(input))
	require.NoError(t, err)

	out, err := io.ReadAll(r)
	require.NoError(t, err)

	return string(out)
}

func TestNewUTF8Reader_PlainUTF8(t *testing.T) {
	assert.Equal(t, "data,título,café", readAll(t, []byte("data,título,café")))
}

func TestNewUTF8Reader_StripsUTF8BOM(t *testing.T) {
	input := append([]byte{0xEF, 0xBB, 0xBF}, []byte("data,valor")...)
	assert.Equal(t, "data,valor", readAll(t, input))
}

func TestNewUTF8Reader_UTF16LE(t *testing.T) {
	e := unicode.UTF16(unicode.LittleEndian, unicode.ExpectBOM).NewEncoder()

	input, err := e.Bytes([]byte("Farmácia São João"))
	require.NoError(t, err)

	assert.Equal(t, "Farmácia São João", readAll(t, input))
}

func TestNewUTF8Reader_Windows1252(t *testing.T) {
	input, err := charmap.Windows1252.NewEncoder().Bytes([]byte("Cartão de crédito"))
	require.NoError(t, err)

	assert.Equal(t, "Cartão de crédito", readAll(t, input))
}

func TestNewUTF8Reader_Empty(t *testing.T) {
	assert.Equal(t, "", readAll(t, nil))
}
