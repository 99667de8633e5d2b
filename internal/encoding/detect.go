// Package encoding normalizes bank export files to UTF-8. Card statement
// CSVs arrive in whatever encoding the bank's backoffice produces, most
// often UTF-8 or Windows-1252 with the occasional UTF-16 spreadsheet
// export.
package encoding

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/saintfish/chardet"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

const peekSize = 4096

var bomUTF8 = []byte{0xEF, 0xBB, 0xBF}

// NewUTF8Reader wraps r in a reader that yields UTF-8.
//
// Detection order: BOM, valid-UTF-8 check, chardet heuristics, and
// finally a Windows-1252 fallback (the safe bet for Latin bank exports:
// every byte decodes to something).
func NewUTF8Reader(r io.Reader) (io.Reader, error) {
	br := bufio.NewReader(r)

	buf, err := br.Peek(peekSize)
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("peek: %w", err)
	}

	if bytes.HasPrefix(buf, bomUTF8) {
		_, _ = br.Discard(len(bomUTF8))
		return br, nil
	}

	// UTF-16 BOMs: FF FE little endian, FE FF big endian.
	if len(buf) >= 2 && buf[0] == 0xFF && buf[1] == 0xFE {
		return decode(br, unicode.UTF16(unicode.LittleEndian, unicode.UseBOM)), nil
	}

	if len(buf) >= 2 && buf[0] == 0xFE && buf[1] == 0xFF {
		return decode(br, unicode.UTF16(unicode.BigEndian, unicode.UseBOM)), nil
	}

	if utf8.Valid(buf) {
		return br, nil
	}

	if result, err := chardet.NewTextDetector().DetectBest(buf); err == nil {
		if enc := encodingFor(result.Charset); enc != nil {
			return decode(br, enc), nil
		}
	}

	return decode(br, charmap.Windows1252), nil
}

// encodingFor maps a chardet charset name to a decoder, or nil when the
// content should pass through (or fall back) instead.
func encodingFor(charset string) encoding.Encoding {
	switch charset {
	case "ISO-8859-1", "windows-1252":
		return charmap.Windows1252
	case "ISO-8859-15":
		return charmap.ISO8859_15
	default:
		return nil
	}
}

func decode(r io.Reader, enc encoding.Encoding) io.Reader {
	return transform.NewReader(r, enc.NewDecoder())
}
