// Package encoding normalizes uploaded text files to UTF-8. Accounting tools
// still export CSV in legacy Windows code pages, so the charset is sniffed
// before parsing.
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

// Charset names the encoding an input was decoded from.
type Charset string

const (
	UTF8        Charset = "UTF-8"
	UTF16LE     Charset = "UTF-16LE"
	UTF16BE     Charset = "UTF-16BE"
	Windows1252 Charset = "windows-1252"
	ISO88599    Charset = "ISO-8859-9"
	ISO885915   Charset = "ISO-8859-15"
)

const sniffSize = 4096

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
)

// chardet result names mapped to decoders. Unlisted results fall back to
// Windows-1252, the default of US accounting exports.
var legacy = map[string]struct {
	charset Charset
	enc     encoding.Encoding
}{
	"ISO-8859-1":   {Windows1252, charmap.Windows1252},
	"windows-1252": {Windows1252, charmap.Windows1252},
	"ISO-8859-9":   {ISO88599, charmap.ISO8859_9},
	"ISO-8859-15":  {ISO885915, charmap.ISO8859_15},
}

// NewUTF8Reader returns a reader yielding r's content as UTF-8 and the
// charset it was decoded from.
//
// A BOM wins first (the UTF-8 BOM is stripped). Valid UTF-8 passes through
// untouched. Anything else goes through chardet, then Windows-1252.
func NewUTF8Reader(r io.Reader) (io.Reader, Charset, error) {
	br := bufio.NewReaderSize(r, sniffSize)

	buf, err := br.Peek(sniffSize)
	if err != nil && err != io.EOF && err != bufio.ErrBufferFull {
		return nil, "", fmt.Errorf("peek: %w", err)
	}

	switch {
	case bytes.HasPrefix(buf, bomUTF8):
		_, _ = br.Discard(len(bomUTF8))
		return br, UTF8, nil
	case bytes.HasPrefix(buf, bomUTF16LE):
		decoder := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewDecoder()
		return transform.NewReader(br, decoder), UTF16LE, nil
	case bytes.HasPrefix(buf, bomUTF16BE):
		decoder := unicode.UTF16(unicode.BigEndian, unicode.UseBOM).NewDecoder()
		return transform.NewReader(br, decoder), UTF16BE, nil
	}

	if validUTF8(buf) {
		return br, UTF8, nil
	}

	result, err := chardet.NewTextDetector().DetectBest(buf)
	if err == nil {
		if result.Charset == string(UTF8) {
			return br, UTF8, nil
		}

		if l, ok := legacy[result.Charset]; ok {
			return transform.NewReader(br, l.enc.NewDecoder()), l.charset, nil
		}
	}

	return transform.NewReader(br, charmap.Windows1252.NewDecoder()), Windows1252, nil
}

// validUTF8 tolerates a multi-byte rune cut off at the end of the sniff window.
func validUTF8(buf []byte) bool {
	if utf8.Valid(buf) {
		return true
	}

	for i := 1; i < utf8.UTFMax && i <= len(buf); i++ {
		if utf8.Valid(buf[:len(buf)-i]) && !utf8.FullRune(buf[len(buf)-i:]) {
			return true
		}
	}

	return false
}
