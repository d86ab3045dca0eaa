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
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Charset names reported by Detect.
const (
	UTF8     = "UTF-8"
	UTF16LE  = "UTF-16LE"
	UTF16BE  = "UTF-16BE"
	ShiftJIS = "Shift_JIS"
	EUCJP    = "EUC-JP"
	ISO2022  = "ISO-2022-JP"
	Latin1   = "windows-1252"
)

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
)

const peekSize = 4096

var known = map[string]string{
	"UTF-8":        UTF8,
	"Shift_JIS":    ShiftJIS,
	"EUC-JP":       EUCJP,
	"ISO-2022-JP":  ISO2022,
	"ISO-8859-1":   Latin1,
	"windows-1252": Latin1,
}

// Detect guesses the charset of a file from its leading bytes.
//
// Order: byte-order mark, valid UTF-8, chardet heuristics, then Shift_JIS, which is what
// spreadsheet software on Japanese systems writes by default.
func Detect(buf []byte) string {
	switch {
	case bytes.HasPrefix(buf, bomUTF8):
		return UTF8
	case bytes.HasPrefix(buf, bomUTF16LE):
		return UTF16LE
	case bytes.HasPrefix(buf, bomUTF16BE):
		return UTF16BE
	}

	if utf8.Valid(trimPartialRune(buf)) {
		return UTF8
	}

	// Candidates come back best first. Chinese and Korean guesses are skipped; a Latin
	// guess only counts when nothing ranked above it.
	results, err := chardet.NewTextDetector().DetectAll(buf)
	if err == nil {
		for i, r := range results {
			charset, ok := known[r.Charset]
			if !ok || (charset == Latin1 && i > 0) {
				continue
			}

			return charset
		}
	}

	return ShiftJIS
}

// NewUTF8Reader detects the encoding of the input and returns a reader that yields UTF-8.
// A UTF-8 byte-order mark is stripped.
func NewUTF8Reader(r io.Reader) (io.Reader, string, error) {
	br := bufio.NewReaderSize(r, peekSize)

	buf, err := br.Peek(peekSize)
	if err != nil && err != io.EOF && err != bufio.ErrBufferFull {
		return nil, "", fmt.Errorf("peek: %w", err)
	}

	charset := Detect(buf)

	if charset == UTF8 {
		if bytes.HasPrefix(buf, bomUTF8) {
			_, _ = br.Discard(len(bomUTF8))
		}

		return br, charset, nil
	}

	return transform.NewReader(br, decoder(charset).NewDecoder()), charset, nil
}

func decoder(charset string) encoding.Encoding {
	switch charset {
	case UTF16LE:
		return unicode.UTF16(unicode.LittleEndian, unicode.UseBOM)
	case UTF16BE:
		return unicode.UTF16(unicode.BigEndian, unicode.UseBOM)
	case EUCJP:
		return japanese.EUCJP
	case ISO2022:
		return japanese.ISO2022JP
	case Latin1:
		return charmap.Windows1252
	default:
		return japanese.ShiftJIS
	}
}

// trimPartialRune drops an incomplete multi-byte sequence cut off by the peek window.
func trimPartialRune(buf []byte) []byte {
	for i := 1; i < utf8.UTFMax && i <= len(buf); i++ {
		if utf8.RuneStart(buf[len(buf)-i]) {
			if !utf8.FullRune(buf[len(buf)-i:]) {
				return buf[:len(buf)-i]
			}

			break
		}
	}

	return buf
}
