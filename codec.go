package stealthaddr

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/mr-tron/base58"
)

// ChecksumLength is the length in bytes of the Base58Check checksum suffix.
const ChecksumLength = 4

var (
	ErrBadBase58    = errors.New("stealthaddr: invalid base58 encoding")
	ErrChecksum     = errors.New("stealthaddr: checksum mismatch")
	ErrShortPayload = errors.New("stealthaddr: payload shorter than checksum")
)

// appendChecksum returns body with the first 4 bytes of its double-SHA256
// appended, in their natural byte order.
func appendChecksum(body []byte) []byte {
	sum := DoubleSha256(body)
	out := make([]byte, 0, len(body)+ChecksumLength)
	out = append(out, body...)
	out = append(out, sum[:ChecksumLength]...)
	return out
}

// verifyAndStripChecksum validates blob's trailing checksum and returns the
// body with the checksum removed.
func verifyAndStripChecksum(blob []byte) ([]byte, error) {
	if len(blob) < ChecksumLength {
		return nil, ErrShortPayload
	}
	body := blob[:len(blob)-ChecksumLength]
	want := blob[len(blob)-ChecksumLength:]
	got := DoubleSha256(body)
	if !bytes.Equal(got[:ChecksumLength], want) {
		return nil, ErrChecksum
	}
	return body, nil
}

// b58cEncode Base58-encodes body with a 4-byte double-SHA256 checksum.
func b58cEncode(body []byte) string {
	return base58.Encode(appendChecksum(body))
}

// base58decode is a thin wrapper over the mr-tron/base58 decoder, used by
// callers that need the raw decoded bytes before checksum handling (e.g. to
// apply a length floor ahead of verifyAndStripChecksum).
func base58decode(s string) ([]byte, error) {
	return base58.Decode(s)
}

// b58cDecode Base58-decodes s and verifies/strips its checksum in one step.
func b58cDecode(s string) ([]byte, error) {
	raw, err := base58decode(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadBase58, err)
	}
	return verifyAndStripChecksum(raw)
}
