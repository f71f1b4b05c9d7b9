package stealthaddr

import (
	"bytes"
	"errors"
	"fmt"
	"io"
)

// Wire-format version bytes (§6).
const (
	publishedVersion = 0x28
	exportVersion    = 0x2b
)

// publishedFloor is the minimum length, in bytes, of a fully-decoded
// (checksum-stripped-and-verified... no, checksum-still-attached) published
// address blob: 1 version + 1 options + 33 scan key + 1 spend-count + 33
// spend key + 1 sig-count + 1 prefix-length + 4 checksum.
const publishedFloor = 1 + 1 + PointSize + 1 + PointSize + 1 + 1 + ChecksumLength

// exportFloor is the minimum length, in bytes, of a fully-decoded secret
// export blob: 1 version + 33 scan pubkey + 32 scan secret + 33 spend
// pubkey + 32 spend secret + 4 checksum. The original ShadowCoin source
// checks for 2+33+32+33+32 (132, and even then against the wrong layout,
// which starts with a single version byte, not two); the correct floor for
// this layout is 135.
const exportFloor = 1 + PointSize + ScalarSize + PointSize + ScalarSize + ChecksumLength

// Decode error sentinels (§7 taxonomy: decoding vs. format errors).
var (
	ErrTruncated             = errors.New("stealthaddr: record truncated")
	ErrVersion               = errors.New("stealthaddr: unrecognized version byte")
	ErrFormat                = errors.New("stealthaddr: malformed point encoding")
	ErrUnsupportedSpendCount = errors.New("stealthaddr: only a single spend key is supported")
	ErrUnsupportedPrefix     = errors.New("stealthaddr: prefix filtering is not supported")
	ErrMissingSecret         = errors.New("stealthaddr: address has no secret halves to export")
)

// EncodePublished serializes the published half of a to the Base58Check
// address format (§4.E.1).
func (a *StealthAddress) EncodePublished() string {
	body := make([]byte, 0, publishedFloor-ChecksumLength)
	body = append(body, publishedVersion)
	body = append(body, a.Options)
	body = append(body, a.ScanPubkey[:]...)
	body = append(body, 1) // n_spend: exactly one spend key is supported
	body = append(body, a.SpendPubkey[:]...)
	body = append(body, 0) // n_sigs: reserved, single-signature profile
	body = append(body, 0) // prefix_length: reserved, no prefix filter
	return b58cEncode(body)
}

// DecodePublished parses a Base58Check published address string.
func DecodePublished(s string) (*StealthAddress, error) {
	raw, err := rawBase58(s)
	if err != nil {
		return nil, err
	}
	if len(raw) < publishedFloor {
		return nil, ErrTruncated
	}
	body, err := verifyAndStripChecksum(raw)
	if err != nil {
		return nil, err
	}

	buf := bytes.NewBuffer(body)

	version, err := buf.ReadByte()
	if err != nil {
		return nil, ErrTruncated
	}
	if version != publishedVersion {
		return nil, ErrVersion
	}

	a := &StealthAddress{}
	if a.Options, err = buf.ReadByte(); err != nil {
		return nil, ErrTruncated
	}
	if _, err = io.ReadFull(buf, a.ScanPubkey[:]); err != nil {
		return nil, ErrTruncated
	}
	nSpend, err := buf.ReadByte()
	if err != nil {
		return nil, ErrTruncated
	}
	if nSpend != 1 {
		return nil, ErrUnsupportedSpendCount
	}
	if _, err = io.ReadFull(buf, a.SpendPubkey[:]); err != nil {
		return nil, ErrTruncated
	}
	if _, err = buf.ReadByte(); err != nil { // n_sigs, reserved
		return nil, ErrTruncated
	}
	prefixLen, err := buf.ReadByte()
	if err != nil {
		return nil, ErrTruncated
	}
	if prefixLen != 0 {
		return nil, ErrUnsupportedPrefix
	}

	if _, err := DecodeCompressed(a.ScanPubkey); err != nil {
		return nil, fmt.Errorf("%w: scan pubkey: %v", ErrFormat, err)
	}
	if _, err := DecodeCompressed(a.SpendPubkey); err != nil {
		return nil, fmt.Errorf("%w: spend pubkey: %v", ErrFormat, err)
	}

	return a, nil
}

// IsStealthAddress is a cheap prefilter: it checks Base58 validity, checksum
// validity, length, and the version byte, without fully validating the
// point encodings (§4.E.3).
func IsStealthAddress(s string) bool {
	raw, err := rawBase58(s)
	if err != nil {
		return false
	}
	if len(raw) < publishedFloor {
		return false
	}
	body, err := verifyAndStripChecksum(raw)
	if err != nil {
		return false
	}
	return body[0] == publishedVersion
}

// ExportSecret serializes the full keypair (public and private halves) to
// the Base58Check secret export format (§4.E.2). It fails if a has no
// secret halves to export.
func (a *StealthAddress) ExportSecret() (string, error) {
	if a.ScanSecret == nil || a.SpendSecret == nil {
		return "", ErrMissingSecret
	}
	body := make([]byte, 0, exportFloor-ChecksumLength)
	body = append(body, exportVersion)
	body = append(body, a.ScanPubkey[:]...)
	body = append(body, a.ScanSecret[:]...)
	body = append(body, a.SpendPubkey[:]...)
	body = append(body, a.SpendSecret[:]...)
	return b58cEncode(body), nil
}

// ImportSecret parses a Base58Check secret export string, reconstructing
// both halves of the keypair. Options is always initialized to 0, since it
// is not part of the export format.
func ImportSecret(s string) (*StealthAddress, error) {
	raw, err := rawBase58(s)
	if err != nil {
		return nil, err
	}
	if len(raw) < exportFloor {
		return nil, ErrTruncated
	}
	body, err := verifyAndStripChecksum(raw)
	if err != nil {
		return nil, err
	}

	buf := bytes.NewBuffer(body)

	version, err := buf.ReadByte()
	if err != nil {
		return nil, ErrTruncated
	}
	if version != exportVersion {
		return nil, ErrVersion
	}

	a := &StealthAddress{Options: 0}
	if _, err = io.ReadFull(buf, a.ScanPubkey[:]); err != nil {
		return nil, ErrTruncated
	}
	var d Scalar
	if _, err = io.ReadFull(buf, d[:]); err != nil {
		return nil, ErrTruncated
	}
	a.ScanSecret = &d
	if _, err = io.ReadFull(buf, a.SpendPubkey[:]); err != nil {
		return nil, ErrTruncated
	}
	var f Scalar
	if _, err = io.ReadFull(buf, f[:]); err != nil {
		return nil, ErrTruncated
	}
	a.SpendSecret = &f

	if _, err := DecodeCompressed(a.ScanPubkey); err != nil {
		return nil, fmt.Errorf("%w: scan pubkey: %v", ErrFormat, err)
	}
	if _, err := DecodeCompressed(a.SpendPubkey); err != nil {
		return nil, fmt.Errorf("%w: spend pubkey: %v", ErrFormat, err)
	}

	return a, nil
}

func rawBase58(s string) ([]byte, error) {
	raw, err := base58decode(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadBase58, err)
	}
	return raw, nil
}
