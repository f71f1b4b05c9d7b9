package stealthaddr

import (
	"errors"
	"testing"

	"github.com/mr-tron/base58"
)

func mustAddress(t *testing.T) *StealthAddress {
	t.Helper()
	a, err := GenerateStealthAddress()
	if err != nil {
		t.Fatalf("GenerateStealthAddress: %v", err)
	}
	return a
}

func TestPublishedRoundTrip(t *testing.T) {
	a := mustAddress(t)
	defer a.Zeroize()

	encoded := a.EncodePublished()
	decoded, err := DecodePublished(encoded)
	if err != nil {
		t.Fatalf("DecodePublished: %v", err)
	}
	if decoded.Options != a.Options {
		t.Fatal("Options mismatch after round trip")
	}
	if decoded.ScanPubkey != a.ScanPubkey {
		t.Fatal("ScanPubkey mismatch after round trip")
	}
	if decoded.SpendPubkey != a.SpendPubkey {
		t.Fatal("SpendPubkey mismatch after round trip")
	}
}

func TestExportImportRoundTrip(t *testing.T) {
	a := mustAddress(t)
	defer a.Zeroize()

	exported, err := a.ExportSecret()
	if err != nil {
		t.Fatalf("ExportSecret: %v", err)
	}
	imported, err := ImportSecret(exported)
	if err != nil {
		t.Fatalf("ImportSecret: %v", err)
	}
	defer imported.Zeroize()

	if imported.Options != 0 {
		t.Fatal("imported Options should always be 0")
	}
	if imported.ScanPubkey != a.ScanPubkey || imported.SpendPubkey != a.SpendPubkey {
		t.Fatal("pubkey mismatch after export/import round trip")
	}
	if *imported.ScanSecret != *a.ScanSecret || *imported.SpendSecret != *a.SpendSecret {
		t.Fatal("secret mismatch after export/import round trip")
	}
}

func TestExportReexportIsStable(t *testing.T) {
	a := mustAddress(t)
	defer a.Zeroize()

	first, err := a.ExportSecret()
	if err != nil {
		t.Fatalf("ExportSecret: %v", err)
	}
	imported, err := ImportSecret(first)
	if err != nil {
		t.Fatalf("ImportSecret: %v", err)
	}
	defer imported.Zeroize()
	second, err := imported.ExportSecret()
	if err != nil {
		t.Fatalf("ExportSecret (second): %v", err)
	}
	if first != second {
		t.Fatalf("export is not stable across a round trip: %q != %q", first, second)
	}
}

func TestExportSecretRequiresBothSecrets(t *testing.T) {
	a := mustAddress(t)
	a.ScanSecret = nil
	if _, err := a.ExportSecret(); err != ErrMissingSecret {
		t.Fatalf("expected ErrMissingSecret, got %v", err)
	}
}

func TestIsStealthAddressAgreesWithDecode(t *testing.T) {
	a := mustAddress(t)
	defer a.Zeroize()

	encoded := a.EncodePublished()
	if !IsStealthAddress(encoded) {
		t.Fatal("IsStealthAddress should accept a freshly encoded address")
	}
	if _, err := DecodePublished(encoded); err != nil {
		t.Fatalf("DecodePublished should succeed on the same string: %v", err)
	}
}

func TestChecksumTamperBreaksDecode(t *testing.T) {
	a := mustAddress(t)
	defer a.Zeroize()

	encoded := a.EncodePublished()
	raw, err := base58.Decode(encoded)
	if err != nil {
		t.Fatalf("base58.Decode: %v", err)
	}
	raw[0] ^= 0x01 // flip a single bit in the version/options region
	tampered := base58.Encode(raw)

	if IsStealthAddress(tampered) {
		t.Fatal("IsStealthAddress accepted a tampered address")
	}
	if _, err := DecodePublished(tampered); err == nil {
		t.Fatal("DecodePublished accepted a tampered address")
	}
}

func TestVersionByteRejected(t *testing.T) {
	body := make([]byte, 0, publishedFloor-ChecksumLength)
	body = append(body, 0x29) // wrong version
	body = append(body, 0x00)
	body = append(body, make([]byte, PointSize)...)
	body = append(body, 1)
	body = append(body, make([]byte, PointSize)...)
	body = append(body, 0, 0)
	encoded := b58cEncode(body)

	if IsStealthAddress(encoded) {
		t.Fatal("IsStealthAddress accepted the wrong version byte")
	}
	if _, err := DecodePublished(encoded); !errors.Is(err, ErrVersion) {
		t.Fatalf("expected ErrVersion, got %v", err)
	}
}

func TestDecodePublishedRejectsTruncated(t *testing.T) {
	body := []byte{publishedVersion, 0x00, 0x01}
	encoded := b58cEncode(body)
	if _, err := DecodePublished(encoded); !errors.Is(err, ErrTruncated) {
		t.Fatalf("expected ErrTruncated, got %v", err)
	}
}

func TestDecodePublishedRejectsUnsupportedSpendCount(t *testing.T) {
	body := make([]byte, 0, publishedFloor-ChecksumLength)
	body = append(body, publishedVersion, 0x00)
	body = append(body, make([]byte, PointSize)...)
	body = append(body, 2) // unsupported: more than one spend key
	body = append(body, make([]byte, PointSize)...)
	body = append(body, 0, 0)
	encoded := b58cEncode(body)
	if _, err := DecodePublished(encoded); !errors.Is(err, ErrUnsupportedSpendCount) {
		t.Fatalf("expected ErrUnsupportedSpendCount, got %v", err)
	}
}

func TestDecodePublishedRejectsUnsupportedPrefix(t *testing.T) {
	body := make([]byte, 0, publishedFloor-ChecksumLength)
	body = append(body, publishedVersion, 0x00)
	body = append(body, make([]byte, PointSize)...)
	body = append(body, 1)
	body = append(body, make([]byte, PointSize)...)
	body = append(body, 0, 5) // unsupported: non-zero prefix length
	encoded := b58cEncode(body)
	if _, err := DecodePublished(encoded); !errors.Is(err, ErrUnsupportedPrefix) {
		t.Fatalf("expected ErrUnsupportedPrefix, got %v", err)
	}
}

func TestImportSecretRejectsTruncated(t *testing.T) {
	body := []byte{exportVersion, 0x01, 0x02}
	encoded := b58cEncode(body)
	if _, err := ImportSecret(encoded); !errors.Is(err, ErrTruncated) {
		t.Fatalf("expected ErrTruncated, got %v", err)
	}
}

func TestImportSecretRejectsWrongVersion(t *testing.T) {
	a := mustAddress(t)
	defer a.Zeroize()
	exported, err := a.ExportSecret()
	if err != nil {
		t.Fatalf("ExportSecret: %v", err)
	}
	raw, err := base58.Decode(exported)
	if err != nil {
		t.Fatalf("base58.Decode: %v", err)
	}
	raw[0] = 0x2c // wrong version, distinct from 0x2b
	body := raw[:len(raw)-ChecksumLength]
	tampered := b58cEncode(body)
	if _, err := ImportSecret(tampered); !errors.Is(err, ErrVersion) {
		t.Fatalf("expected ErrVersion, got %v", err)
	}
}
