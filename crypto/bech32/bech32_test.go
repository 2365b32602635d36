package bech32

import (
	"bytes"
	"testing"
)

func TestDecodeKnownVector(t *testing.T) {
	// A valid checksummed string from the BIP-173 test vectors.
	const enc = `split1checkupstagehandshakeupstreamerranterredcaperred2y9e3w`

	hrp, payload, err := Decode(enc)
	if err != nil {
		t.Fatalf("cannot decode: %s", err)
	}
	if hrp != "split" {
		t.Fatalf("unexpected human readable part: %q", hrp)
	}
	if len(payload) != 30 {
		t.Fatalf("want a 30 byte payload, got %d", len(payload))
	}

	raw, err := Encode(hrp, payload)
	if err != nil {
		t.Fatalf("cannot encode: %s", err)
	}
	if string(raw) != enc {
		t.Fatalf("invalid encoding: %q", raw)
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	payload := []byte("wallet-payload")

	raw, err := Encode("guard", payload)
	if err != nil {
		t.Fatalf("cannot encode: %s", err)
	}

	hrp, got, err := Decode(string(raw))
	if err != nil {
		t.Fatalf("cannot decode: %s", err)
	}
	if hrp != "guard" {
		t.Fatalf("unexpected human readable part: %q", hrp)
	}
	if !bytes.Equal(payload, got) {
		t.Logf("want %d", payload)
		t.Logf("got  %d", got)
		t.Fatal("payload mangled by the round trip")
	}
}
