package codec

import (
	"bytes"
	"testing"
	"time"
)

func TestBytesIsIdentity(t *testing.T) {
	in := []byte("<p>2</p>")

	enc, err := Bytes{}.Encode(in)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if !bytes.Equal(enc, in) {
		t.Fatalf("Encode changed the bytes: %q", enc)
	}

	dec, err := Bytes{}.Decode(enc)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !bytes.Equal(dec, in) {
		t.Fatalf("Decode changed the bytes: %q", dec)
	}
}

type result struct {
	HTML     string        `json:"html" cbor:"1,keyasint" msgpack:"html"`
	Duration time.Duration `json:"duration" cbor:"2,keyasint" msgpack:"duration"`
}

func TestStructuredCodecsRejectGarbage(t *testing.T) {
	garbage := []byte("\xff\x00 definitely not a payload")

	if _, err := (JSON[result]{}).Decode(garbage); err == nil {
		t.Errorf("JSON decoded garbage")
	}
	if _, err := MustCBOR[result](false).Decode(garbage); err == nil {
		t.Errorf("CBOR decoded garbage")
	}
	if _, err := (Msgpack[result]{}).Decode(garbage); err == nil {
		t.Errorf("Msgpack decoded garbage")
	}
}

// Deterministic CBOR must be byte-stable across encodes; keys derived from
// re-hashed artifacts depend on it.
func TestCBORDeterministic(t *testing.T) {
	c := MustCBOR[map[string]int](true)
	v := map[string]int{"b": 2, "a": 1, "c": 3}

	first, err := c.Encode(v)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	for i := 0; i < 10; i++ {
		again, err := c.Encode(v)
		if err != nil {
			t.Fatalf("Encode: %v", err)
		}
		if !bytes.Equal(first, again) {
			t.Fatalf("deterministic encode produced differing bytes")
		}
	}
}

func TestLimitDecode(t *testing.T) {
	c := Limit[[]byte]{Inner: Bytes{}, MaxDecode: 4}

	if _, err := c.Decode([]byte("1234")); err != nil {
		t.Fatalf("Decode at the limit: %v", err)
	}
	if _, err := c.Decode([]byte("12345")); err == nil {
		t.Fatalf("Decode should reject an oversized payload")
	}

	// Encode is never limited.
	if _, err := c.Encode(bytes.Repeat([]byte("x"), 64)); err != nil {
		t.Fatalf("Encode: %v", err)
	}

	unlimited := Limit[[]byte]{Inner: Bytes{}}
	if _, err := unlimited.Decode(bytes.Repeat([]byte("x"), 1<<16)); err != nil {
		t.Fatalf("zero MaxDecode should disable the limit: %v", err)
	}
}
