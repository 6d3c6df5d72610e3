// Package codec converts artifact values V to and from the bytes persisted
// by a store. Raw artifacts (rendered HTML, images) use Bytes; structured
// render results pick JSON, CBOR, Msgpack, or Protobuf.
package codec

// Codec encodes/decodes values V to []byte for storage.
type Codec[V any] interface {
	Encode(V) ([]byte, error)
	Decode([]byte) (V, error)
}
