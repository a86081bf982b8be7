package btree

import (
	"encoding/binary"

	"github.com/cockroachdb/errors"
)

// Codec encodes keys or values of a snapshot. Decode returns the value and
// the number of bytes of src it consumed.
type Codec[T any] interface {
	Append(dst []byte, v T) []byte
	Decode(src []byte) (T, int, error)
}

var errShortCodec = errors.New("codec: buffer too short")

// Int64Codec stores int64 as a zig-zag varint.
type Int64Codec struct{}

func (Int64Codec) Append(dst []byte, v int64) []byte {
	return binary.AppendVarint(dst, v)
}

func (Int64Codec) Decode(src []byte) (int64, int, error) {
	v, n := binary.Varint(src)
	if n <= 0 {
		return 0, 0, errors.Wrap(errShortCodec, "int64")
	}
	return v, n, nil
}

// StringCodec stores a uvarint length followed by the bytes.
type StringCodec struct{}

func (StringCodec) Append(dst []byte, v string) []byte {
	dst = binary.AppendUvarint(dst, uint64(len(v)))
	return append(dst, v...)
}

func (StringCodec) Decode(src []byte) (string, int, error) {
	l, n := binary.Uvarint(src)
	if n <= 0 {
		return "", 0, errors.Wrap(errShortCodec, "string length")
	}
	if uint64(len(src)-n) < l {
		return "", 0, errors.Wrapf(errShortCodec, "string of %d bytes, have %d", l, len(src)-n)
	}
	end := n + int(l)
	return string(src[n:end]), end, nil
}
