package btree

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"io"

	"github.com/cespare/xxhash/v2"
	"github.com/cockroachdb/errors"
	"github.com/golang/snappy"
)

// Snapshot layout:
//   - Header: magic "HIDX"(4), version(1), degree(uvarint), entries(uvarint),
//     xxhash64 of the compressed body(8, LE), compressed body length(uvarint)
//   - Body (snappy): nodes in pre-order, each node is
//     flags(1) | numEntries(uvarint) | numEntries x (key, value) | children...
const (
	snapshotMagic   = "HIDX"
	snapshotVersion = 1

	flagLeaf = 1 << 0

	maxSnapshotDepth = 64
	maxSnapshotBody  = 1 << 32
)

var ErrBadSnapshot = errors.New("btree: bad snapshot")

// WriteSnapshot serializes the whole tree to w.
func WriteSnapshot[K, V any](w io.Writer, t *BTree[K, V], kc Codec[K], vc Codec[V]) error {
	body := t.root.encode(nil, kc, vc)
	compressed := snappy.Encode(nil, body)

	hdr := make([]byte, 0, 40)
	hdr = append(hdr, snapshotMagic...)
	hdr = append(hdr, snapshotVersion)
	hdr = binary.AppendUvarint(hdr, uint64(t.t))
	hdr = binary.AppendUvarint(hdr, uint64(t.count))
	hdr = binary.LittleEndian.AppendUint64(hdr, xxhash.Sum64(compressed))
	hdr = binary.AppendUvarint(hdr, uint64(len(compressed)))

	if _, err := w.Write(hdr); err != nil {
		return errors.Wrap(err, "write snapshot header")
	}
	if _, err := w.Write(compressed); err != nil {
		return errors.Wrap(err, "write snapshot body")
	}
	return nil
}

// ReadSnapshot rebuilds a tree written by WriteSnapshot. compare must be
// the ordering the tree was built with; a decoded tree that violates the
// B-tree invariants under it is rejected.
func ReadSnapshot[K, V any](r io.Reader, compare func(a, b K) int, kc Codec[K], vc Codec[V]) (*BTree[K, V], error) {
	br := bufio.NewReader(r)

	magic := make([]byte, len(snapshotMagic))
	if _, err := io.ReadFull(br, magic); err != nil {
		return nil, errors.Wrap(err, "read snapshot magic")
	}
	if !bytes.Equal(magic, []byte(snapshotMagic)) {
		return nil, errors.Wrapf(ErrBadSnapshot, "magic %q", magic)
	}
	version, err := br.ReadByte()
	if err != nil {
		return nil, errors.Wrap(err, "read snapshot version")
	}
	if version != snapshotVersion {
		return nil, errors.Wrapf(ErrBadSnapshot, "unsupported version %d", version)
	}
	degree, err := binary.ReadUvarint(br)
	if err != nil {
		return nil, errors.Wrap(err, "read snapshot degree")
	}
	if degree < 2 || degree > 1<<20 {
		return nil, errors.Wrapf(ErrBadSnapshot, "degree %d", degree)
	}
	count, err := binary.ReadUvarint(br)
	if err != nil {
		return nil, errors.Wrap(err, "read snapshot entry count")
	}
	var sum [8]byte
	if _, err := io.ReadFull(br, sum[:]); err != nil {
		return nil, errors.Wrap(err, "read snapshot checksum")
	}
	bodyLen, err := binary.ReadUvarint(br)
	if err != nil {
		return nil, errors.Wrap(err, "read snapshot body length")
	}
	if bodyLen > maxSnapshotBody {
		return nil, errors.Wrapf(ErrBadSnapshot, "body length %d", bodyLen)
	}

	compressed, err := io.ReadAll(io.LimitReader(br, int64(bodyLen)))
	if err != nil {
		return nil, errors.Wrap(err, "read snapshot body")
	}
	if uint64(len(compressed)) != bodyLen {
		return nil, errors.Wrapf(ErrBadSnapshot, "truncated body: %d of %d bytes", len(compressed), bodyLen)
	}
	if xxhash.Sum64(compressed) != binary.LittleEndian.Uint64(sum[:]) {
		return nil, errors.Wrap(ErrBadSnapshot, "checksum mismatch")
	}
	body, err := snappy.Decode(nil, compressed)
	if err != nil {
		return nil, errors.Wrapf(ErrBadSnapshot, "decompress: %v", err)
	}

	t := NewFunc[K, V](int(degree), compare)
	d := &nodeDecoder[K, V]{buf: body, cmp: t.cmp, kc: kc, vc: vc}
	root, err := d.decode(0)
	if err != nil {
		return nil, err
	}
	if d.off != len(d.buf) {
		return nil, errors.Wrapf(ErrBadSnapshot, "%d trailing bytes", len(d.buf)-d.off)
	}
	t.root = root
	t.count = int(count)
	if err := t.Verify(); err != nil {
		return nil, errors.Wrapf(ErrBadSnapshot, "invalid tree: %v", err)
	}
	return t, nil
}

func (n *node[K, V]) encode(dst []byte, kc Codec[K], vc Codec[V]) []byte {
	var flags byte
	if n.isLeaf() {
		flags |= flagLeaf
	}
	dst = append(dst, flags)
	dst = binary.AppendUvarint(dst, uint64(len(n.entries)))
	for _, e := range n.entries {
		dst = kc.Append(dst, e.Key)
		dst = vc.Append(dst, e.Value)
	}
	if !n.isLeaf() {
		for _, c := range n.children {
			dst = c.encode(dst, kc, vc)
		}
	}
	return dst
}

type nodeDecoder[K, V any] struct {
	buf []byte
	off int
	cmp func(a, b K) int
	kc  Codec[K]
	vc  Codec[V]
}

func (d *nodeDecoder[K, V]) decode(depth int) (*node[K, V], error) {
	if depth > maxSnapshotDepth {
		return nil, errors.Wrapf(ErrBadSnapshot, "tree deeper than %d levels", maxSnapshotDepth)
	}
	if d.off >= len(d.buf) {
		return nil, errors.Wrap(ErrBadSnapshot, "truncated node header")
	}
	flags := d.buf[d.off]
	d.off++
	num, n := binary.Uvarint(d.buf[d.off:])
	if n <= 0 || num > uint64(len(d.buf)-d.off) {
		return nil, errors.Wrap(ErrBadSnapshot, "bad entry count")
	}
	d.off += n

	nd := newNode[K, V](flags&flagLeaf != 0, d.cmp)
	nd.entries = make([]Entry[K, V], 0, num)
	for i := uint64(0); i < num; i++ {
		key, kn, err := d.kc.Decode(d.buf[d.off:])
		if err != nil {
			return nil, errors.Wrapf(ErrBadSnapshot, "key %d at depth %d: %v", i, depth, err)
		}
		d.off += kn
		val, vn, err := d.vc.Decode(d.buf[d.off:])
		if err != nil {
			return nil, errors.Wrapf(ErrBadSnapshot, "value %d at depth %d: %v", i, depth, err)
		}
		d.off += vn
		nd.addEntry(Entry[K, V]{Key: key, Value: val})
	}
	if nd.isLeaf() {
		return nd, nil
	}
	nd.children = make([]*node[K, V], 0, num+1)
	for i := uint64(0); i <= num; i++ {
		child, err := d.decode(depth + 1)
		if err != nil {
			return nil, err
		}
		nd.addChild(child)
	}
	return nd, nil
}
