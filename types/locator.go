package types

import (
	"encoding/binary"
	"fmt"

	"github.com/cockroachdb/errors"
)

var ErrShortLocator = errors.New("locator: buffer too short")

// Locator points to a byte span inside a page-addressed heap file.
// StartOffset is relative to the beginning of the page.
type Locator struct {
	PageNumber  uint32 `json:"page_number"`
	StartOffset uint64 `json:"start_offset"`
	Length      uint32 `json:"length"`
}

func NewLocator(page uint32, start uint64, length uint32) Locator {
	return Locator{PageNumber: page, StartOffset: start, Length: length}
}

// FileOffset returns the absolute position of the span in a file made of pageSize pages.
func (l Locator) FileOffset(pageSize int) int64 {
	return int64(l.PageNumber)*int64(pageSize) + int64(l.StartOffset)
}

// End returns the page-relative offset one past the last byte.
func (l Locator) End() uint64 {
	return l.StartOffset + uint64(l.Length)
}

func (l Locator) String() string {
	return fmt.Sprintf("page=%d off=%d len=%d", l.PageNumber, l.StartOffset, l.Length)
}

// AppendLocator writes the 16 byte little endian layout:
// PageNumber uint32 | StartOffset uint64 | Length uint32
func AppendLocator(dst []byte, l Locator) []byte {
	dst = binary.LittleEndian.AppendUint32(dst, l.PageNumber)
	dst = binary.LittleEndian.AppendUint64(dst, l.StartOffset)
	return binary.LittleEndian.AppendUint32(dst, l.Length)
}

func DecodeLocator(src []byte) (Locator, error) {
	if len(src) < LocatorSize {
		return Locator{}, errors.Wrapf(ErrShortLocator, "have %d bytes, need %d", len(src), LocatorSize)
	}
	return Locator{
		PageNumber:  binary.LittleEndian.Uint32(src[0:4]),
		StartOffset: binary.LittleEndian.Uint64(src[4:12]),
		Length:      binary.LittleEndian.Uint32(src[12:16]),
	}, nil
}

// LocatorList encodes a key's record group: uvarint count followed by count locators.
type LocatorList struct{}

func (LocatorList) Append(dst []byte, locs []Locator) []byte {
	dst = binary.AppendUvarint(dst, uint64(len(locs)))
	for _, l := range locs {
		dst = AppendLocator(dst, l)
	}
	return dst
}

func (LocatorList) Decode(src []byte) ([]Locator, int, error) {
	count, n := binary.Uvarint(src)
	if n <= 0 {
		return nil, 0, errors.Wrap(ErrShortLocator, "locator list count")
	}
	if count > uint64(len(src)-n)/LocatorSize {
		return nil, 0, errors.Wrapf(ErrShortLocator, "list of %d locators needs %d bytes, have %d",
			count, count*LocatorSize, len(src)-n)
	}
	locs := make([]Locator, 0, count)
	for i := uint64(0); i < count; i++ {
		l, err := DecodeLocator(src[n:])
		if err != nil {
			return nil, 0, err
		}
		locs = append(locs, l)
		n += LocatorSize
	}
	return locs, n, nil
}
