package heapfile

import (
	"bytes"
	"path/filepath"
	"testing"

	"HeapIndex/types"

	"github.com/cockroachdb/errors"
)

func openTemp(t *testing.T, pageSize int, cacheBytes int64) (*HeapFile, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "heapfile")
	cfg := DefaultConfig(path)
	cfg.PageSize = pageSize
	cfg.CacheBytes = cacheBytes
	hf, err := Open(cfg, nil)
	if err != nil {
		t.Fatalf("failed to open heap file: %v", err)
	}
	t.Cleanup(func() { hf.Close() })
	return hf, path
}

func TestAppendAndRead(t *testing.T) {
	hf, _ := openTemp(t, 64, 0)

	records := [][]byte{
		[]byte("1,Bourke Street,2019,7"),
		[]byte("2,Flinders Lane,2019,7"),
	}
	var locs []types.Locator
	for _, r := range records {
		loc, err := hf.Append(r)
		if err != nil {
			t.Fatalf("Append failed: %v", err)
		}
		locs = append(locs, loc)
	}

	if locs[0] != types.NewLocator(0, 0, 22) || locs[1] != types.NewLocator(0, 22, 22) {
		t.Errorf("locators = %v", locs)
	}
	for i, loc := range locs {
		got, err := hf.Read(loc)
		if err != nil {
			t.Fatalf("Read(%s) failed: %v", loc, err)
		}
		if !bytes.Equal(got, records[i]) {
			t.Errorf("Read(%s) = %q, want %q", loc, got, records[i])
		}
	}
}

func TestAppendPadsToNextPage(t *testing.T) {
	hf, path := openTemp(t, 64, 0)

	first := bytes.Repeat([]byte("a"), 50)
	second := bytes.Repeat([]byte("b"), 20)

	if _, err := hf.Append(first); err != nil {
		t.Fatal(err)
	}
	loc, err := hf.Append(second)
	if err != nil {
		t.Fatal(err)
	}
	if loc != types.NewLocator(1, 0, 20) {
		t.Errorf("second record at %s, want page 1 offset 0", loc)
	}
	if hf.PageSize() != 64 {
		t.Errorf("PageSize = %d, want 64", hf.PageSize())
	}
	if hf.Size() != 84 || hf.NumPages() != 2 {
		t.Errorf("Size=%d NumPages=%d, want 84 and 2", hf.Size(), hf.NumPages())
	}

	page0, err := hf.ReadPage(0)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(page0[50:], bytes.Repeat([]byte{'X'}, 14)) {
		t.Errorf("page 0 tail = %q, want filler", page0[50:])
	}

	if err := hf.Close(); err != nil {
		t.Fatal(err)
	}
	raw := mustReadFile(t, path)
	if len(raw) != 84 || raw[63] != 'X' || raw[64] != 'b' {
		t.Errorf("file layout wrong: %d bytes", len(raw))
	}
}

func TestAppendExactFitDoesNotPad(t *testing.T) {
	hf, _ := openTemp(t, 64, 0)
	if _, err := hf.Append(bytes.Repeat([]byte("a"), 40)); err != nil {
		t.Fatal(err)
	}
	loc, err := hf.Append(bytes.Repeat([]byte("b"), 24))
	if err != nil {
		t.Fatal(err)
	}
	if loc != types.NewLocator(0, 40, 24) {
		t.Errorf("exact fit landed at %s", loc)
	}
	next, err := hf.Append([]byte("c"))
	if err != nil {
		t.Fatal(err)
	}
	if next != types.NewLocator(1, 0, 1) {
		t.Errorf("record after full page landed at %s", next)
	}
}

func TestAppendRejectsBadRecords(t *testing.T) {
	hf, _ := openTemp(t, 64, 0)

	if _, err := hf.Append(nil); !errors.Is(err, ErrEmptyRecord) {
		t.Errorf("empty record: err = %v", err)
	}
	if _, err := hf.Append(make([]byte, 65)); !errors.Is(err, ErrRecordTooLarge) {
		t.Errorf("oversized record: err = %v", err)
	}
	if _, err := hf.Append(make([]byte, 64)); err != nil {
		t.Errorf("page-sized record: %v", err)
	}
	if hf.Size() != 64 {
		t.Errorf("Size = %d after rejected appends", hf.Size())
	}
}

func TestReadOutOfRange(t *testing.T) {
	hf, _ := openTemp(t, 64, 0)
	if _, err := hf.Append([]byte("hello")); err != nil {
		t.Fatal(err)
	}

	bad := []types.Locator{
		types.NewLocator(0, 3, 10),    // past end of file
		types.NewLocator(5, 0, 1),     // missing page
		types.NewLocator(0, 60, 10),   // crosses page boundary
		types.NewLocator(0, 1<<40, 1), // offset beyond page
	}
	for _, loc := range bad {
		if _, err := hf.Read(loc); !errors.Is(err, ErrOutOfRange) {
			t.Errorf("Read(%s): err = %v, want ErrOutOfRange", loc, err)
		}
	}
	if _, err := hf.ReadPage(3); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("ReadPage(3): err = %v, want ErrOutOfRange", err)
	}
}

func TestReopenResumesAppending(t *testing.T) {
	hf, path := openTemp(t, 64, 0)
	if _, err := hf.Append(bytes.Repeat([]byte("a"), 70-64)); err != nil {
		t.Fatal(err)
	}
	if err := hf.Close(); err != nil {
		t.Fatal(err)
	}

	cfg := DefaultConfig(path)
	cfg.PageSize = 64
	reopened, err := Open(cfg, nil)
	if err != nil {
		t.Fatal(err)
	}
	defer reopened.Close()

	loc, err := reopened.Append([]byte("next"))
	if err != nil {
		t.Fatal(err)
	}
	if loc != types.NewLocator(0, 6, 4) {
		t.Errorf("append after reopen at %s, want page 0 offset 6", loc)
	}
	got, err := reopened.Read(types.NewLocator(0, 0, 6))
	if err != nil || string(got) != "aaaaaa" {
		t.Errorf("Read old record = (%q, %v)", got, err)
	}
}

func TestReadThroughPageCache(t *testing.T) {
	hf, _ := openTemp(t, 64, 1<<20)

	var locs []types.Locator
	var records [][]byte
	for i := 0; i < 40; i++ {
		r := bytes.Repeat([]byte{byte('a' + i%26)}, 10+i%30)
		loc, err := hf.Append(r)
		if err != nil {
			t.Fatal(err)
		}
		locs = append(locs, loc)
		records = append(records, r)
	}

	// twice, so the second round may be served from cached pages
	for round := 0; round < 2; round++ {
		for i, loc := range locs {
			got, err := hf.Read(loc)
			if err != nil {
				t.Fatalf("round %d: Read(%s): %v", round, loc, err)
			}
			if !bytes.Equal(got, records[i]) {
				t.Fatalf("round %d: Read(%s) = %q, want %q", round, loc, got, records[i])
			}
		}
		hf.cache.c.Wait()
	}

	// mutating a returned record must not reach the cached page
	got, _ := hf.Read(locs[0])
	got[0] = '!'
	again, _ := hf.Read(locs[0])
	if again[0] == '!' {
		t.Error("Read returned a slice aliasing the cached page")
	}
}

func TestClosedFile(t *testing.T) {
	hf, _ := openTemp(t, 64, 0)
	loc, err := hf.Append([]byte("x"))
	if err != nil {
		t.Fatal(err)
	}
	if err := hf.Close(); err != nil {
		t.Fatal(err)
	}
	if _, err := hf.Append([]byte("y")); !errors.Is(err, ErrClosed) {
		t.Errorf("Append after close: err = %v", err)
	}
	if _, err := hf.Read(loc); !errors.Is(err, ErrClosed) {
		t.Errorf("Read after close: err = %v", err)
	}
	if err := hf.Close(); err != nil {
		t.Errorf("second Close: %v", err)
	}
}
