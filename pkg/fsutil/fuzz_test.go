package fsutil_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/yaklabco/mdspan/pkg/fsutil"
)

// FuzzWriteAtomicIfChanged checks that whatever is written reads back intact
// and that a second identical write is skipped.
func FuzzWriteAtomicIfChanged(f *testing.F) {
	f.Add([]byte(""))
	f.Add([]byte("# title\n"))
	f.Add([]byte("<pre class=\"mdspan\">x</pre>\n"))
	f.Add([]byte("\x00\x01\x02\x03"))
	f.Add(make([]byte, 1024))

	f.Fuzz(func(t *testing.T, content []byte) {
		path := filepath.Join(t.TempDir(), "out.html")
		ctx := context.Background()

		if _, err := fsutil.WriteAtomicIfChanged(ctx, path, content, 0); err != nil {
			t.Fatalf("first write: %v", err)
		}

		got, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("read back: %v", err)
		}
		if !bytes.Equal(got, content) {
			t.Fatalf("content mismatch: got %d bytes, want %d", len(got), len(content))
		}

		written, err := fsutil.WriteAtomicIfChanged(ctx, path, content, 0)
		if err != nil {
			t.Fatalf("second write: %v", err)
		}
		if written {
			t.Fatal("identical content was rewritten")
		}
	})
}
