package checkpoint

import (
	"os"
	"path"
	"testing"
)

func TestReadMissing(t *testing.T) {
	ts, err := Read(path.Join(t.TempDir(), "no-such-file"))
	if err != nil {
		t.Fatalf("missing state file must not be an error: %v", err)
	}
	if ts != 0 {
		t.Fatalf("missing state file must mean epoch 0, got %f", ts)
	}
}

func TestReadGarbage(t *testing.T) {
	fn := path.Join(t.TempDir(), "last_completed")
	if err := os.WriteFile(fn, []byte("not-a-number"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Read(fn); err == nil {
		t.Fatal("garbage state file must be an error")
	}
}

func TestReadTrimsWhitespace(t *testing.T) {
	fn := path.Join(t.TempDir(), "last_completed")
	if err := os.WriteFile(fn, []byte("  1722844868.5\n"), 0644); err != nil {
		t.Fatal(err)
	}
	ts, err := Read(fn)
	if err != nil {
		t.Fatal(err)
	}
	if ts != 1722844868.5 {
		t.Fatalf("got %f", ts)
	}
}

func TestRoundTrip(t *testing.T) {
	fn := path.Join(t.TempDir(), "last_completed")
	if err := Write(fn, 1722844868.25); err != nil {
		t.Fatal(err)
	}
	ts, err := Read(fn)
	if err != nil {
		t.Fatal(err)
	}
	if ts != 1722844868.25 {
		t.Fatalf("round trip: got %f", ts)
	}
}
