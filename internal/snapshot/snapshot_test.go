package snapshot

import (
	"bytes"
	"context"
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/iho/finplan/internal/ledger"
)

func testCodec(t *testing.T) *Codec {
	t.Helper()
	key := hex.EncodeToString(bytes.Repeat([]byte{0x42}, 32))
	codec, err := NewCodec(key)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return codec
}

func TestCodec_RoundTrip(t *testing.T) {
	codec := testCodec(t)
	plaintext := []byte(`{"transactions":[]}`)

	sealed, err := codec.Seal(plaintext)
	if err != nil {
		t.Fatalf("seal: %v", err)
	}
	if bytes.Contains(sealed, plaintext) {
		t.Error("sealed blob must not contain the plaintext")
	}

	opened, err := codec.Open(sealed)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if !bytes.Equal(opened, plaintext) {
		t.Errorf("round trip mismatch: got %q", opened)
	}

	// Fresh nonce per seal.
	sealed2, err := codec.Seal(plaintext)
	if err != nil {
		t.Fatalf("seal: %v", err)
	}
	if bytes.Equal(sealed, sealed2) {
		t.Error("two seals of the same plaintext must differ")
	}
}

func TestCodec_TamperDetection(t *testing.T) {
	codec := testCodec(t)

	sealed, err := codec.Seal([]byte("data"))
	if err != nil {
		t.Fatalf("seal: %v", err)
	}
	sealed[len(sealed)-1] ^= 0xff

	if _, err := codec.Open(sealed); !errors.Is(err, ErrDecrypt) {
		t.Errorf("expected ErrDecrypt for a tampered blob, got %v", err)
	}
	if _, err := codec.Open([]byte("short")); !errors.Is(err, ErrDecrypt) {
		t.Errorf("expected ErrDecrypt for a truncated blob, got %v", err)
	}
}

func TestCodec_NilPassthrough(t *testing.T) {
	codec, err := NewCodec("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if codec != nil {
		t.Fatal("empty key must yield a nil codec")
	}

	blob := []byte("plain")
	sealed, _ := codec.Seal(blob)
	if !bytes.Equal(sealed, blob) {
		t.Error("nil codec must pass blobs through")
	}
	opened, _ := codec.Open(blob)
	if !bytes.Equal(opened, blob) {
		t.Error("nil codec must pass blobs through")
	}
}

func TestCodec_KeyValidation(t *testing.T) {
	if _, err := NewCodec("not hex"); err == nil {
		t.Error("expected error for non-hex key")
	}
	if _, err := NewCodec("abcd"); err == nil {
		t.Error("expected error for short key")
	}
}

func TestFileStore(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "data", "ledger.snap")

	store, err := NewFileStore(path, testCodec(t))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := store.Load(ctx); !errors.Is(err, ledger.ErrNoSnapshot) {
		t.Fatalf("expected ErrNoSnapshot before first save, got %v", err)
	}

	want := []byte(`{"goals":[]}`)
	if err := store.Save(ctx, want); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !bytes.Equal(got, want) {
		t.Errorf("loaded %q, want %q", got, want)
	}

	// Overwrite replaces the previous snapshot.
	want2 := []byte(`{"goals":[{"id":"g1"}]}`)
	if err := store.Save(ctx, want2); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err = store.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !bytes.Equal(got, want2) {
		t.Errorf("loaded %q, want %q", got, want2)
	}

	// On-disk bytes are sealed.
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read file: %v", err)
	}
	if bytes.Contains(raw, []byte("goals")) {
		t.Error("snapshot file must not contain plaintext")
	}

	// No stray temp files left behind.
	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("expected only the snapshot file, found %d entries", len(entries))
	}
}

func TestFileStore_PlaintextWithoutKey(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "ledger.snap")

	store, err := NewFileStore(path, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []byte(`{"budgets":[]}`)
	if err := store.Save(ctx, want); err != nil {
		t.Fatalf("save: %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read file: %v", err)
	}
	if !bytes.Equal(raw, want) {
		t.Errorf("keyless store must write plaintext, got %q", raw)
	}
}
