package bbolt

import (
	"path/filepath"
	"testing"
)

func newTestStore(t *testing.T) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "profile.db")
	s, err := NewStoreFromFile(path, nil)
	if err != nil {
		t.Fatalf("NewStoreFromFile failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s, path
}

func TestStore(t *testing.T) {
	s, _ := newTestStore(t)

	t.Run("SetAndGet", func(t *testing.T) {
		if err := s.Set("lynx-auth-token", "Y2lwaGVydGV4dA=="); err != nil {
			t.Fatalf("Set failed: %v", err)
		}
		got, ok, err := s.Get("lynx-auth-token")
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if !ok || got != "Y2lwaGVydGV4dA==" {
			t.Fatalf("got (%q, %v), want (%q, true)", got, ok, "Y2lwaGVydGV4dA==")
		}
	})

	t.Run("GetMissing", func(t *testing.T) {
		_, ok, err := s.Get("no-such-key")
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if ok {
			t.Fatal("expected not found for missing key")
		}
	})

	t.Run("DeleteIsIdempotent", func(t *testing.T) {
		s.Set("doomed", "v")
		if err := s.Delete("doomed"); err != nil {
			t.Fatalf("Delete failed: %v", err)
		}
		if err := s.Delete("doomed"); err != nil {
			t.Fatalf("second Delete failed: %v", err)
		}
		_, ok, _ := s.Get("doomed")
		if ok {
			t.Fatal("expected key to be deleted")
		}
	})
}

func TestStorePersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profile.db")

	s, err := NewStoreFromFile(path, nil)
	if err != nil {
		t.Fatalf("NewStoreFromFile failed: %v", err)
	}
	if err := s.Set("lynx-device-secret", "c2VjcmV0"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	s2, err := NewStoreFromFile(path, nil)
	if err != nil {
		t.Fatalf("reopening store failed: %v", err)
	}
	defer s2.Close()

	got, ok, err := s2.Get("lynx-device-secret")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if !ok || got != "c2VjcmV0" {
		t.Fatalf("got (%q, %v) after reopen, want (%q, true)", got, ok, "c2VjcmV0")
	}
}
