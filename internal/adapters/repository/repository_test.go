package repository

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/kamal-hamza/alib-cli/internal/core/domain"
	"github.com/kamal-hamza/alib-cli/pkg/vault"
)

func setupStorage(t *testing.T) *FileStorage {
	t.Helper()
	root := t.TempDir()
	v := vault.NewAt(root, filepath.Join(root, "config.yaml"))
	if err := v.Initialize(); err != nil {
		t.Fatalf("failed to initialize vault: %v", err)
	}
	return NewFileStorage(v)
}

func TestFileStorage_ReadWriteRemove(t *testing.T) {
	s := setupStorage(t)

	var out map[string]string
	found, err := s.Read("missing", &out)
	if err != nil || found {
		t.Fatalf("Read(missing) = %v, %v", found, err)
	}

	if err := s.Write("prefs", map[string]string{"theme": "dark"}); err != nil {
		t.Fatalf("Write error: %v", err)
	}
	found, err = s.Read("prefs", &out)
	if err != nil || !found {
		t.Fatalf("Read(prefs) = %v, %v", found, err)
	}
	if out["theme"] != "dark" {
		t.Errorf("value = %v", out)
	}

	info, err := os.Stat(s.Path("prefs"))
	if err != nil {
		t.Fatalf("stat failed: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0600 {
		t.Errorf("permissions = %o, want 600", perm)
	}

	entries, _ := os.ReadDir(filepath.Dir(s.Path("prefs")))
	for _, e := range entries {
		if filepath.Ext(e.Name()) == ".tmp" {
			t.Errorf("temp file left behind: %s", e.Name())
		}
	}

	if err := s.Remove("prefs"); err != nil {
		t.Fatalf("Remove error: %v", err)
	}
	if err := s.Remove("prefs"); err != nil {
		t.Errorf("removing a missing key should not fail: %v", err)
	}
}

func TestFileStorage_CorruptDocument(t *testing.T) {
	s := setupStorage(t)
	if err := os.WriteFile(s.Path("broken"), []byte("{nope"), 0600); err != nil {
		t.Fatal(err)
	}
	var out map[string]any
	if _, err := s.Read("broken", &out); err == nil {
		t.Error("expected parse error")
	}
}

func TestTokenRepository(t *testing.T) {
	repo := NewTokenRepository(setupStorage(t))

	tok, err := repo.Load()
	if err != nil || tok != "" {
		t.Fatalf("empty Load() = %q, %v", tok, err)
	}

	if err := repo.Save(" abc.def.ghi "); err != nil {
		t.Fatalf("Save error: %v", err)
	}
	if tok, _ := repo.Load(); tok != "abc.def.ghi" {
		t.Errorf("Load() = %q", tok)
	}

	if err := repo.Clear(); err != nil {
		t.Fatalf("Clear error: %v", err)
	}
	if tok, _ := repo.Load(); tok != "" {
		t.Errorf("token survived Clear: %q", tok)
	}
}

func TestDraftRepository_SaveBumpsRevision(t *testing.T) {
	storage := setupStorage(t)
	repo := NewDraftRepository(storage)
	fixed := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	repo.now = func() time.Time { return fixed }

	if d, err := repo.Load(); err != nil || d != nil {
		t.Fatalf("empty Load() = %v, %v", d, err)
	}

	draft := domain.NewCreateDraft()
	draft.BasicInformation.Name = "Solar Tile"
	if err := repo.Save(draft); err != nil {
		t.Fatalf("Save error: %v", err)
	}
	if draft.Revision != 1 || !draft.SavedAt.Equal(fixed) {
		t.Errorf("revision %d saved at %v", draft.Revision, draft.SavedAt)
	}
	if repo.LastWrittenRevision() != 1 {
		t.Errorf("LastWrittenRevision = %d", repo.LastWrittenRevision())
	}

	loaded, err := repo.Load()
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if loaded.BasicInformation.Name != "Solar Tile" || loaded.Revision != 1 {
		t.Errorf("loaded = %+v", loaded)
	}
}

func TestDraftRepository_LastWriteWins(t *testing.T) {
	storage := setupStorage(t)
	first := NewDraftRepository(storage)
	second := NewDraftRepository(storage)

	a := domain.NewCreateDraft()
	a.BasicInformation.Name = "from first"
	_ = first.Save(a)
	_ = first.Save(a)

	b := domain.NewCreateDraft()
	b.BasicInformation.Name = "from second"
	if err := second.Save(b); err != nil {
		t.Fatalf("Save error: %v", err)
	}
	if b.Revision != 3 {
		t.Errorf("second writer should continue past revision on disk, got %d", b.Revision)
	}

	loaded, _ := first.Load()
	if loaded.BasicInformation.Name != "from second" {
		t.Errorf("expected last write to win, got %q", loaded.BasicInformation.Name)
	}
}

func TestDraftRepository_Clear(t *testing.T) {
	repo := NewDraftRepository(setupStorage(t))
	_ = repo.Save(domain.NewCreateDraft())

	if err := repo.Clear(); err != nil {
		t.Fatalf("Clear error: %v", err)
	}
	if d, _ := repo.Load(); d != nil {
		t.Error("draft should be gone")
	}
	if _, err := os.Stat(repo.Path()); !os.IsNotExist(err) {
		t.Errorf("draft file still present: %v", err)
	}
}

func TestDraftWatcher_ReportsExternalWrites(t *testing.T) {
	storage := setupStorage(t)
	ours := NewDraftRepository(storage)
	theirs := NewDraftRepository(storage)

	_ = ours.Save(domain.NewCreateDraft())

	w := NewDraftWatcher(ours, nil)
	w.debounce = 20 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	errCh := make(chan error, 1)
	go func() { errCh <- w.Run(ctx) }()

	// Give the watcher time to register
	time.Sleep(100 * time.Millisecond)

	external := domain.NewCreateDraft()
	external.BasicInformation.Name = "edited elsewhere"
	if err := theirs.Save(external); err != nil {
		t.Fatalf("external Save error: %v", err)
	}

	select {
	case change := <-w.Changes():
		if change.Removed || change.Draft == nil || change.Draft.BasicInformation.Name != "edited elsewhere" {
			t.Errorf("unexpected change: %+v", change)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for external change")
	}

	cancel()
	if err := <-errCh; err != nil {
		t.Errorf("Run returned error: %v", err)
	}
}
