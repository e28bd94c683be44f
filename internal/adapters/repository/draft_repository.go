package repository

import (
	"sync/atomic"
	"time"

	"github.com/kamal-hamza/alib-cli/internal/core/domain"
)

// DraftKey is the fixed storage key of the create-asset draft
const DraftKey = "create_asset_draft"

// DraftRepository persists the single create-asset draft. Every Save bumps
// the revision past whatever is on disk; the last write wins.
type DraftRepository struct {
	storage      *FileStorage
	now          func() time.Time
	lastRevision atomic.Int64
}

func NewDraftRepository(storage *FileStorage) *DraftRepository {
	return &DraftRepository{storage: storage, now: time.Now}
}

func (r *DraftRepository) Load() (*domain.CreateDraft, error) {
	var draft domain.CreateDraft
	found, err := r.storage.Read(DraftKey, &draft)
	if err != nil || !found {
		return nil, err
	}
	return &draft, nil
}

func (r *DraftRepository) Save(draft *domain.CreateDraft) error {
	next := draft.Revision + 1
	if onDisk, err := r.Load(); err == nil && onDisk != nil && onDisk.Revision >= next {
		next = onDisk.Revision + 1
	}

	draft.Revision = next
	draft.SavedAt = r.now().UTC()
	if err := r.storage.Write(DraftKey, draft); err != nil {
		return err
	}
	r.lastRevision.Store(next)
	return nil
}

func (r *DraftRepository) Clear() error {
	if err := r.storage.Remove(DraftKey); err != nil {
		return err
	}
	r.lastRevision.Store(0)
	return nil
}

func (r *DraftRepository) Path() string {
	return r.storage.Path(DraftKey)
}

// LastWrittenRevision is the revision of this process's most recent Save
func (r *DraftRepository) LastWrittenRevision() int64 {
	return r.lastRevision.Load()
}
