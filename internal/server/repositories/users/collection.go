package users

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/graphauth/internal/common"
	"github.com/dmitrijs2005/graphauth/internal/credential"
	"github.com/dmitrijs2005/graphauth/internal/server/repositories/blobs"
)

// CollectionKey is the blob key holding the serialized user collection.
const CollectionKey = "graphical_auth_users"

// CollectionRepository keeps every user record in one JSON array stored
// under CollectionKey. Each registration reads and rewrites the whole
// collection inside blobs.Store.Update.
type CollectionRepository struct {
	store blobs.Store
	// mu serializes writers within the process; Update covers the rest.
	mu sync.Mutex
}

func NewCollectionRepository(store blobs.Store) *CollectionRepository {
	return &CollectionRepository{store: store}
}

// entry is one element of the collection, kept raw so a record that fails
// validation only affects lookups of its own username.
type entry struct {
	key string
	raw json.RawMessage
}

func decodeCollection(b []byte) ([]entry, error) {
	if len(b) == 0 {
		return nil, nil
	}
	var raws []json.RawMessage
	if err := json.Unmarshal(b, &raws); err != nil {
		return nil, fmt.Errorf("decode users collection: %w", err)
	}

	entries := make([]entry, len(raws))
	for i, raw := range raws {
		var head struct {
			Username string `json:"username"`
		}
		// Entries that are not objects keep an empty key and are carried as is.
		_ = json.Unmarshal(raw, &head)
		entries[i] = entry{key: credential.UsernameKey(head.Username), raw: raw}
	}
	return entries, nil
}

func (r *CollectionRepository) load(ctx context.Context) ([]entry, error) {
	b, err := r.store.Get(ctx, CollectionKey)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return decodeCollection(b)
}

func (r *CollectionRepository) GetUserByLogin(ctx context.Context, username string) (*credential.UserRecord, error) {
	entries, err := r.load(ctx)
	if err != nil {
		return nil, err
	}

	key := credential.UsernameKey(username)
	if key == "" {
		return nil, common.ErrorNotFound
	}
	for _, e := range entries {
		if e.key != key {
			continue
		}
		var rec credential.UserRecord
		if err := json.Unmarshal(e.raw, &rec); err != nil {
			if errors.Is(err, common.ErrInvalidUserData) {
				return nil, err
			}
			return nil, fmt.Errorf("user %q: %w", username, common.ErrInvalidUserData)
		}
		return &rec, nil
	}
	return nil, common.ErrorNotFound
}

func (r *CollectionRepository) Exists(ctx context.Context, username string) (bool, error) {
	_, err := r.GetUserByLogin(ctx, username)
	if errors.Is(err, common.ErrorNotFound) {
		return false, nil
	}
	// A malformed record still occupies its username.
	if errors.Is(err, common.ErrInvalidUserData) {
		return true, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (r *CollectionRepository) Create(ctx context.Context, user *credential.UserRecord) (*credential.UserRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := user.Key()
	err := r.store.Update(ctx, CollectionKey, func(current []byte) ([]byte, error) {
		entries, err := decodeCollection(current)
		if err != nil {
			return nil, err
		}
		for _, e := range entries {
			if e.key == key {
				return nil, common.ErrorAlreadyExists
			}
		}
		raw, err := json.Marshal(user)
		if err != nil {
			return nil, err
		}
		out := make([]json.RawMessage, 0, len(entries)+1)
		for _, e := range entries {
			out = append(out, e.raw)
		}
		return json.Marshal(append(out, raw))
	})

	switch {
	case err == nil:
		return user, nil
	case errors.Is(err, common.ErrorAlreadyExists), errors.Is(err, common.ErrInvalidUserData):
		return nil, err
	default:
		return nil, fmt.Errorf("db error: %w", err)
	}
}
