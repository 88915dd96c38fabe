// Package favorites tracks liked products. The local store persists to
// local storage like the cart; the remote store backs the same operations
// with the wishlist API for signed-in buyers.
package favorites

import (
	"encoding/json"
	"sync"

	"go.uber.org/zap"

	"tenisland/internal/domain"
	"tenisland/internal/storage"
)

// StorageKey is the local-storage key the favorites persist under.
const StorageKey = "favorites"

type Store struct {
	mu      sync.Mutex
	entries []domain.FavoriteEntry
	index   map[string]struct{}
	kv      storage.KV
	log     *zap.Logger
	subs    []func()
}

// NewStore loads persisted favorites from kv; corrupt or missing state
// loads as empty.
func NewStore(kv storage.KV, log *zap.Logger) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Store{kv: kv, log: log, index: map[string]struct{}{}}

	raw, ok, err := kv.Get(StorageKey)
	if err != nil {
		log.Warn("favorites: loading persisted state", zap.Error(err))
		return s
	}
	if !ok {
		return s
	}
	if err := json.Unmarshal([]byte(raw), &s.entries); err != nil {
		log.Warn("favorites: persisted state unreadable, starting empty", zap.Error(err))
		s.entries = nil
		return s
	}
	for _, e := range s.entries {
		s.index[e.ProductID] = struct{}{}
	}
	return s
}

func (s *Store) Subscribe(fn func()) {
	s.mu.Lock()
	s.subs = append(s.subs, fn)
	s.mu.Unlock()
}

// Add inserts the entry and reports true. A product that is already
// favorited is left untouched and Add reports false, the caller shows the
// "already favorited" notice.
func (s *Store) Add(e domain.FavoriteEntry) bool {
	s.mu.Lock()
	if _, dup := s.index[e.ProductID]; dup {
		s.mu.Unlock()
		return false
	}
	s.entries = append(s.entries, e)
	s.index[e.ProductID] = struct{}{}
	s.persistLocked()
	subs := s.snapshotSubs()
	s.mu.Unlock()

	notify(subs)
	return true
}

// Remove deletes by product id; unknown ids are a no-op.
func (s *Store) Remove(productID string) {
	s.mu.Lock()
	if _, ok := s.index[productID]; !ok {
		s.mu.Unlock()
		return
	}
	delete(s.index, productID)
	for i := range s.entries {
		if s.entries[i].ProductID == productID {
			s.entries = append(s.entries[:i], s.entries[i+1:]...)
			break
		}
	}
	s.persistLocked()
	subs := s.snapshotSubs()
	s.mu.Unlock()

	notify(subs)
}

// Has is the O(1) membership check behind the filled/outline heart icon.
func (s *Store) Has(productID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.index[productID]
	return ok
}

// Clear empties the favorites and erases the persisted copy.
func (s *Store) Clear() {
	s.mu.Lock()
	s.entries = nil
	s.index = map[string]struct{}{}
	if err := s.kv.Delete(StorageKey); err != nil {
		s.log.Warn("favorites: erasing persisted state", zap.Error(err))
	}
	subs := s.snapshotSubs()
	s.mu.Unlock()

	notify(subs)
}

func (s *Store) Entries() []domain.FavoriteEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.FavoriteEntry, len(s.entries))
	copy(out, s.entries)
	return out
}

func (s *Store) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

func (s *Store) persistLocked() {
	b, err := json.Marshal(s.entries)
	if err != nil {
		s.log.Warn("favorites: encoding state", zap.Error(err))
		return
	}
	if err := s.kv.Set(StorageKey, string(b)); err != nil {
		s.log.Warn("favorites: persisting state", zap.Error(err))
	}
}

func (s *Store) snapshotSubs() []func() {
	out := make([]func(), len(s.subs))
	copy(out, s.subs)
	return out
}

func notify(subs []func()) {
	for _, fn := range subs {
		fn()
	}
}
