// Package cart owns the shopping cart line collection. The store is built
// once at application start, keeps its state in memory as the source of
// truth, and writes the whole collection to local storage after every
// mutation. Storage failures are logged and never block a mutation.
package cart

import (
	"encoding/json"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"tenisland/internal/domain"
	"tenisland/internal/storage"
)

// StorageKey is the local-storage key the cart persists under.
const StorageKey = "tenisland_cart"

type Store struct {
	mu    sync.Mutex
	lines []domain.CartLine
	kv    storage.KV
	log   *zap.Logger
	subs  []func()
}

// NewStore loads any persisted cart from kv. Missing or corrupt persisted
// state yields an empty cart, not an error.
func NewStore(kv storage.KV, log *zap.Logger) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Store{kv: kv, log: log}

	raw, ok, err := kv.Get(StorageKey)
	if err != nil {
		log.Warn("cart: loading persisted state", zap.Error(err))
		return s
	}
	if !ok {
		return s
	}
	if err := json.Unmarshal([]byte(raw), &s.lines); err != nil {
		log.Warn("cart: persisted state unreadable, starting empty", zap.Error(err))
		s.lines = nil
	}
	return s
}

// Subscribe registers fn to run after every mutation. Used by the UI layer
// to re-render. Subscribers run outside the store lock.
func (s *Store) Subscribe(fn func()) {
	s.mu.Lock()
	s.subs = append(s.subs, fn)
	s.mu.Unlock()
}

// AddItem merges by (productID, size, color): an existing line has its
// quantity incremented, otherwise a new line with a fresh lineID is created.
// Quantities below 1 count as 1. Returns the resulting line.
func (s *Store) AddItem(p domain.ProductSummary, qty int, size, color string) domain.CartLine {
	if qty < 1 {
		qty = 1
	}

	s.mu.Lock()
	key := domain.CartLine{ProductID: p.ID, Size: size, Color: color}.VariantKey()
	var out domain.CartLine
	found := false
	for i := range s.lines {
		if s.lines[i].VariantKey() == key {
			s.lines[i].Quantity += qty
			out = s.lines[i]
			found = true
			break
		}
	}
	if !found {
		out = domain.CartLine{
			LineID:    uuid.NewString(),
			ProductID: p.ID,
			Name:      p.Name,
			UnitPrice: p.Price,
			ImageRef:  p.ImageRef,
			Quantity:  qty,
			Size:      size,
			Color:     color,
		}
		s.lines = append(s.lines, out)
	}
	s.persistLocked()
	subs := s.snapshotSubs()
	s.mu.Unlock()

	notify(subs)
	return out
}

// RemoveItem deletes the line with the given id. Removing an unknown id is
// a no-op.
func (s *Store) RemoveItem(lineID string) {
	s.mu.Lock()
	changed := false
	for i := range s.lines {
		if s.lines[i].LineID == lineID {
			s.lines = append(s.lines[:i], s.lines[i+1:]...)
			changed = true
			break
		}
	}
	var subs []func()
	if changed {
		s.persistLocked()
		subs = s.snapshotSubs()
	}
	s.mu.Unlock()

	notify(subs)
}

// UpdateQuantity sets the line's quantity to qty (absolute, not a delta).
// A quantity of zero or less removes the line.
func (s *Store) UpdateQuantity(lineID string, qty int) {
	if qty <= 0 {
		s.RemoveItem(lineID)
		return
	}

	s.mu.Lock()
	changed := false
	for i := range s.lines {
		if s.lines[i].LineID == lineID {
			s.lines[i].Quantity = qty
			changed = true
			break
		}
	}
	var subs []func()
	if changed {
		s.persistLocked()
		subs = s.snapshotSubs()
	}
	s.mu.Unlock()

	notify(subs)
}

// Clear empties the cart and erases the persisted copy.
func (s *Store) Clear() {
	s.mu.Lock()
	s.lines = nil
	if err := s.kv.Delete(StorageKey); err != nil {
		s.log.Warn("cart: erasing persisted state", zap.Error(err))
	}
	subs := s.snapshotSubs()
	s.mu.Unlock()

	notify(subs)
}

// Lines returns a copy of the current line collection.
func (s *Store) Lines() []domain.CartLine {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.CartLine, len(s.lines))
	copy(out, s.lines)
	return out
}

// TotalItemCount sums the quantities of all lines.
func (s *Store) TotalItemCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, l := range s.lines {
		n += l.Quantity
	}
	return n
}

// IsEmpty gates checkout navigation.
func (s *Store) IsEmpty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.lines) == 0
}

func (s *Store) persistLocked() {
	b, err := json.Marshal(s.lines)
	if err != nil {
		s.log.Warn("cart: encoding state", zap.Error(err))
		return
	}
	if err := s.kv.Set(StorageKey, string(b)); err != nil {
		s.log.Warn("cart: persisting state", zap.Error(err))
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
