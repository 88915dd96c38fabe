package favorites

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"tenisland/internal/domain"
)

// wishlistAPI is the slice of the REST client the remote store needs.
type wishlistAPI interface {
	Wishlist(ctx context.Context) ([]domain.FavoriteEntry, error)
	AddToWishlist(ctx context.Context, productID string) error
	RemoveFromWishlist(ctx context.Context, productID string) error
}

// Remote backs the favorites operations with the wishlist API for
// authenticated buyers. A local mirror of the server list keeps Has at
// O(1); Add and Remove are idempotent and safe to retry.
type Remote struct {
	mu      sync.Mutex
	api     wishlistAPI
	entries []domain.FavoriteEntry
	index   map[string]struct{}
	log     *zap.Logger
}

// NewRemote fetches the current wishlist and returns a store mirroring it.
func NewRemote(ctx context.Context, api wishlistAPI, log *zap.Logger) (*Remote, error) {
	if log == nil {
		log = zap.NewNop()
	}
	r := &Remote{api: api, index: map[string]struct{}{}, log: log}
	if err := r.Refresh(ctx); err != nil {
		return nil, err
	}
	return r, nil
}

// Refresh re-reads the server list into the local mirror.
func (r *Remote) Refresh(ctx context.Context) error {
	entries, err := r.api.Wishlist(ctx)
	if err != nil {
		return err
	}
	index := make(map[string]struct{}, len(entries))
	for _, e := range entries {
		index[e.ProductID] = struct{}{}
	}
	r.mu.Lock()
	r.entries = entries
	r.index = index
	r.mu.Unlock()
	return nil
}

// Add saves the product remotely and reports true. A duplicate add is a
// no-op reporting false, same as the local store.
func (r *Remote) Add(ctx context.Context, e domain.FavoriteEntry) (bool, error) {
	r.mu.Lock()
	_, dup := r.index[e.ProductID]
	r.mu.Unlock()
	if dup {
		return false, nil
	}

	if err := r.api.AddToWishlist(ctx, e.ProductID); err != nil {
		return false, err
	}

	r.mu.Lock()
	if _, dup := r.index[e.ProductID]; !dup {
		r.entries = append(r.entries, e)
		r.index[e.ProductID] = struct{}{}
	}
	r.mu.Unlock()
	return true, nil
}

// Remove deletes remotely; removing an id that is not saved is a no-op.
func (r *Remote) Remove(ctx context.Context, productID string) error {
	r.mu.Lock()
	_, ok := r.index[productID]
	r.mu.Unlock()
	if !ok {
		return nil
	}

	if err := r.api.RemoveFromWishlist(ctx, productID); err != nil {
		return err
	}

	r.mu.Lock()
	delete(r.index, productID)
	for i := range r.entries {
		if r.entries[i].ProductID == productID {
			r.entries = append(r.entries[:i], r.entries[i+1:]...)
			break
		}
	}
	r.mu.Unlock()
	return nil
}

func (r *Remote) Has(productID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.index[productID]
	return ok
}

// Clear removes every saved product, one delete per entry. The first
// failure stops the sweep; entries already deleted stay deleted.
func (r *Remote) Clear(ctx context.Context) error {
	for _, e := range r.Entries() {
		if err := r.Remove(ctx, e.ProductID); err != nil {
			return err
		}
	}
	return nil
}

func (r *Remote) Entries() []domain.FavoriteEntry {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.FavoriteEntry, len(r.entries))
	copy(out, r.entries)
	return out
}

func (r *Remote) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}
