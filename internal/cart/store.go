// Package cart holds the in-memory cart state machine and the derived totals
// calculator. The Store is pure bookkeeping: no I/O, no locking (one cart
// belongs to one session), mutations only through the four operations, and
// every mutation notifies subscribed observers synchronously.
package cart

import (
	"github.com/google/uuid"

	"github.com/printhaus/printshop-platform/internal/models"
)

const (
	MinQuantity = 1
	MaxQuantity = 10
)

// Observer receives a snapshot after every mutation, on the mutating
// goroutine.
type Observer func(Snapshot)

// Snapshot is an immutable copy of the cart handed to observers.
type Snapshot struct {
	Items     []models.CartLineItem
	ItemCount int
}

// Store is an ordered collection of line items, uniquely keyed by product id.
// Adding an already-present product merges into its line instead of
// duplicating it.
type Store struct {
	items     []models.CartLineItem
	observers []Observer
}

func New() *Store {
	return &Store{}
}

// Restore rebuilds a store from persisted session state. Quantities are
// re-clamped so a restored cart always satisfies the [MinQuantity,
// MaxQuantity] invariant.
func Restore(items []models.CartLineItem) *Store {
	s := &Store{items: make([]models.CartLineItem, 0, len(items))}

	for _, li := range items {
		if li.Quantity < MinQuantity {
			continue
		}

		li.Quantity = clampQuantity(li.Quantity)
		s.items = append(s.items, li)
	}

	return s
}

// Subscribe registers an observer. Observers are invoked in subscription
// order, synchronously, after each mutation.
func (s *Store) Subscribe(fn Observer) {
	s.observers = append(s.observers, fn)
}

// AddItem merges quantity into an existing line for the product or appends a
// new line. The resulting quantity is silently clamped to MaxQuantity; there
// is no error path for exceeding the cap. A size or customization on an
// existing line is replaced by the incoming values.
func (s *Store) AddItem(line models.CartLineItem) {
	line.Quantity = clampQuantity(line.Quantity)

	for i := range s.items {
		if s.items[i].ProductID == line.ProductID {
			line.Quantity = clampQuantity(s.items[i].Quantity + line.Quantity)
			s.items[i] = line
			s.notify()

			return
		}
	}

	s.items = append(s.items, line)
	s.notify()
}

// UpdateQuantity sets the line's quantity, clamped to [MinQuantity,
// MaxQuantity]. A quantity below MinQuantity removes the line. An absent
// product id is a no-op, not an error.
func (s *Store) UpdateQuantity(productID uuid.UUID, quantity int) {
	for i := range s.items {
		if s.items[i].ProductID != productID {
			continue
		}

		if quantity < MinQuantity {
			s.items = append(s.items[:i], s.items[i+1:]...)
		} else {
			s.items[i].Quantity = clampQuantity(quantity)
		}

		s.notify()

		return
	}
}

// RemoveItem deletes the line if present; no-op otherwise.
func (s *Store) RemoveItem(productID uuid.UUID) {
	s.UpdateQuantity(productID, 0)
}

// Clear empties the cart unconditionally.
func (s *Store) Clear() {
	if len(s.items) == 0 {
		s.notify()
		return
	}

	s.items = s.items[:0]
	s.notify()
}

// Items returns a copy of the ordered line items.
func (s *Store) Items() []models.CartLineItem {
	out := make([]models.CartLineItem, len(s.items))
	copy(out, s.items)

	return out
}

func (s *Store) IsEmpty() bool {
	return len(s.items) == 0
}

// ItemCount is the sum of line quantities, e.g. for the cart badge.
func (s *Store) ItemCount() int {
	var n int

	for _, li := range s.items {
		n += li.Quantity
	}

	return n
}

func (s *Store) notify() {
	if len(s.observers) == 0 {
		return
	}

	snap := Snapshot{Items: s.Items(), ItemCount: s.ItemCount()}

	for _, fn := range s.observers {
		fn(snap)
	}
}

func clampQuantity(q int) int {
	if q < MinQuantity {
		return MinQuantity
	}

	if q > MaxQuantity {
		return MaxQuantity
	}

	return q
}
