package inventory

import (
	"fmt"
	"sync"
)

// DefaultCapacity is the fill level used by RestockAll for products whose
// catalog entry does not declare one.
const DefaultCapacity = 10

// Product describes a single vending slot. Price is expressed in the smallest
// currency unit and is fixed for the product's lifetime; only Stock changes.
type Product struct {
	ID       string `yaml:"id" json:"id"`
	Name     string `yaml:"name" json:"name"`
	Price    int64  `yaml:"price" json:"price"`
	Stock    int    `yaml:"stock" json:"stock"`
	Capacity int    `yaml:"capacity,omitempty" json:"capacity"`
}

func (p Product) validate() error {
	if p.ID == "" {
		return ErrEmptyProductID
	}
	if p.Price < 0 {
		return fmt.Errorf("product %q: %w", p.ID, ErrNegativePrice)
	}
	if p.Stock < 0 {
		return fmt.Errorf("product %q: %w", p.ID, ErrNegativeStock)
	}
	return nil
}

// Inventory holds the machine's products keyed by id.
// All access is guarded by a RWMutex so the holder stays consistent even if a
// caller skips the controller's own serialization.
type Inventory struct {
	mu       sync.RWMutex
	products map[string]*Product
	order    []string // registration order, keeps Snapshot stable
}

// New creates an inventory pre-populated with the given products.
func New(products ...Product) (*Inventory, error) {
	inv := &Inventory{products: make(map[string]*Product, len(products))}
	for _, p := range products {
		if err := inv.Add(p); err != nil {
			return nil, err
		}
	}
	return inv, nil
}

// MustNew creates an inventory and panics on invalid products, following the
// fail-fast pattern for startup wiring.
func MustNew(products ...Product) *Inventory {
	inv, err := New(products...)
	if err != nil {
		panic(fmt.Sprintf("failed to create inventory: %v", err))
	}
	return inv
}

// Add registers a new product. The id must be unique; price and stock must be
// non-negative. A zero capacity defaults to DefaultCapacity.
func (i *Inventory) Add(p Product) error {
	if err := p.validate(); err != nil {
		return err
	}
	if p.Capacity <= 0 {
		p.Capacity = DefaultCapacity
	}

	i.mu.Lock()
	defer i.mu.Unlock()

	if _, exists := i.products[p.ID]; exists {
		return NewDuplicateProductError(p.ID)
	}
	i.products[p.ID] = &p
	i.order = append(i.order, p.ID)
	return nil
}

// Get returns a copy of the product and whether it exists. No side effects.
func (i *Inventory) Get(id string) (Product, bool) {
	i.mu.RLock()
	defer i.mu.RUnlock()

	p, ok := i.products[id]
	if !ok {
		return Product{}, false
	}
	return *p, true
}

// IsAvailable reports whether the product exists and has stock remaining.
func (i *Inventory) IsAvailable(id string) bool {
	i.mu.RLock()
	defer i.mu.RUnlock()

	p, ok := i.products[id]
	return ok && p.Stock > 0
}

// Decrement reduces the product's stock by one. It performs no payment logic;
// callers must have verified availability and funds before invoking it.
func (i *Inventory) Decrement(id string) error {
	i.mu.Lock()
	defer i.mu.Unlock()

	p, ok := i.products[id]
	if !ok {
		return NewUnknownProductError(id)
	}
	if p.Stock == 0 {
		return NewOutOfStockError(id)
	}
	p.Stock--
	return nil
}

// Restock adds qty units to the product's stock. Unknown ids and non-positive
// quantities are ignored: restocking never fails.
func (i *Inventory) Restock(id string, qty int) {
	if qty <= 0 {
		return
	}

	i.mu.Lock()
	defer i.mu.Unlock()

	if p, ok := i.products[id]; ok {
		p.Stock += qty
	}
}

// RestockMany applies Restock for every entry of the quantity map.
func (i *Inventory) RestockMany(quantities map[string]int) {
	for id, qty := range quantities {
		i.Restock(id, qty)
	}
}

// RestockAll tops every product up to its capacity. Stock above capacity is
// left untouched; RestockAll never reduces stock.
func (i *Inventory) RestockAll() {
	i.mu.Lock()
	defer i.mu.Unlock()

	for _, p := range i.products {
		if p.Stock < p.Capacity {
			p.Stock = p.Capacity
		}
	}
}

// Snapshot returns a copy of all products in registration order.
func (i *Inventory) Snapshot() []Product {
	i.mu.RLock()
	defer i.mu.RUnlock()

	out := make([]Product, 0, len(i.order))
	for _, id := range i.order {
		out = append(out, *i.products[id])
	}
	return out
}

// Len returns the number of registered products.
func (i *Inventory) Len() int {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return len(i.products)
}
