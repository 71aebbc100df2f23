package catalog

import (
	"context"
	"sync"
)

// MemoryStore is an in-memory Provider used by tests and local runs.
type MemoryStore struct {
	mu       sync.RWMutex
	products []Product
	lines    []OrderLine
	err      error
}

var _ Provider = (*MemoryStore)(nil)

// NewMemoryStore seeds a store with the given snapshot.
func NewMemoryStore(products []Product, lines []OrderLine) *MemoryStore {
	m := &MemoryStore{}
	m.Replace(products, lines)
	return m
}

// Replace swaps the stored snapshot.
func (m *MemoryStore) Replace(products []Product, lines []OrderLine) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.products = append([]Product(nil), products...)
	m.lines = append([]OrderLine(nil), lines...)
}

// AddOrderLine appends a sale to the ledger.
func (m *MemoryStore) AddOrderLine(line OrderLine) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lines = append(m.lines, line)
}

// FailWith makes subsequent reads return err. A nil err clears it.
func (m *MemoryStore) FailWith(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// ListAllProducts returns a copy of the stored products.
func (m *MemoryStore) ListAllProducts(ctx context.Context) ([]Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.err != nil {
		return nil, m.err
	}
	return append([]Product(nil), m.products...), nil
}

// ListAllOrderLines returns a copy of the stored ledger.
func (m *MemoryStore) ListAllOrderLines(ctx context.Context) ([]OrderLine, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.err != nil {
		return nil, m.err
	}
	return append([]OrderLine(nil), m.lines...), nil
}
