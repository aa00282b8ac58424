package state

import (
	"fmt"
	"sync"

	"techo/backend/internal/domain"
)

// State owns the authoritative in-memory model: categories, items, finalized
// bills and the session-scoped working bill. Every multi-entity rule (cascade
// delete, cumulative stock checks, the all-or-nothing finalize) runs inside a
// single critical section here so no partially-applied state is observable.
type State struct {
	mu         sync.RWMutex
	categories []domain.Category
	items      []domain.Item
	bills      []domain.Bill
	working    []domain.BillLine
}

func New() *State {
	return &State{}
}

// Restore replaces the persisted portion of the state with a loaded snapshot.
// The working bill is left untouched: it is session-only and never persisted.
func (s *State) Restore(snap domain.Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	clone := snap.Clone()
	s.categories = clone.Categories
	s.items = clone.Items
	s.bills = clone.Bills
}

// Snapshot returns a deep copy of the persisted portion of the state.
func (s *State) Snapshot() domain.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return domain.Snapshot{
		Categories: s.categories,
		Items:      s.items,
		Bills:      s.bills,
	}.Clone()
}

// Empty reports whether the state has neither categories nor items, which is
// the first-run condition that triggers default seeding.
func (s *State) Empty() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.categories) == 0 && len(s.items) == 0
}

func (s *State) Categories() []domain.Category {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Category, len(s.categories))
	copy(out, s.categories)
	return out
}

func (s *State) Items() []domain.Item {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Item, len(s.items))
	copy(out, s.items)
	return out
}

func (s *State) Bills() []domain.Bill {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Bill, 0, len(s.bills))
	for _, bill := range s.bills {
		lines := make([]domain.BillLine, len(bill.Items))
		copy(lines, bill.Items)
		bill.Items = lines
		out = append(out, bill)
	}
	return out
}

func (s *State) AddCategory(cat domain.Category) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.categories = append(s.categories, cat)
}

// CreateItem appends an item. A non-empty CategoryID must reference an
// existing category; dangling references are rejected rather than silently
// treated as uncategorized.
func (s *State) CreateItem(item domain.Item) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if item.CategoryID != "" && !s.categoryExistsLocked(item.CategoryID) {
		return fmt.Errorf("%w: unknown category %q", domain.ErrValidation, item.CategoryID)
	}
	s.items = append(s.items, item)
	return nil
}

// EditItem overwrites the mutable fields of an item and returns the result.
// The new quantity must still cover everything staged for the item in the
// working bill: finalize decrements per staged line, so letting stock drop
// below the staged cumulative would commit a negative quantity.
func (s *State) EditItem(itemID string, name string, priceCents int64, quantity int) (domain.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].ID != itemID {
			continue
		}
		staged := 0
		for _, line := range s.working {
			if line.ItemID == itemID {
				staged += line.Quantity
			}
		}
		if quantity < staged {
			return domain.Item{}, fmt.Errorf("%w: quantity %d is below %d already in the working bill",
				domain.ErrInsufficientStock, quantity, staged)
		}
		s.items[i].Name = name
		s.items[i].PriceCents = priceCents
		s.items[i].Quantity = quantity
		return s.items[i], nil
	}
	return domain.Item{}, fmt.Errorf("%w: item %q", domain.ErrNotFound, itemID)
}

// DeleteCategory removes the category and cascades to every item referencing
// it, so no dangling categoryId survives. Returns how many items were removed
// and whether the category existed at all.
func (s *State) DeleteCategory(categoryID string) (removedItems int, existed bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.categories[:0]
	for _, cat := range s.categories {
		if cat.ID == categoryID {
			existed = true
			continue
		}
		kept = append(kept, cat)
	}
	s.categories = kept
	if !existed {
		return 0, false
	}

	keptItems := s.items[:0]
	for _, item := range s.items {
		if item.CategoryID == categoryID {
			removedItems++
			continue
		}
		keptItems = append(keptItems, item)
	}
	s.items = keptItems
	return removedItems, true
}

// DeleteItem removes the item if present. Lines already snapshotted into past
// bills keep their copied values and are not touched.
func (s *State) DeleteItem(itemID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, item := range s.items {
		if item.ID == itemID {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return true
		}
	}
	return false
}

// BillableItems lists items restricted to a category filter. The filter is
// either domain.CategoryFilterAll or a category id. Pure read.
func (s *State) BillableItems(filter string) []domain.Item {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Item, 0, len(s.items))
	for _, item := range s.items {
		if filter != domain.CategoryFilterAll && item.CategoryID != filter {
			continue
		}
		out = append(out, item)
	}
	return out
}

// StageLine validates availability and appends a snapshot line to the working
// bill. The stock check is cumulative: the requested quantity plus everything
// already staged for the same item must fit within live stock. Stock itself
// is only decremented at finalize.
func (s *State) StageLine(lineID string, itemID string, quantity int) (domain.BillLine, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var item *domain.Item
	for i := range s.items {
		if s.items[i].ID == itemID {
			item = &s.items[i]
			break
		}
	}
	if item == nil {
		return domain.BillLine{}, fmt.Errorf("%w: item %q", domain.ErrNotFound, itemID)
	}

	staged := 0
	for _, line := range s.working {
		if line.ItemID == itemID {
			staged += line.Quantity
		}
	}
	if staged+quantity > item.Quantity {
		return domain.BillLine{}, fmt.Errorf("%w: %d requested, %d already in bill, %d available",
			domain.ErrInsufficientStock, quantity, staged, item.Quantity)
	}

	line := domain.BillLine{
		ID:         lineID,
		ItemID:     item.ID,
		Name:       item.Name,
		PriceCents: item.PriceCents,
		Quantity:   quantity,
		TotalCents: item.PriceCents * int64(quantity),
	}
	s.working = append(s.working, line)
	return line, nil
}

// RemoveLine drops a working-bill line if present; no-op otherwise.
func (s *State) RemoveLine(lineID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, line := range s.working {
		if line.ID == lineID {
			s.working = append(s.working[:i], s.working[i+1:]...)
			return true
		}
	}
	return false
}

// Working returns the current lines, their running total and the display
// number the next finalized bill will receive.
func (s *State) Working() domain.WorkingBill {
	s.mu.RLock()
	defer s.mu.RUnlock()

	lines := make([]domain.BillLine, len(s.working))
	copy(lines, s.working)

	var total int64
	for _, line := range lines {
		total += line.TotalCents
	}

	return domain.WorkingBill{
		Lines:      lines,
		TotalCents: total,
		NextNumber: s.nextNumberLocked(),
	}
}

// Finalize turns the working bill into an immutable Bill: assigns the
// sequential number, sums the total, decrements stock per line (silently
// skipping items deleted since they were staged), appends the bill to history
// and clears the working bill. All of it happens in one critical section so a
// failure leaves nothing half-applied; the only failure mode is an empty bill.
func (s *State) Finalize(billID string, date string, customer string, whatsapp string, notes string) (domain.Bill, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.working) == 0 {
		return domain.Bill{}, fmt.Errorf("%w: add at least one line before finalizing", domain.ErrEmptyBill)
	}

	lines := make([]domain.BillLine, len(s.working))
	copy(lines, s.working)

	var total int64
	for _, line := range lines {
		total += line.TotalCents
	}

	bill := domain.Bill{
		ID:         billID,
		Number:     s.nextNumberLocked(),
		Date:       date,
		Customer:   customer,
		WhatsApp:   whatsapp,
		Notes:      notes,
		Items:      lines,
		TotalCents: total,
	}

	for _, line := range lines {
		for i := range s.items {
			if s.items[i].ID == line.ItemID {
				s.items[i].Quantity -= line.Quantity
				break
			}
		}
	}

	s.bills = append(s.bills, bill)
	s.working = nil
	return bill, nil
}

// Stats computes the dashboard view for a given day. Pure read.
func (s *State) Stats(today string, lowStockThreshold int) domain.DashboardStats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := domain.DashboardStats{
		ItemCount:   len(s.items),
		RecentBills: []domain.Bill{},
	}
	for _, item := range s.items {
		stats.TotalStock += item.Quantity
		if item.Quantity <= lowStockThreshold {
			stats.LowStockCount++
		}
	}

	todays := make([]domain.Bill, 0, 8)
	for _, bill := range s.bills {
		if bill.Date != today {
			continue
		}
		todays = append(todays, bill)
		stats.TodaysRevenueCents += bill.TotalCents
	}
	stats.BillsToday = len(todays)

	// Last five of today's bills, newest first.
	start := len(todays) - 5
	if start < 0 {
		start = 0
	}
	for i := len(todays) - 1; i >= start; i-- {
		recent := todays[i]
		lines := make([]domain.BillLine, len(recent.Items))
		copy(lines, recent.Items)
		recent.Items = lines
		stats.RecentBills = append(stats.RecentBills, recent)
	}

	return stats
}

func (s *State) categoryExistsLocked(categoryID string) bool {
	for _, cat := range s.categories {
		if cat.ID == categoryID {
			return true
		}
	}
	return false
}

func (s *State) nextNumberLocked() string {
	return fmt.Sprintf("B-%04d", len(s.bills)+1)
}
