package service

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"techo/backend/internal/domain"
	"techo/backend/internal/xid"
)

// ListBillableItems restricts items to a category filter:
// domain.CategoryFilterAll (or empty) for everything, else a category id.
func (s *Service) ListBillableItems(_ context.Context, categoryFilter string) ([]domain.Item, error) {
	filter := strings.TrimSpace(categoryFilter)
	if filter == "" {
		filter = domain.CategoryFilterAll
	}
	return s.state.BillableItems(filter), nil
}

// AddLine stages an item snapshot onto the working bill. Stock is checked
// cumulatively against everything already staged for the same item but is not
// decremented until finalize. The cart is ephemeral, so nothing is persisted.
func (s *Service) AddLine(_ context.Context, req domain.BillLineRequest) (domain.BillLine, error) {
	if req.Qty <= 0 {
		return domain.BillLine{}, fmt.Errorf("%w: quantity must be positive", domain.ErrValidation)
	}
	return s.state.StageLine(xid.New("line"), strings.TrimSpace(req.ItemID), req.Qty)
}

// RemoveLine drops a working-bill line; removing an unknown id is a no-op.
func (s *Service) RemoveLine(_ context.Context, lineID string) error {
	s.state.RemoveLine(lineID)
	return nil
}

// WorkingBill is the read-only view of the in-progress bill.
func (s *Service) WorkingBill(_ context.Context) (domain.WorkingBill, error) {
	return s.state.Working(), nil
}

func (s *Service) ListBills(_ context.Context) ([]domain.Bill, error) {
	return s.state.Bills(), nil
}

// Finalize commits the working bill: numbers it, dates it with today, applies
// the stock decrements, archives it and clears the cart, then persists the
// snapshot. The in-memory commit is all-or-nothing; a persist failure is
// returned to the caller as-is since no recovery path exists at this scope.
func (s *Service) Finalize(ctx context.Context, req domain.BillFinalizeRequest) (domain.Bill, error) {
	bill, err := s.state.Finalize(
		xid.New("bill"),
		s.clock().UTC().Format(domain.DateLayout),
		strings.TrimSpace(req.Customer),
		strings.TrimSpace(req.WhatsApp),
		strings.TrimSpace(req.Notes),
	)
	if err != nil {
		return domain.Bill{}, err
	}

	log.Printf("[service] bill finalized number=%s lines=%d total=%d", bill.Number, len(bill.Items), bill.TotalCents)

	if err := s.persist(ctx); err != nil {
		return domain.Bill{}, err
	}
	return bill, nil
}

// DashboardStats computes the derived stock/sales view for a day. An empty
// day means today. Pure read, no mutation.
func (s *Service) DashboardStats(_ context.Context, today string) (domain.DashboardStats, error) {
	day := strings.TrimSpace(today)
	if day == "" {
		day = s.clock().UTC().Format(domain.DateLayout)
	} else if _, err := time.Parse(domain.DateLayout, day); err != nil {
		return domain.DashboardStats{}, fmt.Errorf("%w: date must be %s", domain.ErrValidation, domain.DateLayout)
	}

	return s.state.Stats(day, s.lowStockThreshold), nil
}
