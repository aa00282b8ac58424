package memory

import (
	"context"
	"testing"

	"techo/backend/internal/domain"
)

func TestLoadAbsentSlot(t *testing.T) {
	st := New()

	_, found, err := st.Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if found {
		t.Fatalf("fresh store should report an absent slot")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	st := New()
	ctx := context.Background()

	snap := domain.Snapshot{
		Categories: []domain.Category{{ID: "cat-1", Name: "General"}},
		Items:      []domain.Item{{ID: "item-1", Name: "Tea", PriceCents: 500, Quantity: 7, CategoryID: "cat-1"}},
		Bills:      []domain.Bill{{ID: "bill-1", Number: "B-0001", Date: "2026-08-29", TotalCents: 500, Items: []domain.BillLine{}}},
	}
	if err := st.Save(ctx, snap); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, found, err := st.Load(ctx)
	if err != nil || !found {
		t.Fatalf("load: found=%t err=%v", found, err)
	}
	if len(got.Categories) != 1 || len(got.Items) != 1 || len(got.Bills) != 1 {
		t.Fatalf("round trip lost data: %+v", got)
	}
	if got.Items[0].PriceCents != 500 || got.Bills[0].Number != "B-0001" {
		t.Fatalf("round trip mangled values: %+v", got)
	}
}

func TestStoreIsolatesCallers(t *testing.T) {
	st := New()
	ctx := context.Background()

	snap := domain.Snapshot{Items: []domain.Item{{ID: "item-1", Name: "Tea", Quantity: 7}}}
	if err := st.Save(ctx, snap); err != nil {
		t.Fatalf("save: %v", err)
	}

	// Mutating what the caller handed in or got back must not touch the slot.
	snap.Items[0].Quantity = 0
	first, _, _ := st.Load(ctx)
	first.Items[0].Quantity = 99

	second, _, _ := st.Load(ctx)
	if second.Items[0].Quantity != 7 {
		t.Fatalf("store leaked shared slices, got quantity %d", second.Items[0].Quantity)
	}
}
