package postgres

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"techo/backend/internal/domain"
)

// Integration test against a real database. Skipped unless
// TECHO_TEST_DATABASE_URL points at one.
func TestStoreRoundTrip(t *testing.T) {
	databaseURL := os.Getenv("TECHO_TEST_DATABASE_URL")
	if databaseURL == "" {
		t.Skip("TECHO_TEST_DATABASE_URL not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	key := fmt.Sprintf("techo-test-%d", time.Now().UnixNano())
	st, err := New(ctx, databaseURL, key)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	defer st.Close()

	if _, found, err := st.Load(ctx); err != nil || found {
		t.Fatalf("expected absent slot, found=%t err=%v", found, err)
	}

	snap := domain.Snapshot{
		Categories: []domain.Category{{ID: "cat-1", Name: "General"}},
		Items:      []domain.Item{{ID: "item-1", Name: "Tea", PriceCents: 500, Quantity: 7, CategoryID: "cat-1"}},
		Bills:      []domain.Bill{},
	}
	if err := st.Save(ctx, snap); err != nil {
		t.Fatalf("save: %v", err)
	}

	// Save is an upsert: a second write replaces, not duplicates.
	snap.Items[0].Quantity = 6
	if err := st.Save(ctx, snap); err != nil {
		t.Fatalf("second save: %v", err)
	}

	got, found, err := st.Load(ctx)
	if err != nil || !found {
		t.Fatalf("load: found=%t err=%v", found, err)
	}
	if len(got.Items) != 1 || got.Items[0].Quantity != 6 {
		t.Fatalf("expected upserted snapshot, got %+v", got)
	}
}
