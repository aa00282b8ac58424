package state

import (
	"errors"
	"reflect"
	"testing"

	"techo/backend/internal/domain"
)

func TestRestoreLeavesWorkingBillAlone(t *testing.T) {
	st := New()
	if err := st.CreateItem(domain.Item{ID: "item-1", Name: "Tea", PriceCents: 500, Quantity: 10}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := st.StageLine("line-1", "item-1", 2); err != nil {
		t.Fatalf("stage: %v", err)
	}

	st.Restore(domain.Snapshot{
		Items: []domain.Item{{ID: "item-2", Name: "Coffee", PriceCents: 900, Quantity: 4}},
	})

	working := st.Working()
	if len(working.Lines) != 1 || working.Lines[0].ID != "line-1" {
		t.Fatalf("restore must not clear the working bill, got %+v", working.Lines)
	}
	items := st.Items()
	if len(items) != 1 || items[0].ID != "item-2" {
		t.Fatalf("restore must replace items, got %+v", items)
	}
}

func TestSnapshotIsDetachedCopy(t *testing.T) {
	st := New()
	st.AddCategory(domain.Category{ID: "cat-1", Name: "General"})
	if err := st.CreateItem(domain.Item{ID: "item-1", Name: "Tea", PriceCents: 500, Quantity: 10, CategoryID: "cat-1"}); err != nil {
		t.Fatalf("create: %v", err)
	}

	snap := st.Snapshot()
	snap.Items[0].Quantity = 0
	snap.Categories[0].Name = "mutated"

	if st.Items()[0].Quantity != 10 || st.Categories()[0].Name != "General" {
		t.Fatalf("mutating a snapshot leaked into live state")
	}
}

func TestCreateItemRejectsDanglingCategory(t *testing.T) {
	st := New()
	err := st.CreateItem(domain.Item{ID: "item-1", Name: "Tea", CategoryID: "cat-missing"})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if len(st.Items()) != 0 {
		t.Fatalf("rejected item must not be stored")
	}
}

func TestDeleteCategoryCascadeCounts(t *testing.T) {
	st := New()
	st.AddCategory(domain.Category{ID: "cat-1", Name: "Dairy"})
	for _, item := range []domain.Item{
		{ID: "item-1", Name: "Milk", CategoryID: "cat-1"},
		{ID: "item-2", Name: "Butter", CategoryID: "cat-1"},
		{ID: "item-3", Name: "Bread"},
	} {
		if err := st.CreateItem(item); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	removed, existed := st.DeleteCategory("cat-1")
	if !existed || removed != 2 {
		t.Fatalf("expected 2 cascaded removals, got removed=%d existed=%t", removed, existed)
	}
	if removed, existed = st.DeleteCategory("cat-1"); existed || removed != 0 {
		t.Fatalf("second delete should report absence, got removed=%d existed=%t", removed, existed)
	}
	items := st.Items()
	if len(items) != 1 || items[0].ID != "item-3" {
		t.Fatalf("expected only the uncategorized item, got %+v", items)
	}
}

func TestEditItemKeepsStagedQuantityCovered(t *testing.T) {
	st := New()
	if err := st.CreateItem(domain.Item{ID: "item-1", Name: "Tea", PriceCents: 500, Quantity: 5}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := st.StageLine("line-1", "item-1", 5); err != nil {
		t.Fatalf("stage: %v", err)
	}

	// Dropping stock below the staged cumulative would drive the finalize
	// decrement negative, so the edit is refused.
	if _, err := st.EditItem("item-1", "Tea", 500, 2); !errors.Is(err, domain.ErrInsufficientStock) {
		t.Fatalf("expected insufficient stock, got %v", err)
	}
	if st.Items()[0].Quantity != 5 {
		t.Fatalf("rejected edit must not change the item, got %d", st.Items()[0].Quantity)
	}

	// Exactly the staged amount is still allowed; stock bottoms out at zero.
	if _, err := st.EditItem("item-1", "Tea", 500, 5); err != nil {
		t.Fatalf("edit to staged amount: %v", err)
	}
	if _, err := st.Finalize("bill-1", "2026-08-29", "", "", ""); err != nil {
		t.Fatalf("finalize: %v", err)
	}
	if got := st.Items()[0].Quantity; got != 0 {
		t.Fatalf("expected quantity 0 after finalize, got %d", got)
	}
}

func TestStageLineCumulativeAcrossLines(t *testing.T) {
	st := New()
	if err := st.CreateItem(domain.Item{ID: "item-1", Name: "Eggs", PriceCents: 100, Quantity: 5}); err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := st.StageLine("line-1", "item-1", 3); err != nil {
		t.Fatalf("first stage: %v", err)
	}
	if _, err := st.StageLine("line-2", "item-1", 3); !errors.Is(err, domain.ErrInsufficientStock) {
		t.Fatalf("expected insufficient stock, got %v", err)
	}
	if !st.RemoveLine("line-1") {
		t.Fatalf("remove should find the staged line")
	}
	if _, err := st.StageLine("line-3", "item-1", 5); err != nil {
		t.Fatalf("full stock after removal should stage: %v", err)
	}
}

func TestFinalizeIsAtomic(t *testing.T) {
	st := New()
	if err := st.CreateItem(domain.Item{ID: "item-1", Name: "Tea", PriceCents: 500, Quantity: 10}); err != nil {
		t.Fatalf("create: %v", err)
	}

	// Empty working bill: the failure leaves everything untouched.
	before := st.Snapshot()
	if _, err := st.Finalize("bill-1", "2026-08-29", "", "", ""); !errors.Is(err, domain.ErrEmptyBill) {
		t.Fatalf("expected empty bill error, got %v", err)
	}
	if !reflect.DeepEqual(before, st.Snapshot()) {
		t.Fatalf("failed finalize mutated state")
	}

	if _, err := st.StageLine("line-1", "item-1", 4); err != nil {
		t.Fatalf("stage: %v", err)
	}
	bill, err := st.Finalize("bill-1", "2026-08-29", "Asha", "+91", "note")
	if err != nil {
		t.Fatalf("finalize: %v", err)
	}

	if bill.Number != "B-0001" || bill.TotalCents != 2000 {
		t.Fatalf("unexpected bill: %+v", bill)
	}
	if st.Items()[0].Quantity != 6 {
		t.Fatalf("stock should drop to 6, got %d", st.Items()[0].Quantity)
	}
	if len(st.Working().Lines) != 0 {
		t.Fatalf("working bill should be cleared")
	}
	if len(st.Bills()) != 1 {
		t.Fatalf("bill should be archived")
	}
}

func TestFinalizeWithDeletedItemSkipsDecrement(t *testing.T) {
	st := New()
	if err := st.CreateItem(domain.Item{ID: "item-1", Name: "Gone", PriceCents: 300, Quantity: 5}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := st.CreateItem(domain.Item{ID: "item-2", Name: "Kept", PriceCents: 200, Quantity: 5}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := st.StageLine("line-1", "item-1", 2); err != nil {
		t.Fatalf("stage: %v", err)
	}
	if _, err := st.StageLine("line-2", "item-2", 1); err != nil {
		t.Fatalf("stage: %v", err)
	}
	if !st.DeleteItem("item-1") {
		t.Fatalf("delete should find the item")
	}

	bill, err := st.Finalize("bill-1", "2026-08-29", "", "", "")
	if err != nil {
		t.Fatalf("finalize: %v", err)
	}
	if bill.TotalCents != 800 || len(bill.Items) != 2 {
		t.Fatalf("deleted item stays on the bill at snapshot values, got %+v", bill)
	}
	items := st.Items()
	if len(items) != 1 || items[0].Quantity != 4 {
		t.Fatalf("only the surviving item decrements, got %+v", items)
	}
}
