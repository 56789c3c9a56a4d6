package cart

import (
	"testing"

	"verda/models"
	"verda/pricing"
)

func TestSetItemReplacesQuantity(t *testing.T) {
	items := []models.CartItem{
		{ProductID: "p1", Price: 100, CountInStock: 10, Quantity: 2},
	}

	items = SetItem(items, models.CartItem{ProductID: "p1", Price: 100, CountInStock: 10, Quantity: 5})

	if len(items) != 1 {
		t.Fatalf("expected 1 line, got %d", len(items))
	}
	if items[0].Quantity != 5 {
		t.Errorf("quantity = %d, want 5 (set, not added)", items[0].Quantity)
	}
}

func TestSetItemAppendsNewProduct(t *testing.T) {
	items := []models.CartItem{
		{ProductID: "p1", Price: 100, CountInStock: 10, Quantity: 2},
	}

	items = SetItem(items, models.CartItem{ProductID: "p2", Price: 250, CountInStock: 3, Quantity: 1})

	if len(items) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(items))
	}
}

func TestSetItemClampsToStock(t *testing.T) {
	items := SetItem(nil, models.CartItem{ProductID: "p1", CountInStock: 3, Quantity: 7})
	if items[0].Quantity != 3 {
		t.Errorf("quantity = %d, want clamp at stock 3", items[0].Quantity)
	}

	items = SetItem(nil, models.CartItem{ProductID: "p2", CountInStock: 3, Quantity: 0})
	if items[0].Quantity != 1 {
		t.Errorf("quantity = %d, want floor of 1", items[0].Quantity)
	}
}

func TestRemoveItemAbsentIsNoop(t *testing.T) {
	items := []models.CartItem{
		{ProductID: "p1", Quantity: 2},
		{ProductID: "p2", Quantity: 1},
	}

	items = RemoveItem(items, "p3")
	if len(items) != 2 {
		t.Fatalf("expected 2 lines after removing absent id, got %d", len(items))
	}

	items = RemoveItem(items, "p1")
	if len(items) != 1 || items[0].ProductID != "p2" {
		t.Errorf("expected only p2 left, got %+v", items)
	}
}

func TestTotalsFollowMutations(t *testing.T) {
	var items []models.CartItem
	items = SetItem(items, models.CartItem{ProductID: "p1", Price: 500, CountInStock: 10, Quantity: 2})
	items = SetItem(items, models.CartItem{ProductID: "p2", Price: 250, CountInStock: 10, Quantity: 1})

	tot := pricing.Compute(items, func(float64) float64 { return 50 }, nil)
	if tot.ItemsPrice != 1250 || tot.TotalPrice != 1300 {
		t.Errorf("totals = %+v, want items 1250 total 1300", tot)
	}

	items = RemoveItem(items, "p2")
	tot = pricing.Compute(items, func(float64) float64 { return 50 }, nil)
	if tot.ItemsPrice != 1000 {
		t.Errorf("after remove, itemsPrice = %v, want 1000", tot.ItemsPrice)
	}
}
