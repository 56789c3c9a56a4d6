package cart

import "verda/models"

// SetItem returns items with the given line set. An existing line for the
// same product gets its quantity replaced, not incremented; otherwise the
// line is appended. Quantity is clamped to [1, countInStock].
func SetItem(items []models.CartItem, item models.CartItem) []models.CartItem {
	if item.Quantity < 1 {
		item.Quantity = 1
	}
	if item.CountInStock > 0 && item.Quantity > item.CountInStock {
		item.Quantity = item.CountInStock
	}

	for i, it := range items {
		if it.ProductID == item.ProductID {
			items[i] = item
			return items
		}
	}
	return append(items, item)
}

// RemoveItem drops the line for productID. Absent lines are a no-op.
func RemoveItem(items []models.CartItem, productID string) []models.CartItem {
	out := items[:0]
	for _, it := range items {
		if it.ProductID != productID {
			out = append(out, it)
		}
	}
	return out
}
