package products

import (
	"testing"

	"verda/models"
)

func catalog() []models.Product {
	return []models.Product{
		{ProductID: "p1", Brand: "Acme", CategoryID: "c1", Price: 100},
		{ProductID: "p2", Brand: "Birch", CategoryID: "c2", Price: 210},
		{ProductID: "p3", Brand: "Acme", CategoryID: "c1", Price: 15},
	}
}

func ids(prods []models.Product) []string {
	out := make([]string, len(prods))
	for i, p := range prods {
		out[i] = p.ProductID
	}
	return out
}

func equalIDs(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestPriceTextIsSubstringMatch(t *testing.T) {
	// "1" matches prices whose string form contains the digit: 100 and
	// 210, but not 15
	got := ids(FilterProducts(catalog(), nil, "", "1"))
	if !equalIDs(got, []string{"p1", "p2"}) {
		t.Errorf(`price "1": got %v, want [p1 p2]`, got)
	}

	got = ids(FilterProducts(catalog(), nil, "", "21"))
	if !equalIDs(got, []string{"p2"}) {
		t.Errorf(`price "21": got %v, want [p2]`, got)
	}
}

func TestPriceTextExactNumericMatch(t *testing.T) {
	got := ids(FilterProducts(catalog(), nil, "", "15"))
	if !equalIDs(got, []string{"p3"}) {
		t.Errorf(`price "15": got %v, want [p3]`, got)
	}
}

func TestBrandIsExclusive(t *testing.T) {
	got := ids(FilterProducts(catalog(), nil, "Acme", ""))
	if !equalIDs(got, []string{"p1", "p3"}) {
		t.Errorf("brand Acme: got %v, want [p1 p3]", got)
	}

	got = ids(FilterProducts(catalog(), nil, "Nonesuch", ""))
	if len(got) != 0 {
		t.Errorf("unknown brand: got %v, want empty", got)
	}
}

func TestCategoriesAreORd(t *testing.T) {
	got := ids(FilterProducts(catalog(), []string{"c1", "c2"}, "", ""))
	if !equalIDs(got, []string{"p1", "p2", "p3"}) {
		t.Errorf("categories c1+c2: got %v, want all", got)
	}

	got = ids(FilterProducts(catalog(), []string{"c2"}, "", ""))
	if !equalIDs(got, []string{"p2"}) {
		t.Errorf("category c2: got %v, want [p2]", got)
	}
}

func TestNoFiltersReturnsEverything(t *testing.T) {
	got := FilterProducts(catalog(), nil, "", "")
	if len(got) != 3 {
		t.Errorf("no filters: got %d products, want 3", len(got))
	}
}

func TestFiltersCombine(t *testing.T) {
	got := ids(FilterProducts(catalog(), []string{"c1"}, "Acme", "1"))
	// c1 + Acme leaves p1 (100) and p3 (15); "1" keeps only 100
	if !equalIDs(got, []string{"p1"}) {
		t.Errorf("combined filters: got %v, want [p1]", got)
	}
}
