package cli

import (
	"testing"
)

func TestParseProductRecord(t *testing.T) {
	product, err := parseProductRecord([]string{
		"Whole Milk", "3.49", "3.49", "gallon", "In Stock", "amazon", "https://example.com/milk",
	})
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if product.Title != "Whole Milk" || product.TotalPrice != 3.49 || product.Unit != "gallon" {
		t.Errorf("unexpected product: %+v", product)
	}
	if product.Link == nil || *product.Link != "https://example.com/milk" {
		t.Error("link column should be carried over")
	}
}

func TestParseProductRecordWithoutLink(t *testing.T) {
	product, err := parseProductRecord([]string{
		"Eggs", "2.10", "0.18", "dozen", "In Stock", "walmart",
	})
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if product.Link != nil {
		t.Error("missing link column should stay nil")
	}
}

func TestParseProductRecordErrors(t *testing.T) {
	if _, err := parseProductRecord([]string{"too", "short"}); err == nil {
		t.Error("expected an error for a truncated record")
	}
	if _, err := parseProductRecord([]string{"Milk", "not-a-price", "1.0", "gallon", "In Stock", "amazon"}); err == nil {
		t.Error("expected an error for a bad price")
	}
}
