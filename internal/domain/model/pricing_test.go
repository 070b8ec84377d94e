//go:build !integration

package model_test

import (
	"testing"

	"resume-checkout/internal/domain/model"
)

func TestFormatAmount(t *testing.T) {
	cases := []struct {
		amount   int64
		currency string
		want     string
	}{
		{29, "USD", "$29"},
		{1200, "PKR", "₨1,200"},
		{1234567, "INR", "₹1,234,567"},
		{99, "EUR", "€99"},
		{150, "AED", "AED 150"},
		{299, "SEK", "299 kr"},
		{29, "usd", "$29"},
		{500, "XYZ", "XYZ 500"},
		{-1200, "USD", "$-1,200"},
	}
	for _, c := range cases {
		if got := model.FormatAmount(c.amount, c.currency); got != c.want {
			t.Errorf("FormatAmount(%d, %q) = %q, want %q", c.amount, c.currency, got, c.want)
		}
	}
}

func TestValidProductType(t *testing.T) {
	if !model.ValidProductType(model.ProductTypeIndividual) || !model.ValidProductType(model.ProductTypeBundle) {
		t.Fatal("known types rejected")
	}
	if model.ValidProductType("subscription") {
		t.Fatal("unknown type accepted")
	}
}
