package candidate

import (
	"testing"

	"github.com/shelfscan/backend/internal/domain"
)

func TestClassify(t *testing.T) {
	f := NewFilter(nil, false)

	tests := []struct {
		name string
		url  string
		want Classification
	}{
		{"target item page", "https://www.target.com/p/cerave-cleanser/-/A-123456", Direct},
		{"walmart item page", "https://www.walmart.com/ip/CeraVe-Cleanser/987654", Direct},
		{"amazon dp page", "https://www.amazon.com/dp/B01MSSDEPK", Direct},
		{"generic product path", "https://shop.example.com/products/cerave-cleanser", Direct},
		{"search page", "https://www.target.com/search?searchTerm=cerave", Rejected},
		{"amazon search", "https://www.amazon.com/s?k=cerave", Rejected},
		{"category browse", "https://www.walmart.com/browse/beauty/skincare", Rejected},
		{"category segment", "https://www.ulta.com/c/skincare", Rejected},
		{"unknown shape is provisional", "https://www.example.com/cerave-hydrating-cleanser", Provisional},
		{"garbage url", "://not-a-url", Rejected},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := f.Classify(tt.url); got != tt.want {
				t.Errorf("Classify(%q) = %v, want %v", tt.url, got, tt.want)
			}
		})
	}
}

func TestApply(t *testing.T) {
	f := NewFilter([]string{"target.com", "walmart.com"}, false)
	origin := "CeraVe Hydrating Facial Cleanser, 16 fl oz"

	t.Run("keeps matching candidates and derives fields", func(t *testing.T) {
		hits := []domain.SearchHit{
			{
				Title: "CeraVe Hydrating Facial Cleanser - 16 fl oz",
				URL:   "https://www.target.com/p/cerave-cleanser/-/A-123456",
			},
		}

		got := f.Apply(origin, hits)
		if len(got) != 1 {
			t.Fatalf("got %d candidates, want 1", len(got))
		}
		c := got[0]
		if c.Retailer != "target" {
			t.Errorf("retailer = %q, want target", c.Retailer)
		}
		if c.Size == nil || c.Size.Channel != domain.UnitVolume {
			t.Errorf("size = %v, want parsed volume size", c.Size)
		}
		if c.DisplayName == "" || c.ProductName == "" {
			t.Errorf("derived names should be populated: %+v", c)
		}
	})

	t.Run("drops wrong brand", func(t *testing.T) {
		hits := []domain.SearchHit{
			{
				Title: "Neutrogena Hydrating Facial Cleanser 16 fl oz",
				URL:   "https://www.target.com/p/neutrogena-cleanser/-/A-222",
			},
		}
		if got := f.Apply(origin, hits); len(got) != 0 {
			t.Errorf("wrong-brand hit should be dropped, got %+v", got)
		}
	})

	t.Run("drops wrong product line", func(t *testing.T) {
		hits := []domain.SearchHit{
			{
				Title: "CeraVe Eye Repair Gel 0.5 oz",
				URL:   "https://www.target.com/p/cerave-eye-repair/-/A-333",
			},
		}
		if got := f.Apply(origin, hits); len(got) != 0 {
			t.Errorf("wrong-line hit should be dropped, got %+v", got)
		}
	})

	t.Run("drops non-allow-listed domain", func(t *testing.T) {
		hits := []domain.SearchHit{
			{
				Title: "CeraVe Hydrating Facial Cleanser 16 fl oz",
				URL:   "https://www.sketchy-deals.example/p/cerave",
			},
		}
		if got := f.Apply(origin, hits); len(got) != 0 {
			t.Errorf("non-allow-listed hit should be dropped, got %+v", got)
		}
	})

	t.Run("shade mismatch does not reject", func(t *testing.T) {
		originShaded := `Maybelline Fit Me Foundation, Porcelain`
		hits := []domain.SearchHit{
			{
				Title: "Maybelline Fit Me Foundation, Ivory",
				URL:   "https://www.target.com/p/maybelline-fit-me/-/A-444",
			},
		}
		if got := f.Apply(originShaded, hits); len(got) != 1 {
			t.Errorf("shade mismatch must be a soft warning, got %d candidates", len(got))
		}
	})
}

func TestExtractIdentifiers(t *testing.T) {
	t.Run("leading brand run stops at lowercase", func(t *testing.T) {
		id := ExtractIdentifiers("CeraVe hydrating facial cleanser, 16 fl oz")
		if id.Brand != "CeraVe" {
			t.Errorf("brand = %q, want CeraVe", id.Brand)
		}
	})

	t.Run("title-case run is absorbed into brand", func(t *testing.T) {
		id := ExtractIdentifiers("CeraVe Hydrating Facial Cleanser, 16 fl oz")
		if id.Brand != "CeraVe Hydrating Facial Cleanser" {
			t.Errorf("brand = %q", id.Brand)
		}
	})

	t.Run("multi-word brand run", func(t *testing.T) {
		id := ExtractIdentifiers("La Roche-Posay Toleriane hydrating gentle wash")
		if id.Brand != "La Roche-Posay Toleriane" {
			t.Errorf("brand = %q", id.Brand)
		}
	})

	t.Run("shade from comma clause with vocabulary", func(t *testing.T) {
		id := ExtractIdentifiers("Maybelline Fit Me Foundation, Porcelain")
		if id.Shade != "Porcelain" {
			t.Errorf("shade = %q, want Porcelain", id.Shade)
		}
	})

	t.Run("comma clause without shade word is not a shade", func(t *testing.T) {
		id := ExtractIdentifiers("CeraVe Hydrating Facial Cleanser, Fragrance Free")
		if id.Shade != "" {
			t.Errorf("shade = %q, want empty", id.Shade)
		}
	})

	t.Run("line strips type nouns sizes and marketing words", func(t *testing.T) {
		id := ExtractIdentifiers("CeraVe new hydrating facial cleanser 16 fl oz")
		if id.Line != "hydrating facial" {
			t.Errorf("line = %q, want %q", id.Line, "hydrating facial")
		}
	})
}
