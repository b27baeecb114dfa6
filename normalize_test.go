package lookapp

import (
	"encoding/json"
	"testing"
)

func TestNormalizeProduct(t *testing.T) {
	t.Run("prefers primary fields", func(t *testing.T) {
		p := NormalizeProduct(RawProduct{
			ID:    "p-1",
			Brand: "Acme",
			Name:  "Wool Coat",
			Price: "$240.00",
			URL:   "https://shop.example/coat",
		})

		if p.ID != "p-1" || p.Brand != "Acme" || p.Name != "Wool Coat" {
			t.Errorf("unexpected product: %+v", p)
		}
		if p.URL != "https://shop.example/coat" {
			t.Errorf("url = %q", p.URL)
		}
	})

	t.Run("falls back through the alias chain", func(t *testing.T) {
		p := NormalizeProduct(RawProduct{
			ProductID: "alt-7",
			Designer:  "Maison X",
			Title:     "Silk Scarf",
			Link:      "https://shop.example/scarf",
		})

		if p.ID != "alt-7" {
			t.Errorf("id = %q, want alt-7", p.ID)
		}
		if p.Brand != "Maison X" {
			t.Errorf("brand = %q, want Maison X", p.Brand)
		}
		if p.Name != "Silk Scarf" {
			t.Errorf("name = %q, want Silk Scarf", p.Name)
		}
		if p.URL != "https://shop.example/scarf" {
			t.Errorf("url = %q", p.URL)
		}
	})

	t.Run("fills placeholders for missing fields", func(t *testing.T) {
		p := NormalizeProduct(RawProduct{})

		if p.ID == "" {
			t.Error("expected synthesized id")
		}
		if p.Brand != "Unknown Brand" {
			t.Errorf("brand = %q, want Unknown Brand", p.Brand)
		}
		if p.Name != "Product" {
			t.Errorf("name = %q, want Product", p.Name)
		}
		if p.Price != "$0.00" {
			t.Errorf("price = %q, want $0.00", p.Price)
		}
		if p.URL != "" {
			t.Errorf("url = %q, want empty", p.URL)
		}
	})

	t.Run("synthesized ids are unique", func(t *testing.T) {
		a := NormalizeProduct(RawProduct{})
		b := NormalizeProduct(RawProduct{})
		if a.ID == b.ID {
			t.Error("two results without ids should not collide")
		}
	})
}

func TestNormalizeImageURL(t *testing.T) {
	cases := []struct {
		name string
		raw  RawProduct
		want string
	}{
		{"absolute https kept", RawProduct{Image: "https://cdn.example/a.jpg"}, "https://cdn.example/a.jpg"},
		{"absolute http kept", RawProduct{Image: "http://cdn.example/a.jpg"}, "http://cdn.example/a.jpg"},
		{"protocol-relative prefixed", RawProduct{Image: "//cdn.example/a.jpg"}, "https://cdn.example/a.jpg"},
		{"bare host prefixed", RawProduct{Image: "cdn.example/a.jpg"}, "https://cdn.example/a.jpg"},
		{"missing stays empty", RawProduct{}, ""},
		{"img_url wins over thumbnail", RawProduct{ImgURL: "//a/1.jpg", Thumbnail: "//b/2.jpg"}, "https://a/1.jpg"},
		{"imageUrl used when earlier aliases missing", RawProduct{ImageURL: "//c/3.jpg"}, "https://c/3.jpg"},
		{"thumbnailUrl is the last resort", RawProduct{ThumbnailURL: "//d/4.jpg"}, "https://d/4.jpg"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := NormalizeProduct(tc.raw).Image; got != tc.want {
				t.Errorf("image = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestRawProductPreservesPayload(t *testing.T) {
	payload := []byte(`{"product_id":"p-9","title":"Trench","merchant":{"name":"Store","rating":4.7},"price":"$99"}`)

	var raw RawProduct
	if err := json.Unmarshal(payload, &raw); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	p := NormalizeProduct(raw)
	if p.ID != "p-9" || p.Name != "Trench" {
		t.Errorf("unexpected product: %+v", p)
	}

	// product_info must carry the verbatim provider item, unrecognized
	// fields included.
	var info map[string]any
	if err := json.Unmarshal(p.ProductInfo, &info); err != nil {
		t.Fatalf("product_info not valid JSON: %v", err)
	}
	if _, ok := info["merchant"]; !ok {
		t.Error("provider-specific field dropped from product_info")
	}
}

func TestNormalizeProducts(t *testing.T) {
	products := NormalizeProducts([]RawProduct{
		{ID: "a"},
		{ID: "b"},
	})
	if len(products) != 2 || products[0].ID != "a" || products[1].ID != "b" {
		t.Errorf("unexpected batch: %+v", products)
	}

	if got := NormalizeProducts(nil); len(got) != 0 {
		t.Errorf("nil batch should normalize to empty, got %+v", got)
	}
}
