package lookapp

import (
	"encoding/json"
	"strings"
)

// RawProduct is an unnormalized result item as returned by the search
// gateway. Providers disagree on field names, so every aliased field is
// listed and NormalizeProduct picks the first one present.
type RawProduct struct {
	ID        string `json:"id,omitempty"`
	ProductID string `json:"product_id,omitempty"`

	Brand    string `json:"brand,omitempty"`
	Designer string `json:"designer,omitempty"`

	Name  string `json:"name,omitempty"`
	Title string `json:"title,omitempty"`

	Price string `json:"price,omitempty"`

	ImgURL       string `json:"img_url,omitempty"`
	Image        string `json:"image,omitempty"`
	ImageURL     string `json:"imageUrl,omitempty"`
	Thumbnail    string `json:"thumbnail,omitempty"`
	ThumbnailURL string `json:"thumbnailUrl,omitempty"`

	URL  string `json:"url,omitempty"`
	Link string `json:"link,omitempty"`

	// Raw is the untouched provider item, captured alongside the typed
	// fields so it can ride along as product_info.
	Raw json.RawMessage `json:"-"`
}

// UnmarshalJSON keeps the verbatim provider payload next to the typed view.
func (r *RawProduct) UnmarshalJSON(data []byte) error {
	type alias RawProduct
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	*r = RawProduct(a)
	r.Raw = append(json.RawMessage(nil), data...)
	return nil
}

// NormalizeProduct maps a raw gateway item onto the Product entity the
// store holds. Missing fields fall back to fixed placeholders; image URLs
// are made absolute.
func NormalizeProduct(raw RawProduct) Product {
	return Product{
		ID:          firstNonEmpty(raw.ID, raw.ProductID, NewProductID()),
		Brand:       firstNonEmpty(raw.Brand, raw.Designer, "Unknown Brand"),
		Name:        firstNonEmpty(raw.Name, raw.Title, "Product"),
		Price:       firstNonEmpty(raw.Price, "$0.00"),
		Image:       normalizeImageURL(firstNonEmpty(raw.ImgURL, raw.Image, raw.ImageURL, raw.Thumbnail, raw.ThumbnailURL)),
		URL:         firstNonEmpty(raw.URL, raw.Link),
		ProductInfo: raw.Raw,
	}
}

// NormalizeProducts maps a whole result batch.
func NormalizeProducts(raw []RawProduct) []Product {
	products := make([]Product, len(raw))
	for i, item := range raw {
		products[i] = NormalizeProduct(item)
	}
	return products
}

// normalizeImageURL turns provider image references into absolute https
// URLs. Protocol-relative values get the scheme prefixed; bare hosts/paths
// get a full https:// prefix.
func normalizeImageURL(u string) string {
	switch {
	case u == "":
		return ""
	case strings.HasPrefix(u, "//"):
		return "https:" + u
	case strings.HasPrefix(u, "http://"), strings.HasPrefix(u, "https://"):
		return u
	default:
		return "https://" + u
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
