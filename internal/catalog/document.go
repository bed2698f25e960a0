// Package catalog defines the product document model shared by the
// indexing and search pipelines.
package catalog

// Picture is an image attached to a product configuration.
type Picture struct {
	URL         string `json:"product_picture_url"`
	ID          int    `json:"product_picture_id"`
	EntityID    int    `json:"picture_entity_id"`
	Priority    int    `json:"priority"`
	Title       string `json:"title"`
	Description string `json:"description"`
	PictureID   int    `json:"picture_id"`
}

// Configuration is a purchasable variant of a product. Configurations have
// no identity outside their parent document.
type Configuration struct {
	URL         string    `json:"product_configuration_url"`
	ID          int       `json:"product_configuration_id"`
	DisplayName string    `json:"product_configuration_display_name"`
	TotalPrice  float64   `json:"product_configuration_total_price"`
	Pictures    []Picture `json:"product_pictures"`
}

// ProductDocument is the caller-facing product record. Every field is
// optional on input; Normalize fills absent fields so downstream code never
// sees a nil slice. The embedding is derived from the composed text by the
// indexing pipeline and is never part of this struct.
type ProductDocument struct {
	ProductID      int             `json:"product_id"`
	Spin           string          `json:"spin"`
	Title          string          `json:"product_title"`
	Description    string          `json:"clean_product_description"`
	CategoryTitle  string          `json:"category_title"`
	CategoryDesc   string          `json:"category_description"`
	CustomCategory string          `json:"custom_category_text"`
	ParentTitle    string          `json:"parent_title"`
	Tags           []string        `json:"product_tags"`
	Configurations []Configuration `json:"product_configurations"`
}

// Normalize applies boundary defaults: nil slices become empty slices, at
// every nesting level. String and numeric zero values are already the
// defaults the store expects.
func (d ProductDocument) Normalize() ProductDocument {
	if d.Tags == nil {
		d.Tags = []string{}
	}
	if d.Configurations == nil {
		d.Configurations = []Configuration{}
	}
	for i := range d.Configurations {
		if d.Configurations[i].Pictures == nil {
			d.Configurations[i].Pictures = []Picture{}
		}
	}
	return d
}

// ScoredResult is one search hit projected for display.
type ScoredResult struct {
	Score          float32         `json:"score"`
	Title          string          `json:"product_title"`
	Description    string          `json:"clean_product_description"`
	CategoryTitle  string          `json:"category_title"`
	ParentTitle    string          `json:"parent_title"`
	Configurations []Configuration `json:"product_configurations"`
	Spin           string          `json:"spin"`
	CategoryDesc   string          `json:"category_description"`
	Tags           []string        `json:"product_tags"`
}
