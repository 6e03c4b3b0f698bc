package models

// SupplyUpdatableFields is the whitelist an update may overwrite
var SupplyUpdatableFields = []string{"img", "title", "category", "price", "description"}

// Supply is the typed view of a relief supply listing
type Supply struct {
	ID          string  `json:"_id,omitempty"`
	Img         string  `json:"img"`
	Title       string  `json:"title"`
	Category    string  `json:"category"`
	Price       float64 `json:"price"`
	Description string  `json:"description"`
}

// ToDocument converts the supply into a storable document without an identifier
func (s Supply) ToDocument() Document {
	return Document{
		"img":         s.Img,
		"title":       s.Title,
		"category":    s.Category,
		"price":       s.Price,
		"description": s.Description,
	}
}
