package domain

// Book represents a catalog entry as served by the backend. Field names
// follow the backend's JSON (Mongo-style `_id`).
type Book struct {
	ID          string  `json:"_id"`
	Name        string  `json:"bookName"`
	Author      string  `json:"bookAuthor,omitempty"`
	Image       string  `json:"bookImage,omitempty"`
	Price       float64 `json:"price"`
	Genre       string  `json:"genre,omitempty"`
	Rating      float64 `json:"rating,omitempty"`
	Description string  `json:"description,omitempty"`
	InStock     bool    `json:"inStock,omitempty"`
}
