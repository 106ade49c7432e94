package models

type Board struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Desc string `json:"desc"`
	URL  string `json:"url"`
}

// List is a board column together with its open cards.
type List struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Closed bool    `json:"closed"`
	Pos    float64 `json:"pos"`
	Cards  []Card  `json:"cards"`
}
