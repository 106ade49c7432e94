package models

import "time"

// Label is a colored tag attached to a Trello card.
type Label struct {
	ID    string `json:"id,omitempty"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

// Card is a snapshot of a Trello card as returned by the REST API.
type Card struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Desc        string     `json:"desc"`
	Labels      []Label    `json:"labels,omitempty"`
	Due         *time.Time `json:"due"`
	DueComplete bool       `json:"dueComplete"`
	URL         string     `json:"url"`
}

// HasDue reports whether the card carries a due date.
func (c Card) HasDue() bool {
	return c.Due != nil && !c.Due.IsZero()
}
