// Package board filters Trello lists by a search term.
package board

import (
	"strings"

	"github.com/chxlky/trello-gchat-notify/internal/models"
)

// SearchOptions selects which card fields a term is matched against.
type SearchOptions struct {
	Titles       bool
	Descriptions bool
	Labels       bool
}

func DefaultSearchOptions() SearchOptions {
	return SearchOptions{Titles: true, Descriptions: true, Labels: true}
}

// FilteredList is a list whose cards were narrowed by a search.
type FilteredList struct {
	models.List
	IsEmpty bool `json:"isEmpty"`
}

type SearchResult struct {
	Term  string         `json:"term"`
	Count int            `json:"count"`
	Lists []FilteredList `json:"lists"`
}

// Search keeps the cards whose enabled fields contain term, ignoring case.
// A blank term keeps every card.
func Search(lists []models.List, term string, opts SearchOptions) SearchResult {
	term = strings.ToLower(strings.TrimSpace(term))
	res := SearchResult{Term: term, Lists: make([]FilteredList, 0, len(lists))}

	for _, l := range lists {
		cards := make([]models.Card, 0, len(l.Cards))
		for _, c := range l.Cards {
			if term == "" || matches(c, term, opts) {
				cards = append(cards, c)
			}
		}
		res.Count += len(cards)

		filtered := l
		filtered.Cards = cards
		res.Lists = append(res.Lists, FilteredList{List: filtered, IsEmpty: len(cards) == 0})
	}
	return res
}

func matches(c models.Card, term string, opts SearchOptions) bool {
	if opts.Titles && strings.Contains(strings.ToLower(c.Name), term) {
		return true
	}
	if opts.Descriptions && strings.Contains(strings.ToLower(c.Desc), term) {
		return true
	}
	if opts.Labels {
		for _, l := range c.Labels {
			if strings.Contains(strings.ToLower(l.Name), term) {
				return true
			}
		}
	}
	return false
}
