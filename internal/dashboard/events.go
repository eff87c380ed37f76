package dashboard

import "github.com/trogers1052/stock-dashboard/internal/models"

// State is the list page's own state. Everything else is derived from it.
type State struct {
	Records           []models.StockRecord
	SearchQuery       string
	SelectedTradeCode string
	CurrentPage       int
}

func (s State) clone() State {
	s.Records = append([]models.StockRecord(nil), s.Records...)
	return s
}

// Event changes list state. Apply it with ListController.Apply.
type Event interface {
	apply(s *State, pageSize int)
}

// RecordsLoaded replaces the working set
type RecordsLoaded struct{ Records []models.StockRecord }

// SearchChanged sets the trade code search text
type SearchChanged struct{ Query string }

// SearchReset clears the search text
type SearchReset struct{}

// TradeCodeSelected sets the exact trade code filter. Empty means all codes.
type TradeCodeSelected struct{ TradeCode string }

// NextPage moves forward one page unless already on the last page
type NextPage struct{}

// PreviousPage moves back one page unless already on the first page
type PreviousPage struct{}

// PageSelected jumps to a page; out of range values are clamped
type PageSelected struct{ Page int }

// RecordRemoved drops the record with ID from the working set
type RecordRemoved struct{ ID string }

// RecordAdded appends a record, or replaces the one with the same ID
type RecordAdded struct{ Record models.StockRecord }

// RecordReplaced replaces the record with the same ID if it is in the working set
type RecordReplaced struct{ Record models.StockRecord }

func (e RecordsLoaded) apply(s *State, _ int) {
	s.Records = append([]models.StockRecord(nil), e.Records...)
}

func (e SearchChanged) apply(s *State, _ int) { s.SearchQuery = e.Query }

func (SearchReset) apply(s *State, _ int) { s.SearchQuery = "" }

func (e TradeCodeSelected) apply(s *State, _ int) { s.SelectedTradeCode = e.TradeCode }

func (NextPage) apply(s *State, pageSize int) {
	filtered := Filter(s.Records, s.SearchQuery, s.SelectedTradeCode)
	if s.CurrentPage < lastPage(TotalPages(len(filtered), pageSize)) {
		s.CurrentPage++
	}
}

func (PreviousPage) apply(s *State, _ int) {
	if s.CurrentPage > 1 {
		s.CurrentPage--
	}
}

func (e PageSelected) apply(s *State, _ int) { s.CurrentPage = e.Page }

func (e RecordRemoved) apply(s *State, _ int) {
	kept := s.Records[:0:0]
	for _, r := range s.Records {
		if r.ID != e.ID {
			kept = append(kept, r)
		}
	}
	s.Records = kept
}

func (e RecordAdded) apply(s *State, _ int) {
	for i, r := range s.Records {
		if r.ID == e.Record.ID {
			s.Records[i] = e.Record
			return
		}
	}
	s.Records = append(s.Records, e.Record)
}

func (e RecordReplaced) apply(s *State, _ int) {
	for i, r := range s.Records {
		if r.ID == e.Record.ID {
			s.Records[i] = e.Record
			return
		}
	}
}
