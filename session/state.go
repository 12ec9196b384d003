package session

import (
	"fmt"

	"postscout/crawler"
	"postscout/highlight"
)

type Kind string

const (
	KindSearch      Kind = "search"
	KindRecommended Kind = "recommended"
)

// KeywordSelection is one toggleable keyword. Its identity is its kind and
// position, never the keyword text.
type KeywordSelection struct {
	Kind     Kind
	Index    int
	Keyword  string
	Selected bool
}

// ID returns the "kind:index" form used by the web form.
func (k KeywordSelection) ID() string {
	return fmt.Sprintf("%s:%d", k.Kind, k.Index)
}

// State is everything one interactive session knows about its searches.
type State struct {
	Input       string
	Keywords    []string
	Recommended []string
	Selections  []KeywordSelection
	Results     []crawler.Post
	Error       string
	History     *History
}

func NewState(historySize int) *State {
	return &State{
		History: NewHistory(historySize),
	}
}

func newSelections(keywords, recommended []string) []KeywordSelection {
	out := make([]KeywordSelection, 0, len(keywords)+len(recommended))
	for i, k := range keywords {
		out = append(out, KeywordSelection{Kind: KindSearch, Index: i, Keyword: k})
	}
	for i, k := range recommended {
		out = append(out, KeywordSelection{Kind: KindRecommended, Index: i, Keyword: k})
	}
	return out
}

// Toggle sets the selection flag of the keyword with the given id and
// reports whether it exists.
func (s *State) Toggle(id string, selected bool) bool {
	for i := range s.Selections {
		if s.Selections[i].ID() == id {
			s.Selections[i].Selected = selected
			return true
		}
	}
	return false
}

// SelectOnly selects exactly the keywords whose ids are listed.
func (s *State) SelectOnly(ids []string) {
	want := make(map[string]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}
	for i := range s.Selections {
		s.Selections[i].Selected = want[s.Selections[i].ID()]
	}
}

// SelectionsOf returns the selection records of one kind, in order.
func (s *State) SelectionsOf(kind Kind) []KeywordSelection {
	var out []KeywordSelection
	for _, sel := range s.Selections {
		if sel.Kind == kind {
			out = append(out, sel)
		}
	}
	return out
}

// Selected returns the selected keywords of one kind, in order.
func (s *State) Selected(kind Kind) []string {
	var out []string
	for _, sel := range s.Selections {
		if sel.Kind == kind && sel.Selected {
			out = append(out, sel.Keyword)
		}
	}
	return out
}

// SearchColors pairs the selected search keywords with background colours.
func (s *State) SearchColors() []highlight.Colored {
	return highlight.SearchPalette.Assign(s.Selected(KindSearch))
}

// RecommendedColors pairs the selected recommended keywords with text colours.
func (s *State) RecommendedColors() []highlight.Colored {
	return highlight.RecommendPalette.Assign(s.Selected(KindRecommended))
}

// Rendered returns the result list as HTML list entries.
func (s *State) Rendered() []string {
	searchColors, recommendColors := s.SearchColors(), s.RecommendedColors()
	out := make([]string, 0, len(s.Results))
	for _, p := range s.Results {
		out = append(out, highlight.RenderPost(p, searchColors, recommendColors))
	}
	return out
}
