package api

import (
	"html/template"
	"net/http"
	"strings"

	"postscout/crawler"
	"postscout/session"

	"go.uber.org/zap"
)

type pageData struct {
	Input       string
	Error       string
	Search      []session.KeywordSelection
	Recommended []session.KeywordSelection
	Results     []template.HTML
	History     []string
}

// IndexHandler renders the search page of the caller's session
func (s *Server) IndexHandler(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	e := s.sessions.Get(w, r)
	e.mu.Lock()
	data := newPageData(e.state)
	e.mu.Unlock()

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.page.Execute(w, data); err != nil {
		s.logger.Error("failed to render page", zap.Error(err))
	}
}

// SearchHandler runs a search from the form (POST) or a history link (GET)
func (s *Server) SearchHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form", http.StatusBadRequest)
		return
	}

	e := s.sessions.Get(w, r)
	ctx := crawler.WithContextID(r.Context(), crawler.GenerateContextID("search"))

	e.mu.Lock()
	e.state = s.svc.Search(ctx, e.state, r.Form.Get("q"))
	e.mu.Unlock()

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// SelectHandler applies the checked keyword boxes
func (s *Server) SelectHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form", http.StatusBadRequest)
		return
	}

	e := s.sessions.Get(w, r)
	e.mu.Lock()
	e.state.SelectOnly(r.PostForm["kw"])
	e.mu.Unlock()

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func newPageData(state *session.State) pageData {
	rendered := state.Rendered()
	results := make([]template.HTML, 0, len(rendered))
	for _, item := range rendered {
		// RenderPost escapes every piece of scraped text.
		results = append(results, template.HTML(item))
	}

	return pageData{
		Input:       strings.TrimSpace(state.Input),
		Error:       state.Error,
		Search:      state.SelectionsOf(session.KindSearch),
		Recommended: state.SelectionsOf(session.KindRecommended),
		Results:     results,
		History:     state.History.Entries(),
	}
}
