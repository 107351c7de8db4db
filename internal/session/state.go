package session

import "github.com/awwong1/semscrape/internal/searchapi"

// State is a read-only snapshot of a session.
type State struct {
	Query    string
	Loading  bool
	Count    int
	Next     string
	Results  []searchapi.Article
	Selected *searchapi.Article
	// Err is the failure of the most recent authoritative fetch, if any.
	Err error
}

// HasNext reports whether another page can be requested.
func (s State) HasNext() bool { return s.Next != "" }

// Complete reports whether Results holds every match for Query.
func (s State) Complete() bool { return s.Next == "" }

// The transitions below never mutate their input; the session swaps in
// the returned value.

func reset(st State, query string) State {
	st.Query = query
	st.Loading = true
	st.Count = 0
	st.Next = ""
	st.Results = []searchapi.Article{}
	st.Err = nil
	return st
}

func replacePage(st State, p searchapi.Page) State {
	st.Results = append([]searchapi.Article{}, p.Results...)
	st.Count = max(p.Count, len(st.Results))
	st.Next = p.Next
	st.Err = nil
	return st
}

func appendPage(st State, p searchapi.Page) State {
	results := make([]searchapi.Article, 0, len(st.Results)+len(p.Results))
	results = append(results, st.Results...)
	results = append(results, p.Results...)
	st.Results = results
	st.Count = max(p.Count, len(results))
	st.Next = p.Next
	st.Err = nil
	return st
}

func setSelection(st State, a *searchapi.Article) State {
	if a != nil {
		cp := *a
		a = &cp
	}
	st.Selected = a
	return st
}
