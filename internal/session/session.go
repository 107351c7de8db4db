// Package session holds the search and pagination state behind the results
// table. A Session is a plain state machine: operations return a Request
// for the caller's event loop to run, and the outcome is fed back through
// Resolve. Every request carries a generation number so a response that
// arrives after a newer request was issued is dropped.
//
// A Session is not safe for concurrent use; drive it from one goroutine.
package session

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/awwong1/semscrape/internal/searchapi"
)

type Kind int

const (
	KindInitial Kind = iota
	KindSearch
	KindNext
)

func (k Kind) String() string {
	switch k {
	case KindInitial:
		return "initial"
	case KindSearch:
		return "search"
	case KindNext:
		return "next"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Request describes one fetch to perform.
type Request struct {
	Generation uint64
	Kind       Kind
	Query      string
	Cursor     string
}

// Result is the outcome of running a Request.
type Result struct {
	Request Request
	Page    searchapi.Page
	Err     error
}

// Fetcher is the part of the search API a session needs.
type Fetcher interface {
	Search(ctx context.Context, term string) (searchapi.Page, error)
	Next(ctx context.Context, cursor string) (searchapi.Page, error)
}

type Session struct {
	state      State
	generation uint64
	logger     *slog.Logger
}

// New creates an idle, empty session. A nil logger discards output.
func New(logger *slog.Logger) *Session {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Session{
		state:  State{Results: []searchapi.Article{}},
		logger: logger,
	}
}

// State returns a snapshot. The Results slice is a copy.
func (s *Session) State() State {
	st := s.state
	st.Results = append([]searchapi.Article{}, s.state.Results...)
	return st
}

// Generation is the tag of the newest request issued.
func (s *Session) Generation() uint64 { return s.generation }

// Initialize starts the default listing: no search term, newest first.
func (s *Session) Initialize() Request {
	return s.begin(KindInitial, "")
}

// Search starts a new query. Input is trimmed; blank input is ignored and
// leaves the session untouched. Results, count and cursor are cleared
// before Search returns.
func (s *Session) Search(query string) (Request, bool) {
	query = strings.TrimSpace(query)
	if query == "" {
		return Request{}, false
	}
	return s.begin(KindSearch, query), true
}

// LoadNext requests the page after the last one loaded. It does nothing
// while a fetch is in flight or when there are no more pages.
func (s *Session) LoadNext() (Request, bool) {
	if s.state.Loading || s.state.Next == "" {
		return Request{}, false
	}
	s.generation++
	s.state.Loading = true
	return Request{
		Generation: s.generation,
		Kind:       KindNext,
		Query:      s.state.Query,
		Cursor:     s.state.Next,
	}, true
}

func (s *Session) begin(kind Kind, query string) Request {
	s.generation++
	s.state = reset(s.state, query)
	return Request{Generation: s.generation, Kind: kind, Query: query}
}

// Resolve applies the outcome of a fetch. Results from superseded
// requests are discarded and false is returned. Otherwise loading ends;
// on failure the error is logged and the data from before the fetch is
// kept.
func (s *Session) Resolve(res Result) bool {
	req := res.Request
	if req.Generation != s.generation {
		s.logger.Debug("discarding stale response",
			"op", req.Kind.String(),
			"generation", req.Generation,
			"current", s.generation,
		)
		return false
	}

	s.state.Loading = false
	if res.Err != nil {
		s.state.Err = res.Err
		s.logger.Error("search failed",
			"op", req.Kind.String(),
			"generation", req.Generation,
			"query", req.Query,
			"cursor", req.Cursor,
			"err", res.Err,
		)
		return true
	}

	if req.Kind == KindNext {
		s.state = appendPage(s.state, res.Page)
	} else {
		s.state = replacePage(s.state, res.Page)
	}
	return true
}

// Select opens the detail view for a. It returns false, and changes
// nothing, if a is not among the loaded results.
func (s *Session) Select(a searchapi.Article) bool {
	for i := range s.state.Results {
		if s.state.Results[i].ID == a.ID {
			return s.SelectIndex(i)
		}
	}
	return false
}

// SelectIndex selects the i-th loaded result.
func (s *Session) SelectIndex(i int) bool {
	if i < 0 || i >= len(s.state.Results) {
		return false
	}
	s.state = setSelection(s.state, &s.state.Results[i])
	return true
}

// ClearSelection closes the detail view.
func (s *Session) ClearSelection() {
	s.state = setSelection(s.state, nil)
}

// Execute runs req against f. It always returns a Result carrying req,
// even if f panics.
func Execute(ctx context.Context, f Fetcher, req Request) (res Result) {
	res.Request = req
	defer func() {
		if r := recover(); r != nil {
			res.Page = searchapi.Page{}
			res.Err = fmt.Errorf("%s fetch panicked: %v", req.Kind, r)
		}
	}()

	switch req.Kind {
	case KindNext:
		res.Page, res.Err = f.Next(ctx, req.Cursor)
	default:
		res.Page, res.Err = f.Search(ctx, req.Query)
	}
	return res
}

// Do runs req synchronously and applies the result.
func (s *Session) Do(ctx context.Context, f Fetcher, req Request) bool {
	return s.Resolve(Execute(ctx, f, req))
}
