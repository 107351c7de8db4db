// Package apitest runs an in-process fake of the article search API for
// tests. It paginates with limit/offset and returns absolute next URLs, the
// same way the real endpoint does.
package apitest

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/awwong1/semscrape/internal/searchapi"
	"github.com/awwong1/semscrape/internal/sentiment"
)

// Server is a running fake API.
type Server struct {
	*httptest.Server

	mu        sync.Mutex
	articles  []searchapi.Article
	requests  []*url.URL
	failCode  int
	malformed bool
}

// NewServer starts a fake API serving articles and stops it when the test
// ends.
func NewServer(t testing.TB, articles []searchapi.Article) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	s := &Server{articles: articles}
	router := gin.New()
	router.GET("/search/articles/", s.handleSearch)

	s.Server = httptest.NewServer(router)
	t.Cleanup(s.Close)
	return s
}

// FailWith makes every following request answer with status code. Zero
// restores normal responses.
func (s *Server) FailWith(code int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failCode = code
}

// Malformed makes following responses return a body that is not JSON.
func (s *Server) Malformed(on bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.malformed = on
}

// Requests returns the URLs received so far, in arrival order.
func (s *Server) Requests() []*url.URL {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*url.URL(nil), s.requests...)
}

func (s *Server) handleSearch(ctx *gin.Context) {
	s.mu.Lock()
	s.requests = append(s.requests, ctx.Request.URL)
	failCode, malformed := s.failCode, s.malformed
	all := append([]searchapi.Article(nil), s.articles...)
	s.mu.Unlock()

	if failCode != 0 {
		ctx.JSON(failCode, gin.H{"detail": http.StatusText(failCode)})
		return
	}
	if malformed {
		ctx.Data(http.StatusOK, "application/json", []byte(`{"count": "lots", "results": [`))
		return
	}

	limit, err := intParam(ctx, "limit", searchapi.DefaultPageSize)
	if err != nil || limit < 1 {
		ctx.JSON(http.StatusBadRequest, gin.H{"detail": "invalid limit"})
		return
	}
	offset, err := intParam(ctx, "offset", 0)
	if err != nil || offset < 0 {
		ctx.JSON(http.StatusBadRequest, gin.H{"detail": "invalid offset"})
		return
	}

	matches := filter(all, ctx.Query("search"))
	if matches == nil {
		matches = []searchapi.Article{}
	}
	order(matches, ctx.DefaultQuery("ordering", searchapi.DefaultOrdering))

	total := len(matches)
	start := min(offset, total)
	end := min(offset+limit, total)

	var next any
	if end < total {
		u := *ctx.Request.URL
		u.Scheme = "http"
		u.Host = ctx.Request.Host
		q := u.Query()
		q.Set("limit", strconv.Itoa(limit))
		q.Set("offset", strconv.Itoa(end))
		u.RawQuery = q.Encode()
		next = u.String()
	}

	ctx.JSON(http.StatusOK, gin.H{
		"count":   total,
		"next":    next,
		"results": matches[start:end],
	})
}

func intParam(ctx *gin.Context, name string, def int) (int, error) {
	raw := ctx.Query(name)
	if raw == "" {
		return def, nil
	}
	return strconv.Atoi(raw)
}

func filter(articles []searchapi.Article, term string) []searchapi.Article {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return articles
	}
	var out []searchapi.Article
	for _, a := range articles {
		fields := []string{a.Title, a.Body}
		if a.Author != nil {
			fields = append(fields, *a.Author)
		}
		for _, kw := range a.Keywords {
			fields = append(fields, kw.Key)
		}
		for _, f := range fields {
			if strings.Contains(strings.ToLower(f), term) {
				out = append(out, a)
				break
			}
		}
	}
	return out
}

func order(articles []searchapi.Article, ordering string) {
	desc := strings.HasPrefix(ordering, "-")
	field := strings.TrimPrefix(ordering, "-")
	sort.SliceStable(articles, func(i, j int) bool {
		a, b := articles[i], articles[j]
		if desc {
			a, b = b, a
		}
		if field == "title" {
			return a.Title < b.Title
		}
		return a.PublicationDate < b.PublicationDate
	})
}

// Articles builds n articles published one hour apart, newest first.
// Labels cycle POSITIVE, NEGATIVE, NEUTRAL.
func Articles(n int) []searchapi.Article {
	labels := []string{sentiment.LabelPositive, sentiment.LabelNegative, sentiment.LabelNeutral}
	base := time.Date(2020, 6, 1, 12, 0, 0, 0, time.UTC)
	out := make([]searchapi.Article, n)
	for i := range out {
		label := labels[i%len(labels)]
		out[i] = Article(fmt.Sprintf("Article %02d", i+1), label)
		out[i].PublicationDate = base.Add(-time.Duration(i) * time.Hour).Format(time.RFC3339)
	}
	return out
}

// Article builds a single article with two scored sentences, one of each
// polarity.
func Article(title, label string) searchapi.Article {
	id := uuid.New()
	author := "Staff Writer"
	return searchapi.Article{
		ID:              id.String(),
		Title:           title,
		URL:             "https://news.example.com/" + id.String(),
		Author:          &author,
		PublicationDate: time.Date(2020, 6, 1, 12, 0, 0, 0, time.UTC).Format(time.RFC3339),
		OverallSentiment: sentiment.Reading{
			Label: label,
			Avg:   sentiment.Float(0.6),
			Std:   sentiment.Float(0.1),
		},
		Sentiment: []searchapi.SentenceSentiment{
			{Sentence: "Markets rallied on the news.", Sentiment: sentiment.Reading{Label: sentiment.LabelPositive, Score: sentiment.Float(0.91)}},
			{Sentence: "Analysts warned of a slowdown.", Sentiment: sentiment.Reading{Label: sentiment.LabelNegative, Score: sentiment.Float(0.77)}},
		},
		Keywords: []searchapi.Keyword{{Key: "markets"}},
		Body:     "Markets rallied on the news. Analysts warned of a slowdown.",
	}
}
