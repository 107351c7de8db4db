package searchapi_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/awwong1/semscrape/internal/searchapi"
	"github.com/awwong1/semscrape/internal/searchapi/apitest"
)

func newClient(t *testing.T, srv *apitest.Server) *searchapi.Client {
	t.Helper()
	c, err := searchapi.New(searchapi.Options{BaseURL: srv.URL})
	require.NoError(t, err)
	return c
}

func TestNew_RejectsNonHTTP(t *testing.T) {
	for _, raw := range []string{"ftp://example.com", "example.com", "file:///tmp"} {
		_, err := searchapi.New(searchapi.Options{BaseURL: raw})
		assert.Error(t, err, raw)
	}
}

func TestNew_Defaults(t *testing.T) {
	c, err := searchapi.New(searchapi.Options{BaseURL: "http://localhost:8000"})
	require.NoError(t, err)
	assert.Equal(t, 30, c.PageSize())
}

func TestSearchURL(t *testing.T) {
	c, err := searchapi.New(searchapi.Options{BaseURL: "http://localhost:8000/api"})
	require.NoError(t, err)

	u, err := url.Parse(c.SearchURL(""))
	require.NoError(t, err)
	assert.Equal(t, "/api/search/articles/", u.Path)
	assert.Equal(t, "-publication_date", u.Query().Get("ordering"))
	assert.Equal(t, "json", u.Query().Get("format"))
	assert.Equal(t, "30", u.Query().Get("limit"))
	assert.False(t, u.Query().Has("search"), "empty term should not send search")

	u, err = url.Parse(c.SearchURL("trade war & tariffs"))
	require.NoError(t, err)
	assert.Equal(t, "trade war & tariffs", u.Query().Get("search"))
	assert.NotContains(t, u.RawQuery, " ", "term must be escaped")
}

func TestSearch_FirstPageAndCursor(t *testing.T) {
	srv := apitest.NewServer(t, apitest.Articles(45))
	c := newClient(t, srv)

	first, err := c.Search(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, 45, first.Count)
	assert.Len(t, first.Results, 30)
	require.NotEmpty(t, first.Next)
	assert.Equal(t, "Article 01", first.Results[0].Title)

	second, err := c.Next(context.Background(), first.Next)
	require.NoError(t, err)
	assert.Equal(t, 45, second.Count)
	assert.Len(t, second.Results, 15)
	assert.Empty(t, second.Next)
	assert.Equal(t, "Article 31", second.Results[0].Title)

	reqs := srv.Requests()
	require.Len(t, reqs, 2)
	assert.Equal(t, "30", reqs[1].Query().Get("offset"), "cursor should be followed verbatim")
}

func TestSearch_Filters(t *testing.T) {
	articles := apitest.Articles(5)
	articles[3].Title = "Central bank raises rates"
	srv := apitest.NewServer(t, articles)
	c := newClient(t, srv)

	page, err := c.Search(context.Background(), "central bank")
	require.NoError(t, err)
	assert.Equal(t, 1, page.Count)
	require.Len(t, page.Results, 1)
	assert.Equal(t, articles[3].ID, page.Results[0].ID)
	assert.Empty(t, page.Next)

	page, err = c.Search(context.Background(), "nothing matches this")
	require.NoError(t, err)
	assert.Equal(t, 0, page.Count)
	assert.NotNil(t, page.Results)
	assert.Empty(t, page.Results)
}

func TestNext_RelativeCursor(t *testing.T) {
	srv := apitest.NewServer(t, apitest.Articles(3))
	c, err := searchapi.New(searchapi.Options{BaseURL: srv.URL, PageSize: 2})
	require.NoError(t, err)

	page, err := c.Next(context.Background(), "/search/articles/?limit=2&offset=2&format=json")
	require.NoError(t, err)
	assert.Len(t, page.Results, 1)
	assert.Equal(t, 3, page.Count)
}

func TestNext_EmptyCursor(t *testing.T) {
	c, err := searchapi.New(searchapi.Options{BaseURL: "http://localhost:8000"})
	require.NoError(t, err)
	_, err = c.Next(context.Background(), "")
	assert.Error(t, err)
}

func TestSearch_StatusError(t *testing.T) {
	srv := apitest.NewServer(t, apitest.Articles(3))
	srv.FailWith(http.StatusServiceUnavailable)
	c := newClient(t, srv)

	_, err := c.Search(context.Background(), "x")
	var statusErr *searchapi.StatusError
	require.True(t, errors.As(err, &statusErr), "got %v", err)
	assert.Equal(t, http.StatusServiceUnavailable, statusErr.Code)
}

func TestSearch_DecodeError(t *testing.T) {
	srv := apitest.NewServer(t, apitest.Articles(3))
	srv.Malformed(true)
	c := newClient(t, srv)

	_, err := c.Search(context.Background(), "")
	var decodeErr *searchapi.DecodeError
	assert.True(t, errors.As(err, &decodeErr), "got %v", err)
}

func TestSearch_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	base := srv.URL
	srv.Close()

	c, err := searchapi.New(searchapi.Options{BaseURL: base})
	require.NoError(t, err)
	_, err = c.Search(context.Background(), "")
	require.Error(t, err)

	var urlErr *url.Error
	assert.True(t, errors.As(err, &urlErr), "transport errors should wrap *url.Error, got %v", err)
}

func TestSearch_NullableFields(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"count":1,"next":null,"results":[{"id":"a1","title":"T","url":"https://x","author":null,
			"publication_date":"2020-05-01T10:00:00Z","overall_sentiment":{"label":"NEUTRAL","avg":null,"std":null},
			"sentiment":[{"sentence":"s","sentiment":{"label":"POSITIVE","score":0.5}}]}]}`))
	}))
	t.Cleanup(srv.Close)

	c, err := searchapi.New(searchapi.Options{BaseURL: srv.URL})
	require.NoError(t, err)
	page, err := c.Search(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, page.Results, 1)

	a := page.Results[0]
	assert.Equal(t, "Unknown", a.AuthorName())
	assert.Nil(t, a.OverallSentiment.Avg)
	assert.Nil(t, a.OverallSentiment.Std)
	require.Len(t, a.Sentiment, 1)
	require.NotNil(t, a.Sentiment[0].Sentiment.Score)
	assert.InDelta(t, 0.5, *a.Sentiment[0].Sentiment.Score, 1e-9)

	published, ok := a.Published()
	assert.True(t, ok)
	assert.Equal(t, 2020, published.Year())
}
