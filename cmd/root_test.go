package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/awwong1/semscrape/internal/searchapi"
	"github.com/awwong1/semscrape/internal/searchapi/apitest"
	"github.com/awwong1/semscrape/internal/session"
)

func newTestClient(t *testing.T, srv *apitest.Server) *searchapi.Client {
	t.Helper()
	c, err := searchapi.New(searchapi.Options{BaseURL: srv.URL})
	if err != nil {
		t.Fatalf("creating client: %v", err)
	}
	return c
}

func TestRunSearchPages(t *testing.T) {
	tests := []struct {
		name     string
		pages    int
		articles int
		wantLen  int
		wantReqs int
		wantNext bool
	}{
		{"one page", 1, 45, 30, 1, true},
		{"two pages", 2, 45, 45, 2, false},
		{"all pages", 0, 100, 100, 4, false},
		{"more pages than exist", 5, 10, 10, 1, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := apitest.NewServer(t, apitest.Articles(tt.articles))
			st, err := runSearch(context.Background(), session.New(nil), newTestClient(t, srv), "", tt.pages)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(st.Results) != tt.wantLen {
				t.Errorf("got %d results, want %d", len(st.Results), tt.wantLen)
			}
			if st.Count != tt.articles {
				t.Errorf("count = %d, want %d", st.Count, tt.articles)
			}
			if st.HasNext() != tt.wantNext {
				t.Errorf("HasNext = %v, want %v", st.HasNext(), tt.wantNext)
			}
			if got := len(srv.Requests()); got != tt.wantReqs {
				t.Errorf("made %d requests, want %d", got, tt.wantReqs)
			}
		})
	}
}

func TestRunSearchQuery(t *testing.T) {
	srv := apitest.NewServer(t, apitest.Articles(12))
	st, err := runSearch(context.Background(), session.New(nil), newTestClient(t, srv), "Article 03", 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if st.Query != "Article 03" || len(st.Results) != 1 {
		t.Fatalf("unexpected state: query=%q results=%d", st.Query, len(st.Results))
	}
	if got := srv.Requests()[0].Query().Get("search"); got != "Article 03" {
		t.Errorf("search param = %q", got)
	}
}

func TestRunSearchFailure(t *testing.T) {
	srv := apitest.NewServer(t, apitest.Articles(3))
	srv.FailWith(http.StatusBadGateway)

	st, err := runSearch(context.Background(), session.New(nil), newTestClient(t, srv), "", 3)
	if err == nil {
		t.Fatal("expected an error")
	}
	if !strings.Contains(err.Error(), "search failed") {
		t.Errorf("unexpected error: %v", err)
	}
	if len(st.Results) != 0 || st.Loading {
		t.Errorf("expected idle empty state, got %+v", st)
	}
	if got := len(srv.Requests()); got != 1 {
		t.Errorf("failed search should not page on, got %d requests", got)
	}
}

func TestPrintResultsTable(t *testing.T) {
	srv := apitest.NewServer(t, apitest.Articles(45))
	st, err := runSearch(context.Background(), session.New(nil), newTestClient(t, srv), "", 1)
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	printResultsTable(&buf, st)
	out := buf.String()

	for _, want := range []string{"Loaded 30 of 45 articles.", "Article 01", "Staff Writer", "POSITIVE 0.600 ± 0.100", "use --pages"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}

	buf.Reset()
	printResultsTable(&buf, session.State{})
	if strings.TrimSpace(buf.String()) != "No articles found." {
		t.Errorf("unexpected empty output %q", buf.String())
	}
}

func TestPrintResultsJSON(t *testing.T) {
	srv := apitest.NewServer(t, apitest.Articles(2))
	st, err := runSearch(context.Background(), session.New(nil), newTestClient(t, srv), "", 1)
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := printResultsJSON(&buf, st); err != nil {
		t.Fatal(err)
	}

	var got struct {
		Count    int `json:"count"`
		Articles []struct {
			Title    string `json:"title"`
			Category string `json:"category"`
		} `json:"articles"`
	}
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, buf.String())
	}
	if got.Count != 2 || len(got.Articles) != 2 {
		t.Fatalf("unexpected payload: %+v", got)
	}
	if got.Articles[0].Category != "positive" || got.Articles[1].Category != "negative" {
		t.Errorf("unexpected categories: %+v", got.Articles)
	}
}

func TestNewLoggerDiscardsByDefault(t *testing.T) {
	t.Setenv(envLogFile, "")
	logger, closer, err := newLogger(false)
	if err != nil {
		t.Fatal(err)
	}
	defer closer.Close()
	if logger.Enabled(context.Background(), slog.LevelDebug) {
		t.Error("debug logging should be off without --debug")
	}
	logger.Error("dropped")
}

func TestNewLoggerWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "semscrape.log")
	t.Setenv(envLogFile, path)

	logger, closer, err := newLogger(true)
	if err != nil {
		t.Fatal(err)
	}
	logger.Debug("hello", "n", 1)
	closer.Close()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading log: %v", err)
	}
	if !strings.Contains(string(data), "msg=hello") {
		t.Errorf("log missing entry:\n%s", data)
	}
}

func TestVersionCommand(t *testing.T) {
	SetVersionInfo("1.2.3", "abc", "today")
	var buf bytes.Buffer
	versionCmd.SetOut(&buf)
	versionCmd.Run(versionCmd, nil)
	if got := buf.String(); got != "semscrape 1.2.3 (commit: abc, built: today)\n" {
		t.Errorf("unexpected version output %q", got)
	}
}
