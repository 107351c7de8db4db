package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/awwong1/semscrape/internal/markup"
	"github.com/awwong1/semscrape/internal/searchapi"
	"github.com/awwong1/semscrape/internal/sentiment"
	"github.com/awwong1/semscrape/internal/session"
)

var (
	flagPages  int
	flagFormat string
)

var searchCmd = &cobra.Command{
	Use:   "search [terms...]",
	Short: "Search articles and print the results",
	Long: `Run a search without the interactive interface.

With no terms the newest articles are listed. Use --pages to follow the
next-page cursor, or --pages 0 to fetch every page.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if flagFormat != "table" && flagFormat != "json" {
			return fmt.Errorf("unknown --format %q (valid: table, json)", flagFormat)
		}
		if flagPages < 0 {
			return fmt.Errorf("--pages must not be negative")
		}

		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		client, err := newClient(cfg)
		if err != nil {
			return err
		}
		logger, closer, err := newLogger(flagDebug)
		if err != nil {
			return err
		}
		defer closer.Close()

		sess := session.New(logger)
		st, err := runSearch(cmd.Context(), sess, client, strings.Join(args, " "), flagPages)
		if err != nil {
			return err
		}

		if flagFormat == "json" {
			return printResultsJSON(cmd.OutOrStdout(), st)
		}
		printResultsTable(cmd.OutOrStdout(), st)
		return nil
	},
}

func init() {
	searchCmd.Flags().IntVar(&flagPages, "pages", 1, "number of pages to fetch (0 for all)")
	searchCmd.Flags().StringVar(&flagFormat, "format", "table", "output format: table or json")
}

// runSearch drives sess through an initial or keyword search and up to
// pages pages of results. pages <= 0 follows the cursor to the end.
func runSearch(ctx context.Context, sess *session.Session, f session.Fetcher, query string, pages int) (session.State, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	req, ok := sess.Search(query)
	if !ok {
		req = sess.Initialize()
	}
	sess.Do(ctx, f, req)

	for fetched := 1; pages <= 0 || fetched < pages; fetched++ {
		if st := sess.State(); st.Err != nil {
			break
		}
		req, ok := sess.LoadNext()
		if !ok {
			break
		}
		sess.Do(ctx, f, req)
	}

	st := sess.State()
	if st.Err != nil {
		return st, fmt.Errorf("search failed: %w", st.Err)
	}
	return st, nil
}

func printResultsTable(w io.Writer, st session.State) {
	if len(st.Results) == 0 {
		fmt.Fprintln(w, "No articles found.")
		return
	}

	fmt.Fprintf(w, "Loaded %d of %d articles.\n\n", len(st.Results), st.Count)
	for _, a := range st.Results {
		title := markup.Truncate(markup.PlainText(a.Title), 70)
		fmt.Fprintf(w, "%s\n", title)

		date := a.PublicationDate
		if t, ok := a.Published(); ok {
			date = t.Format("2006-01-02 15:04")
		}
		fmt.Fprintf(w, "   %s | %s | %s\n", a.AuthorName(), date, sentiment.Classify(a.OverallSentiment).Text())
		fmt.Fprintf(w, "   URL: %s\n\n", a.URL)
	}
	if st.HasNext() {
		fmt.Fprintln(w, "More results available; use --pages to fetch them.")
	}
}

type jsonArticle struct {
	searchapi.Article
	Category sentiment.Category `json:"category"`
}

type jsonResults struct {
	Query    string        `json:"query"`
	Count    int           `json:"count"`
	Next     string        `json:"next,omitempty"`
	Articles []jsonArticle `json:"articles"`
}

func printResultsJSON(w io.Writer, st session.State) error {
	out := jsonResults{
		Query:    st.Query,
		Count:    st.Count,
		Next:     st.Next,
		Articles: make([]jsonArticle, 0, len(st.Results)),
	}
	for _, a := range st.Results {
		out.Articles = append(out.Articles, jsonArticle{
			Article:  a,
			Category: sentiment.Classify(a.OverallSentiment).Category,
		})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encoding results: %w", err)
	}
	return nil
}
