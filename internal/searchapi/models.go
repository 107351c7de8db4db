package searchapi

import (
	"time"

	"github.com/awwong1/semscrape/internal/sentiment"
)

// Article is a search hit as served by the articles endpoint. Sentence-level
// sentiment is returned inline with every hit.
type Article struct {
	ID               string              `json:"id"`
	Title            string              `json:"title"`
	URL              string              `json:"url"`
	Author           *string             `json:"author"`
	PublicationDate  string              `json:"publication_date"`
	OverallSentiment sentiment.Reading   `json:"overall_sentiment"`
	Sentiment        []SentenceSentiment `json:"sentiment"`
	Keywords         []Keyword           `json:"keywords,omitempty"`
	Body             string              `json:"body,omitempty"`
}

type SentenceSentiment struct {
	Sentence  string            `json:"sentence"`
	Sentiment sentiment.Reading `json:"sentiment"`
}

type Keyword struct {
	Key string `json:"key"`
}

// AuthorName returns the author or "Unknown".
func (a Article) AuthorName() string {
	if a.Author == nil || *a.Author == "" {
		return "Unknown"
	}
	return *a.Author
}

// Published parses PublicationDate. The second result is false when the
// date is missing or not in a recognised layout.
func (a Article) Published() (time.Time, bool) {
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, a.PublicationDate); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Page is one page of search results.
type Page struct {
	Count   int
	Next    string // empty when this is the last page
	Results []Article
}

type pageResponse struct {
	Count   int       `json:"count"`
	Next    *string   `json:"next"`
	Results []Article `json:"results"`
}

func (p pageResponse) page() Page {
	out := Page{Count: p.Count, Results: p.Results}
	if p.Next != nil {
		out.Next = *p.Next
	}
	if out.Results == nil {
		out.Results = []Article{}
	}
	return out
}
