package realtime

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	loggerpkg "github.com/minhyannv/realtime-chat-go/pkg/logger"
	"github.com/tidwall/gjson"
)

// NewsUnavailable is returned in place of real-time data when the
// headline lookup fails.
const NewsUnavailable = "Sorry, I couldn't fetch the news data right now."

// Article is one headline from the news service.
type Article struct {
	Title       string
	Description string
}

// String renders the article block used in prompts.
func (a Article) String() string {
	return "Title: " + a.Title + "\nDescription: " + a.Description + "\n"
}

// FormatArticles renders at most limit articles, in order, separated by a
// blank line. A non-positive limit renders all of them.
func FormatArticles(articles []Article, limit int) string {
	if limit > 0 && len(articles) > limit {
		articles = articles[:limit]
	}
	blocks := make([]string, 0, len(articles))
	for _, a := range articles {
		blocks = append(blocks, a.String())
	}
	return strings.Join(blocks, "\n")
}

// NewsSource answers news questions via the NewsAPI top-headlines endpoint.
type NewsSource struct {
	BaseURL string
	APIKey  string
	Country string
	Limit   int
	HTTP    *http.Client
	Logger  loggerpkg.Logger
}

func (s *NewsSource) Name() string     { return NameNews }
func (s *NewsSource) Keyword() string  { return "news" }
func (s *NewsSource) Question() string { return "What news topic would you like to know about? " }

// Fetch returns the digest for topic, or NewsUnavailable.
func (s *NewsSource) Fetch(ctx context.Context, topic string) string {
	articles, err := s.Headlines(ctx, topic)
	if err != nil {
		logFetchError(s.Logger, NameNews, topic, err)
		return NewsUnavailable
	}
	return FormatArticles(articles, s.Limit)
}

// Headlines returns the top headlines for topic in the configured country.
func (s *NewsSource) Headlines(ctx context.Context, topic string) ([]Article, error) {
	query := url.Values{}
	query.Set("country", s.Country)
	query.Set("q", topic)
	query.Set("apiKey", s.APIKey)

	body, err := getJSON(ctx, s.HTTP, s.BaseURL, "/v2/top-headlines", query, nil)
	if err != nil {
		return nil, fmt.Errorf("news: %w", err)
	}

	list := body.Get("articles")
	if !list.IsArray() {
		return nil, fmt.Errorf("news: %w: missing articles", ErrMalformedResponse)
	}
	var articles []Article
	list.ForEach(func(_, item gjson.Result) bool {
		articles = append(articles, Article{
			Title:       item.Get("title").String(),
			Description: item.Get("description").String(),
		})
		return true
	})
	return articles, nil
}
