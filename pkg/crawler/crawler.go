package crawler

import (
	"context"
	"fmt"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"ai-coursegen-be/internal/pkg/logger"
	"ai-coursegen-be/pkg/llm"
)

const defaultMaxLinks = 5

// Crawler runs search → fetch → extract for a topic and memoizes the result,
// so repeated runs for the same topic do not re-crawl the web.
type Crawler struct {
	search    *SearchClient
	fetcher   *Fetcher
	extractor *Extractor
	cache     *gocache.Cache
	maxLinks  int
	logger    logger.ILogger
}

func NewCrawler(search *SearchClient, provider llm.LLMProvider, log logger.ILogger) *Crawler {
	return &Crawler{
		search:    search,
		fetcher:   NewFetcher(4, 20*time.Second),
		extractor: NewExtractor(provider),
		cache:     gocache.New(6*time.Hour, 30*time.Minute),
		maxLinks:  defaultMaxLinks,
		logger:    log,
	}
}

// Crawl returns extracted records for the topic. Per-link failures produce
// failed records instead of aborting the batch; only a search failure is an
// error, and the caller is expected to absorb it.
func (c *Crawler) Crawl(ctx context.Context, topic Topic) ([]ScrapedPage, error) {
	query := topic.Query()

	if cached, found := c.cache.Get(query); found {
		c.logger.Info("crawler", "Serving crawl results from cache", map[string]interface{}{"query": query})
		return cached.([]ScrapedPage), nil
	}

	results, err := c.search.Search(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("search for %q: %w", query, err)
	}

	links := make([]string, 0, c.maxLinks)
	for _, r := range results {
		if r.Link == "" {
			continue
		}
		links = append(links, r.Link)
		if len(links) == c.maxLinks {
			break
		}
	}
	if len(links) == 0 {
		c.logger.Warn("crawler", "No links found for topic", map[string]interface{}{"query": query})
		return nil, nil
	}

	c.logger.Info("crawler", "Fetching links", map[string]interface{}{"query": query, "links": len(links)})

	fetched := c.fetcher.FetchAll(ctx, links)

	pages := make([]ScrapedPage, 0, len(fetched))
	succeeded := 0
	for _, f := range fetched {
		if f.Err != nil {
			pages = append(pages, failedPage(f.URL, topic, f.Err.Error()))
			continue
		}
		page := c.extractor.Extract(ctx, f.URL, f.Body, topic)
		if page.Status == StatusSuccess {
			succeeded++
		}
		pages = append(pages, page)
	}

	c.logger.Info("crawler", "Crawl finished", map[string]interface{}{
		"query":     query,
		"pages":     len(pages),
		"succeeded": succeeded,
	})

	c.cache.Set(query, pages, gocache.DefaultExpiration)
	return pages, nil
}
