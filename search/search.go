package search

import (
	"fmt"
	"html"
	"regexp"
	"strconv"
	"sync"

	"github.com/blevesearch/bleve/v2"

	"github.com/tluyben/hn-top/types"
)

// Document is the searchable form of an item
type Document struct {
	Type  string `json:"type"`
	By    string `json:"by,omitempty"`
	Title string `json:"title,omitempty"`
	Text  string `json:"text,omitempty"`
	URL   string `json:"url,omitempty"`
}

var tagRe = regexp.MustCompile(`<[^>]*>`)

// plain strips markup from HN's HTML text fields
func plain(s string) string {
	return html.UnescapeString(tagRe.ReplaceAllString(s, " "))
}

type documenter struct{}

func (documenter) VisitStory(s types.Story) Document {
	return Document{Type: string(s.Kind()), By: s.By, Title: s.Title, Text: plain(s.Text.Or("")), URL: s.URL.Or("")}
}

func (documenter) VisitJob(j types.Job) Document {
	return Document{Type: string(j.Kind()), By: j.By, Title: j.Title, Text: plain(j.Text.Or("")), URL: j.URL.Or("")}
}

func (documenter) VisitPoll(p types.Poll) Document {
	return Document{Type: string(p.Kind()), By: p.By, Title: p.Title}
}

func (documenter) VisitPollOpt(o types.PollOpt) Document {
	return Document{Type: string(o.Kind()), Text: plain(o.Text)}
}

func (documenter) VisitComment(c types.Comment) Document {
	return Document{Type: string(c.Kind()), By: c.By, Text: plain(c.Text)}
}

// NewDocument builds the searchable form of item
func NewDocument(item types.Item) Document {
	return types.Visit[Document](item, documenter{})
}

// Index is an in-memory full-text index over a batch of items. Documents
// are keyed by their position in the batch.
type Index struct {
	index bleve.Index
	mu    sync.RWMutex
	size  int
}

// NewIndex creates an empty in-memory index
func NewIndex() (*Index, error) {
	index, err := bleve.NewMemOnly(bleve.NewIndexMapping())
	if err != nil {
		return nil, fmt.Errorf("failed to create index: %w", err)
	}
	return &Index{index: index}, nil
}

// Add indexes items, continuing the position numbering of earlier
// successful calls. A failed call leaves the numbering unchanged.
func (i *Index) Add(items ...types.Item) error {
	i.mu.Lock()
	defer i.mu.Unlock()

	batch := i.index.NewBatch()
	next := i.size
	for _, it := range items {
		if err := batch.Index(strconv.Itoa(next), NewDocument(it)); err != nil {
			return fmt.Errorf("failed to index item %d: %w", next, err)
		}
		next++
	}
	if err := i.index.Batch(batch); err != nil {
		return fmt.Errorf("failed to index batch: %w", err)
	}
	// positions are only taken once the batch is in the index
	i.size = next
	return nil
}

// Search runs a query string query and returns the positions of up to
// size matching items, best match first
func (i *Index) Search(query string, size int) ([]int, error) {
	i.mu.RLock()
	defer i.mu.RUnlock()

	searchRequest := bleve.NewSearchRequestOptions(bleve.NewQueryStringQuery(query), size, 0, false)
	result, err := i.index.Search(searchRequest)
	if err != nil {
		return nil, fmt.Errorf("search %q: %w", query, err)
	}

	positions := make([]int, 0, len(result.Hits))
	for _, hit := range result.Hits {
		pos, err := strconv.Atoi(hit.ID)
		if err != nil {
			return nil, fmt.Errorf("unexpected document id %q", hit.ID)
		}
		positions = append(positions, pos)
	}
	return positions, nil
}

// Close closes the search index
func (i *Index) Close() error {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.index.Close()
}
