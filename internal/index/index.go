package index

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/blevesearch/bleve/v2"
)

// Entry is one parsed resume as the search index sees it: the canonical
// contact fields plus a flattened skills line and the raw text.
type Entry struct {
	ID       string
	Filename string
	Name     string
	Email    string
	Skills   string
	Text     string
}

// Hit is a search result; the caller joins the ID back to the resume store
// for the full record.
type Hit struct {
	ID    string  `json:"id"`
	Score float64 `json:"score"`
}

// Index wraps a bleve full-text index over parsed resumes.
type Index struct {
	bm25 bleve.Index
}

// Open creates the index at path if it does not exist yet, otherwise opens
// the existing one.
func Open(path string) (*Index, error) {
	var bmIndex bleve.Index
	var err error

	if _, statErr := os.Stat(path); os.IsNotExist(statErr) {
		mapping := bleve.NewIndexMapping()
		bmIndex, err = bleve.New(path, mapping)
		if err != nil {
			return nil, err
		}
	} else {
		bmIndex, err = bleve.Open(path)
		if err != nil {
			return nil, err
		}
	}

	return &Index{bm25: bmIndex}, nil
}

func (idx *Index) Add(e Entry) error {
	return idx.bm25.Index(e.ID, map[string]interface{}{
		"id":       e.ID,
		"filename": e.Filename,
		"name":     e.Name,
		"email":    e.Email,
		"skills":   e.Skills,
		"text":     e.Text,
	})
}

func (idx *Index) Remove(id string) error {
	return idx.bm25.Delete(id)
}

// Search runs a match query over all indexed fields and returns the top-K
// hits by score.
func (idx *Index) Search(query string, topK int) ([]Hit, error) {
	if topK <= 0 {
		topK = 10
	}

	matchQuery := bleve.NewMatchQuery(query)
	searchReq := bleve.NewSearchRequest(matchQuery)
	searchReq.Size = topK
	results, err := idx.bm25.Search(searchReq)
	if err != nil {
		return nil, fmt.Errorf("search error: %w", err)
	}

	var hits []Hit
	for _, hit := range results.Hits {
		hits = append(hits, Hit{ID: hit.ID, Score: hit.Score})
	}
	return hits, nil
}

func (idx *Index) Count() (uint64, error) {
	return idx.bm25.DocCount()
}

// Close closes the underlying bleve index. Must be called before the same
// path can be opened again.
func (idx *Index) Close() error {
	return idx.bm25.Close()
}

// FlattenSkills turns the parsed "Skills" category map into a single
// searchable line, e.g. "Frameworks: React; Languages: Go, Python".
// Categories come out sorted so the result is stable. Returns "" when the
// result has no usable Skills section.
func FlattenSkills(result map[string]any) string {
	skills, ok := result["Skills"].(map[string]any)
	if !ok {
		return ""
	}

	categories := make([]string, 0, len(skills))
	for cat := range skills {
		categories = append(categories, cat)
	}
	sort.Strings(categories)

	var parts []string
	for _, cat := range categories {
		items, ok := skills[cat].([]any)
		if !ok {
			continue
		}
		var names []string
		for _, item := range items {
			if s, ok := item.(string); ok {
				names = append(names, s)
			}
		}
		if len(names) > 0 {
			parts = append(parts, cat+": "+strings.Join(names, ", "))
		}
	}
	return strings.Join(parts, "; ")
}
