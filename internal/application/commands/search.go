package commands

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"focusboard/internal/domain"
	"focusboard/internal/ports"
)

// SearchResult is a note that matched a query
type SearchResult struct {
	Tab   domain.Tab
	Note  domain.Note
	Score int
}

// SearchCommand searches note titles and content across every tab
type SearchCommand struct {
	backend ports.Backend
	Query   string
}

// NewSearchCommand creates a new SearchCommand
func NewSearchCommand(backend ports.Backend, query string) *SearchCommand {
	return &SearchCommand{backend: backend, Query: query}
}

// Execute runs the search command and returns scored, sorted results
func (c *SearchCommand) Execute(ctx context.Context) ([]SearchResult, error) {
	if len(c.Query) < 2 {
		return nil, nil
	}

	tabs, err := NewListTabsCommand(c.backend).Execute(ctx)
	if err != nil {
		return nil, err
	}

	var results []SearchResult
	for _, tab := range tabs {
		notes, err := c.backend.ListNotes(ctx, tab.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to load notes for tab %d: %w", tab.ID, err)
		}
		for _, n := range notes {
			score := max(FuzzyScore(n.Title, c.Query), ContentScore(n.Content, c.Query))
			if score > 0 {
				results = append(results, SearchResult{Tab: tab, Note: n, Score: score})
			}
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	return results, nil
}

// FuzzyScore calculates a relevance score for how well target matches query
func FuzzyScore(target, query string) int {
	target = strings.ToLower(target)
	query = strings.ToLower(query)

	if len(query) == 0 {
		return 0
	}

	if strings.Contains(target, query) {
		score := 100
		if strings.HasPrefix(target, query) {
			score += 50
		}
		return score
	}

	// chars of query must appear in order
	score := 0
	queryIdx := 0
	prevMatchIdx := -1

	for i := 0; i < len(target) && queryIdx < len(query); i++ {
		if target[i] != query[queryIdx] {
			continue
		}
		if prevMatchIdx == i-1 {
			score += 10
		}
		if i == 0 {
			score += 15
		}
		if i > 0 && (target[i-1] == ' ' || target[i-1] == '-' || target[i-1] == '_') {
			score += 10
		}
		score++
		prevMatchIdx = i
		queryIdx++
	}

	if queryIdx == len(query) {
		return score
	}
	return 0
}

// ContentScore scores a plain substring match in note content. Content only
// counts on a substring hit and ranks below an equal title hit.
func ContentScore(content, query string) int {
	if query == "" || !strings.Contains(strings.ToLower(content), strings.ToLower(query)) {
		return 0
	}
	return 50
}
