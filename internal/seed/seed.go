// Package seed builds the initial set of vertices a crawl starts from,
// either from explicit URLs or by resolving search queries.
package seed

import (
	"context"
	"fmt"

	"github.com/videograph/walker/internal/expander"
	"github.com/videograph/walker/internal/urlutil"
)

// defaultQueries is the bootstrap search-query corpus, carried forward
// verbatim (content and order) from the system this walker's design
// descends from, used when a run asks for random seeds without supplying
// its own query list.
var defaultQueries = []string{
	"music video 2024",
	"funny videos",
	"cooking tutorial",
	"tech review",
	"travel vlog",
	"gaming",
	"science documentary",
	"sports highlights",
	"news today",
	"educational",
	"nature documentary",
	"movie trailer",
	"podcast",
	"interview",
	"tutorial",
}

// Source resolves seed inputs (URLs or search queries) into the video ids
// a crawl should enqueue before workers start.
type Source struct {
	resolver expander.MetadataResolver
	queries  []string
}

// New returns a Source backed by resolver, using the default query
// corpus for random seeds.
func New(resolver expander.MetadataResolver) *Source {
	return &Source{resolver: resolver, queries: defaultQueries}
}

// WithQueries overrides the search-query corpus used by AddRandomSeeds.
func (s *Source) WithQueries(queries []string) *Source {
	s.queries = queries
	return s
}

// AddSeed resolves a single URL (in any accepted shape) or bare id to a
// video id. It returns expander.ErrInvalidSeed, wrapped, if the input
// can't be resolved at all.
func (s *Source) AddSeed(rawURL string) (string, error) {
	id, err := urlutil.ExtractVideoID(rawURL)
	if err != nil {
		return "", fmt.Errorf("%w: %v", expander.ErrInvalidSeed, err)
	}
	return id, nil
}

// AddRandomSeeds resolves count ids by cycling through the query corpus
// and asking the resolver to search, stopping once count ids have been
// collected or the corpus is exhausted without producing enough results.
func (s *Source) AddRandomSeeds(ctx context.Context, count int) ([]string, error) {
	if count <= 0 {
		return nil, nil
	}
	var ids []string
	for i := 0; len(ids) < count && i < len(s.queries); i++ {
		query := s.queries[i%len(s.queries)]
		remaining := count - len(ids)
		found, err := s.resolver.Search(ctx, query, remaining)
		if err != nil {
			continue
		}
		ids = append(ids, found...)
	}
	if len(ids) > count {
		ids = ids[:count]
	}
	return ids, nil
}
