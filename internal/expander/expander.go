// Package expander implements the graph-expansion strategies that turn a
// bare video ID into a fully-resolved vertex.Vertex plus its outbound
// related-video edges.
package expander

import (
	"context"
	"errors"
	"fmt"

	"github.com/videograph/walker/internal/vertex"
)

// Outcome classifies how an expansion attempt went, independent of the Go
// error it also returns. PartialMetadata is explicitly not an error: the
// vertex is still recorded, just with some fields empty.
type Outcome int

const (
	// OutcomeOK means the vertex and its related ids were fully resolved.
	OutcomeOK Outcome = iota
	// OutcomePartialMetadata means related ids resolved but title/channel/
	// duration/view-count did not (e.g. the metadata resolver failed but
	// the page scrape succeeded). Not an error.
	OutcomePartialMetadata
	// OutcomeTransientFailure means a retryable condition (timeout, 5xx,
	// rate limiting) prevented expansion. The id stays claimed-but-
	// unretried, per the no-retry design decision.
	OutcomeTransientFailure
	// OutcomePermanentFailure means the id cannot ever expand (removed
	// video, private video, invalid id). Also left claimed-but-unretried.
	OutcomePermanentFailure
)

// ErrInvalidSeed is returned when a seed string cannot be resolved to a
// video id at all.
var ErrInvalidSeed = errors.New("expander: invalid seed")

// Expander resolves a video id into a vertex plus its related ids.
type Expander interface {
	Expand(ctx context.Context, id string) (*vertex.Vertex, Outcome, error)
}

// ExpansionError wraps the underlying cause alongside the Outcome that
// produced it, so callers that only have an error value (e.g. logging)
// can still report which bucket it fell into.
type ExpansionError struct {
	Outcome Outcome
	ID      string
	Err     error
}

func (e *ExpansionError) Error() string {
	return fmt.Sprintf("expand %s: %v", e.ID, e.Err)
}

func (e *ExpansionError) Unwrap() error { return e.Err }
