package ui

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/videograph/walker/internal/vertex"
)

func TestDepthLabel(t *testing.T) {
	assert.Equal(t, "seed", depthLabel(0))
	assert.Equal(t, "+1", depthLabel(1))
	assert.Equal(t, "+12", depthLabel(12))
}

func TestToRows_MapsVertexFields(t *testing.T) {
	vertices := []*vertex.Vertex{
		{ID: "a", Title: "Video A", Channel: "Chan A", Depth: 0, DiscoveredAt: time.Now()},
		{ID: "b", Title: "Video B", Channel: "Chan B", Depth: 2, DiscoveredAt: time.Now()},
	}

	rows := toRows(vertices)

	assert.Len(t, rows, 2)
	assert.Equal(t, "a", rows[0].ID)
	assert.Equal(t, "seed", rows[0].Depth)
	assert.Equal(t, "+2", rows[1].Depth)
}
