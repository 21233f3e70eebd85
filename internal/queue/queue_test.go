package queue

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQueueOrderAndDedup(t *testing.T) {
	q := New("bremen", "hamburg", "bremen", "", "berlin")

	assert.Equal(t, 3, q.Len())
	assert.Equal(t, 3, q.Total())
	assert.False(t, q.Add("hamburg"))

	var got []string
	for {
		region, ok := q.Next()
		if !ok {
			break
		}
		got = append(got, region)
	}

	assert.Equal(t, []string{"bremen", "hamburg", "berlin"}, got)
	assert.Equal(t, 0, q.Len())
	assert.Equal(t, 3, q.Total())

	// A processed region is not queued again
	assert.False(t, q.Add("bremen"))
	assert.True(t, q.Add("bayern"))
}

func TestQueueEmpty(t *testing.T) {
	q := New()
	_, ok := q.Next()
	assert.False(t, ok)
	assert.Equal(t, 0, q.Total())
}
