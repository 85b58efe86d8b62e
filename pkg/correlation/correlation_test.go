package correlation

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestContextRoundTrip(t *testing.T) {
	ctx := context.Background()
	assert.Empty(t, FromContext(ctx))

	id := NewID()
	assert.Equal(t, id, FromContext(WithID(ctx, id)))

	_, err := uuid.Parse(id)
	assert.NoError(t, err)
}
