package shared

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestBaseAggregateRoot_StoredVersion(t *testing.T) {
	fresh := NewBaseAggregateRoot()
	assert.Equal(t, 1, fresh.Version)
	assert.Zero(t, fresh.StoredVersion(), "never stored")

	fresh.MarkStored()
	fresh.IncrementVersion()
	fresh.IncrementVersion()
	assert.Equal(t, 3, fresh.Version)
	assert.Equal(t, 1, fresh.StoredVersion())

	loaded := RestoreBaseAggregateRoot(BaseEntity{ID: uuid.New()}, 7)
	assert.Equal(t, 7, loaded.Version)
	assert.Equal(t, 7, loaded.StoredVersion())
}
