package admin

import (
	"testing"

	"github.com/gofrs/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNullableUserID(t *testing.T) {
	t.Run("unlinked_admin_inserts_null", func(t *testing.T) {
		unlinked := nullableUserID(uuid.Nil)
		assert.False(t, unlinked.Valid)

		v, err := unlinked.Value()
		require.NoError(t, err)
		assert.Nil(t, v)
	})

	t.Run("linked_admin_keeps_id", func(t *testing.T) {
		userID := uuid.Must(uuid.NewV4())
		linked := nullableUserID(userID)
		require.True(t, linked.Valid)
		assert.Equal(t, userID, linked.UUID)

		v, err := linked.Value()
		require.NoError(t, err)
		assert.Equal(t, userID.String(), v)
	})
}
