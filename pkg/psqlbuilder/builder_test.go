package psqlbuilder

import (
	"testing"

	"github.com/Masterminds/squirrel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectUsesDollarPlaceholders(t *testing.T) {
	query, args, err := Select("id", "name").
		From("slots").
		Where(squirrel.Eq{"id": 7}).
		Where(squirrel.Eq{"is_active": true}).
		ToSql()

	require.NoError(t, err)
	assert.Equal(t, "SELECT id, name FROM slots WHERE id = $1 AND is_active = $2", query)
	assert.Equal(t, []interface{}{7, true}, args)
}

func TestDeleteUsesDollarPlaceholders(t *testing.T) {
	query, args, err := Delete("bookings").Where(squirrel.Eq{"cancel_token": "abc"}).ToSql()

	require.NoError(t, err)
	assert.Equal(t, "DELETE FROM bookings WHERE cancel_token = $1", query)
	assert.Equal(t, []interface{}{"abc"}, args)
}
