package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestCategoryMapping(t *testing.T) {
	// Users type "loved"; the store keeps "watched".
	got, err := ParseCategoryLabel("loved")
	assert.NoError(t, err)
	assert.Equal(t, CategoryWatched, got)
	assert.Equal(t, "loved", got.Label())

	got, err = ParseCategoryLabel("planned")
	assert.NoError(t, err)
	assert.Equal(t, CategoryPlanned, got)
	assert.Equal(t, "planned", got.Label())

	// The stored value is not accepted as user input.
	_, err = ParseCategoryLabel("watched")
	assert.Error(t, err)
	assert.True(t, IsValidation(err))

	_, err = ParseCategoryLabel("favorite")
	assert.Error(t, err)
}

func TestUserScopeIDs(t *testing.T) {
	user := &User{ID: uuid.New()}
	assert.Equal(t, []uuid.UUID{user.ID}, user.ScopeIDs())
	assert.False(t, user.HasPartner())

	partnerID := uuid.New()
	user.PartnerID = &partnerID
	assert.Equal(t, []uuid.UUID{user.ID, partnerID}, user.ScopeIDs())
	assert.True(t, user.HasPartner())
}
