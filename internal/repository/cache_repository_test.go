package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/noah-isme/avaliacao-fisica-api/pkg/errors"
)

func TestCacheRepositoryWithoutClient(t *testing.T) {
	repo := NewCacheRepository(nil, "")
	ctx := context.Background()

	var dest []string
	require.ErrorIs(t, repo.Get(ctx, "campus:list", &dest), appErrors.ErrCacheMiss)
	require.NoError(t, repo.Set(ctx, "campus:list", []string{"Chapecó"}, time.Minute))
	require.NoError(t, repo.Delete(ctx, "campus:list"))
	require.NoError(t, repo.Close())
}

func TestCacheRepositoryNamespacesKeys(t *testing.T) {
	assert.Equal(t, "avaliacao:campus:list", NewCacheRepository(nil, "").key("campus:list"))
	assert.Equal(t, "staging:campus:list", NewCacheRepository(nil, "staging").key("campus:list"))
}
