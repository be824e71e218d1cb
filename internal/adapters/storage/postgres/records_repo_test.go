package postgres

import (
	"context"
	"os"
	"testing"

	"livestock-assessment/internal/domain/records"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Requiere una base desechable: TEST_DB_DSN=postgres://... go test ./...
func TestRecordsRepo_ImportListGet(t *testing.T) {
	dsn := os.Getenv("TEST_DB_DSN")
	if dsn == "" {
		t.Skip("TEST_DB_DSN not set")
	}

	ctx := context.Background()
	db, err := Open(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	repo := NewRecordsRepo(db)
	require.NoError(t, repo.EnsureSchema(ctx))

	seed, err := records.Seed()
	require.NoError(t, err)
	require.NoError(t, repo.Import(ctx, seed))

	list, err := repo.List(ctx)
	require.NoError(t, err)
	if diff := cmp.Diff(seed, list); diff != "" {
		t.Fatalf("catalog mismatch (-seed +db):\n%s", diff)
	}

	b, err := repo.Get(ctx, "B-203")
	require.NoError(t, err)
	assert.Nil(t, b.Detail)

	_, err = repo.Get(ctx, "X-999")
	assert.ErrorIs(t, err, records.ErrNotFound)
}

func TestDetailCodec_NullMeansNoDetail(t *testing.T) {
	v, err := encodeDetail(nil)
	require.NoError(t, err)
	assert.Nil(t, v)

	d, err := decodeDetail(nil)
	require.NoError(t, err)
	assert.Nil(t, d)

	_, err = decodeDetail([]byte("{broken"))
	assert.Error(t, err)
}
