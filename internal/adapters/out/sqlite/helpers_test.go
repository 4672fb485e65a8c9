package sqlite_test

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"
)

func corruptBucket(t *testing.T, path, bucket, payload string) {
	t.Helper()
	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	_, err = db.Exec(`UPDATE state SET payload = ? WHERE bucket = ?`, []byte(payload), bucket)
	require.NoError(t, err)
}
