package repository

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sessionDomain "github.com/allisson/storefront/internal/session/domain"
)

func TestMySQLKVStore_Get(t *testing.T) {
	db, mock := newSQLMock(t)
	store := NewMySQLKVStore(db, "default")

	mock.ExpectQuery(`SELECT kv_key, kv_value FROM session_kv WHERE profile = \?`).
		WithArgs("default").
		WillReturnRows(sqlmock.NewRows([]string{"kv_key", "kv_value"}).
			AddRow("user", []byte(`{"id":"u1"}`)))

	values, err := store.Get(context.Background(), sessionDomain.KeyUser)
	require.NoError(t, err)
	assert.Equal(t, map[string][]byte{"user": []byte(`{"id":"u1"}`)}, values)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMySQLKVStore_GetError(t *testing.T) {
	db, mock := newSQLMock(t)
	store := NewMySQLKVStore(db, "default")

	mock.ExpectQuery(`SELECT kv_key, kv_value FROM session_kv`).WillReturnError(assert.AnError)

	_, err := store.Get(context.Background(), sessionDomain.Keys()...)
	assert.ErrorIs(t, err, assert.AnError)
}

func TestMySQLKVStore_Apply(t *testing.T) {
	db, mock := newSQLMock(t)
	store := NewMySQLKVStore(db, "default")

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM session_kv WHERE profile = \? AND kv_key = \?`).
		WithArgs("default", "accessToken").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`DELETE FROM session_kv WHERE profile = \? AND kv_key = \?`).
		WithArgs("default", "refreshToken").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := store.Apply(context.Background(), sessionDomain.Batch{Deletes: []string{"accessToken", "refreshToken"}})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMySQLKVStore_ApplyUpsert(t *testing.T) {
	db, mock := newSQLMock(t)
	store := NewMySQLKVStore(db, "default")

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO session_kv .* ON DUPLICATE KEY UPDATE`).
		WithArgs("default", "accessToken", []byte("A2"), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	err := store.Apply(context.Background(), sessionDomain.Batch{Puts: map[string][]byte{"accessToken": []byte("A2")}})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
