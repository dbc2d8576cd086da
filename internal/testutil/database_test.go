package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTestDSNs(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		t.Setenv("TEST_POSTGRES_DSN", "")
		t.Setenv("TEST_MYSQL_DSN", "")

		assert.Equal(t, defaultPostgresTestDSN, GetPostgresTestDSN())
		assert.Equal(t, defaultMySQLTestDSN, GetMySQLTestDSN())
	})

	t.Run("overridden", func(t *testing.T) {
		//nolint:gosec // test database credentials
		t.Setenv("TEST_POSTGRES_DSN", "postgres://store:store@db:5432/sessions?sslmode=disable")
		t.Setenv("TEST_MYSQL_DSN", "store:store@tcp(db:3306)/sessions?parseTime=true")

		assert.Equal(t, "postgres://store:store@db:5432/sessions?sslmode=disable", GetPostgresTestDSN())
		assert.Equal(t, "store:store@tcp(db:3306)/sessions?parseTime=true", GetMySQLTestDSN())
	})
}
