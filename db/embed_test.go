package db

import (
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrationsArePaired(t *testing.T) {
	up, err := fs.Glob(Migrations, MigrationsDir+"/*.up.sql")
	require.NoError(t, err)
	down, err := fs.Glob(Migrations, MigrationsDir+"/*.down.sql")
	require.NoError(t, err)

	assert.NotEmpty(t, up)
	assert.Len(t, down, len(up))
}
