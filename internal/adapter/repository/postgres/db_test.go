package postgres

import (
	"io/fs"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simaogato/wealthflow-roadmap/internal/adapter/repository/postgres/migrations"
)

func TestUpSection(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{
			name:    "up and down",
			content: "-- +migrate Up\nCREATE TABLE a (id INT);\n-- +migrate Down\nDROP TABLE a;\n",
			want:    "CREATE TABLE a (id INT);",
		},
		{
			name:    "up only",
			content: "-- +migrate Up\nCREATE TABLE b (id INT);\n",
			want:    "CREATE TABLE b (id INT);",
		},
		{
			name:    "no markers",
			content: "CREATE TABLE c (id INT);",
			want:    "CREATE TABLE c (id INT);",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, strings.TrimSpace(upSection(tt.content)))
		})
	}
}

func TestEmbeddedMigrations(t *testing.T) {
	entries, err := fs.ReadDir(migrations.FS, ".")
	require.NoError(t, err)

	var names []string
	for _, entry := range entries {
		names = append(names, entry.Name())
	}
	assert.Equal(t, []string{"001_holdings.sql", "002_profiles.sql", "003_roadmaps.sql"}, names)

	for _, name := range names {
		content, err := fs.ReadFile(migrations.FS, name)
		require.NoError(t, err)
		up := upSection(string(content))
		assert.Contains(t, up, "CREATE TABLE", name)
		assert.NotContains(t, up, "DROP TABLE", name)
	}
}
