package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inventory-dashboard/internal/config"
)

func TestBuildDSN(t *testing.T) {
	tests := []struct {
		name    string
		cfg     config.DatabaseConfig
		want    string
		wantErr bool
	}{
		{
			name: "full path with scheme",
			cfg:  config.DatabaseConfig{Path: "mysql://u:p@tcp(db:3306)/inv"},
			want: "u:p@tcp(db:3306)/inv?multiStatements=true&parseTime=true",
		},
		{
			name: "path with existing params",
			cfg:  config.DatabaseConfig{Path: "u:p@tcp(db:3306)/inv?charset=utf8mb4&parseTime=true"},
			want: "u:p@tcp(db:3306)/inv?charset=utf8mb4&parseTime=true&multiStatements=true",
		},
		{
			name: "host parts with default port",
			cfg:  config.DatabaseConfig{Host: "localhost", User: "root", Password: "secret", DBName: "inv"},
			want: "root:secret@tcp(localhost:3306)/inv?parseTime=true&charset=utf8mb4&multiStatements=true",
		},
		{
			name:    "missing parameters",
			cfg:     config.DatabaseConfig{Host: "localhost"},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := BuildDSN(tt.cfg)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDatabaseName(t *testing.T) {
	assert.Equal(t, "inv", databaseName("u:p@tcp(db:3306)/inv?parseTime=true"))
	assert.Equal(t, "inv", databaseName("u:p@tcp(db:3306)/inv"))
	assert.Equal(t, "", databaseName("nodb"))
}

func TestQueriesWithoutDB(t *testing.T) {
	prev := DB
	DB = nil
	defer func() { DB = prev }()

	_, err := GetAllProducts(t.Context())
	assert.ErrorIs(t, err, errNotInitialized)
	_, err = LoadCarouselItems(t.Context())
	assert.ErrorIs(t, err, errNotInitialized)
	_, err = GetUserByEmail("a@b.c")
	assert.ErrorIs(t, err, errNotInitialized)
}
