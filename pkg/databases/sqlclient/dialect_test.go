package sqlclient

import (
	"testing"
	"time"

	"github.com/haguru/elibrary/internal/interfaces"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDialect(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Dialect
		wantErr bool
	}{
		{name: "postgres", input: "postgres", want: Postgres},
		{name: "mysql upper case", input: "MySQL", want: MySQL},
		{name: "unsupported", input: "sqlite", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDialect(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBuildInsert(t *testing.T) {
	doc := map[string]interface{}{"title": "Dune", "author": "Frank Herbert", "genre": "SF"}
	tests := []struct {
		name      string
		dialect   Dialect
		wantQuery string
	}{
		{
			name:      "postgres returns id",
			dialect:   Postgres,
			wantQuery: "INSERT INTO books (author, genre, title) VALUES ($1, $2, $3) RETURNING id",
		},
		{
			name:      "mysql uses question marks",
			dialect:   MySQL,
			wantQuery: "INSERT INTO books (author, genre, title) VALUES (?, ?, ?)",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query, values, err := tt.dialect.buildInsert("books", doc)
			require.NoError(t, err)
			assert.Equal(t, tt.wantQuery, query)
			assert.Equal(t, []interface{}{"Frank Herbert", "SF", "Dune"}, values)
		})
	}
}

func TestBuildInsert_Rejects(t *testing.T) {
	_, _, err := Postgres.buildInsert("books", map[string]interface{}{})
	assert.Error(t, err)

	_, _, err = Postgres.buildInsert("books; DROP TABLE users", map[string]interface{}{"title": "x"})
	assert.Error(t, err)

	_, _, err = MySQL.buildInsert("books", map[string]interface{}{"title = 1 --": "x"})
	assert.Error(t, err)
}

func TestBuildSelect(t *testing.T) {
	tests := []struct {
		name       string
		dialect    Dialect
		filter     map[string]interface{}
		opts       *interfaces.FindOptions
		wantQuery  string
		wantValues []interface{}
	}{
		{
			name:       "no filter",
			dialect:    Postgres,
			wantQuery:  "SELECT * FROM posts",
			wantValues: []interface{}{},
		},
		{
			name:       "newest first",
			dialect:    MySQL,
			opts:       &interfaces.FindOptions{SortBy: "created_at", Descending: true},
			wantQuery:  "SELECT * FROM posts ORDER BY created_at DESC",
			wantValues: []interface{}{},
		},
		{
			name:       "filter with limit",
			dialect:    Postgres,
			filter:     map[string]interface{}{"id": int64(3), "author_id": int64(7)},
			opts:       &interfaces.FindOptions{Limit: 1},
			wantQuery:  "SELECT * FROM posts WHERE author_id = $1 AND id = $2 LIMIT 1",
			wantValues: []interface{}{int64(7), int64(3)},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query, values, err := tt.dialect.buildSelect("posts", tt.filter, tt.opts)
			require.NoError(t, err)
			assert.Equal(t, tt.wantQuery, query)
			assert.Equal(t, tt.wantValues, values)
		})
	}
}

func TestBuildSelect_RejectsSortColumn(t *testing.T) {
	_, _, err := Postgres.buildSelect("posts", nil, &interfaces.FindOptions{SortBy: "created_at; --"})
	assert.Error(t, err)
}

func TestBuildUpdate(t *testing.T) {
	update := map[string]interface{}{"title": "Dune Messiah", "genre": "SF"}
	filter := map[string]interface{}{"id": int64(9)}

	query, values, err := Postgres.buildUpdate("books", update, filter)
	require.NoError(t, err)
	assert.Equal(t, "UPDATE books SET genre = $1, title = $2 WHERE id = $3", query)
	assert.Equal(t, []interface{}{"SF", "Dune Messiah", int64(9)}, values)

	query, _, err = MySQL.buildUpdate("books", update, filter)
	require.NoError(t, err)
	assert.Equal(t, "UPDATE books SET genre = ?, title = ? WHERE id = ?", query)

	_, _, err = MySQL.buildUpdate("books", update, nil)
	assert.Error(t, err)
}

func TestBuildDelete(t *testing.T) {
	query, values, err := MySQL.buildDelete("loans", map[string]interface{}{"id": int64(4)})
	require.NoError(t, err)
	assert.Equal(t, "DELETE FROM loans WHERE id = ?", query)
	assert.Equal(t, []interface{}{int64(4)}, values)

	query, _, err = Postgres.buildDelete("loans", nil)
	require.NoError(t, err)
	assert.Equal(t, "DELETE FROM loans", query)
}

func TestDecodeRow(t *testing.T) {
	type loanRow struct {
		ID         int64      `mapstructure:"id"`
		Rating     float64    `mapstructure:"average_rating"`
		IsExtended bool       `mapstructure:"is_extended"`
		LoanDate   time.Time  `mapstructure:"loan_date"`
		ReturnDate *time.Time `mapstructure:"return_date"`
		Title      string     `mapstructure:"title"`
	}

	loanDate := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	row := rowMap(
		[]string{"id", "average_rating", "is_extended", "loan_date", "return_date", "title"},
		[]interface{}{int64(5), []byte("4.50"), int64(1), loanDate, nil, []byte("Dune")},
	)

	var got loanRow
	require.NoError(t, DecodeRow(row, &got))
	assert.Equal(t, int64(5), got.ID)
	assert.InDelta(t, 4.5, got.Rating, 1e-9)
	assert.True(t, got.IsExtended)
	assert.True(t, loanDate.Equal(got.LoanDate))
	assert.Nil(t, got.ReturnDate)
	assert.Equal(t, "Dune", got.Title)
}
