package sql

import (
	"fmt"
	"strings"

	"github.com/haguru/elibrary/internal/libraryrepo/constants"
	"github.com/haguru/elibrary/pkg/databases/sqlclient"
)

const usersTable = "users"

type foreignKey struct {
	column string
	table  string
}

type tableDef struct {
	columns     map[sqlclient.Dialect][]string
	foreignKeys []foreignKey
}

var (
	postgresID = "id BIGSERIAL PRIMARY KEY"
	mysqlID    = "id BIGINT AUTO_INCREMENT PRIMARY KEY"
)

// tables describes every library table per dialect. Loans, reviews and posts reference
// users and books, which must exist first.
var tables = map[string]tableDef{
	constants.BooksTable: {
		columns: map[sqlclient.Dialect][]string{
			sqlclient.Postgres: {
				postgresID,
				"title VARCHAR(255) NOT NULL",
				"author VARCHAR(100) NOT NULL",
				"genre VARCHAR(100) NOT NULL",
				"description TEXT NOT NULL",
				"image_path VARCHAR(255) NOT NULL",
				"average_rating NUMERIC(3,2) NOT NULL DEFAULT 0",
				"total_reviews INTEGER NOT NULL DEFAULT 0",
				"created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()",
			},
			sqlclient.MySQL: {
				mysqlID,
				"title VARCHAR(255) NOT NULL",
				"author VARCHAR(100) NOT NULL",
				"genre VARCHAR(100) NOT NULL",
				"description TEXT NOT NULL",
				"image_path VARCHAR(255) NOT NULL",
				"average_rating DECIMAL(3,2) NOT NULL DEFAULT 0",
				"total_reviews INT NOT NULL DEFAULT 0",
				"created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP",
			},
		},
	},
	constants.LoansTable: {
		columns: map[sqlclient.Dialect][]string{
			sqlclient.Postgres: {
				postgresID,
				"user_id BIGINT NOT NULL",
				"book_id BIGINT NOT NULL",
				"loan_date TIMESTAMPTZ NOT NULL",
				"return_date TIMESTAMPTZ NULL",
				"due_date TIMESTAMPTZ NOT NULL",
				"is_extended BOOLEAN NOT NULL DEFAULT FALSE",
			},
			sqlclient.MySQL: {
				mysqlID,
				"user_id BIGINT NOT NULL",
				"book_id BIGINT NOT NULL",
				"loan_date DATETIME NOT NULL",
				"return_date DATETIME NULL",
				"due_date DATETIME NOT NULL",
				"is_extended TINYINT(1) NOT NULL DEFAULT 0",
			},
		},
		foreignKeys: []foreignKey{{"user_id", usersTable}, {"book_id", constants.BooksTable}},
	},
	constants.ReviewsTable: {
		columns: map[sqlclient.Dialect][]string{
			sqlclient.Postgres: {
				postgresID,
				"user_id BIGINT NOT NULL",
				"book_id BIGINT NOT NULL",
				"review_text TEXT NOT NULL",
				"rating SMALLINT NOT NULL",
				"created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()",
				"is_moderated BOOLEAN NOT NULL DEFAULT FALSE",
			},
			sqlclient.MySQL: {
				mysqlID,
				"user_id BIGINT NOT NULL",
				"book_id BIGINT NOT NULL",
				"review_text TEXT NOT NULL",
				"rating TINYINT NOT NULL",
				"created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP",
				"is_moderated TINYINT(1) NOT NULL DEFAULT 0",
			},
		},
		foreignKeys: []foreignKey{{"user_id", usersTable}, {"book_id", constants.BooksTable}},
	},
	constants.PostsTable: {
		columns: map[sqlclient.Dialect][]string{
			sqlclient.Postgres: {
				postgresID,
				"title VARCHAR(255) NOT NULL",
				"content TEXT NOT NULL",
				"author_id BIGINT NOT NULL",
				"created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()",
			},
			sqlclient.MySQL: {
				mysqlID,
				"title VARCHAR(255) NOT NULL",
				"content TEXT NOT NULL",
				"author_id BIGINT NOT NULL",
				"created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP",
			},
		},
		foreignKeys: []foreignKey{{"author_id", usersTable}},
	},
}

// createStatement renders the CREATE TABLE IF NOT EXISTS statement of table. Foreign keys
// into users are left out when userRefs is false, which is the case when users live in
// MongoDB.
func createStatement(table string, dialect sqlclient.Dialect, userRefs bool) (string, error) {
	def, ok := tables[table]
	if !ok {
		return "", fmt.Errorf("unknown table %q", table)
	}
	columns, ok := def.columns[dialect]
	if !ok {
		return "", fmt.Errorf("unsupported SQL dialect %q", dialect)
	}

	lines := append([]string{}, columns...)
	for _, fk := range def.foreignKeys {
		if fk.table == usersTable && !userRefs {
			continue
		}
		lines = append(lines, fmt.Sprintf("FOREIGN KEY (%s) REFERENCES %s(id)", fk.column, fk.table))
	}

	stmt := fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (\n\t%s\n)", table, strings.Join(lines, ",\n\t"))
	if dialect == sqlclient.MySQL {
		stmt += " ENGINE=InnoDB DEFAULT CHARSET=utf8mb4"
	}
	return stmt, nil
}
