package sqlclient

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/haguru/elibrary/internal/interfaces"
)

// Dialect selects the driver and the SQL flavour spoken to the server.
type Dialect string

const (
	Postgres Dialect = "postgres"
	MySQL    Dialect = "mysql"
)

var identifierPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// ParseDialect returns the dialect named by name.
func ParseDialect(name string) (Dialect, error) {
	switch d := Dialect(strings.ToLower(name)); d {
	case Postgres, MySQL:
		return d, nil
	default:
		return "", fmt.Errorf("unsupported SQL dialect %q", name)
	}
}

func (d Dialect) placeholder(n int) string {
	if d == Postgres {
		return "$" + strconv.Itoa(n)
	}
	return "?"
}

func checkIdentifier(name string) error {
	if !identifierPattern.MatchString(name) {
		return fmt.Errorf("invalid SQL identifier %q", name)
	}
	return nil
}

func asMap(doc interfaces.Document, what string) (map[string]interface{}, error) {
	if doc == nil {
		return map[string]interface{}{}, nil
	}
	m, ok := doc.(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("%s must be map[string]interface{}, got %T", what, doc)
	}
	return m, nil
}

// sortedColumns keeps generated statements stable for identical documents.
func sortedColumns(m map[string]interface{}) ([]string, error) {
	cols := make([]string, 0, len(m))
	for col := range m {
		if err := checkIdentifier(col); err != nil {
			return nil, err
		}
		cols = append(cols, col)
	}
	sort.Strings(cols)
	return cols, nil
}

// where renders "a = $n AND b = $n+1" starting at placeholder number start.
func (d Dialect) where(filter map[string]interface{}, start int) (string, []interface{}, error) {
	cols, err := sortedColumns(filter)
	if err != nil {
		return "", nil, err
	}
	clauses := make([]string, 0, len(cols))
	values := make([]interface{}, 0, len(cols))
	for i, col := range cols {
		clauses = append(clauses, fmt.Sprintf("%s = %s", col, d.placeholder(start+i)))
		values = append(values, filter[col])
	}
	return strings.Join(clauses, " AND "), values, nil
}

func (d Dialect) buildInsert(table string, doc map[string]interface{}) (string, []interface{}, error) {
	if err := checkIdentifier(table); err != nil {
		return "", nil, err
	}
	cols, err := sortedColumns(doc)
	if err != nil {
		return "", nil, err
	}
	if len(cols) == 0 {
		return "", nil, fmt.Errorf("insert into %s has no columns", table)
	}

	placeholders := make([]string, len(cols))
	values := make([]interface{}, len(cols))
	for i, col := range cols {
		placeholders[i] = d.placeholder(i + 1)
		values[i] = doc[col]
	}

	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		table,
		strings.Join(cols, ", "),
		strings.Join(placeholders, ", "),
	) // #nosec G201
	if d == Postgres {
		query += " RETURNING id"
	}
	return query, values, nil
}

func (d Dialect) buildSelect(table string, filter map[string]interface{}, opts *interfaces.FindOptions) (string, []interface{}, error) {
	if err := checkIdentifier(table); err != nil {
		return "", nil, err
	}
	whereString, values, err := d.where(filter, 1)
	if err != nil {
		return "", nil, err
	}

	query := "SELECT * FROM " + table
	if whereString != "" {
		query += " WHERE " + whereString
	}
	if opts != nil {
		if opts.SortBy != "" {
			if err := checkIdentifier(opts.SortBy); err != nil {
				return "", nil, err
			}
			query += " ORDER BY " + opts.SortBy
			if opts.Descending {
				query += " DESC"
			}
		}
		if opts.Limit > 0 {
			query += " LIMIT " + strconv.FormatInt(opts.Limit, 10)
		}
	}
	return query, values, nil
}

func (d Dialect) buildUpdate(table string, update, filter map[string]interface{}) (string, []interface{}, error) {
	if err := checkIdentifier(table); err != nil {
		return "", nil, err
	}
	cols, err := sortedColumns(update)
	if err != nil {
		return "", nil, err
	}
	if len(cols) == 0 {
		return "", nil, fmt.Errorf("update of %s has no columns", table)
	}
	if len(filter) == 0 {
		return "", nil, fmt.Errorf("update of %s requires a filter", table)
	}

	setClauses := make([]string, len(cols))
	values := make([]interface{}, 0, len(cols)+len(filter))
	for i, col := range cols {
		setClauses[i] = fmt.Sprintf("%s = %s", col, d.placeholder(i+1))
		values = append(values, update[col])
	}
	whereString, whereValues, err := d.where(filter, len(cols)+1)
	if err != nil {
		return "", nil, err
	}

	query := fmt.Sprintf("UPDATE %s SET %s WHERE %s",
		table,
		strings.Join(setClauses, ", "),
		whereString,
	) // #nosec G201
	return query, append(values, whereValues...), nil
}

func (d Dialect) buildDelete(table string, filter map[string]interface{}) (string, []interface{}, error) {
	if err := checkIdentifier(table); err != nil {
		return "", nil, err
	}
	whereString, values, err := d.where(filter, 1)
	if err != nil {
		return "", nil, err
	}
	query := "DELETE FROM " + table
	if whereString != "" {
		query += " WHERE " + whereString
	}
	return query, values, nil
}
