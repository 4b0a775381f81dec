package querybuilder

import (
	"fmt"
	"strings"
)

// QueryBuilder assembles SELECT and INSERT statements with "?" placeholders.
// Callers rebind the result for their driver (sqlx.Rebind).
type QueryBuilder interface {
	Select(cols ...string) QueryBuilder
	From(table string) QueryBuilder
	Into(table string) QueryBuilder
	OrderBy(col string, asc bool) QueryBuilder

	Insert(cols ...string) QueryBuilder
	Values(values ...interface{}) QueryBuilder
	Returning(cols ...string) QueryBuilder

	Build() (string, []interface{}, error)
}

// InsertRows holds one slice of values per inserted row
type InsertRows [][]interface{}

type queryBuilder struct {
	table     string
	cols      []string
	values    InsertRows
	orderBy   []string
	returning []string
	schema    string
}

func NewQueryBuilder(schema string) QueryBuilder {
	return &queryBuilder{
		schema: schema,
	}
}

func (q *queryBuilder) Select(cols ...string) QueryBuilder {
	q.cols = append(q.cols, cols...)
	return q
}

func (q *queryBuilder) From(table string) QueryBuilder {
	q.table = table
	return q
}

func (q *queryBuilder) Into(table string) QueryBuilder {
	q.table = table
	return q
}

func (q *queryBuilder) OrderBy(col string, asc bool) QueryBuilder {
	orderVector := "ASC"
	if !asc {
		orderVector = "DESC"
	}
	q.orderBy = append(q.orderBy, fmt.Sprintf("%s %s", col, orderVector))
	return q
}

func (q *queryBuilder) Insert(cols ...string) QueryBuilder {
	q.cols = cols
	return q
}

func (q *queryBuilder) Values(values ...interface{}) QueryBuilder {
	q.values = append(q.values, values)
	return q
}

func (q *queryBuilder) Returning(cols ...string) QueryBuilder {
	q.returning = append(q.returning, cols...)
	return q
}

func (q *queryBuilder) Build() (string, []interface{}, error) {
	if q.table == "" {
		return "", nil, fmt.Errorf("querybuilder: no table")
	}
	if len(q.values) > 0 {
		return q.buildInsert()
	}
	return q.buildSelect()
}

func (q *queryBuilder) qualifiedTable() string {
	if q.schema == "" {
		return q.table
	}
	return fmt.Sprintf("%s.%s", q.schema, q.table)
}

func (q *queryBuilder) buildSelect() (string, []interface{}, error) {
	if len(q.cols) == 0 {
		return "", nil, fmt.Errorf("querybuilder: select without columns")
	}
	query := fmt.Sprintf("SELECT %s FROM %s", strings.Join(q.cols, ", "), q.qualifiedTable())

	if len(q.orderBy) > 0 {
		query += fmt.Sprintf(" ORDER BY %s", strings.Join(q.orderBy, ", "))
	}

	return query, nil, nil
}

func (q *queryBuilder) buildInsert() (string, []interface{}, error) {
	numOfParam := len(q.cols)
	if numOfParam == 0 {
		return "", nil, fmt.Errorf("querybuilder: insert without columns")
	}

	var (
		valueTuples = make([]string, len(q.values))
		args        = make([]interface{}, 0, numOfParam*len(q.values))
		placeholder = "(" + strings.TrimSuffix(strings.Repeat("?, ", numOfParam), ", ") + ")"
	)
	for i, row := range q.values {
		if len(row) != numOfParam {
			return "", nil, fmt.Errorf("querybuilder: row %d has %d values, want %d", i, len(row), numOfParam)
		}
		args = append(args, row...)
		valueTuples[i] = placeholder
	}

	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES %s",
		q.qualifiedTable(), strings.Join(q.cols, ", "), strings.Join(valueTuples, ", "))

	if len(q.returning) > 0 {
		query += fmt.Sprintf(" RETURNING %s", strings.Join(q.returning, ", "))
	}

	return query, args, nil
}
