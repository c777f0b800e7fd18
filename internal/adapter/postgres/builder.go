package postgres

import "github.com/Masterminds/squirrel"

// Builder returns a squirrel statement builder using PostgreSQL placeholders.
func Builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

// NotDeleted is the soft-delete filter for a table alias or name.
func NotDeleted(table string) squirrel.Eq {
	return squirrel.Eq{table + ".deleted_at": nil}
}
