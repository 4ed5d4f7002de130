// Package postgres implements store.UserStore on PostgreSQL through
// database/sql and the pgx stdlib driver. Schema changes live in the
// migrations subpackage.
package postgres
