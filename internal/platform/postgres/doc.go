// Package postgres provides PostgreSQL-backed implementations of the store
// interfaces. Each store accepts a store.DBTX so the same implementation can
// run against a plain connection pool or inside a transaction handed out by
// store.RunInTransaction.
package postgres
