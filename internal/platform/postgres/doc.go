// Package postgres provides PostgreSQL implementations of the store
// interfaces. All implementations accept a store.DBTX so they run equally
// against a pooled connection or an open transaction, and map driver errors
// to the shared store error taxonomy.
package postgres
