// Package store defines the persistence interfaces consumed by the service
// layer, the DBTX abstraction that lets implementations run against either a
// connection or a transaction, and the shared store error taxonomy.
package store
