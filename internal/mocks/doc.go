// Package mocks provides in-memory fake store implementations for
// service-level tests.
//
// Each fake keeps its rows in a mutex-guarded map and reproduces the
// conflict semantics of the real Postgres stores: conflict-tolerant
// inserts report whether they created a row, unique constraints surface
// the same sentinel errors, and WithTx returns the fake itself so
// transaction-bound code paths run against the shared state. A fake has
// no transactional isolation or rollback; tests that need those belong
// against a real database.
//
// Usage:
//
//	progressions := mocks.NewFakeProgressionStore()
//	events := mocks.NewFakeXPEventStore()
//	svc := xp.NewService(mocks.NewLazyDB(), progressions, events, clk, nil, nil)
package mocks
