// Package repository provides a generic repository built on Bun for CRUD
// operations, predicate queries, status counts, pagination, transactions and
// upserts. Driver errors are translated into the typed errors of the types
// package.
package repository
