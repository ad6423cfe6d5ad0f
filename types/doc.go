// Package types holds the leaf types shared by every layer: the Status enum,
// calendar dates, JSON columns, predicates, page requests and typed errors.
package types
