// Package types defines the entity types, the persistence Channel interface,
// configuration and the standard errors shared by the quote-cart store, the
// catalog engine and the quote submission flow.
package types
