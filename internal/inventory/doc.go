// Package inventory persists tracked food items and their alert history.
//
// Items enter the store with a durable identity (a generated id) after the
// detection pipeline has produced an expiry date, or via manual entry. The
// store indexes nothing beyond its buckets; queries iterate and filter,
// which is fine for a household-scale inventory.
//
// Storage is a single bbolt file with two buckets: one for food items and
// one for triggered alert records, both holding JSON-encoded values keyed
// by id.
package inventory
