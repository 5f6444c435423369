// Package analytics derives waste, cost, and sustainability metrics from
// the item history recorded in the inventory store.
//
// Costs and CO2 footprints are estimated per category from fixed
// lifecycle averages, so the numbers are indicative rather than exact.
// All period-based calculations take an explicit reference time, which
// keeps them reproducible in tests.
package analytics
