// Package order implements the Order aggregate of the ledger: line items
// embedding SKU snapshots, the pricing rule (line amount by unit type, flat
// 10% discount for any non-empty code), and the derived amount invariants.
package order
