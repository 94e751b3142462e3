// Package product contains the catalog value objects the order ledger prices
// against: SKU snapshots with per-packet and per-box prices, the UnitType
// selector, and the Money amount type.
//
// SKUs are immutable reference data owned by the catalog. Order lines embed a
// SKU snapshot so that catalog changes after order placement never alter
// historical orders.
package product
