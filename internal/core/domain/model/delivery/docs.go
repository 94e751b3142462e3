// Package delivery implements the Delivery aggregate: the fulfillment record
// tracking an order's physical movement through the fixed phase sequence
// Packaging, Transit, ShipToOutlet, OutForDelivery, Delivered, with Cancelled
// as a side-branch from any non-terminal phase.
//
// The aggregate owns its append-only status history and the cancellation
// record, enforces terminality and phase adjacency on every transition, and
// derives the "delayed" classification on read without persisting it.
package delivery
