// Package order provides the Order aggregate and its satellite entities:
// order lines with captured unit prices, parcels, and append-only webhook
// audit records.
//
// Key business rules:
//   - total = items subtotal + delivery charge, computed at creation and
//     never recomputed afterwards
//   - unit prices are snapshots taken at order time
//   - the payment leg settles at most once (pending to paid or failed), and
//     duplicate settlements surface as ErrPaymentNotPending
//   - the ranked delivery progression never moves backward; cancellation is
//     allowed from any non-delivered, non-terminal state
//
// The package follows Domain-Driven Design: aggregates expose behavior, keep
// private state, and are constructed only through validating constructors.
package order
