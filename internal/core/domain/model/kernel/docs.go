// Package kernel contains shared value objects used across the domain model:
// identifiers, money amounts, phone numbers, and parcel dimensions.
//
// All types in this package are immutable value objects. Their zero values
// are invalid; instances must be created through the provided constructors,
// which enforce validation. Restore-style constructors exist where values
// need to be rehydrated from persistence.
package kernel
