// Package catalog holds the read-only catalog entities the order core
// consumes: schools, their classes, item groups assigned to classes, and the
// items inside a group. Catalog administration happens outside this system;
// these entities are only ever rehydrated from the catalog store, so each
// type exposes a Restore constructor rather than a creating one.
package catalog
