// Package services contains stateless domain services that operate across
// aggregates: billed-weight computation and courier status normalization.
// Services hold no state and perform no I/O; handlers load the inputs and
// persist the outputs.
package services
