// Package services contains domain services that implement business logic
// spanning the order aggregate and the pharmacist queue.
//
// The package includes ClaimArbiter, which classifies the outcome of
// concurrent claim attempts against a single queued order. The atomic
// winner selection itself lives in the order store's conditional transition;
// the arbiter turns every losing path into the correct result value.
package services
