// Package jobs provides scheduled background tasks for the order pipeline.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to recover from failed fire-and-forget provider calls: the steps that are
// deliberately allowed to fail without rolling back an order.
//
// # Available Jobs
//
// 1. PaymentLinkRecoveryJob - Runs every 5 minutes to re-issue payment links
// for pending orders whose link creation failed at submission time
// 2. WeightBackfillJob - Runs every 10 minutes to compute weights for active
// orders whose weight pass failed at submission time
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	jobManager := jobs.NewJobManager(paymentLinkRecoveryJob, weightBackfillJob)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	defer jobManager.StopAll()
//
// # Error Handling
//
// Both jobs are reconciliation loops over idempotent operations: a failed run
// leaves the affected orders for the next tick. Per-order failures are logged
// and never abort the rest of the batch.
package jobs
