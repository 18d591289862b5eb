package jobs

import (
	"fmt"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	paymentLinkRecoveryJob *PaymentLinkRecoveryJob
	weightBackfillJob      *WeightBackfillJob
}

// NewJobManager creates a new job manager over the recovery jobs.
func NewJobManager(
	paymentLinkRecoveryJob *PaymentLinkRecoveryJob,
	weightBackfillJob *WeightBackfillJob,
) *JobManager {
	return &JobManager{
		paymentLinkRecoveryJob: paymentLinkRecoveryJob,
		weightBackfillJob:      weightBackfillJob,
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.paymentLinkRecoveryJob.Start(); err != nil {
		return fmt.Errorf("failed to start payment link recovery job: %w", err)
	}

	if err := jm.weightBackfillJob.Start(); err != nil {
		// Stop already started jobs if this one fails
		jm.paymentLinkRecoveryJob.Stop()
		return fmt.Errorf("failed to start weight backfill job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.weightBackfillJob.Stop()
	jm.paymentLinkRecoveryJob.Stop()
}
