package subscription

import (
	"pen/pkg/domain"

	"github.com/google/uuid"
	"github.com/riverqueue/river"
	"github.com/riverqueue/river/rivertype"
)

// ActivateArgs is the river job completing a simulated payment.
type ActivateArgs struct {
	// UserID is unique so a user never has two activations queued at once.
	UserID uuid.UUID `json:"userId" river:"unique"`

	maxAttempts int
}

// Kind returns the river job kind the activation worker is registered for.
func (args ActivateArgs) Kind() string { return "ActivateSubscription" }

// Owner returns the user being activated.
func (args ActivateArgs) Owner() domain.UserID { return domain.UserID(args.UserID) }

// InsertOpts keeps at most one unfinished activation per user. Completed
// jobs are not considered so a later checkout can enqueue again.
func (args ActivateArgs) InsertOpts() river.InsertOpts {
	return river.InsertOpts{
		MaxAttempts: args.maxAttempts,
		UniqueOpts: river.UniqueOpts{
			ByArgs: true,
			ByState: []rivertype.JobState{
				rivertype.JobStateAvailable,
				rivertype.JobStatePending,
				rivertype.JobStateRunning,
				rivertype.JobStateRetryable,
				rivertype.JobStateScheduled,
			},
		},
	}
}
