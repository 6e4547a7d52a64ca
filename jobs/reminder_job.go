package jobs

import (
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/campusworks/unihire/models"
	"github.com/campusworks/unihire/notifications"
	"github.com/campusworks/unihire/repository"
)

const staleAfter = 48 * time.Hour

// Reminders nudges parties about negotiations that stalled. It only sends
// notifications; state transitions stay in the request path.
type Reminders struct {
	store    *repository.Store
	notifier *notifications.Notifier
}

func NewReminders(store *repository.Store, notifier *notifications.Notifier) *Reminders {
	return &Reminders{store: store, notifier: notifier}
}

func (r *Reminders) Run() {
	r.remindPendingHires()
	r.remindUnsignedContracts()
}

func (r *Reminders) remindPendingHires() {
	cutoff := time.Now().Add(-staleAfter)
	requests, err := r.store.ListStaleOpenHireRequests(cutoff)
	if err != nil {
		log.Error().Err(err).Msg("reminder job: failed to list stale hire requests")
		return
	}

	for _, hire := range requests {
		r.notifier.Notify(hire.StudentID, models.NotifyHireReminder,
			"Hire request waiting",
			fmt.Sprintf("A buyer is still waiting for your answer on '%s'.", hire.Service.Title))
	}
	if len(requests) > 0 {
		log.Info().Int("count", len(requests)).Msg("reminder job: pending hire reminders sent")
	}
}

func (r *Reminders) remindUnsignedContracts() {
	cutoff := time.Now().Add(-staleAfter)
	contracts, err := r.store.ListUnsignedContracts(cutoff)
	if err != nil {
		log.Error().Err(err).Msg("reminder job: failed to list unsigned contracts")
		return
	}

	for _, contract := range contracts {
		if !contract.IsSignedByBuyer {
			r.notifier.Notify(contract.BuyerID, models.NotifyContractReminder,
				"Contract awaiting your signature",
				fmt.Sprintf("The contract for '%s' still needs your signature.", contract.Service.Title))
		}
		if !contract.IsSignedByStudent {
			r.notifier.Notify(contract.StudentID, models.NotifyContractReminder,
				"Contract awaiting your signature",
				fmt.Sprintf("The contract for '%s' still needs your signature.", contract.Service.Title))
		}
	}
	if len(contracts) > 0 {
		log.Info().Int("count", len(contracts)).Msg("reminder job: contract signature reminders sent")
	}
}
