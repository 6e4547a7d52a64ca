package notifications

import (
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/campusworks/unihire/models"
	"github.com/campusworks/unihire/repository"
	"github.com/campusworks/unihire/websocket"
)

// Notifier persists notifications and pushes them to connected clients.
// It is fire-and-forget: callers invoke it after their transaction commits
// and a failure here never surfaces as the operation's result.
type Notifier struct {
	store *repository.Store
	hub   *websocket.Hub
}

func NewNotifier(store *repository.Store, hub *websocket.Hub) *Notifier {
	return &Notifier{store: store, hub: hub}
}

func (n *Notifier) Notify(userID uuid.UUID, ntype, title, body string) {
	notification := models.Notification{
		UserID: userID,
		Type:   ntype,
		Title:  title,
		Body:   body,
	}
	if err := n.store.CreateNotification(&notification); err != nil {
		log.Error().Err(err).
			Str("user_id", userID.String()).
			Str("type", ntype).
			Msg("failed to persist notification")
		return
	}
	if n.hub != nil {
		n.hub.Push(userID, &notification)
	}
}

func (n *Notifier) NotifyMany(userIDs []uuid.UUID, ntype, title, body string) {
	for _, id := range userIDs {
		n.Notify(id, ntype, title, body)
	}
}
