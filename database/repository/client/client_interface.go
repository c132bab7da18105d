package clientRepo

import (
	"context"

	"preen/models"
)

// ClientRepository reads the notification-relevant slice of a client account.
type ClientRepository interface {
	GetByID(ctx context.Context, clientID string) (*models.Client, error)
}
