package notification

import (
	"context"
	"fmt"

	clientRepo "preen/database/repository/client"
	professionalRepo "preen/database/repository/professional"
	"preen/models"
	"preen/utils"

	"firebase.google.com/go/v4/messaging"
)

// NotificationService defines methods for sending FCM pushes.
type NotificationService interface {
	SendClientPush(ctx context.Context, clientID, title, body string, data map[string]string) error
	SendProfessionalPush(ctx context.Context, professionalID, title, body string, data map[string]string) error
}

// DefaultNotificationService is the production implementation.
type DefaultNotificationService struct {
	Clients       clientRepo.ClientRepository
	Professionals professionalRepo.ProfessionalRepository
}

// withRole returns data with the role key defaulted. Callers may pass nil.
func withRole(data map[string]string, role string) map[string]string {
	if data == nil {
		data = make(map[string]string, 1)
	}
	if _, ok := data["role"]; !ok {
		data["role"] = role
	}
	return data
}

// SendClientPush looks up a client's FCM token and sends a push.
func (s *DefaultNotificationService) SendClientPush(
	ctx context.Context,
	clientID, title, body string,
	data map[string]string,
) error {
	c, err := s.Clients.GetByID(ctx, clientID)
	if err != nil {
		return fmt.Errorf("SendClientPush: could not find client %s: %w", clientID, err)
	}
	if c.FCMToken == "" {
		return fmt.Errorf("SendClientPush: client %s has no FCM token", clientID)
	}
	data = withRole(data, "client")

	msg := &messaging.Message{
		Token: c.FCMToken,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: data,
	}

	if _, err := utils.FCMClient.Send(ctx, msg); err != nil {
		return fmt.Errorf("SendClientPush: failed to send FCM message: %w", err)
	}
	return nil
}

func (s *DefaultNotificationService) SendProfessionalPush(
	ctx context.Context,
	professionalID, title, body string,
	data map[string]string,
) error {
	p, err := s.Professionals.GetByID(ctx, professionalID)
	if err != nil {
		return fmt.Errorf("SendProfessionalPush: could not find professional %s: %w", professionalID, err)
	}
	if p.FCMToken == "" {
		return fmt.Errorf("SendProfessionalPush: professional %s has no FCM token", professionalID)
	}
	data = withRole(data, "professional")

	msg := &messaging.Message{
		Token: p.FCMToken,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: data,
		Android: &messaging.AndroidConfig{
			Priority: "high",
			Notification: &messaging.AndroidNotification{
				ChannelID: "high_priority",
				Sound:     "default",
			},
		},
		APNS: &messaging.APNSConfig{
			Headers: map[string]string{
				"apns-priority":  "10",
				"apns-push-type": "alert",
			},
			Payload: &messaging.APNSPayload{
				Aps: &messaging.Aps{
					Sound: "default",
				},
			},
		},
	}

	if _, err := utils.FCMClient.Send(ctx, msg); err != nil {
		return fmt.Errorf("SendProfessionalPush: failed to send FCM message: %w", err)
	}
	return nil
}

// Keep the compile-time contract visible next to the implementation.
var _ NotificationService = (*DefaultNotificationService)(nil)

// ReminderBody renders the push body for a due reminder.
func ReminderBody(p models.ReminderPayload) string {
	if p.Body != "" {
		return p.Body
	}
	return "You have a follow-up waiting in preen."
}
