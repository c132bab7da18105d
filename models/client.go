package models

// Client is the notification-relevant view of a client account. Account
// management itself lives with the external user service.
type Client struct {
	ID          string `bson:"id" json:"id"`
	DisplayName string `bson:"display_name" json:"displayName"`
	FCMToken    string `bson:"fcm_token,omitempty" json:"-"`
}
