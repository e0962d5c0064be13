package utils

import (
	"context"
	"log"
	"time"

	"firebase.google.com/go/v4/messaging"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/estatelist/estatelist_backend/config"
	"github.com/estatelist/estatelist_backend/models"
)

// SaveNotification saves an in-app notification to the database.
func SaveNotification(db *mongo.Database, userID primitive.ObjectID, title, message, notifType string, data interface{}) error {
	notification := models.Notification{
		ID:        primitive.NewObjectID(),
		UserID:    userID,
		Title:     title,
		Message:   message,
		Type:      notifType,
		Data:      data,
		IsRead:    false,
		CreatedAt: time.Now(),
	}

	_, err := db.Collection("notifications").InsertOne(context.Background(), notification)
	return err
}

// SendPushNotification delivers an FCM push to a single device token.
// Best-effort: a missing Firebase app or an unregistered token is logged
// and swallowed.
func SendPushNotification(ctx context.Context, fcmToken, title, body string, data map[string]string) {
	if fcmToken == "" || config.FirebaseApp == nil {
		return
	}

	client, err := config.FirebaseApp.Messaging(ctx)
	if err != nil {
		log.Printf("failed to get FCM client: %v", err)
		return
	}

	msg := &messaging.Message{
		Token: fcmToken,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: data,
	}

	if _, err := client.Send(ctx, msg); err != nil {
		log.Printf("failed to send push notification: %v", err)
	}
}
