package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	SubmissionPending  = "pending"
	SubmissionApproved = "approved"
	SubmissionRejected = "rejected"
)

// AdvertisementSubmission is a banner proposal sent in by an advertiser.
// Admins approve it into a Banner or reject it.
type AdvertisementSubmission struct {
	ID             primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	AdvertiserName string             `json:"advertiserName" bson:"advertiserName"`
	Phone          string             `json:"phone" bson:"phone"`
	Email          string             `json:"email,omitempty" bson:"email,omitempty"`
	ImageURL       string             `json:"imageUrl" bson:"imageUrl"`
	TargetURL      string             `json:"targetUrl,omitempty" bson:"targetUrl,omitempty"`
	Placement      string             `json:"placement" bson:"placement"`
	Status         string             `json:"status" bson:"status"`
	CreatedAt      time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt      time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// Banner is a live advertisement slot shown on the client.
type Banner struct {
	ID        primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	ImageURL  string             `json:"imageUrl" bson:"imageUrl"`
	TargetURL string             `json:"targetUrl,omitempty" bson:"targetUrl,omitempty"`
	Placement string             `json:"placement" bson:"placement"`
	Order     int                `json:"order" bson:"order"`
	IsActive  bool               `json:"isActive" bson:"isActive"`
	CreatedBy primitive.ObjectID `json:"createdBy" bson:"createdBy"`
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt"`
}
