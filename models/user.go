package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type User struct {
	ID        primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Email     string             `json:"email" bson:"email"`
	Password  string             `json:"-" bson:"password"`
	FullName  string             `json:"fullName" bson:"fullName"`
	Phone     string             `json:"phone,omitempty" bson:"phone,omitempty"`
	UserType  string             `json:"userType" bson:"userType"` // "user" or "admin"
	IsActive  bool               `json:"isActive" bson:"isActive"`
	FCMToken  string             `json:"fcmToken,omitempty" bson:"fcmToken,omitempty"`
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time          `json:"updatedAt" bson:"updatedAt"`
}

type SignupRequest struct {
	FullName string `json:"fullName" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"phone" validate:"required"`
	Password string `json:"password" validate:"required,min=8"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	Token        string `json:"token"`
	RefreshToken string `json:"refreshToken"`
	User         User   `json:"user"`
}

type FCMTokenRequest struct {
	Token string `json:"token" validate:"required"`
}
