package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Listing visibility state. A property is never publicly visible until an
// admin sets approvalStatus to approved.
const (
	StatusActive   = "active"
	StatusInactive = "inactive"

	ApprovalPending         = "pending"
	ApprovalPendingApproval = "pending_approval"
	ApprovalApproved        = "approved"
	ApprovalRejected        = "rejected"
)

// Canonical property types. Free-text input is mapped onto these by
// utils.CanonicalPropertyType.
const (
	TypeResidential  = "residential"
	TypeFlat         = "flat"
	TypePlot         = "plot"
	TypeCommercial   = "commercial"
	TypePG           = "pg"
	TypeAgricultural = "agricultural"
)

const (
	PriceTypeSale = "sale"
	PriceTypeRent = "rent"
)

type Location struct {
	Sector   string `json:"sector,omitempty" bson:"sector,omitempty"`
	Mohalla  string `json:"mohalla,omitempty" bson:"mohalla,omitempty"`
	Landmark string `json:"landmark,omitempty" bson:"landmark,omitempty"`
}

type Specifications struct {
	Bedrooms    int  `json:"bedrooms,omitempty" bson:"bedrooms,omitempty"`
	Bathrooms   int  `json:"bathrooms,omitempty" bson:"bathrooms,omitempty"`
	Area        int  `json:"area,omitempty" bson:"area,omitempty"`
	Floor       int  `json:"floor,omitempty" bson:"floor,omitempty"`
	TotalFloors int  `json:"totalFloors,omitempty" bson:"totalFloors,omitempty"`
	Parking     bool `json:"parking" bson:"parking"`
}

type ContactInfo struct {
	Name  string `json:"name,omitempty" bson:"name,omitempty"`
	Phone string `json:"phone" bson:"phone"`
	Email string `json:"email,omitempty" bson:"email,omitempty"`
}

type Property struct {
	ID              primitive.ObjectID  `json:"id,omitempty" bson:"_id,omitempty"`
	Title           string              `json:"title" bson:"title"`
	Description     string              `json:"description" bson:"description"`
	Price           int64               `json:"price" bson:"price"`
	PriceType       string              `json:"priceType" bson:"priceType"`
	PropertyType    string              `json:"propertyType" bson:"propertyType"`
	SubCategory     string              `json:"subCategory,omitempty" bson:"subCategory,omitempty"`
	MiniSubCategory string              `json:"miniSubCategory,omitempty" bson:"miniSubCategory,omitempty"`
	Location        Location            `json:"location" bson:"location"`
	Specifications  Specifications      `json:"specifications" bson:"specifications"`
	Images          []string            `json:"images" bson:"images"`
	Video           string              `json:"video,omitempty" bson:"video,omitempty"`
	VideoThumbnail  string              `json:"videoThumbnail,omitempty" bson:"videoThumbnail,omitempty"`
	Amenities       []string            `json:"amenities" bson:"amenities"`
	OwnerID         primitive.ObjectID  `json:"ownerId" bson:"ownerId"`
	OwnerType       string              `json:"ownerType,omitempty" bson:"ownerType,omitempty"`
	ContactInfo     ContactInfo         `json:"contactInfo" bson:"contactInfo"`
	Status          string              `json:"status" bson:"status"`
	ApprovalStatus  string              `json:"approvalStatus" bson:"approvalStatus"`
	IsApproved      bool                `json:"isApproved" bson:"isApproved"`
	Premium         bool                `json:"premium" bson:"premium"`
	PackageID       *primitive.ObjectID `json:"packageId,omitempty" bson:"packageId,omitempty"`
	Views           int64               `json:"views" bson:"views"`
	CreatedAt       time.Time           `json:"createdAt" bson:"createdAt"`
	UpdatedAt       time.Time           `json:"updatedAt" bson:"updatedAt"`
}

// MarkPending forces the moderation fields back to their initial state.
// Applied on every create and on every owner edit, no matter what the
// payload claims.
func (p *Property) MarkPending() {
	p.Status = StatusInactive
	p.ApprovalStatus = ApprovalPending
	p.IsApproved = false
}

// Approve makes the property publicly visible.
func (p *Property) Approve() {
	p.Status = StatusActive
	p.ApprovalStatus = ApprovalApproved
	p.IsApproved = true
}

// Reject keeps the property hidden; the only way out of rejected is
// another edit, which resets to pending.
func (p *Property) Reject() {
	p.Status = StatusInactive
	p.ApprovalStatus = ApprovalRejected
	p.IsApproved = false
}
