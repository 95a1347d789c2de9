package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Timeline sides for the hackathon section.
const (
	SideLeft  = "left"
	SideRight = "right"
)

// Hackathon represents one entry on the hackathon timeline.
// Collection: hackathons
type Hackathon struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name           string             `bson:"name" json:"name"`
	Role           string             `bson:"role" json:"role"`
	Organizer      string             `bson:"organizer" json:"organizer"`
	Side           string             `bson:"side" json:"side"`
	Delay          int                `bson:"delay" json:"delay"`
	CertificateURL string             `bson:"certificate_url,omitempty" json:"certificateUrl,omitempty"`
	DisplayOrder   int                `bson:"display_order" json:"displayOrder"`
	CreatedAt      time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt      time.Time          `bson:"updated_at" json:"updatedAt"`
}

// HackathonUpdate carries a partial update; nil fields are left untouched.
type HackathonUpdate struct {
	Name           *string `json:"name"`
	Role           *string `json:"role"`
	Organizer      *string `json:"organizer"`
	Side           *string `json:"side"`
	Delay          *int    `json:"delay"`
	CertificateURL *string `json:"certificateUrl"`
	DisplayOrder   *int    `json:"displayOrder"`
}

func (h Hackathon) Validate() error {
	switch {
	case h.Name == "":
		return requiredField("name")
	case h.Role == "":
		return requiredField("role")
	case h.Organizer == "":
		return requiredField("organizer")
	}
	if h.Side != SideLeft && h.Side != SideRight {
		return &ValidationError{Field: "side", Message: "must be 'left' or 'right'"}
	}
	return nil
}

func (u HackathonUpdate) ApplyTo(h *Hackathon) {
	if u.Name != nil {
		h.Name = *u.Name
	}
	if u.Role != nil {
		h.Role = *u.Role
	}
	if u.Organizer != nil {
		h.Organizer = *u.Organizer
	}
	if u.Side != nil {
		h.Side = *u.Side
	}
	if u.Delay != nil {
		h.Delay = *u.Delay
	}
	if u.CertificateURL != nil {
		h.CertificateURL = *u.CertificateURL
	}
	if u.DisplayOrder != nil {
		h.DisplayOrder = *u.DisplayOrder
	}
}

// Validate checks that a merged update still satisfies the schema. The side
// enum is the only field a partial update can push out of range.
func (u HackathonUpdate) Validate() error {
	if u.Side != nil && *u.Side != SideLeft && *u.Side != SideRight {
		return &ValidationError{Field: "side", Message: "must be 'left' or 'right'"}
	}
	return nil
}
