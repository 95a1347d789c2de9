package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Certification represents a single certification card.
// Collection: certifications
type Certification struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Company       string             `bson:"company" json:"company"`
	Title         string             `bson:"title" json:"title"`
	Issued        string             `bson:"issued" json:"issued"`
	Platform      string             `bson:"platform" json:"platform"`
	Icon          string             `bson:"icon" json:"icon"`
	CardColor     string             `bson:"card_color" json:"cardColor"`
	ButtonColor   string             `bson:"button_color" json:"buttonColor"`
	TitleColor    string             `bson:"title_color" json:"titleColor"`
	TextColor     string             `bson:"text_color" json:"textColor"`
	CertImageURL  string             `bson:"cert_image_url" json:"certImageUrl"`
	CredentialURL string             `bson:"credential_url,omitempty" json:"credentialUrl,omitempty"`
	DisplayOrder  int                `bson:"display_order" json:"displayOrder"`
	CreatedAt     time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt     time.Time          `bson:"updated_at" json:"updatedAt"`
}

// CertificationUpdate carries a partial update; nil fields are left untouched.
type CertificationUpdate struct {
	Company       *string `json:"company"`
	Title         *string `json:"title"`
	Issued        *string `json:"issued"`
	Platform      *string `json:"platform"`
	Icon          *string `json:"icon"`
	CardColor     *string `json:"cardColor"`
	ButtonColor   *string `json:"buttonColor"`
	TitleColor    *string `json:"titleColor"`
	TextColor     *string `json:"textColor"`
	CertImageURL  *string `json:"certImageUrl"`
	CredentialURL *string `json:"credentialUrl"`
	DisplayOrder  *int    `json:"displayOrder"`
}

func (c Certification) Validate() error {
	switch {
	case c.Company == "":
		return requiredField("company")
	case c.Title == "":
		return requiredField("title")
	case c.Issued == "":
		return requiredField("issued")
	case c.Platform == "":
		return requiredField("platform")
	case c.Icon == "":
		return requiredField("icon")
	case c.CardColor == "":
		return requiredField("cardColor")
	case c.ButtonColor == "":
		return requiredField("buttonColor")
	case c.TitleColor == "":
		return requiredField("titleColor")
	case c.TextColor == "":
		return requiredField("textColor")
	case c.CertImageURL == "":
		return requiredField("certImageUrl")
	}
	return nil
}

// ApplyTo merges the set fields into an existing record. Both backends use
// this so merge semantics stay identical.
func (u CertificationUpdate) ApplyTo(c *Certification) {
	if u.Company != nil {
		c.Company = *u.Company
	}
	if u.Title != nil {
		c.Title = *u.Title
	}
	if u.Issued != nil {
		c.Issued = *u.Issued
	}
	if u.Platform != nil {
		c.Platform = *u.Platform
	}
	if u.Icon != nil {
		c.Icon = *u.Icon
	}
	if u.CardColor != nil {
		c.CardColor = *u.CardColor
	}
	if u.ButtonColor != nil {
		c.ButtonColor = *u.ButtonColor
	}
	if u.TitleColor != nil {
		c.TitleColor = *u.TitleColor
	}
	if u.TextColor != nil {
		c.TextColor = *u.TextColor
	}
	if u.CertImageURL != nil {
		c.CertImageURL = *u.CertImageURL
	}
	if u.CredentialURL != nil {
		c.CredentialURL = *u.CredentialURL
	}
	if u.DisplayOrder != nil {
		c.DisplayOrder = *u.DisplayOrder
	}
}
