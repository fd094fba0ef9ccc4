package endpoints

import (
	"github.com/gramsetu/contenthub/pkg/server/store"
)

// Payload is a validated request body that can be normalized into the
// document persisted for a record.
type Payload interface {
	Document() store.Document
}

// TrainingPayload is the request body for training content.
type TrainingPayload struct {
	Title       string `json:"title" validate:"required,min=2,max=200"`
	Type        string `json:"type" validate:"required,oneof=video pdf text infographic"`
	URL         string `json:"url" validate:"required,url"`
	Description string `json:"description" validate:"omitempty,max=2000"`
	Language    string `json:"language" validate:"required,min=2,max=50"`
}

func (p *TrainingPayload) Document() store.Document {
	return store.Document{
		Language: p.Language,
		Attributes: map[string]interface{}{
			"title":       p.Title,
			"type":        p.Type,
			"url":         p.URL,
			"description": p.Description,
		},
	}
}

// ContactPayload is the nested contact block of a marketplace listing.
type ContactPayload struct {
	Phone   string `json:"phone" validate:"required,min=7,max=20"`
	Email   string `json:"email" validate:"required,email"`
	Address string `json:"address" validate:"omitempty,max=500"`
}

// MarketplacePayload is the request body for marketplace listings.
type MarketplacePayload struct {
	BusinessName   string         `json:"businessName" validate:"required,min=2,max=200"`
	OwnerName      string         `json:"ownerName" validate:"required,min=2,max=100"`
	ProductService string         `json:"productService" validate:"required,min=2,max=500"`
	Contact        ContactPayload `json:"contact"`
	Location       string         `json:"location" validate:"required,min=2,max=200"`
	Description    string         `json:"description" validate:"omitempty,max=2000"`
	Language       string         `json:"language" validate:"required,min=2,max=50"`
}

func (p *MarketplacePayload) Document() store.Document {
	return store.Document{
		Language: p.Language,
		Attributes: map[string]interface{}{
			"businessName":   p.BusinessName,
			"ownerName":      p.OwnerName,
			"productService": p.ProductService,
			"contact": map[string]interface{}{
				"phone":   p.Contact.Phone,
				"email":   p.Contact.Email,
				"address": p.Contact.Address,
			},
			"location":    p.Location,
			"description": p.Description,
		},
	}
}

// SchemePayload is the request body for government schemes.
type SchemePayload struct {
	Title       string `json:"title" validate:"required,min=2,max=200"`
	Description string `json:"description" validate:"required,min=2,max=5000"`
	Eligibility string `json:"eligibility" validate:"required,min=2,max=2000"`
	Link        string `json:"link" validate:"required,url"`
	Category    string `json:"category" validate:"required,min=2,max=100"`
	Language    string `json:"language" validate:"required,min=2,max=50"`
}

func (p *SchemePayload) Document() store.Document {
	return store.Document{
		Language: p.Language,
		Attributes: map[string]interface{}{
			"title":       p.Title,
			"description": p.Description,
			"eligibility": p.Eligibility,
			"link":        p.Link,
			"category":    p.Category,
		},
	}
}

// JobPayload is the request body for job postings.
type JobPayload struct {
	Title       string `json:"title" validate:"required,min=2,max=200"`
	Description string `json:"description" validate:"required,min=2,max=5000"`
	Category    string `json:"category" validate:"required,min=2,max=100"`
	Location    string `json:"location" validate:"required,min=2,max=200"`
	Language    string `json:"language" validate:"required,min=2,max=50"`
}

func (p *JobPayload) Document() store.Document {
	return store.Document{
		Language: p.Language,
		Attributes: map[string]interface{}{
			"title":       p.Title,
			"description": p.Description,
			"category":    p.Category,
			"location":    p.Location,
		},
	}
}
