package models

// CatalogItemKind distinguishes what an award was granted for.
type CatalogItemKind string

const (
	CatalogItemBadge     CatalogItemKind = "badge"
	CatalogItemChallenge CatalogItemKind = "challenge"
	CatalogItemEvent     CatalogItemKind = "event"
)

// CatalogItem is the definition of an awardable badge.
type CatalogItem struct {
	Base
	OrganizationID *string         `gorm:"type:uuid;index" json:"organization_id,omitempty"`
	Name           string          `gorm:"not null" json:"name"`
	Description    string          `json:"description,omitempty"`
	ImageURL       string          `json:"image_url,omitempty"`
	Kind           CatalogItemKind `gorm:"not null;default:'badge'" json:"kind"`

	// Relationships
	Organization *Organization `gorm:"foreignKey:OrganizationID" json:"organization,omitempty"`
}
