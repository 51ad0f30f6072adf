package models

// Organization is the community or company that issues badges.
// Owned by the directory subsystem; the marketplace only reads it.
type Organization struct {
	Base
	Name    string `gorm:"not null" json:"name"`
	Slug    string `gorm:"not null;uniqueIndex" json:"slug"`
	LogoURL string `json:"logo_url,omitempty"`
}
