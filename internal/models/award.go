package models

import "time"

// Award is the grant event that produced a holding. The issuance subsystem
// owns these rows; the marketplace only annotates IsSold, SoldAt and
// RecipientWallet when a resale completes.
type Award struct {
	Base
	CatalogItemID   *string    `gorm:"type:uuid;index" json:"catalog_item_id,omitempty"`
	RecipientWallet string     `gorm:"not null;index" json:"recipient_wallet"`
	AwardedAt       time.Time  `gorm:"not null" json:"awarded_at"`
	IsSold          bool       `gorm:"not null;default:false" json:"is_sold"`
	SoldAt          *time.Time `json:"sold_at,omitempty"`

	// Relationships
	CatalogItem *CatalogItem `gorm:"foreignKey:CatalogItemID" json:"catalog_item,omitempty"`
}
