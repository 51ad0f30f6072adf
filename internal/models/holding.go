package models

import (
	"time"

	"gorm.io/datatypes"
)

// Holding records which wallet currently owns one minted asset.
// CurrentOwner, AcquiredAt and LastTransferredAt are written only by the
// listing controller when a sale completes.
type Holding struct {
	Base
	AwardID           *string        `gorm:"type:uuid;index" json:"award_id,omitempty"`
	ChainObjectID     string         `gorm:"not null;uniqueIndex" json:"chain_object_id"`
	CurrentOwner      string         `gorm:"not null;index" json:"current_owner"`
	AcquiredAt        time.Time      `gorm:"not null" json:"acquired_at"`
	LastTransferredAt *time.Time     `json:"last_transferred_at,omitempty"`
	Metadata          datatypes.JSON `json:"metadata,omitempty"`

	// Relationships
	Award *Award `gorm:"foreignKey:AwardID" json:"award,omitempty"`
}
