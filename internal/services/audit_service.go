package services

import (
	"encoding/json"

	"campfire/internal/logger"
	"campfire/internal/models"
	"campfire/internal/wallet"

	"gorm.io/gorm"
)

// auditService handles audit log recording.
type auditService struct {
	db *gorm.DB
}

// NewAuditService creates a new AuditServicer.
func NewAuditService(db *gorm.DB) AuditServicer {
	return &auditService{db: db}
}

// Log records a marketplace action against the acting wallet. A failed
// write is logged with the resulting listing status and never returned;
// the action it describes has already committed.
func (s *auditService) Log(actor, action, resourceType, resourceID, ipAddress string, changes map[string]any) {
	var changesJSON string
	if changes != nil {
		data, err := json.Marshal(changes)
		if err != nil {
			logger.Get().Errorw("failed to marshal audit log changes", "error", err, "action", action)
			changesJSON = "{}"
		} else {
			changesJSON = string(data)
		}
	}

	entry := &models.AuditLog{
		Wallet:       wallet.Normalize(actor),
		Action:       action,
		ResourceType: resourceType,
		ResourceID:   resourceID,
		IPAddress:    ipAddress,
		Changes:      changesJSON,
	}

	if err := s.db.Create(entry).Error; err != nil {
		logger.Get().Errorw("failed to create audit log entry",
			"error", err,
			"wallet", entry.Wallet,
			"action", action,
			"resource_type", resourceType,
			"resource_id", resourceID,
			"status", changes["status"],
		)
	}
}
