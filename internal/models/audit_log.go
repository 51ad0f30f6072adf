package models

// AuditLog records marketplace actions for dispute resolution and compliance.
type AuditLog struct {
	Base
	Wallet       string `gorm:"not null;index" json:"wallet"`
	Action       string `gorm:"not null" json:"action"`
	ResourceType string `gorm:"not null" json:"resource_type"`
	ResourceID   string `gorm:"type:uuid;index" json:"resource_id"`
	IPAddress    string `json:"ip_address"`
	Changes      string `json:"changes,omitempty"`
}
