package equipment

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	StatusAvailable   = "available"
	StatusAssigned    = "assigned"
	StatusMaintenance = "maintenance"
)

type Equipment struct {
	ID           uuid.UUID      `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID    uuid.UUID      `gorm:"column:company_id;type:uuid;not null;index"`
	Name         string         `gorm:"column:name;type:varchar(200);not null"`
	SerialNumber string         `gorm:"column:serial_number;type:varchar(100)"`
	Status       string         `gorm:"column:status;type:varchar(20);not null;default:available;index"`
	CreatedAt    time.Time      `gorm:"column:created_at"`
	UpdatedAt    time.Time      `gorm:"column:updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"column:deleted_at;index"`
}

func (Equipment) TableName() string {
	return "equipment"
}
