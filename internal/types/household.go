package types

import (
	"time"

	"github.com/google/uuid"
)

// Household is the addressable census unit, identified by a geocoordinate
// pair. It owns zero or more family members; members never outlive it.
type Household struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Latitude    float64        `gorm:"not null;column:latitude" json:"latitude"`
	Longitude   float64        `gorm:"not null;column:longitude" json:"longitude"`
	TitheStatus *string        `gorm:"column:tithe_status" json:"titheStatus"`
	Members     []FamilyMember `gorm:"foreignKey:HouseholdID" json:"members,omitempty"`
	CreatedAt   time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"not null" json:"updated_at"`
}

func (Household) TableName() string {
	return "household"
}
