package paycycle

import (
	"time"

	"github.com/google/uuid"
)

type Frequency string

const (
	FrequencyWeekly   Frequency = "weekly"
	FrequencyBiweekly Frequency = "biweekly"
	FrequencyMonthly  Frequency = "monthly"
)

func (f Frequency) Valid() bool {
	switch f {
	case FrequencyWeekly, FrequencyBiweekly, FrequencyMonthly:
		return true
	}
	return false
}

// PayCycleConfig holds the upcoming cycle window of one organization.
type PayCycleConfig struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OrganizationID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	Frequency      Frequency `gorm:"type:varchar(16);not null"`
	NextCycleStart time.Time `gorm:"type:date;not null"`
	NextCycleEnd   time.Time `gorm:"type:date;not null"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (PayCycleConfig) TableName() string {
	return "pay_cycle_configs"
}
