package models

import (
	"time"
)

// SettingsID is the primary key of the only production settings row
const SettingsID = 1

// ProductionSettings holds the machines and operators available for scheduling
type ProductionSettings struct {
	ID        uint64     `gorm:"primaryKey;autoIncrement:false"`
	Machines  StringList `gorm:"not null"`
	Operators StringList `gorm:"not null"`
	UpdatedAt time.Time
}

// ProductionTask is one scheduled production run
type ProductionTask struct {
	ID              uint64     `gorm:"primaryKey;autoIncrement"`
	DayOfWeek       string     `gorm:"size:32;not null"`
	ScheduledDate   *time.Time `gorm:"type:date"`
	PartName        string     `gorm:"size:255;not null"`
	PlannedQuantity int64      `gorm:"not null"`
	TimePerPart     float64    `gorm:"not null"`
	Machine         string     `gorm:"size:255"`
	Operator        string     `gorm:"size:255"`
	ActualQuantity  int64      `gorm:"not null;default:0"`
	Archived        bool       `gorm:"not null;default:false;index"`
	ArchivedAt      *time.Time
	CompletedAt     *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
	Blueprints      []ProductionBlueprint `gorm:"foreignKey:TaskID;constraint:OnDelete:CASCADE"`
}

// ProductionBlueprint is a drawing or document attached to a task
type ProductionBlueprint struct {
	ID       uint64 `gorm:"primaryKey;autoIncrement"`
	TaskID   uint64 `gorm:"not null;index"`
	FileName string `gorm:"size:512"`
	FileURL  string `gorm:"size:2048"`
	FileType string `gorm:"size:128"`
}

// TableName overrides the table name for ProductionSettings
func (ProductionSettings) TableName() string {
	return "production_settings"
}

// TableName overrides the table name for ProductionTask
func (ProductionTask) TableName() string {
	return "production_tasks"
}

// TableName overrides the table name for ProductionBlueprint
func (ProductionBlueprint) TableName() string {
	return "production_blueprints"
}
