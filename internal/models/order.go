package models

import (
	"time"
)

// Order status values
const (
	OrderStatusDraft        = "DRAFT"
	OrderStatusAccepted     = "ACCEPTED"
	OrderStatusInProgress   = "IN_PROGRESS"
	OrderStatusQualityCheck = "QUALITY_CHECK"
	OrderStatusCompleted    = "COMPLETED"
	OrderStatusShipped      = "SHIPPED"
)

// Order priority values
const (
	PriorityLow    = "LOW"
	PriorityMedium = "MEDIUM"
	PriorityHigh   = "HIGH"
	PriorityUrgent = "URGENT"
)

// ActiveOrderStatuses are orders on the shop floor
var ActiveOrderStatuses = []string{OrderStatusAccepted, OrderStatusInProgress, OrderStatusQualityCheck}

// CompletedOrderStatuses are orders that left the shop floor
var CompletedOrderStatuses = []string{OrderStatusCompleted, OrderStatusShipped}

// Order is owned by the order management service. Only the columns read here are mapped,
// and the table is never migrated once it exists.
type Order struct {
	ID        uint64     `gorm:"primaryKey;autoIncrement"`
	Status    string     `gorm:"size:32;not null;index"`
	Priority  string     `gorm:"size:32;not null"`
	Deadline  *time.Time
	CreatedAt time.Time
}

// File is an uploaded document attached to an order
type File struct {
	ID        uint64 `gorm:"primaryKey;autoIncrement"`
	Filename  string `gorm:"size:512;not null"`
	FileURL   string `gorm:"size:2048;not null"`
	FileType  string `gorm:"size:64;not null;default:'DOCUMENT'"`
	OrderID   uint64 `gorm:"not null;index"`
	Order     *Order `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time
}

// TableName overrides the table name for Order
func (Order) TableName() string {
	return "orders"
}

// TableName overrides the table name for File
func (File) TableName() string {
	return "files"
}
