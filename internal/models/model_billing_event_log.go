package models

import (
	"time"

	"gorm.io/datatypes"
)

type BillingEventLogStatus string

const (
	BillingEventLogStatusReceived     BillingEventLogStatus = "received"
	BillingEventLogStatusHandled      BillingEventLogStatus = "handled"
	BillingEventLogStatusHandleFailed BillingEventLogStatus = "handle_failed"
)

// BillingEventLog records raw billing-provider webhook events alongside the
// outcome of applying them, for audit and replay.
type BillingEventLog struct {
	ID             string                `gorm:"column:id;type:uuid;primary_key" json:"id"`
	Provider       string                `gorm:"column:provider;type:varchar(64);not null" json:"provider"`
	EventType      string                `gorm:"column:event_type;type:varchar(64);not null" json:"event_type"`
	SubscriptionID *uint                 `gorm:"column:subscription_id" json:"subscription_id,omitempty"`
	TraceID        string                `gorm:"column:trace_id;type:varchar(128)" json:"trace_id"`
	Payload        datatypes.JSON        `gorm:"column:payload;type:jsonb" json:"payload"`
	Result         *datatypes.JSON       `gorm:"column:result;type:jsonb" json:"result,omitempty"`
	Status         BillingEventLogStatus `gorm:"column:status;type:varchar(32);not null" json:"status"`
	CreatedAt      time.Time             `json:"created_at"`
	UpdatedAt      time.Time             `json:"updated_at"`
}

func (BillingEventLog) TableName() string {
	return "billing_event_log"
}
