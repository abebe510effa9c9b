package domain

import (
	"errors"
	"time"
)

var (
	ErrRuleNotFound      = errors.New("rule not found")
	ErrDuplicateRuleName = errors.New("rule with this name already exists")
)

// EmailRule is a named condition/action pair. Conditions and actions are
// JSON documents stored verbatim; nothing in this service evaluates them.
type EmailRule struct {
	ID         uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	Name       string    `json:"name" gorm:"type:varchar(255);not null;uniqueIndex"`
	Conditions string    `json:"conditions" gorm:"type:text;not null"`
	Actions    string    `json:"actions" gorm:"type:text;not null"`
	IsActive   bool      `json:"is_active" gorm:"not null"`
	Priority   int       `json:"priority" gorm:"not null;default:0;index"`
	CreatedAt  time.Time `json:"created_at" gorm:"not null;index"`
}

// TableName specifies the table name for EmailRule
func (EmailRule) TableName() string {
	return "email_rules"
}
