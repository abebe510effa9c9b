package domain

import (
	"errors"
	"time"
)

// DefaultCategory is assigned when a template is created without one.
const DefaultCategory = "general"

var (
	ErrTemplateNotFound      = errors.New("template not found")
	ErrDuplicateTemplateName = errors.New("template with this name already exists")
)

// EmailTemplate is a reusable subject/body pair grouped by category.
type EmailTemplate struct {
	ID        uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	Name      string    `json:"name" gorm:"type:varchar(255);not null;uniqueIndex"`
	Subject   string    `json:"subject" gorm:"type:varchar(500);not null"`
	Body      string    `json:"body" gorm:"type:text;not null"`
	Category  string    `json:"category" gorm:"type:varchar(100);not null;index"`
	CreatedAt time.Time `json:"created_at" gorm:"not null;index"`
}

// TableName specifies the table name for EmailTemplate
func (EmailTemplate) TableName() string {
	return "email_templates"
}
