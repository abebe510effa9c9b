package dto

import ruledomain "email-sorter/internal/rule/domain"

// CreateRuleRequest is the body of POST /api/rules.
type CreateRuleRequest struct {
	Name       string `json:"name" binding:"required,min=1,max=255"`
	Conditions string `json:"conditions" binding:"required,structured"`
	Actions    string `json:"actions" binding:"required,structured"`
	IsActive   *bool  `json:"is_active"`
	Priority   int    `json:"priority" binding:"min=0"`
}

// Active resolves the is_active default.
func (r CreateRuleRequest) Active() bool {
	if r.IsActive == nil {
		return true
	}
	return *r.IsActive
}

// UpdateRuleRequest is the body of PUT /api/rules/:id. Nil fields are left
// unchanged.
type UpdateRuleRequest struct {
	Name       *string `json:"name,omitempty" binding:"omitempty,min=1,max=255"`
	Conditions *string `json:"conditions,omitempty" binding:"omitempty,structured"`
	Actions    *string `json:"actions,omitempty" binding:"omitempty,structured"`
	IsActive   *bool   `json:"is_active,omitempty"`
	Priority   *int    `json:"priority,omitempty" binding:"omitempty,min=0"`
}

// ApplyTo copies the supplied fields onto rule and returns their column
// names, so the write can be limited to them.
func (r UpdateRuleRequest) ApplyTo(rule *ruledomain.EmailRule) []string {
	var columns []string
	if r.Name != nil {
		rule.Name = *r.Name
		columns = append(columns, "name")
	}
	if r.Conditions != nil {
		rule.Conditions = *r.Conditions
		columns = append(columns, "conditions")
	}
	if r.Actions != nil {
		rule.Actions = *r.Actions
		columns = append(columns, "actions")
	}
	if r.IsActive != nil {
		rule.IsActive = *r.IsActive
		columns = append(columns, "is_active")
	}
	if r.Priority != nil {
		rule.Priority = *r.Priority
		columns = append(columns, "priority")
	}
	return columns
}
