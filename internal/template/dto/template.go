package dto

import templatedomain "email-sorter/internal/template/domain"

// CreateTemplateRequest is the body of POST /api/templates.
type CreateTemplateRequest struct {
	Name     string  `json:"name" binding:"required,min=1,max=255"`
	Subject  string  `json:"subject" binding:"required,min=1,max=500"`
	Body     string  `json:"body" binding:"required,min=1"`
	Category *string `json:"category" binding:"omitempty,max=100"`
}

// CategoryOrDefault returns the requested category or "general".
func (r CreateTemplateRequest) CategoryOrDefault() string {
	if r.Category == nil {
		return templatedomain.DefaultCategory
	}
	return *r.Category
}

// UpdateTemplateRequest is the body of PUT /api/templates/:id.
type UpdateTemplateRequest struct {
	Name     *string `json:"name,omitempty" binding:"omitempty,min=1,max=255"`
	Subject  *string `json:"subject,omitempty" binding:"omitempty,min=1,max=500"`
	Body     *string `json:"body,omitempty" binding:"omitempty,min=1"`
	Category *string `json:"category,omitempty" binding:"omitempty,max=100"`
}

// ApplyTo copies the supplied fields onto tmpl and returns their column names.
func (r UpdateTemplateRequest) ApplyTo(tmpl *templatedomain.EmailTemplate) []string {
	var columns []string
	if r.Name != nil {
		tmpl.Name = *r.Name
		columns = append(columns, "name")
	}
	if r.Subject != nil {
		tmpl.Subject = *r.Subject
		columns = append(columns, "subject")
	}
	if r.Body != nil {
		tmpl.Body = *r.Body
		columns = append(columns, "body")
	}
	if r.Category != nil {
		tmpl.Category = *r.Category
		columns = append(columns, "category")
	}
	return columns
}
