package menus

import "github.com/mcdev12/orderalone/go/internal/models"

const (
	DefaultListLimit = 100
	MaxListLimit     = 1000
)

// CreateMenuRequest is the body of POST /menu
type CreateMenuRequest struct {
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Level       int               `json:"level"`
	Data        []models.Category `json:"data"`
}

// UpdateMenuRequest carries only the fields being changed
type UpdateMenuRequest struct {
	Name        *string            `json:"name,omitempty"`
	Description *string            `json:"description,omitempty"`
	Level       *int               `json:"level,omitempty"`
	Data        *[]models.Category `json:"data,omitempty"`
}

func (r UpdateMenuRequest) empty() bool {
	return r.Name == nil && r.Description == nil && r.Level == nil && r.Data == nil
}

type DeleteResponse struct {
	Message string `json:"message"`
}
