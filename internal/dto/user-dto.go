package dto

type UpdateRoleDTO struct {
	Role string `json:"role" validate:"required,profile_role"`
}
