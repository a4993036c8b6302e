package request

type CreateTheaterRequest struct {
	Name     string `json:"name" validate:"required,min=1,max=100"`
	Capacity int    `json:"capacity" validate:"required,min=1,max=1000"`
	Type     string `json:"type" validate:"required,oneof=standard 3D IMAX VIP"`
}

type UpdateTheaterRequest struct {
	Name     *string `json:"name,omitempty" validate:"omitempty,min=1,max=100"`
	Capacity *int    `json:"capacity,omitempty" validate:"omitempty,min=1,max=1000"`
	Type     *string `json:"type,omitempty" validate:"omitempty,oneof=standard 3D IMAX VIP"`
}
