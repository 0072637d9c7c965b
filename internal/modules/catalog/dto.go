package catalog

type CreateRoomRequest struct {
	Code      string   `json:"code" validate:"required,max=32"`
	Name      string   `json:"name" validate:"required,max=120"`
	Capacity  int      `json:"capacity" validate:"required,gt=0,lte=1000"`
	Equipment []string `json:"equipment" validate:"omitempty,max=50,dive,max=64"`
}

// MaintenanceRequest puts a room under maintenance or releases it.
type MaintenanceRequest struct {
	Enabled *bool `json:"enabled" validate:"required"`
}
