package model

// Vehicle is a catalog vehicle.
type Vehicle struct {
	ID            int64   `json:"id"`
	Name          string  `json:"name"`
	Model         *string `json:"model"`
	CostInCredits *int64  `json:"cost_in_credits"`
}

type CreateVehicleInput struct {
	Name          string  `json:"name"            validate:"required,max=120"`
	Model         *string `json:"model"           validate:"omitempty,max=120"`
	CostInCredits *int64  `json:"cost_in_credits" validate:"omitempty,min=0"`
}

type VehiclePatch struct {
	Name          Optional[string]  `json:"name"`
	Model         Optional[*string] `json:"model"`
	CostInCredits Optional[*int64]  `json:"cost_in_credits"`
}

func (p VehiclePatch) Apply(v Vehicle) Vehicle {
	v.Name = apply(p.Name, v.Name)
	v.Model = apply(p.Model, v.Model)
	v.CostInCredits = apply(p.CostInCredits, v.CostInCredits)
	return v
}

func (v Vehicle) Rules() any {
	return CreateVehicleInput{Name: v.Name, Model: v.Model, CostInCredits: v.CostInCredits}
}
