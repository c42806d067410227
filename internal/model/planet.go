package model

// Planet is a catalog planet. Population and Diameter are nullable.
type Planet struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	Population *int64 `json:"population"`
	Diameter   *int64 `json:"diameter"`
}

type CreatePlanetInput struct {
	Name       string `json:"name"       validate:"required,max=120"`
	Population *int64 `json:"population" validate:"omitempty,min=0"`
	Diameter   *int64 `json:"diameter"   validate:"omitempty,min=0"`
}

type PlanetPatch struct {
	Name       Optional[string] `json:"name"`
	Population Optional[*int64] `json:"population"`
	Diameter   Optional[*int64] `json:"diameter"`
}

func (p PlanetPatch) Apply(pl Planet) Planet {
	pl.Name = apply(p.Name, pl.Name)
	pl.Population = apply(p.Population, pl.Population)
	pl.Diameter = apply(p.Diameter, pl.Diameter)
	return pl
}

func (pl Planet) Rules() any {
	return CreatePlanetInput{Name: pl.Name, Population: pl.Population, Diameter: pl.Diameter}
}
