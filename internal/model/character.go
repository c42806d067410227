package model

// Character is a catalog character. LastName is required; the rest of the
// descriptive fields are nullable.
type Character struct {
	ID        int64   `json:"id"`
	Name      string  `json:"name"`
	LastName  string  `json:"last_name"`
	Height    *int64  `json:"height"`
	HairColor *string `json:"hair_color"`
	BirthYear *int64  `json:"birth_year"`
}

type CreateCharacterInput struct {
	Name      string  `json:"name"       validate:"required,max=120"`
	LastName  string  `json:"last_name"  validate:"required,max=120"`
	Height    *int64  `json:"height"     validate:"omitempty,min=0"`
	HairColor *string `json:"hair_color" validate:"omitempty,max=120"`
	BirthYear *int64  `json:"birth_year"`
}

type CharacterPatch struct {
	Name      Optional[string]  `json:"name"`
	LastName  Optional[string]  `json:"last_name"`
	Height    Optional[*int64]  `json:"height"`
	HairColor Optional[*string] `json:"hair_color"`
	BirthYear Optional[*int64]  `json:"birth_year"`
}

func (p CharacterPatch) Apply(c Character) Character {
	c.Name = apply(p.Name, c.Name)
	c.LastName = apply(p.LastName, c.LastName)
	c.Height = apply(p.Height, c.Height)
	c.HairColor = apply(p.HairColor, c.HairColor)
	c.BirthYear = apply(p.BirthYear, c.BirthYear)
	return c
}

func (c Character) Rules() any {
	return CreateCharacterInput{
		Name:      c.Name,
		LastName:  c.LastName,
		Height:    c.Height,
		HairColor: c.HairColor,
		BirthYear: c.BirthYear,
	}
}
