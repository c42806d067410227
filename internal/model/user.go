// Package model defines the data structures used throughout the application.
//
// Each entity has a row type (what the repository reads and writes), a
// Create input carrying validator tags, and a Patch type whose Apply method
// is a pure merge used by partial updates.
package model

// User represents a registered account.
//
// PasswordHash is the bcrypt hash and is tagged json:"-" so it can never be
// serialized into a response, no matter which handler encodes the struct.
type User struct {
	ID           int64   `json:"id"`
	Email        string  `json:"email"`
	Username     string  `json:"username"`
	PasswordHash string  `json:"-"`
	IsActive     bool    `json:"is_active"`
	Name         *string `json:"name"`
	Lastname     *string `json:"lastname"`
}

// CreateUserInput is the POST /user payload.
type CreateUserInput struct {
	Email    string  `json:"email"    validate:"required,email,max=120"`
	Username string  `json:"username" validate:"required,max=120"`
	Password string  `json:"password" validate:"required,max=72"`
	Name     *string `json:"name"     validate:"omitempty,max=120"`
	Lastname *string `json:"lastname" validate:"omitempty,max=120"`
}

// UserPatch is the PUT /user/{id} payload. Password is plaintext here; the
// service hashes it before Apply stores it in PasswordHash.
type UserPatch struct {
	Email    Optional[string]  `json:"email"`
	Username Optional[string]  `json:"username"`
	Password Optional[string]  `json:"password"`
	Name     Optional[*string] `json:"name"`
	Lastname Optional[*string] `json:"lastname"`
	IsActive Optional[bool]    `json:"is_active"`
}

// Apply merges the supplied fields over u and returns the result. u itself
// is not modified. Password is deliberately not merged: it must be hashed
// first (see service.UserService.Update).
func (p UserPatch) Apply(u User) User {
	u.Email = apply(p.Email, u.Email)
	u.Username = apply(p.Username, u.Username)
	u.Name = apply(p.Name, u.Name)
	u.Lastname = apply(p.Lastname, u.Lastname)
	u.IsActive = apply(p.IsActive, u.IsActive)
	return u
}

// userRules is the validation view of a merged User: the required columns
// may not be blanked by an update.
type userRules struct {
	Email    string `json:"email"    validate:"required,email,max=120"`
	Username string `json:"username" validate:"required,max=120"`
}

// Rules returns the struct the service validates after a merge.
func (u User) Rules() any {
	return userRules{Email: u.Email, Username: u.Username}
}
