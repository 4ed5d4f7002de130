package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// User represents one account as held by the store.
//
// NOTE: Password is stored and returned exactly as submitted unless password
// hashing is enabled in configuration. Plaintext storage must be hardened
// before production use.
type User struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Password  string    `json:"password"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// UserInput is the user-data payload accepted by create and update.
// An empty string means the field was not supplied.
type UserInput struct {
	Name     string
	Email    string
	Password string

	// NonString holds the JSON names of fields that were present with a
	// non-string, non-null value. Validators reject them in field order.
	NonString map[string]bool
}

// UnmarshalJSON decodes a JSON object into the input, recording fields of
// the wrong type instead of failing. Unknown keys, including "id", are
// ignored. Only a body that is not a JSON object is an error.
func (in *UserInput) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*in = UserInput{}
	for key, dst := range map[string]*string{
		"name":     &in.Name,
		"email":    &in.Email,
		"password": &in.Password,
	} {
		value, ok := raw[key]
		if !ok || string(value) == "null" {
			continue
		}
		if err := json.Unmarshal(value, dst); err != nil {
			if in.NonString == nil {
				in.NonString = make(map[string]bool)
			}
			in.NonString[key] = true
		}
	}
	return nil
}

// UserPatch describes a partial update. Nil fields are left unchanged.
// It deliberately has no ID field: identifiers are immutable.
type UserPatch struct {
	Name     *string
	Email    *string
	Password *string
}

// NewUserPatch builds a patch from an update payload, treating empty
// strings as absent.
func NewUserPatch(in UserInput) UserPatch {
	var p UserPatch
	if in.Name != "" {
		name := in.Name
		p.Name = &name
	}
	if in.Email != "" {
		email := in.Email
		p.Email = &email
	}
	if in.Password != "" {
		password := in.Password
		p.Password = &password
	}
	return p
}

// IsEmpty reports whether the patch changes nothing.
func (p UserPatch) IsEmpty() bool {
	return p.Name == nil && p.Email == nil && p.Password == nil
}

// Apply copies the non-nil patch fields onto u.
func (p UserPatch) Apply(u *User) {
	if p.Name != nil {
		u.Name = *p.Name
	}
	if p.Email != nil {
		u.Email = *p.Email
	}
	if p.Password != nil {
		u.Password = *p.Password
	}
}

// UserFilter narrows GetMany. Empty fields match every record;
// set fields are combined with AND.
type UserFilter struct {
	Name  string
	Email string
}

// Matches reports whether u satisfies the filter.
func (f UserFilter) Matches(u *User) bool {
	if f.Name != "" && u.Name != f.Name {
		return false
	}
	if f.Email != "" && u.Email != f.Email {
		return false
	}
	return true
}
