package credential

import "strings"

// CreateCredentialDTO is the transport shape for credential creation.
// Username, password, place and division are mandatory; description is
// free text and may be empty.
type CreateCredentialDTO struct {
	Username    string `json:"username"`
	Password    string `json:"password"`
	Description string `json:"description"`
	Place       string `json:"place"`
	Division    int64  `json:"division"`
}

func (d *CreateCredentialDTO) Validate() error {
	d.Username = strings.TrimSpace(d.Username)
	d.Place = strings.TrimSpace(d.Place)
	if d.Username == "" {
		return ValidationError{Msg: "username is required"}
	}
	if d.Password == "" {
		return ValidationError{Msg: "password is required"}
	}
	if d.Place == "" {
		return ValidationError{Msg: "place is required"}
	}
	if d.Division == 0 {
		return ValidationError{Msg: "division is required"}
	}
	return nil
}

// UpdateCredentialDTO carries a partial update. Nil pointers mean the
// field is left untouched; at least one field must be set.
type UpdateCredentialDTO struct {
	Username    *string `json:"username"`
	Password    *string `json:"password"`
	Description *string `json:"description"`
	Place       *string `json:"place"`
}

func (d *UpdateCredentialDTO) Empty() bool {
	return d.Username == nil && d.Password == nil && d.Description == nil && d.Place == nil
}

// Fields flattens the set pointers into a column/value map for a
// partial update statement.
func (d *UpdateCredentialDTO) Fields() map[string]interface{} {
	fields := map[string]interface{}{}
	if d.Username != nil {
		fields["username"] = strings.TrimSpace(*d.Username)
	}
	if d.Password != nil {
		fields["password"] = *d.Password
	}
	if d.Description != nil {
		fields["description"] = *d.Description
	}
	if d.Place != nil {
		fields["place"] = strings.TrimSpace(*d.Place)
	}
	return fields
}

type ValidationError struct {
	Msg string
}

func (v ValidationError) Error() string { return v.Msg }
