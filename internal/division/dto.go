package division

import "strings"

// CreateDivisionDTO is the transport shape for division creation.
type CreateDivisionDTO struct {
	Name string `json:"name"`
	OU   int64  `json:"ou"`
}

func (d *CreateDivisionDTO) Validate() error {
	d.Name = strings.TrimSpace(d.Name)
	if d.Name == "" {
		return ValidationError{Msg: "name is required"}
	}
	if d.OU == 0 {
		return ValidationError{Msg: "ou is required"}
	}
	return nil
}

type ValidationError struct {
	Msg string
}

func (v ValidationError) Error() string { return v.Msg }
