package user

import "fmt"

// UpdateUserDTO is a partial patch: nil fields are left untouched, set
// fields are merged onto the stored record.
type UpdateUserDTO struct {
	Name             *string   `json:"name,omitempty"`
	Email            *string   `json:"email,omitempty"`
	Role             *string   `json:"role,omitempty"`
	AllowedHospitals *[]string `json:"allowed_hospitals,omitempty"`
}

func (d UpdateUserDTO) Validate() error {
	if d.Name != nil && *d.Name == "" {
		return fmt.Errorf("name cannot be empty")
	}
	if d.Email != nil && *d.Email == "" {
		return fmt.Errorf("email cannot be empty")
	}
	if d.Role != nil {
		switch *d.Role {
		case RoleClinician, RoleAuditor, RoleAdministrator:
		default:
			return fmt.Errorf("unknown role %q", *d.Role)
		}
	}
	return nil
}
