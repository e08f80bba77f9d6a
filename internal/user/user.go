package user

import (
	"time"

	userDatamodel "github.com/viniciuscarvalho-afk/Trasncricao-Hospitalar/internal/core/datamodel/user"
)

const (
	RoleClinician     = "clinician"
	RoleAuditor       = "auditor"
	RoleAdministrator = "administrator"
)

type User struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	Email            string    `json:"email"`
	SecretHash       string    `json:"-"`
	Role             string    `json:"role"`
	AllowedHospitals []string  `json:"allowed_hospitals,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

func (u *User) IsAdministrator() bool {
	return u.Role == RoleAdministrator
}

// Unrestricted reports whether the user may see every hospital. An absent or
// empty hospital list means no restriction was ever configured.
func (u *User) Unrestricted() bool {
	return len(u.AllowedHospitals) == 0
}

// Principal is the sans-secret identity kept in the session and handed to
// access-control decisions.
type Principal struct {
	ID               string   `json:"id"`
	Name             string   `json:"name"`
	Email            string   `json:"email"`
	Role             string   `json:"role"`
	AllowedHospitals []string `json:"allowed_hospitals,omitempty"`
}

func (p *Principal) IsAdministrator() bool {
	return p.Role == RoleAdministrator
}

func (p *Principal) Unrestricted() bool {
	return len(p.AllowedHospitals) == 0
}

// ToPrincipal strips the stored secret from a user record.
func (u *User) ToPrincipal() *Principal {
	return &Principal{
		ID:               u.ID,
		Name:             u.Name,
		Email:            u.Email,
		Role:             u.Role,
		AllowedHospitals: u.AllowedHospitals,
	}
}

func ToDataModel(u *User) *userDatamodel.User {
	return &userDatamodel.User{
		ID:               u.ID,
		Name:             u.Name,
		Email:            u.Email,
		SecretHash:       u.SecretHash,
		Role:             u.Role,
		AllowedHospitals: userDatamodel.HospitalList(u.AllowedHospitals),
		CreatedAt:        u.CreatedAt,
		UpdatedAt:        u.UpdatedAt,
	}
}

func FromDataModel(u *userDatamodel.User) *User {
	return &User{
		ID:               u.ID,
		Name:             u.Name,
		Email:            u.Email,
		SecretHash:       u.SecretHash,
		Role:             u.Role,
		AllowedHospitals: []string(u.AllowedHospitals),
		CreatedAt:        u.CreatedAt,
		UpdatedAt:        u.UpdatedAt,
	}
}

func FromDataModelSlice(users []*userDatamodel.User) []*User {
	result := make([]*User, len(users))
	for i, u := range users {
		result[i] = FromDataModel(u)
	}
	return result
}
