// Package access computes which hospitals and admissions a principal may
// see. Restriction is driven solely by the presence of a hospital list on
// the principal; roles play no part here. The administration surface is
// guarded separately.
package access

import (
	"log/slog"
	"sort"

	"github.com/viniciuscarvalho-afk/Trasncricao-Hospitalar/internal/admission"
	"github.com/viniciuscarvalho-afk/Trasncricao-Hospitalar/internal/user"
)

type AdmissionRepository interface {
	DistinctHospitals() ([]string, error)
	DistinctPatients(hospital string) ([]string, error)
	ListByHospital(hospital, patient string) ([]*admission.Admission, error)
}

type Filter struct {
	admissions AdmissionRepository
	logger     *slog.Logger
}

func NewFilter(admissions AdmissionRepository, logger *slog.Logger) *Filter {
	return &Filter{
		admissions: admissions,
		logger:     logger,
	}
}

// VisibleHospitals returns the hospitals the principal may see, sorted
// ascending. An unrestricted principal sees every distinct hospital present
// in the admission collection; a restricted one sees the intersection of
// that set with its allowed list.
func (f *Filter) VisibleHospitals(principal *user.Principal) ([]string, error) {
	all, err := f.admissions.DistinctHospitals()
	if err != nil {
		f.logger.Error("failed to load hospital names", "error", err)
		return nil, err
	}
	sort.Strings(all)

	if principal.Unrestricted() {
		return all, nil
	}

	allowed := make(map[string]struct{}, len(principal.AllowedHospitals))
	for _, h := range principal.AllowedHospitals {
		allowed[h] = struct{}{}
	}

	visible := make([]string, 0, len(all))
	for _, h := range all {
		if _, ok := allowed[h]; ok {
			visible = append(visible, h)
		}
	}
	return visible, nil
}

// AutoSelect returns the implicit hospital selection. When exactly one
// hospital is visible the caller must treat it as already chosen and skip
// the hospital prompt; with zero or several there is no implicit choice.
func AutoSelect(visibleHospitals []string) (string, bool) {
	if len(visibleHospitals) == 1 {
		return visibleHospitals[0], true
	}
	return "", false
}

// CanSee reports whether the given hospital is in the principal's visible
// set.
func (f *Filter) CanSee(principal *user.Principal, hospital string) (bool, error) {
	visible, err := f.VisibleHospitals(principal)
	if err != nil {
		return false, err
	}
	for _, h := range visible {
		if h == hospital {
			return true, nil
		}
	}
	return false, nil
}

// AdmissionsFor filters admissions by exact hospital match and, when patient
// is non-empty, exact patient match.
func (f *Filter) AdmissionsFor(hospital, patient string) ([]*admission.Admission, error) {
	return f.admissions.ListByHospital(hospital, patient)
}

// PatientsOf returns the distinct patient names admitted at the hospital,
// sorted ascending.
func (f *Filter) PatientsOf(hospital string) ([]string, error) {
	patients, err := f.admissions.DistinctPatients(hospital)
	if err != nil {
		return nil, err
	}
	sort.Strings(patients)
	return patients, nil
}
