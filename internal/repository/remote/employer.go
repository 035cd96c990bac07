package remote

import (
	"context"
	"fmt"
	"net/url"

	"github.com/cmlabs-hris/seeker-tracker/internal/domain/identity"
	"github.com/cmlabs-hris/seeker-tracker/internal/pkg/backend"
)

const profilePath = "/api/seeker/profile"

type employerPayload struct {
	CompanyID   FlexString `json:"company_id"`
	EmployerID  FlexString `json:"employer_id"`
	EmployeeID  FlexString `json:"employee_id"`
	CompanyName string     `json:"company_name"`
}

type isHiredPayload struct {
	IsHired FlexBool `json:"is_hired"`
}

type employerRepositoryImpl struct {
	client *backend.Client
}

func NewEmployerRepository(client *backend.Client) identity.EmployerRepository {
	return &employerRepositoryImpl{client: client}
}

// ListHiringEmployers implements identity.EmployerRepository.
func (r *employerRepositoryImpl) ListHiringEmployers(ctx context.Context, id identity.Identity) ([]identity.Employer, error) {
	var payloads []employerPayload
	query := url.Values{"jobseeker_id": {id.JobseekerID}}
	if err := r.client.Get(ctx, profilePath+"/hiring_employers", query, id.Token, &payloads); err != nil {
		return nil, fmt.Errorf("failed to list hiring employers: %w", err)
	}

	employers := make([]identity.Employer, 0, len(payloads))
	for _, p := range payloads {
		companyID := string(p.CompanyID)
		if companyID == "" {
			companyID = string(p.EmployerID)
		}
		employers = append(employers, identity.Employer{
			CompanyID:   companyID,
			EmployeeID:  string(p.EmployeeID),
			CompanyName: p.CompanyName,
		})
	}
	return employers, nil
}

// IsHired implements identity.EmployerRepository.
func (r *employerRepositoryImpl) IsHired(ctx context.Context, id identity.Identity) (bool, error) {
	var payload isHiredPayload
	query := url.Values{"jobseeker_id": {id.JobseekerID}}
	if err := r.client.Get(ctx, profilePath+"/is_hired", query, id.Token, &payload); err != nil {
		return false, fmt.Errorf("failed to check hiring status: %w", err)
	}
	return bool(payload.IsHired), nil
}
