package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/iho/compta/internal/domain"
)

// CompanyUseCase reads and saves the company profile.
type CompanyUseCase struct {
	companyRepo CompanyRepository
	audit       auditTrail
	now         func() time.Time
}

// NewCompanyUseCase creates a new CompanyUseCase.
func NewCompanyUseCase(companyRepo CompanyRepository, auditRepo AuditRepository) *CompanyUseCase {
	return &CompanyUseCase{companyRepo: companyRepo, audit: auditTrail{repo: auditRepo}, now: time.Now}
}

// GetCompany returns the company profile.
func (uc *CompanyUseCase) GetCompany(ctx context.Context) (*domain.Company, error) {
	return uc.companyRepo.Get(ctx)
}

// SaveCompany creates or replaces the company profile.
func (uc *CompanyUseCase) SaveCompany(ctx context.Context, company *domain.Company) (*domain.Company, error) {
	company.Name = strings.TrimSpace(company.Name)
	company.SIRET = strings.ReplaceAll(company.SIRET, " ", "")
	if err := company.Validate(); err != nil {
		return nil, err
	}

	previous, err := uc.companyRepo.Get(ctx)
	if err != nil && !errors.Is(err, domain.ErrCompanyNotFound) {
		return nil, err
	}

	company.UpdatedAt = uc.now().UTC()
	if err := uc.companyRepo.Save(ctx, company); err != nil {
		return nil, err
	}

	uc.audit.record(ctx, domain.NewAuditLog(ctx, domain.AuditActionCompanyUpdate,
		domain.AuditResourceCompany, "1", previous, company, company.UpdatedAt))

	zerolog.Ctx(ctx).Info().Str("name", company.Name).Msg("company profile saved")

	return company, nil
}
