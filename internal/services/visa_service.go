package services

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/eurouni/eurostudy/internal/models"
	pgrepo "github.com/eurouni/eurostudy/internal/repositories/postgres"
	"github.com/eurouni/eurostudy/internal/utils"
	"github.com/eurouni/eurostudy/internal/visa"
)

type VisaCountry struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// VisaService serves the static requirement catalog and tracks which
// checklist items each student has ticked off.
type VisaService interface {
	Countries() []VisaCountry
	Requirements(countryCode string) (*models.VisaRequirements, error)
	Progress(ctx context.Context, userID, countryCode string) (*models.VisaProgress, error)
	SetChecked(ctx context.Context, userID, countryCode, itemID string, checked bool) (*models.VisaProgress, error)
}

type visaService struct {
	progress pgrepo.VisaProgressRepository
}

func NewVisaService(progress pgrepo.VisaProgressRepository) VisaService {
	return &visaService{progress: progress}
}

func (s *visaService) Countries() []VisaCountry {
	out := make([]VisaCountry, 0, len(visa.Catalog))
	for code, req := range visa.Catalog {
		out = append(out, VisaCountry{Code: code, Name: req.CountryName})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func (s *visaService) Requirements(countryCode string) (*models.VisaRequirements, error) {
	const op = "VisaService.Requirements"

	req, ok := visa.Catalog[strings.ToUpper(countryCode)]
	if !ok {
		return nil, utils.E(utils.CodeNotFound, op, "country requirements not found", nil)
	}
	return &req, nil
}

func (s *visaService) Progress(ctx context.Context, userID, countryCode string) (*models.VisaProgress, error) {
	const op = "VisaService.Progress"

	code := strings.ToUpper(countryCode)
	if _, ok := visa.Catalog[code]; !ok {
		return nil, utils.E(utils.CodeNotFound, op, "country requirements not found", nil)
	}

	p, err := s.progress.Get(ctx, userID, code)
	if errors.Is(err, utils.ErrNotFound) {
		// nothing ticked yet
		return &models.VisaProgress{UserID: userID, CountryCode: code, CheckedIDs: []string{}}, nil
	}
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to load visa progress", err)
	}
	return p, nil
}

func (s *visaService) SetChecked(ctx context.Context, userID, countryCode, itemID string, checked bool) (*models.VisaProgress, error) {
	const op = "VisaService.SetChecked"

	code := strings.ToUpper(countryCode)
	req, ok := visa.Catalog[code]
	if !ok {
		return nil, utils.E(utils.CodeNotFound, op, "country requirements not found", nil)
	}
	if !visa.HasItem(req, itemID) {
		return nil, utils.E(utils.CodeInvalidArgument, op, "unknown checklist item", nil)
	}

	p, err := s.Progress(ctx, userID, code)
	if err != nil {
		return nil, err
	}

	has := false
	for _, id := range p.CheckedIDs {
		if id == itemID {
			has = true
			break
		}
	}
	switch {
	case checked && !has:
		p.CheckedIDs = append(p.CheckedIDs, itemID)
	case !checked && has:
		kept := p.CheckedIDs[:0]
		for _, id := range p.CheckedIDs {
			if id != itemID {
				kept = append(kept, id)
			}
		}
		p.CheckedIDs = kept
	default:
		return p, nil // already in the requested state
	}

	p.UpdatedAt = time.Now().UTC()
	if err := s.progress.Upsert(ctx, p); err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to save visa progress", err)
	}
	return p, nil
}
