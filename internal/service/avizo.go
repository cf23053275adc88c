package service

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"rentflow-backend/internal/domain"
	"rentflow-backend/internal/repository"
	"rentflow-backend/internal/utils"
)

type avizoService struct {
	avizoRepo    repository.AvizoRepository
	sequenceRepo repository.SequenceRepository
	auditSvc     AuditService
}

func NewAvizoService(avizoRepo repository.AvizoRepository, sequenceRepo repository.SequenceRepository, auditSvc AuditService) AvizoService {
	return &avizoService{
		avizoRepo:    avizoRepo,
		sequenceRepo: sequenceRepo,
		auditSvc:     auditSvc,
	}
}

func (s *avizoService) CreateAvizo(ctx context.Context, tenantID, userID int32, input *CreateAvizoInput) (*domain.Avizo, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	now := time.Now()
	seq, err := s.sequenceRepo.Next(ctx, tenantID, repository.SequenceScopeAvizo, now.Year())
	if err != nil {
		return nil, fmt.Errorf("avizo number sequence: %w", err)
	}

	items := make([]domain.AvizoItem, 0, len(input.Items))
	totalQuantity := decimal.Zero
	for _, in := range input.Items {
		expected := decimal.NewFromFloat(in.ExpectedQuantity)
		items = append(items, domain.AvizoItem{
			ProductID:        in.ProductID,
			ProductCode:      in.ProductCode,
			ProductName:      in.ProductName,
			ExpectedQuantity: expected,
			ReceivedQuantity: decimal.Zero,
		})
		totalQuantity = totalQuantity.Add(expected)
	}

	avizo := &domain.Avizo{
		TenantID:      tenantID,
		AvizoNumber:   utils.FormatAvizoNumber(now.Year(), seq),
		SupplierID:    input.SupplierID,
		SupplierName:  input.SupplierName,
		ExpectedDate:  input.ExpectedDate,
		Status:        domain.AvizoStatusPending,
		TotalItems:    int32(len(items)),
		TotalQuantity: totalQuantity,
		Notes:         input.Notes,
		PdfURL:        input.PdfURL,
		CreatedBy:     userID,
		Items:         items,
	}

	if err := s.avizoRepo.Create(ctx, avizo); err != nil {
		return nil, err
	}

	s.auditSvc.Log(ctx, &domain.AuditEntry{
		TenantID:   tenantID,
		UserID:     userID,
		Action:     domain.AuditAvizoCreated,
		EntityType: "avizo",
		EntityID:   avizo.ID,
		Metadata: map[string]string{
			"avizo_number": avizo.AvizoNumber,
			"supplier":     avizo.SupplierName,
		},
	})

	return avizo, nil
}

func (s *avizoService) UpdateAvizo(ctx context.Context, tenantID, userID, avizoID int32, input *UpdateAvizoInput) (*domain.Avizo, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	avizo, err := s.getPending(ctx, tenantID, avizoID, "updated")
	if err != nil {
		return nil, err
	}

	if input.ExpectedDate != nil {
		avizo.ExpectedDate = *input.ExpectedDate
	}
	if input.Notes != nil {
		avizo.Notes = *input.Notes
	}
	if input.PdfURL != nil {
		avizo.PdfURL = *input.PdfURL
	}
	if err := s.avizoRepo.Update(ctx, avizo); err != nil {
		return nil, err
	}

	s.auditSvc.Log(ctx, &domain.AuditEntry{
		TenantID:   tenantID,
		UserID:     userID,
		Action:     domain.AuditAvizoUpdated,
		EntityType: "avizo",
		EntityID:   avizo.ID,
		Metadata:   map[string]string{"avizo_number": avizo.AvizoNumber},
	})

	return avizo, nil
}

func (s *avizoService) CancelAvizo(ctx context.Context, tenantID, userID, avizoID int32) (*domain.Avizo, error) {
	avizo, err := s.getPending(ctx, tenantID, avizoID, "cancelled")
	if err != nil {
		return nil, err
	}

	avizo.Status = domain.AvizoStatusCancelled
	if err := s.avizoRepo.Update(ctx, avizo); err != nil {
		return nil, err
	}

	s.auditSvc.Log(ctx, &domain.AuditEntry{
		TenantID:   tenantID,
		UserID:     userID,
		Action:     domain.AuditAvizoCancelled,
		EntityType: "avizo",
		EntityID:   avizo.ID,
		Metadata:   map[string]string{"avizo_number": avizo.AvizoNumber},
	})

	return avizo, nil
}

// getPending looks up an avizo, applies the tenant check and enforces
// that mutations only touch PENDING avizos.
func (s *avizoService) getPending(ctx context.Context, tenantID, avizoID int32, verb string) (*domain.Avizo, error) {
	avizo, err := s.avizoRepo.GetByID(ctx, avizoID)
	if err != nil {
		return nil, err
	}
	if err := tenantGuard(avizo.TenantID, tenantID, "avizo", avizoID); err != nil {
		return nil, err
	}
	if avizo.Status != domain.AvizoStatusPending {
		return nil, domain.NewTransitionError("only a pending avizo can be %s, %s is %s", verb, avizo.AvizoNumber, avizo.Status)
	}
	return avizo, nil
}

func (s *avizoService) GetAvizo(ctx context.Context, tenantID, avizoID int32) (*domain.Avizo, error) {
	avizo, err := s.avizoRepo.GetByID(ctx, avizoID)
	if err != nil {
		return nil, err
	}
	if err := tenantGuard(avizo.TenantID, tenantID, "avizo", avizoID); err != nil {
		return nil, err
	}
	return avizo, nil
}

func (s *avizoService) ListAvizos(ctx context.Context, tenantID int32, status string, page, pageSize int32) ([]domain.Avizo, int32, error) {
	return s.avizoRepo.ListByTenant(ctx, tenantID, status, page, pageSize)
}
