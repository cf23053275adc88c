package service

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"rentflow-backend/internal/domain"
	"rentflow-backend/internal/logger"
	"rentflow-backend/internal/repository"
	"rentflow-backend/internal/utils"
)

type receiptService struct {
	receiptRepo     repository.ReceiptRepository
	discrepancyRepo repository.DiscrepancyRepository
	avizoRepo       repository.AvizoRepository
	sequenceRepo    repository.SequenceRepository
	inventorySvc    InventoryService
	emailSvc        EmailService
	auditSvc        AuditService
}

func NewReceiptService(
	receiptRepo repository.ReceiptRepository,
	discrepancyRepo repository.DiscrepancyRepository,
	avizoRepo repository.AvizoRepository,
	sequenceRepo repository.SequenceRepository,
	inventorySvc InventoryService,
	emailSvc EmailService,
	auditSvc AuditService,
) ReceiptService {
	return &receiptService{
		receiptRepo:     receiptRepo,
		discrepancyRepo: discrepancyRepo,
		avizoRepo:       avizoRepo,
		sequenceRepo:    sequenceRepo,
		inventorySvc:    inventorySvc,
		emailSvc:        emailSvc,
		auditSvc:        auditSvc,
	}
}

func (s *receiptService) CreateReceipt(ctx context.Context, tenantID, userID int32, input *CreateReceiptInput) (*domain.Receipt, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	if input.AvizoID != nil {
		avizo, err := s.avizoRepo.GetByID(ctx, *input.AvizoID)
		if err != nil {
			return nil, err
		}
		if err := tenantGuard(avizo.TenantID, tenantID, "avizo", *input.AvizoID); err != nil {
			return nil, err
		}
		switch avizo.Status {
		case domain.AvizoStatusReceived:
			return nil, domain.NewTransitionError("avizo %s is already fully received", avizo.AvizoNumber)
		case domain.AvizoStatusCancelled:
			return nil, domain.NewTransitionError("cannot receive cancelled avizo %s", avizo.AvizoNumber)
		}
	}

	now := time.Now()
	seq, err := s.sequenceRepo.Next(ctx, tenantID, repository.SequenceScopeReceipt, now.Year())
	if err != nil {
		return nil, fmt.Errorf("receipt number sequence: %w", err)
	}

	items := make([]domain.ReceiptItem, 0, len(input.Items))
	totalQuantity := decimal.Zero
	hasDiscrepancy := false
	for _, in := range input.Items {
		expected := decimal.NewFromFloat(in.ExpectedQuantity)
		received := decimal.NewFromFloat(in.ReceivedQuantity)
		if !utils.WithinTolerance(expected, received) {
			hasDiscrepancy = true
		}
		items = append(items, domain.ReceiptItem{
			ProductID:        in.ProductID,
			ProductCode:      in.ProductCode,
			ProductName:      in.ProductName,
			ExpectedQuantity: expected,
			ReceivedQuantity: received,
			UnitPrice:        in.UnitPrice,
			LocationCode:     in.LocationCode,
		})
		totalQuantity = totalQuantity.Add(received)
	}

	status := domain.ReceiptStatusInProgress
	if hasDiscrepancy {
		status = domain.ReceiptStatusDiscrepancy
	}

	receipt := &domain.Receipt{
		TenantID:       tenantID,
		ReceiptNumber:  utils.FormatReceiptNumber(now.Year(), seq),
		AvizoID:        input.AvizoID,
		SupplierID:     input.SupplierID,
		SupplierName:   input.SupplierName,
		Status:         status,
		HasDiscrepancy: hasDiscrepancy,
		TotalItems:     int32(len(items)),
		TotalQuantity:  totalQuantity,
		Notes:          input.Notes,
		CreatedBy:      userID,
		Items:          items,
	}

	if err := s.receiptRepo.Create(ctx, receipt); err != nil {
		return nil, err
	}

	// An out-of-tolerance item gets its discrepancy record opened right
	// away so resolution can start without a separate intake step.
	for i := range receipt.Items {
		item := &receipt.Items[i]
		if utils.WithinTolerance(item.ExpectedQuantity, item.ReceivedQuantity) {
			continue
		}
		dType := domain.DiscrepancyTypeSurplus
		if item.ReceivedQuantity.LessThan(item.ExpectedQuantity) {
			dType = domain.DiscrepancyTypeShortage
		}
		discrepancy := &domain.Discrepancy{
			TenantID:         tenantID,
			ReceiptID:        receipt.ID,
			ReceiptItemID:    item.ID,
			Type:             dType,
			ExpectedQuantity: item.ExpectedQuantity,
			ActualQuantity:   item.ReceivedQuantity,
			Difference:       item.ReceivedQuantity.Sub(item.ExpectedQuantity),
		}
		if err := s.discrepancyRepo.Create(ctx, discrepancy); err != nil {
			return nil, err
		}
		s.auditSvc.Log(ctx, &domain.AuditEntry{
			TenantID:   tenantID,
			UserID:     userID,
			Action:     domain.AuditDiscrepancyCreated,
			EntityType: "discrepancy",
			EntityID:   discrepancy.ID,
			Metadata: map[string]string{
				"receipt_number": receipt.ReceiptNumber,
				"product_code":   item.ProductCode,
				"difference":     discrepancy.Difference.String(),
			},
		})
	}

	if input.AvizoID != nil {
		// Accumulate received quantities on the avizo; its status is only
		// recomputed when the receipt completes.
		for _, item := range receipt.Items {
			if err := s.avizoRepo.AddReceivedQuantity(ctx, *input.AvizoID, item.ProductID, item.ReceivedQuantity); err != nil {
				return nil, err
			}
		}
	}

	s.auditSvc.Log(ctx, &domain.AuditEntry{
		TenantID:   tenantID,
		UserID:     userID,
		Action:     domain.AuditReceiptCreated,
		EntityType: "receipt",
		EntityID:   receipt.ID,
		Metadata: map[string]string{
			"receipt_number":  receipt.ReceiptNumber,
			"status":          string(receipt.Status),
			"has_discrepancy": fmt.Sprintf("%t", receipt.HasDiscrepancy),
		},
	})

	return receipt, nil
}

func (s *receiptService) CompleteReceipt(ctx context.Context, tenantID, userID, receiptID int32) (*domain.Receipt, error) {
	receipt, err := s.receiptRepo.GetByID(ctx, receiptID)
	if err != nil {
		return nil, err
	}
	if err := tenantGuard(receipt.TenantID, tenantID, "receipt", receiptID); err != nil {
		return nil, err
	}
	if receipt.Status == domain.ReceiptStatusCompleted {
		return nil, domain.NewTransitionError("receipt %s is already completed", receipt.ReceiptNumber)
	}
	if receipt.Status == domain.ReceiptStatusDiscrepancy {
		return nil, domain.NewTransitionError("receipt %s has unresolved discrepancies", receipt.ReceiptNumber)
	}

	for _, item := range receipt.Items {
		if !item.ReceivedQuantity.IsPositive() {
			continue
		}
		if err := s.inventorySvc.IncreaseStock(ctx, tenantID, item.ProductID, item.ReceivedQuantity, item.LocationCode); err != nil {
			return nil, domain.NewDependencyError("inventory", err.Error())
		}
	}

	now := time.Now()
	receipt.Status = domain.ReceiptStatusCompleted
	receipt.CompletedAt = &now
	if err := s.receiptRepo.Update(ctx, receipt); err != nil {
		return nil, err
	}

	if receipt.AvizoID != nil {
		if err := s.finalizeAvizoStatus(ctx, *receipt.AvizoID); err != nil {
			return nil, err
		}
	}

	s.auditSvc.Log(ctx, &domain.AuditEntry{
		TenantID:   tenantID,
		UserID:     userID,
		Action:     domain.AuditReceiptCompleted,
		EntityType: "receipt",
		EntityID:   receipt.ID,
		Metadata:   map[string]string{"receipt_number": receipt.ReceiptNumber},
	})

	return receipt, nil
}

// finalizeAvizoStatus recomputes an avizo's status after a receipt
// against it completes: RECEIVED once every item is covered, PARTIAL
// otherwise.
func (s *receiptService) finalizeAvizoStatus(ctx context.Context, avizoID int32) error {
	avizo, err := s.avizoRepo.GetByID(ctx, avizoID)
	if err != nil {
		return err
	}
	if avizo.FullyReceived() {
		avizo.Status = domain.AvizoStatusReceived
	} else {
		avizo.Status = domain.AvizoStatusPartial
	}
	return s.avizoRepo.Update(ctx, avizo)
}

func (s *receiptService) GetReceipt(ctx context.Context, tenantID, receiptID int32) (*domain.Receipt, error) {
	receipt, err := s.receiptRepo.GetByID(ctx, receiptID)
	if err != nil {
		return nil, err
	}
	if err := tenantGuard(receipt.TenantID, tenantID, "receipt", receiptID); err != nil {
		return nil, err
	}
	return receipt, nil
}

func (s *receiptService) ListReceipts(ctx context.Context, tenantID int32, status string, page, pageSize int32) ([]domain.Receipt, int32, error) {
	return s.receiptRepo.ListByTenant(ctx, tenantID, status, page, pageSize)
}

func (s *receiptService) CreateDiscrepancy(ctx context.Context, tenantID, userID, receiptID int32, input *CreateDiscrepancyInput) (*domain.Discrepancy, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	receipt, err := s.receiptRepo.GetByID(ctx, receiptID)
	if err != nil {
		return nil, err
	}
	if err := tenantGuard(receipt.TenantID, tenantID, "receipt", receiptID); err != nil {
		return nil, err
	}
	if receipt.Status == domain.ReceiptStatusCompleted {
		return nil, domain.NewTransitionError("cannot record discrepancy on completed receipt %s", receipt.ReceiptNumber)
	}

	var item *domain.ReceiptItem
	for i := range receipt.Items {
		if receipt.Items[i].ID == input.ReceiptItemID {
			item = &receipt.Items[i]
			break
		}
	}
	if item == nil {
		return nil, domain.NewNotFoundError("receipt item", input.ReceiptItemID)
	}

	expected := decimal.NewFromFloat(input.ExpectedQuantity)
	actual := decimal.NewFromFloat(input.ActualQuantity)
	discrepancy := &domain.Discrepancy{
		TenantID:         tenantID,
		ReceiptID:        receipt.ID,
		ReceiptItemID:    item.ID,
		Type:             input.Type,
		ExpectedQuantity: expected,
		ActualQuantity:   actual,
		Difference:       actual.Sub(expected),
		Note:             input.Note,
	}
	if err := s.discrepancyRepo.Create(ctx, discrepancy); err != nil {
		return nil, err
	}

	if !receipt.HasDiscrepancy {
		receipt.HasDiscrepancy = true
		receipt.Status = domain.ReceiptStatusDiscrepancy
		if err := s.receiptRepo.Update(ctx, receipt); err != nil {
			return nil, err
		}
	}

	s.auditSvc.Log(ctx, &domain.AuditEntry{
		TenantID:   tenantID,
		UserID:     userID,
		Action:     domain.AuditDiscrepancyCreated,
		EntityType: "discrepancy",
		EntityID:   discrepancy.ID,
		Metadata: map[string]string{
			"receipt_number": receipt.ReceiptNumber,
			"product_code":   item.ProductCode,
			"difference":     discrepancy.Difference.String(),
		},
	})

	return discrepancy, nil
}

func (s *receiptService) ResolveDiscrepancy(ctx context.Context, tenantID, userID, discrepancyID int32, input *ResolveDiscrepancyInput) (*domain.Discrepancy, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	discrepancy, err := s.discrepancyRepo.GetByID(ctx, discrepancyID)
	if err != nil {
		return nil, err
	}
	if err := tenantGuard(discrepancy.TenantID, tenantID, "discrepancy", discrepancyID); err != nil {
		return nil, err
	}
	if discrepancy.ResolvedAt != nil {
		return nil, domain.NewTransitionError("discrepancy %d is already resolved", discrepancyID)
	}

	receipt, err := s.receiptRepo.GetByID(ctx, discrepancy.ReceiptID)
	if err != nil {
		return nil, err
	}

	if input.NotifySupplier && !discrepancy.SupplierNotified {
		if err := s.emailSvc.SendSupplierDiscrepancyNotification(ctx, receipt.SupplierID, receipt.SupplierName, "", discrepancy, receipt.ReceiptNumber); err != nil {
			logger.Warn("supplier discrepancy notification failed",
				"receipt_number", receipt.ReceiptNumber, "discrepancy_id", discrepancyID, "error", err)
		}
	}

	now := time.Now()
	discrepancy.ResolvedAt = &now
	discrepancy.ResolvedBy = &userID
	discrepancy.ResolutionNote = input.ResolutionNote
	// Sticky: once notified, always notified.
	discrepancy.SupplierNotified = discrepancy.SupplierNotified || input.NotifySupplier
	if err := s.discrepancyRepo.Update(ctx, discrepancy); err != nil {
		return nil, err
	}

	// The only path out of DISCREPANCY short of cancellation: once the
	// last open discrepancy resolves, the receipt returns to IN_PROGRESS.
	open, err := s.discrepancyRepo.ListUnresolvedByReceipt(ctx, discrepancy.ReceiptID)
	if err != nil {
		return nil, err
	}
	if len(open) == 0 {
		receipt.Status = domain.ReceiptStatusInProgress
		receipt.HasDiscrepancy = false
		if err := s.receiptRepo.Update(ctx, receipt); err != nil {
			return nil, err
		}
	}

	s.auditSvc.Log(ctx, &domain.AuditEntry{
		TenantID:   tenantID,
		UserID:     userID,
		Action:     domain.AuditDiscrepancyResolved,
		EntityType: "discrepancy",
		EntityID:   discrepancy.ID,
		Metadata: map[string]string{
			"receipt_number":    receipt.ReceiptNumber,
			"supplier_notified": fmt.Sprintf("%t", discrepancy.SupplierNotified),
		},
	})

	return discrepancy, nil
}
