package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	apperrors "github.com/helmdesk/ops-server-go/internal/errors"
	"github.com/helmdesk/ops-server-go/internal/model"
	"github.com/helmdesk/ops-server-go/internal/repository"
	"github.com/helmdesk/ops-server-go/internal/tenancy"
)

// WorkOrderService runs work-order operations inside a scoped unit of work.
// It never filters by tenant itself; visibility comes entirely from the row
// policies evaluated under the scope it passes to the runner.
type WorkOrderService struct {
	runner   tenancy.Runner
	repo     repository.WorkOrderRepository
	userRepo repository.PortalUserRepository
}

func NewWorkOrderService(
	runner tenancy.Runner,
	repo repository.WorkOrderRepository,
	userRepo repository.PortalUserRepository,
) *WorkOrderService {
	return &WorkOrderService{runner: runner, repo: repo, userRepo: userRepo}
}

func (s *WorkOrderService) List(ctx context.Context, sc tenancy.SessionContext) ([]model.WorkOrder, error) {
	var orders []model.WorkOrder
	err := s.runner.Run(ctx, sc, func(q tenancy.Querier) error {
		var err error
		orders, err = s.repo.List(ctx, q)
		return err
	})
	return orders, wrapScopeError(err)
}

// Get returns nil for rows that are out of scope as well as rows that do not
// exist; the two cases are indistinguishable by design.
func (s *WorkOrderService) Get(ctx context.Context, sc tenancy.SessionContext, id string) (*model.WorkOrder, error) {
	var wo *model.WorkOrder
	err := s.runner.Run(ctx, sc, func(q tenancy.Querier) error {
		var err error
		wo, err = s.repo.FindByID(ctx, q, id)
		return err
	})
	return wo, wrapScopeError(err)
}

// Create inserts a work order for the scope's tenant. Internal callers
// supply the tenant from their scope; portal callers own the new row and
// inherit their tenant from their own portal_users record.
func (s *WorkOrderService) Create(ctx context.Context, sc tenancy.SessionContext, title string) (*model.WorkOrder, error) {
	if title == "" {
		return nil, apperrors.MissingRequired("title")
	}

	var wo *model.WorkOrder
	err := s.runner.Run(ctx, sc, func(q tenancy.Querier) error {
		params := model.CreateWorkOrderParams{Title: title}

		switch sc.Audience {
		case tenancy.AudienceExternalPortal:
			self, err := s.userRepo.FindByID(ctx, q, string(sc.UserID))
			if err != nil {
				return err
			}
			if self == nil {
				return fmt.Errorf("portal user %s not visible in scope", sc.UserID)
			}
			owner := self.ID
			params.OwnerUserID = &owner
			params.TenantID = self.TenantID
		default:
			params.TenantID = string(sc.TenantID)
		}

		var err error
		wo, err = s.repo.Create(ctx, q, params)
		return err
	})
	if err != nil {
		return nil, wrapScopeError(err)
	}

	log.Info().
		Str("workOrderId", wo.ID).
		Str("audience", string(sc.Audience)).
		Msg("work order created")

	return wo, nil
}

func (s *WorkOrderService) UpdateStatus(ctx context.Context, sc tenancy.SessionContext, id string, status model.WorkOrderStatus) (bool, error) {
	var updated bool
	err := s.runner.Run(ctx, sc, func(q tenancy.Querier) error {
		var err error
		updated, err = s.repo.UpdateStatus(ctx, q, id, status)
		return err
	})
	return updated, wrapScopeError(err)
}
