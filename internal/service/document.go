package service

import (
	"context"
	"fmt"

	apperrors "github.com/helmdesk/ops-server-go/internal/errors"
	"github.com/helmdesk/ops-server-go/internal/model"
	"github.com/helmdesk/ops-server-go/internal/repository"
	"github.com/helmdesk/ops-server-go/internal/tenancy"
)

type DocumentService struct {
	runner   tenancy.Runner
	repo     repository.DocumentRepository
	userRepo repository.PortalUserRepository
}

func NewDocumentService(
	runner tenancy.Runner,
	repo repository.DocumentRepository,
	userRepo repository.PortalUserRepository,
) *DocumentService {
	return &DocumentService{runner: runner, repo: repo, userRepo: userRepo}
}

func (s *DocumentService) List(ctx context.Context, sc tenancy.SessionContext) ([]model.Document, error) {
	var docs []model.Document
	err := s.runner.Run(ctx, sc, func(q tenancy.Querier) error {
		var err error
		docs, err = s.repo.List(ctx, q)
		return err
	})
	return docs, wrapScopeError(err)
}

func (s *DocumentService) Get(ctx context.Context, sc tenancy.SessionContext, id string) (*model.Document, error) {
	var doc *model.Document
	err := s.runner.Run(ctx, sc, func(q tenancy.Querier) error {
		var err error
		doc, err = s.repo.FindByID(ctx, q, id)
		return err
	})
	return doc, wrapScopeError(err)
}

// Upload records a document owned by the portal user in scope.
func (s *DocumentService) Upload(ctx context.Context, sc tenancy.SessionContext, fileName, contentType string, byteSize int64, workOrderID *string) (*model.Document, error) {
	if fileName == "" {
		return nil, apperrors.MissingRequired("fileName")
	}
	if sc.Audience != tenancy.AudienceExternalPortal {
		return nil, apperrors.Forbidden("Only portal users upload documents")
	}

	var doc *model.Document
	err := s.runner.Run(ctx, sc, func(q tenancy.Querier) error {
		self, err := s.userRepo.FindByID(ctx, q, string(sc.UserID))
		if err != nil {
			return err
		}
		if self == nil {
			return fmt.Errorf("portal user %s not visible in scope", sc.UserID)
		}

		doc, err = s.repo.Create(ctx, q, model.CreateDocumentParams{
			TenantID:    self.TenantID,
			OwnerUserID: self.ID,
			WorkOrderID: workOrderID,
			FileName:    fileName,
			ContentType: contentType,
			ByteSize:    byteSize,
		})
		return err
	})
	if err != nil {
		return nil, wrapScopeError(err)
	}
	return doc, nil
}
