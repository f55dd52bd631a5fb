package repository

import (
	"context"

	"github.com/jhoicas/Onboarding-api/internal/domain/entity"
)

// DocumentRepository define el puerto de documentos de un cliente en el backend.
type DocumentRepository interface {
	ListByCustomer(ctx context.Context, cnpj string) ([]entity.DocumentRecord, error)
	Upload(ctx context.Context, doc entity.UploadedDocument) error
	Delete(ctx context.Context, cnpj string, typeIDs []int) error
	Download(ctx context.Context, cnpj, description string) (*entity.DownloadedFile, error)
}
