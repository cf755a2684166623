package interfaces

import (
	"context"

	"github.com/prestahub/psnew/pkg/domain/model"
)

// ScaffoldUseCase drives the full create-new-shop flow
type ScaffoldUseCase interface {
	// Scaffold resolves a download URL, fetches and extracts the archive,
	// moves the shop into place, applies the optional fixture overlay and
	// removes temp artifacts
	Scaffold(ctx context.Context, req *model.ScaffoldRequest) (*model.ScaffoldResult, error)
}
