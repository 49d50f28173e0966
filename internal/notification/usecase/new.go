package usecase

import (
	"signage-hub/internal/notification"
	"signage-hub/internal/notification/repository"
	pkgLog "signage-hub/pkg/log"
)

type implUsecase struct {
	l    pkgLog.Logger
	repo repository.Repository
}

var _ notification.UseCase = &implUsecase{}

func New(l pkgLog.Logger, repo repository.Repository) *implUsecase {
	return &implUsecase{
		l:    l,
		repo: repo,
	}
}
