package usecase

import (
	"context"
	"errors"

	"signage-hub/internal/model"
	"signage-hub/internal/notification"
	"signage-hub/internal/notification/repository"
)

const (
	defaultListLimit = 20
	maxListLimit     = 100
)

func (uc *implUsecase) Create(ctx context.Context, ip notification.CreateInput) (model.Notification, error) {
	if ip.RecipientID == "" {
		return model.Notification{}, notification.ErrInvalidRecipient
	}
	if !ip.Type.IsValid() {
		return model.Notification{}, notification.ErrInvalidType
	}

	n := model.Notification{
		RecipientID: ip.RecipientID,
		Type:        ip.Type,
		Title:       ip.Title,
		Message:     ip.Message,
		Data:        ip.Data,
		Status:      model.NotificationStatusActive,
	}
	if ip.SenderID != "" {
		n.SenderID = &ip.SenderID
	}

	created, err := uc.repo.Create(ctx, repository.CreateOptions{Notification: n})
	if err != nil {
		uc.l.Errorf(ctx, "internal.notification.usecase.Create.repo.Create: %v", err)
		return model.Notification{}, err
	}

	return created, nil
}

func (uc *implUsecase) List(ctx context.Context, sc model.Scope, ip notification.ListInput) (notification.ListOutput, error) {
	limit := ip.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}

	for _, t := range ip.Types {
		if !t.IsValid() {
			return notification.ListOutput{}, notification.ErrInvalidType
		}
	}

	items, err := uc.repo.List(ctx, repository.ListOptions{
		RecipientID: sc.UserID,
		Limit:       limit,
		Types:       ip.Types,
	})
	if err != nil {
		uc.l.Errorf(ctx, "internal.notification.usecase.List.repo.List: %v", err)
		return notification.ListOutput{}, err
	}

	unread, err := uc.repo.CountUnread(ctx, sc.UserID)
	if err != nil {
		uc.l.Errorf(ctx, "internal.notification.usecase.List.repo.CountUnread: %v", err)
		return notification.ListOutput{}, err
	}

	return notification.ListOutput{
		Notifications: items,
		UnreadCount:   unread,
	}, nil
}

func (uc *implUsecase) UnreadCount(ctx context.Context, sc model.Scope) (int64, error) {
	unread, err := uc.repo.CountUnread(ctx, sc.UserID)
	if err != nil {
		uc.l.Errorf(ctx, "internal.notification.usecase.UnreadCount.repo.CountUnread: %v", err)
		return 0, err
	}
	return unread, nil
}

func (uc *implUsecase) MarkRead(ctx context.Context, sc model.Scope, id string) error {
	err := uc.repo.MarkRead(ctx, repository.MarkReadOptions{
		ID:          id,
		RecipientID: sc.UserID,
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notification.ErrNotFound
		}
		uc.l.Errorf(ctx, "internal.notification.usecase.MarkRead.repo.MarkRead: %v", err)
		return err
	}
	return nil
}

func (uc *implUsecase) MarkAllRead(ctx context.Context, sc model.Scope) error {
	if err := uc.repo.MarkAllRead(ctx, sc.UserID); err != nil {
		uc.l.Errorf(ctx, "internal.notification.usecase.MarkAllRead.repo.MarkAllRead: %v", err)
		return err
	}
	return nil
}

func (uc *implUsecase) MarkByTypeAndSender(ctx context.Context, sc model.Scope, ip notification.ClearInput) error {
	if !ip.Type.IsValid() {
		return notification.ErrInvalidType
	}

	err := uc.repo.MarkReadByTypeAndSender(ctx, repository.ClearOptions{
		RecipientID: sc.UserID,
		Type:        ip.Type,
		SenderID:    ip.SenderID,
	})
	if err != nil {
		uc.l.Errorf(ctx, "internal.notification.usecase.MarkByTypeAndSender.repo: %v", err)
		return err
	}
	return nil
}
