package services

import (
	"gorm.io/gorm"

	apperrors "wealthwise/internal/errors"
	"wealthwise/internal/models"
	"wealthwise/internal/pagination"
)

// notificationService handles reads and read-state toggles. Notifications
// are only ever created by the budget alert trigger.
type notificationService struct {
	db *gorm.DB
}

// NewNotificationService creates a new NotificationServicer.
func NewNotificationService(db *gorm.DB) NotificationServicer {
	return &notificationService{db: db}
}

// GetNotifications lists the user's notifications, newest first.
func (s *notificationService) GetNotifications(userID uint, unreadOnly bool, page pagination.PageRequest) (*pagination.PageResponse[models.Notification], error) {
	page.Defaults()

	query := s.db.Model(&models.Notification{}).Where("user_id = ?", userID)
	if unreadOnly {
		query = query.Where("is_read = ?", false)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var notifications []models.Notification
	err := query.Order("created_at DESC").
		Scopes(pagination.Paginate(page)).
		Find(&notifications).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	resp := pagination.NewPageResponse(notifications, page.Page, page.PageSize, total)
	return &resp, nil
}

// UnreadCount returns how many of the user's notifications are unread.
func (s *notificationService) UnreadCount(userID uint) (int64, error) {
	var count int64
	err := s.db.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&count).Error
	if err != nil {
		return 0, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return count, nil
}

// MarkRead marks the given notifications (or all of the user's unread ones)
// as read and returns how many rows changed.
func (s *notificationService) MarkRead(userID uint, notificationIDs []uint, all bool) (int64, error) {
	query := s.db.Model(&models.Notification{}).Where("user_id = ? AND is_read = ?", userID, false)
	if !all {
		if len(notificationIDs) == 0 {
			return 0, nil
		}
		query = query.Where("id IN ?", notificationIDs)
	}

	result := query.Update("is_read", true)
	if result.Error != nil {
		return 0, apperrors.Wrap(apperrors.ErrInternalServer, result.Error)
	}
	return result.RowsAffected, nil
}

// DeleteNotification removes one of the user's notifications.
func (s *notificationService) DeleteNotification(userID, notificationID uint) error {
	result := s.db.Where("id = ? AND user_id = ?", notificationID, userID).Delete(&models.Notification{})
	if result.Error != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrNotificationNotFound
	}
	return nil
}
