package services

import (
	"fmt"
	"testing"

	"gorm.io/gorm"

	"wealthwise/internal/models"
	"wealthwise/internal/pagination"
	"wealthwise/internal/testutil"
)

func createTestNotification(t *testing.T, db *gorm.DB, userID uint, read bool) *models.Notification {
	t.Helper()
	n := &models.Notification{
		UserID:  userID,
		Type:    models.NotificationTypeBudgetWarning,
		Title:   "Budget Near Limit",
		Message: fmt.Sprintf("notification for user %d", userID),
		IsRead:  read,
	}
	if err := db.Create(n).Error; err != nil {
		t.Fatalf("failed to create notification: %v", err)
	}
	return n
}

func TestGetNotifications(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	svc := NewNotificationService(db)
	user := testutil.CreateTestUser(t, db)
	other := testutil.CreateTestUser(t, db)

	createTestNotification(t, db, user.ID, false)
	createTestNotification(t, db, user.ID, true)
	createTestNotification(t, db, other.ID, false)

	t.Run("all", func(t *testing.T) {
		resp, err := svc.GetNotifications(user.ID, false, pagination.PageRequest{})
		testutil.AssertNoError(t, err)
		if resp.TotalItems != 2 {
			t.Errorf("expected 2 notifications, got %d", resp.TotalItems)
		}
	})

	t.Run("unread_only", func(t *testing.T) {
		resp, err := svc.GetNotifications(user.ID, true, pagination.PageRequest{})
		testutil.AssertNoError(t, err)
		if resp.TotalItems != 1 {
			t.Errorf("expected 1 unread notification, got %d", resp.TotalItems)
		}
	})
}

func TestUnreadCount(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	svc := NewNotificationService(db)
	user := testutil.CreateTestUser(t, db)

	count, err := svc.UnreadCount(user.ID)
	testutil.AssertNoError(t, err)
	if count != 0 {
		t.Errorf("expected 0 unread, got %d", count)
	}

	createTestNotification(t, db, user.ID, false)
	createTestNotification(t, db, user.ID, false)
	createTestNotification(t, db, user.ID, true)

	count, err = svc.UnreadCount(user.ID)
	testutil.AssertNoError(t, err)
	if count != 2 {
		t.Errorf("expected 2 unread, got %d", count)
	}
}

func TestMarkRead(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	svc := NewNotificationService(db)
	user := testutil.CreateTestUser(t, db)

	first := createTestNotification(t, db, user.ID, false)
	createTestNotification(t, db, user.ID, false)
	createTestNotification(t, db, user.ID, false)

	t.Run("no_ids_no_all", func(t *testing.T) {
		updated, err := svc.MarkRead(user.ID, nil, false)
		testutil.AssertNoError(t, err)
		if updated != 0 {
			t.Errorf("expected 0 updates, got %d", updated)
		}
	})

	t.Run("specific_ids", func(t *testing.T) {
		updated, err := svc.MarkRead(user.ID, []uint{first.ID}, false)
		testutil.AssertNoError(t, err)
		if updated != 1 {
			t.Errorf("expected 1 update, got %d", updated)
		}
	})

	t.Run("all_remaining", func(t *testing.T) {
		updated, err := svc.MarkRead(user.ID, nil, true)
		testutil.AssertNoError(t, err)
		if updated != 2 {
			t.Errorf("expected 2 updates, got %d", updated)
		}
		count, _ := svc.UnreadCount(user.ID)
		if count != 0 {
			t.Errorf("expected 0 unread after mark-all, got %d", count)
		}
	})
}

func TestDeleteNotification(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	svc := NewNotificationService(db)
	user := testutil.CreateTestUser(t, db)
	other := testutil.CreateTestUser(t, db)
	n := createTestNotification(t, db, user.ID, false)

	t.Run("wrong_user", func(t *testing.T) {
		err := svc.DeleteNotification(other.ID, n.ID)
		testutil.AssertAppError(t, err, "NOTIFICATION_NOT_FOUND")
	})

	t.Run("own", func(t *testing.T) {
		err := svc.DeleteNotification(user.ID, n.ID)
		testutil.AssertNoError(t, err)
		err = svc.DeleteNotification(user.ID, n.ID)
		testutil.AssertAppError(t, err, "NOTIFICATION_NOT_FOUND")
	})
}
