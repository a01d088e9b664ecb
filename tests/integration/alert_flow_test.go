package integration

import (
	"fmt"
	"net/http"
	"testing"
	"time"
)

// currentMonthBudgetBody builds an overall budget payload for the current
// month, since alerts only evaluate current-month budgets.
func currentMonthBudgetBody(amount float64) string {
	now := time.Now()
	return fmt.Sprintf(`{"amount":%v,"month":%d,"year":%d,"is_overall":true}`,
		amount, int(now.Month()), now.Year())
}

func TestAlertFlow_ExceededBudgetNotifies(t *testing.T) {
	app := setupApp(t)
	token, _, _ := app.registerUser(t, "alerts@test.com", "password123")
	food := app.createCategory(t, token, "Food", "expense")

	rec := app.request("POST", "/api/v1/budgets", currentMonthBudgetBody(100), token)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create budget failed: %d %s", rec.Code, rec.Body.String())
	}

	// Blowing through the budget triggers the alert on the expense write.
	app.createTransaction(t, token, "expense", 150, food, "")

	rec = app.request("GET", "/api/v1/notifications", "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("list notifications failed: %d %s", rec.Code, rec.Body.String())
	}
	items := parseJSON(t, rec)["items"].([]interface{})
	if len(items) != 1 {
		t.Fatalf("expected 1 notification, got %d", len(items))
	}
	notification := items[0].(map[string]interface{})
	if notification["type"] != "budget_exceeded" {
		t.Errorf("expected budget_exceeded, got %v", notification["type"])
	}
	if notification["is_read"] != false {
		t.Error("expected notification to start unread")
	}
	if notification["email_sent"] != true {
		t.Error("expected alert email to be sent")
	}
	if app.Notifier.sentCount() != 1 {
		t.Errorf("expected 1 email, got %d", app.Notifier.sentCount())
	}

	// A second expense the same day must not duplicate the alert.
	app.createTransaction(t, token, "expense", 25, food, "")
	rec = app.request("GET", "/api/v1/notifications", "", token)
	items = parseJSON(t, rec)["items"].([]interface{})
	if len(items) != 1 {
		t.Fatalf("expected alert dedup to hold, got %d notifications", len(items))
	}
}

func TestAlertFlow_WarningThreshold(t *testing.T) {
	app := setupApp(t)
	token, _, _ := app.registerUser(t, "warning@test.com", "password123")
	food := app.createCategory(t, token, "Food", "expense")

	rec := app.request("POST", "/api/v1/budgets", currentMonthBudgetBody(100), token)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create budget failed: %d %s", rec.Code, rec.Body.String())
	}

	// 85 of 100 crosses the default 80% threshold without exceeding.
	app.createTransaction(t, token, "expense", 85, food, "")

	rec = app.request("GET", "/api/v1/notifications", "", token)
	items := parseJSON(t, rec)["items"].([]interface{})
	if len(items) != 1 {
		t.Fatalf("expected 1 notification, got %d", len(items))
	}
	notification := items[0].(map[string]interface{})
	if notification["type"] != "budget_warning" {
		t.Errorf("expected budget_warning, got %v", notification["type"])
	}
}

func TestAlertFlow_ReadStateAndDelete(t *testing.T) {
	app := setupApp(t)
	token, _, _ := app.registerUser(t, "readstate@test.com", "password123")
	food := app.createCategory(t, token, "Food", "expense")

	rec := app.request("POST", "/api/v1/budgets", currentMonthBudgetBody(50), token)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create budget failed: %d %s", rec.Code, rec.Body.String())
	}
	app.createTransaction(t, token, "expense", 75, food, "")

	rec = app.request("GET", "/api/v1/notifications/unread-count", "", token)
	if count := parseJSON(t, rec)["unread_count"]; count != float64(1) {
		t.Fatalf("expected unread count 1, got %v", count)
	}

	rec = app.request("POST", "/api/v1/notifications/mark-read", `{"all":true}`, token)
	if rec.Code != http.StatusOK {
		t.Fatalf("mark read failed: %d %s", rec.Code, rec.Body.String())
	}
	if updated := parseJSON(t, rec)["updated"]; updated != float64(1) {
		t.Errorf("expected 1 updated, got %v", updated)
	}

	rec = app.request("GET", "/api/v1/notifications/unread-count", "", token)
	if count := parseJSON(t, rec)["unread_count"]; count != float64(0) {
		t.Errorf("expected unread count 0 after mark read, got %v", count)
	}

	rec = app.request("GET", "/api/v1/notifications", "", token)
	items := parseJSON(t, rec)["items"].([]interface{})
	notification := items[0].(map[string]interface{})
	notificationID := int(notification["id"].(float64))

	rec = app.request("DELETE", fmt.Sprintf("/api/v1/notifications/%d", notificationID), "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("delete notification failed: %d %s", rec.Code, rec.Body.String())
	}

	rec = app.request("GET", "/api/v1/notifications", "", token)
	items = parseJSON(t, rec)["items"].([]interface{})
	if len(items) != 0 {
		t.Errorf("expected no notifications after delete, got %d", len(items))
	}
}

func TestAlertFlow_DisabledPreferenceSkipsAlerts(t *testing.T) {
	app := setupApp(t)
	token, _, _ := app.registerUser(t, "noalerts@test.com", "password123")
	food := app.createCategory(t, token, "Food", "expense")

	rec := app.request("PUT", "/api/v1/auth/profile", `{"budget_alerts":false}`, token)
	if rec.Code != http.StatusOK {
		t.Fatalf("update profile failed: %d %s", rec.Code, rec.Body.String())
	}

	rec = app.request("POST", "/api/v1/budgets", currentMonthBudgetBody(50), token)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create budget failed: %d %s", rec.Code, rec.Body.String())
	}
	app.createTransaction(t, token, "expense", 200, food, "")

	rec = app.request("GET", "/api/v1/notifications", "", token)
	items := parseJSON(t, rec)["items"].([]interface{})
	if len(items) != 0 {
		t.Errorf("expected no alerts with budget_alerts off, got %d", len(items))
	}
	if app.Notifier.sentCount() != 0 {
		t.Errorf("expected no emails, got %d", app.Notifier.sentCount())
	}
}
