package integration

import (
	"fmt"
	"net/http"
	"testing"
)

func TestBudgetFlow_OverviewForMonth(t *testing.T) {
	app := setupApp(t)
	token, _, _ := app.registerUser(t, "budget@test.com", "password123")

	groceries := app.createCategory(t, token, "Groceries", "expense")

	// One category budget and one overall budget for March 2024.
	body := fmt.Sprintf(`{"category_id":%d,"amount":500,"month":3,"year":2024}`, int(groceries))
	rec := app.request("POST", "/api/v1/budgets", body, token)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create category budget failed: %d %s", rec.Code, rec.Body.String())
	}

	rec = app.request("POST", "/api/v1/budgets",
		`{"amount":1000,"month":3,"year":2024,"is_overall":true}`, token)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create overall budget failed: %d %s", rec.Code, rec.Body.String())
	}

	// Spend 600 against the 500 category budget inside the month.
	app.createTransaction(t, token, "expense", 200, groceries, "2024-03-05")
	app.createTransaction(t, token, "expense", 400, groceries, "2024-03-20")
	// Outside the month, must not count.
	app.createTransaction(t, token, "expense", 999, groceries, "2024-04-01")

	rec = app.request("GET", "/api/v1/budgets?month=3&year=2024", "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("list budgets failed: %d %s", rec.Code, rec.Body.String())
	}
	budgets := parseJSON(t, rec)["budgets"].([]interface{})
	if len(budgets) != 2 {
		t.Fatalf("expected 2 budgets for March, got %d", len(budgets))
	}

	rec = app.request("GET", "/api/v1/budgets/overview?month=3&year=2024", "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("overview failed: %d %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	if result["success"] != true {
		t.Fatal("expected success envelope")
	}
	overview := result["overview"].(map[string]interface{})
	if overview["has_budget"] != true {
		t.Error("expected has_budget true")
	}
	if overview["month"] != float64(3) || overview["year"] != float64(2024) {
		t.Errorf("expected March 2024, got %v/%v", overview["month"], overview["year"])
	}
	if overview["total_expenses"] != float64(600) {
		t.Errorf("expected total expenses 600, got %v", overview["total_expenses"])
	}

	overall := overview["overall_budget"].(map[string]interface{})
	if overall["amount"] != float64(1000) || overall["spent"] != float64(600) {
		t.Errorf("overall budget = %v/%v, want 600/1000 spent", overall["spent"], overall["amount"])
	}
	if overall["status"] != "normal" {
		t.Errorf("expected overall status normal, got %v", overall["status"])
	}

	categoryBudgets := overview["category_budgets"].([]interface{})
	if len(categoryBudgets) != 1 {
		t.Fatalf("expected 1 category budget, got %d", len(categoryBudgets))
	}
	grocery := categoryBudgets[0].(map[string]interface{})
	if grocery["spent"] != float64(600) || grocery["status"] != "exceeded" {
		t.Errorf("grocery budget = spent %v status %v, want 600 exceeded", grocery["spent"], grocery["status"])
	}
	if overview["exceeded_count"] != float64(1) {
		t.Errorf("expected exceeded_count 1, got %v", overview["exceeded_count"])
	}
}

func TestBudgetFlow_UpdateAndDelete(t *testing.T) {
	app := setupApp(t)
	token, _, _ := app.registerUser(t, "budgetcrud@test.com", "password123")

	rec := app.request("POST", "/api/v1/budgets",
		`{"amount":800,"month":6,"year":2024,"is_overall":true,"alert_threshold":75}`, token)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create budget failed: %d %s", rec.Code, rec.Body.String())
	}
	budget := parseJSON(t, rec)["budget"].(map[string]interface{})
	budgetID := int(budget["id"].(float64))

	rec = app.request("PUT", fmt.Sprintf("/api/v1/budgets/%d", budgetID),
		`{"amount":1200,"alert_threshold":90}`, token)
	if rec.Code != http.StatusOK {
		t.Fatalf("update budget failed: %d %s", rec.Code, rec.Body.String())
	}
	updated := parseJSON(t, rec)["budget"].(map[string]interface{})
	if updated["alert_threshold"] != float64(90) {
		t.Errorf("expected alert threshold 90, got %v", updated["alert_threshold"])
	}

	rec = app.request("DELETE", fmt.Sprintf("/api/v1/budgets/%d", budgetID), "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("delete budget failed: %d %s", rec.Code, rec.Body.String())
	}

	rec = app.request("GET", fmt.Sprintf("/api/v1/budgets/%d", budgetID), "", token)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 after delete, got %d", rec.Code)
	}
}

func TestBudgetFlow_BudgetsAreOwnerScoped(t *testing.T) {
	app := setupApp(t)
	alice, _, _ := app.registerUser(t, "alice@test.com", "password123")
	bob, _, _ := app.registerUser(t, "bob@test.com", "password123")

	rec := app.request("POST", "/api/v1/budgets",
		`{"amount":300,"month":5,"year":2024,"is_overall":true}`, alice)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create budget failed: %d %s", rec.Code, rec.Body.String())
	}
	budget := parseJSON(t, rec)["budget"].(map[string]interface{})
	budgetID := int(budget["id"].(float64))

	rec = app.request("GET", fmt.Sprintf("/api/v1/budgets/%d", budgetID), "", bob)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for another user's budget, got %d", rec.Code)
	}
}
