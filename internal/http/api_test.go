package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/shopspring/decimal"

	"sellnow/internal/http/handlers"
	"sellnow/internal/repos"
	"sellnow/internal/services"
)

// Minimal app over the seeded demo catalog.
func newTestApp(t *testing.T) *fiber.App {
	t.Helper()
	db, err := repos.OpenDB(":memory:", "")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	db.SetMaxOpenConns(1)

	shipping := services.FlatRateShipping{Default: decimal.NewFromInt(150)}
	deps := handlers.NewDeps(db, shipping)

	app := fiber.New()
	app.Use(requestid.New())
	api := app.Group("/api/v1")
	api.Get("/products/:id", deps.CatalogHandler.Detail)
	api.Get("/availability", deps.CatalogHandler.Availability)
	api.Get("/quote", deps.QuoteHandler.Quote)
	api.Get("/cart", deps.CartHandler.View)
	api.Post("/cart", deps.CartHandler.Add)
	return app
}

func getJSON(t *testing.T, app *fiber.App, url string, wantStatus int) map[string]any {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest("GET", url, nil))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != wantStatus {
		t.Fatalf("%s: want %d, got %d", url, wantStatus, resp.StatusCode)
	}
	var body map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	return body
}

func TestQuoteEndpoint(t *testing.T) {
	app := newTestApp(t)

	// below the 20-unit tier: retail plus a "buy more" prompt
	body := getJSON(t, app, "/api/v1/quote?productId=notebook-a5&qty=19", http.StatusOK)
	if body["unitPrice"] != "8.50" || body["isWholesale"] != false {
		t.Fatalf("qty 19: %v", body)
	}
	if body["wholesaleEligibleAt"] != float64(20) {
		t.Fatalf("want eligibleAt 20, got %v", body["wholesaleEligibleAt"])
	}

	// at the tier
	body = getJSON(t, app, "/api/v1/quote?productId=notebook-a5&qty=20", http.StatusOK)
	if body["unitPrice"] != "6.00" || body["isWholesale"] != true {
		t.Fatalf("qty 20: %v", body)
	}
	if body["savingsPercentage"] != float64(29) { // 2.50/8.50 = 29.41 -> 29
		t.Fatalf("want 29%%, got %v", body["savingsPercentage"])
	}
}

func TestQuoteRejectsBadInput(t *testing.T) {
	app := newTestApp(t)
	getJSON(t, app, "/api/v1/quote?productId=notebook-a5&qty=0", http.StatusBadRequest)
	getJSON(t, app, "/api/v1/quote?productId=notebook-a5&qty=abc", http.StatusBadRequest)
	getJSON(t, app, "/api/v1/quote?qty=2", http.StatusBadRequest)
	// variant-mode product without a variant id
	getJSON(t, app, "/api/v1/quote?productId=tee-logo&qty=2", http.StatusBadRequest)
	// inactive variants are not quotable
	getJSON(t, app, "/api/v1/quote?productId=tee-logo&variantId=tee-logo-xl&qty=2", http.StatusNotFound)
}

func TestAvailabilityEndpoint(t *testing.T) {
	app := newTestApp(t)

	// tee-logo variants: 25 + 40 active, 12 inactive
	body := getJSON(t, app, "/api/v1/availability?productId=tee-logo", http.StatusOK)
	if body["stockQuantity"] != float64(77) || body["inStock"] != true {
		t.Fatalf("got %v", body)
	}

	getJSON(t, app, "/api/v1/availability", http.StatusBadRequest)
	getJSON(t, app, "/api/v1/availability?productId=nope", http.StatusNotFound)
}
