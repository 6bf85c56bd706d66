package handlers

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/storecast/storecast/internal/models"
)

func TestHandler_ListStores(t *testing.T) {
	app, _ := newTestApp(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/v1/stores", nil))
	if err != nil {
		t.Fatalf("Failed to perform request: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("Expected status %d, got %d", fiber.StatusOK, resp.StatusCode)
	}

	body, _ := io.ReadAll(resp.Body)
	var listResp models.StoreListResponse
	if err := json.Unmarshal(body, &listResp); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}

	if listResp.Count != 2 {
		t.Errorf("Expected 2 stores, got %d", listResp.Count)
	}
	if listResp.Stores[0].Store != 1 || listResp.Stores[0].Type != "A" {
		t.Errorf("Unexpected first store: %+v", listResp.Stores[0])
	}
}

func TestHandler_ListDepartments(t *testing.T) {
	app, _ := newTestApp(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/v1/stores/1/departments", nil))
	if err != nil {
		t.Fatalf("Failed to perform request: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("Expected status %d, got %d", fiber.StatusOK, resp.StatusCode)
	}

	body, _ := io.ReadAll(resp.Body)
	var deptResp models.DepartmentListResponse
	if err := json.Unmarshal(body, &deptResp); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}

	if deptResp.Store != 1 {
		t.Errorf("Expected store 1, got %d", deptResp.Store)
	}
	if len(deptResp.Departments) != 1 || deptResp.Departments[0] != 1 {
		t.Errorf("Expected departments [1], got %v", deptResp.Departments)
	}
}

func TestHandler_ListDepartments_UnknownStore(t *testing.T) {
	app, _ := newTestApp(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/v1/stores/42/departments", nil))
	if err != nil {
		t.Fatalf("Failed to perform request: %v", err)
	}
	if resp.StatusCode != fiber.StatusNotFound {
		t.Errorf("Expected status %d, got %d", fiber.StatusNotFound, resp.StatusCode)
	}
}

func TestHandler_ListDepartments_BadStoreParam(t *testing.T) {
	app, _ := newTestApp(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/v1/stores/abc/departments", nil))
	if err != nil {
		t.Fatalf("Failed to perform request: %v", err)
	}
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Errorf("Expected status %d, got %d", fiber.StatusBadRequest, resp.StatusCode)
	}
}
