package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestJSON(t *testing.T) {
	w := httptest.NewRecorder()
	JSON(w, http.StatusCreated, map[string]string{"listName": "My Reading List"})

	if w.Code != http.StatusCreated {
		t.Errorf("status = %d, want %d", w.Code, http.StatusCreated)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("content type = %q, want application/json", ct)
	}

	var body map[string]string
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["listName"] != "My Reading List" {
		t.Errorf("listName = %q", body["listName"])
	}
}

func TestNoContent(t *testing.T) {
	w := httptest.NewRecorder()
	NoContent(w)

	if w.Code != http.StatusNoContent {
		t.Errorf("status = %d, want %d", w.Code, http.StatusNoContent)
	}
	if w.Body.Len() != 0 {
		t.Errorf("body = %q, want empty", w.Body.String())
	}
}

func TestError(t *testing.T) {
	w := httptest.NewRecorder()
	Error(w, http.StatusNotFound, "NOT_FOUND", "Reading list not found", nil)

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", w.Code, http.StatusNotFound)
	}

	var resp ErrorResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if resp.Error.Code != "NOT_FOUND" {
		t.Errorf("code = %q", resp.Error.Code)
	}
	if resp.Error.Message != "Reading list not found" {
		t.Errorf("message = %q", resp.Error.Message)
	}
	if resp.Error.Details != nil {
		t.Errorf("details = %v, want omitted", resp.Error.Details)
	}
}

func TestError_WithDetails(t *testing.T) {
	w := httptest.NewRecorder()
	Error(w, http.StatusBadRequest, "VALIDATION_ERROR", "Book is invalid",
		[]ErrorDetail{{Field: "status", Message: "status is required"}})

	var resp ErrorResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if len(resp.Error.Details) != 1 || resp.Error.Details[0].Field != "status" {
		t.Errorf("details = %+v", resp.Error.Details)
	}
}
