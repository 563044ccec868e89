package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"go.uber.org/mock/gomock"

	"github.com/iho/finplan/internal/adapter/http/dto"
	"github.com/iho/finplan/internal/adapter/http/handler/mocks"
	"github.com/iho/finplan/internal/domain"
	"github.com/iho/finplan/internal/ledger"
)

func TestGoalHandler_Create_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockGoalService(ctrl)

	goal := domain.Goal{
		ID:           "goal-1",
		Name:         "Emergency Fund",
		TargetAmount: decimal.NewFromInt(5000),
		TargetDate:   time.Date(2026, time.December, 31, 0, 0, 0, 0, time.UTC),
	}
	svc.EXPECT().
		AddGoal(gomock.Any(), ledger.GoalInput{
			Name:         "Emergency Fund",
			TargetAmount: decimal.NewFromInt(5000),
			TargetDate:   time.Date(2026, time.December, 31, 0, 0, 0, 0, time.UTC),
		}).
		Return(goal, nil)

	body, _ := json.Marshal(dto.GoalRequest{
		Name:         "Emergency Fund",
		TargetAmount: decimal.NewFromInt(5000),
		TargetDate:   "2026-12-31",
	})

	req := httptest.NewRequest(http.MethodPost, "/goals", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	NewGoalHandler(svc, nil).Create(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp domain.Goal
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.ID != "goal-1" {
		t.Fatalf("expected goal ID goal-1, got %s", resp.ID)
	}
}

func TestGoalHandler_Create_InvalidAmount(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockGoalService(ctrl)

	svc.EXPECT().
		AddGoal(gomock.Any(), gomock.Any()).
		Return(domain.Goal{}, domain.ErrInvalidAmount)

	body, _ := json.Marshal(dto.GoalRequest{Name: "bad", TargetAmount: decimal.Zero})
	req := httptest.NewRequest(http.MethodPost, "/goals", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	NewGoalHandler(svc, nil).Create(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestGoalHandler_Create_MalformedBody(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockGoalService(ctrl)

	req := httptest.NewRequest(http.MethodPost, "/goals", bytes.NewReader([]byte("{not json")))
	rec := httptest.NewRecorder()

	NewGoalHandler(svc, nil).Create(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestGoalHandler_AddMoney(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockGoalService(ctrl)

	svc.EXPECT().
		AddMoneyToGoal(gomock.Any(), "goal-1", decimal.NewFromInt(900)).
		Return(decimal.NewFromInt(600))

	r := chi.NewRouter()
	r.Post("/goals/{id}/add", NewGoalHandler(svc, nil).AddMoney)

	body, _ := json.Marshal(dto.AddMoneyRequest{Amount: decimal.NewFromInt(900)})
	req := httptest.NewRequest(http.MethodPost, "/goals/goal-1/add", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp dto.AppliedResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !resp.Applied.Equal(decimal.NewFromInt(600)) {
		t.Fatalf("expected applied 600, got %s", resp.Applied)
	}
}

func TestGoalHandler_Allocate(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockGoalService(ctrl)

	svc.EXPECT().
		AutoAllocate(gomock.Any(), decimal.NewFromInt(1000)).
		Return(decimal.NewFromInt(500))

	body, _ := json.Marshal(dto.AllocateRequest{Surplus: decimal.NewFromInt(1000)})
	req := httptest.NewRequest(http.MethodPost, "/goals/allocate", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	NewGoalHandler(svc, nil).Allocate(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp dto.AppliedResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !resp.Applied.Equal(decimal.NewFromInt(500)) {
		t.Fatalf("expected applied 500, got %s", resp.Applied)
	}
}

func TestGoalHandler_UpdateAutoAllocation_InvalidThreshold(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockGoalService(ctrl)

	svc.EXPECT().
		UpdateAutoAllocation(gomock.Any(), gomock.Any()).
		Return(domain.ErrInvalidThreshold)

	body, _ := json.Marshal(dto.AutoAllocationRequest{
		Enabled:    true,
		Percentage: decimal.NewFromInt(150),
	})
	req := httptest.NewRequest(http.MethodPut, "/goals/auto-allocation", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	NewGoalHandler(svc, nil).UpdateAutoAllocation(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestGoalHandler_List_EmptyIsNotNull(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockGoalService(ctrl)

	svc.EXPECT().Goals().Return(nil)

	req := httptest.NewRequest(http.MethodGet, "/goals", nil)
	rec := httptest.NewRecorder()

	NewGoalHandler(svc, nil).List(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp dto.ListResponse[domain.Goal]
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Items == nil || resp.Total != 0 {
		t.Fatalf("expected empty items list, got %+v", resp)
	}
}
