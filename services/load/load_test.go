package load_test

import (
	"errors"
	"testing"
	"time"

	"takura-freight/errs"
	loadModel "takura-freight/models/load"
	userModel "takura-freight/models/user"
	loadService "takura-freight/services/load"
	loadTypes "takura-freight/types/load"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("unwrap db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&userModel.User{}, &loadModel.Load{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	u := userModel.User{UserID: "CLIENT1", Role: "CLIENT", Name: "Takura Haulage", Email: "client1@example.com"}
	if err := db.Create(&u).Error; err != nil {
		t.Fatalf("seed client: %v", err)
	}
	return db
}

func validCreateRequest() loadTypes.LoadCreateRequest {
	return loadTypes.LoadCreateRequest{
		Title:           "Copper to Beira",
		CargoType:       "Minerals",
		WeightTons:      20,
		OriginCity:      "Harare",
		DestinationCity: "Beira",
		DistanceKm:      560,
		BudgetUsd:       1200,
		PickupDate:      time.Now().Add(24 * time.Hour),
		DeliveryDate:    time.Now().Add(96 * time.Hour),
	}
}

func TestCreateForcesInitialState(t *testing.T) {
	db := newTestDB(t)
	svc := loadService.NewService(db)

	l, err := svc.Create("CLIENT1", validCreateRequest())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if l.Status != loadModel.StatusInBidding {
		t.Fatalf("status = %s, want In Bidding", l.Status)
	}
	if l.BidsCount != 0 {
		t.Fatalf("bids_count = %d, want 0", l.BidsCount)
	}
	if l.AssignedDriverID != nil {
		t.Fatalf("assigned driver = %v, want nil", l.AssignedDriverID)
	}
	if l.LoadID == "" {
		t.Fatal("load id not generated")
	}
	if l.TripType != "One Way" || l.Urgency != "Standard" {
		t.Fatalf("defaults = %s/%s, want One Way/Standard", l.TripType, l.Urgency)
	}
}

func TestCreateValidation(t *testing.T) {
	db := newTestDB(t)
	svc := loadService.NewService(db)

	cases := []struct {
		name   string
		mutate func(*loadTypes.LoadCreateRequest)
	}{
		{"missing title", func(r *loadTypes.LoadCreateRequest) { r.Title = "" }},
		{"zero weight", func(r *loadTypes.LoadCreateRequest) { r.WeightTons = 0 }},
		{"same cities", func(r *loadTypes.LoadCreateRequest) { r.DestinationCity = r.OriginCity }},
		{"zero budget", func(r *loadTypes.LoadCreateRequest) { r.BudgetUsd = 0 }},
		{"pickup after delivery", func(r *loadTypes.LoadCreateRequest) {
			r.PickupDate = r.DeliveryDate.Add(24 * time.Hour)
		}},
	}
	for _, tc := range cases {
		req := validCreateRequest()
		tc.mutate(&req)
		if _, err := svc.Create("CLIENT1", req); !errors.Is(err, errs.ErrValidation) {
			t.Errorf("%s: err = %v, want ErrValidation", tc.name, err)
		}
	}
}

func TestTransitionStatus(t *testing.T) {
	db := newTestDB(t)
	svc := loadService.NewService(db)

	l, err := svc.Create("CLIENT1", validCreateRequest())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	// Skipping a step is rejected.
	if _, err := svc.TransitionStatus(l.LoadID, loadModel.StatusInTransit); !errors.Is(err, errs.ErrInvalidTransition) {
		t.Fatalf("skip step err = %v, want ErrInvalidTransition", err)
	}

	for _, next := range []loadModel.Status{
		loadModel.StatusAssigned,
		loadModel.StatusInTransit,
		loadModel.StatusCompleted,
	} {
		moved, err := svc.TransitionStatus(l.LoadID, next)
		if err != nil {
			t.Fatalf("to %s: %v", next, err)
		}
		if moved.Status != next {
			t.Fatalf("status = %s, want %s", moved.Status, next)
		}
	}

	// Completed is terminal.
	if _, err := svc.TransitionStatus(l.LoadID, loadModel.StatusInBidding); !errors.Is(err, errs.ErrInvalidTransition) {
		t.Fatalf("reopen err = %v, want ErrInvalidTransition", err)
	}

	if _, err := svc.TransitionStatus("NOPE", loadModel.StatusAssigned); !errors.Is(err, errs.ErrNotFound) {
		t.Fatalf("missing load err = %v, want ErrNotFound", err)
	}
	if _, err := svc.TransitionStatus(l.LoadID, loadModel.Status("Lost")); !errors.Is(err, errs.ErrValidation) {
		t.Fatalf("unknown status err = %v, want ErrValidation", err)
	}
}

func TestAvailableAndByClient(t *testing.T) {
	db := newTestDB(t)
	svc := loadService.NewService(db)

	l1, err := svc.Create("CLIENT1", validCreateRequest())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	req := validCreateRequest()
	req.Title = "Timber to Harare"
	l2, err := svc.Create("CLIENT1", req)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.TransitionStatus(l2.LoadID, loadModel.StatusAssigned); err != nil {
		t.Fatalf("assign: %v", err)
	}

	available, err := svc.Available()
	if err != nil {
		t.Fatalf("available: %v", err)
	}
	if len(available) != 1 || available[0].LoadID != l1.LoadID {
		t.Fatalf("available = %d loads, want only %s", len(available), l1.LoadID)
	}

	mine, err := svc.ByClient("CLIENT1")
	if err != nil {
		t.Fatalf("by client: %v", err)
	}
	if len(mine) != 2 {
		t.Fatalf("client loads = %d, want 2", len(mine))
	}
}
