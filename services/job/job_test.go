package job_test

import (
	"errors"
	"testing"
	"time"

	"takura-freight/errs"
	bidModel "takura-freight/models/bid"
	jobModel "takura-freight/models/job"
	loadModel "takura-freight/models/load"
	userModel "takura-freight/models/user"
	jobService "takura-freight/services/job"

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

	if err := db.AutoMigrate(
		&userModel.User{},
		&jobModel.Counter{},
		&loadModel.Load{},
		&bidModel.Bid{},
		&jobModel.Job{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if err := db.Create(&jobModel.Counter{ID: 1, LastSeq: 0}).Error; err != nil {
		t.Fatalf("seed counter: %v", err)
	}
	return db
}

func seedUser(t *testing.T, db *gorm.DB, id, role string) {
	t.Helper()
	u := userModel.User{UserID: id, Role: role, Name: id, Email: id + "@example.com"}
	if err := db.Create(&u).Error; err != nil {
		t.Fatalf("seed user %s: %v", id, err)
	}
}

func seedLoad(t *testing.T, db *gorm.DB, loadID, clientID string, status loadModel.Status) {
	t.Helper()
	l := loadModel.Load{
		LoadID:          loadID,
		ClientID:        clientID,
		Title:           "Fertilizer to Mutare",
		CargoType:       "Agricultural",
		WeightTons:      8,
		OriginCity:      "Harare",
		DestinationCity: "Mutare",
		DistanceKm:      265,
		BudgetUsd:       400,
		PickupDate:      time.Now().Add(24 * time.Hour),
		DeliveryDate:    time.Now().Add(48 * time.Hour),
		TripType:        "One Way",
		Urgency:         "Standard",
		Status:          status,
	}
	if err := db.Create(&l).Error; err != nil {
		t.Fatalf("seed load %s: %v", loadID, err)
	}
}

func TestFormatJobID(t *testing.T) {
	cases := []struct {
		seq  uint64
		want string
	}{
		{1, "JOB001"},
		{12, "JOB012"},
		{999, "JOB999"},
		{1234, "JOB1234"},
	}
	for _, tc := range cases {
		if got := jobModel.FormatJobID(tc.seq); got != tc.want {
			t.Errorf("FormatJobID(%d) = %s, want %s", tc.seq, got, tc.want)
		}
	}
}

func TestDirectOfferAssignsLoadAndSpawnsJob(t *testing.T) {
	db := newTestDB(t)
	svc := jobService.NewService(db)
	seedUser(t, db, "CLIENT1", "CLIENT")
	seedUser(t, db, "DRIVER2", "DRIVER")
	seedLoad(t, db, "LOAD2", "CLIENT1", loadModel.StatusInBidding)

	j, err := svc.SpawnFromDirectOffer("CLIENT1", "DRIVER2", "LOAD2", 300)
	if err != nil {
		t.Fatalf("direct offer: %v", err)
	}
	if j.JobID != "JOB001" {
		t.Fatalf("job id = %s, want JOB001", j.JobID)
	}
	if j.Status != jobModel.StatusPending || j.ProgressPct != 0 {
		t.Fatalf("job = %s/%d%%, want Pending/0%%", j.Status, j.ProgressPct)
	}
	if j.RateUsd != 300 {
		t.Fatalf("job rate = %v, want 300", j.RateUsd)
	}

	var l loadModel.Load
	if err := db.First(&l, "load_id = ?", "LOAD2").Error; err != nil {
		t.Fatalf("reload load: %v", err)
	}
	if l.Status != loadModel.StatusAssigned {
		t.Fatalf("load status = %s, want Assigned", l.Status)
	}
	if l.AssignedDriverID == nil || *l.AssignedDriverID != "DRIVER2" {
		t.Fatalf("assigned driver = %v, want DRIVER2", l.AssignedDriverID)
	}
}

func TestDirectOfferPreconditions(t *testing.T) {
	db := newTestDB(t)
	svc := jobService.NewService(db)
	seedUser(t, db, "CLIENT1", "CLIENT")
	seedUser(t, db, "CLIENT2", "CLIENT")
	seedUser(t, db, "DRIVER2", "DRIVER")
	seedLoad(t, db, "LOAD2", "CLIENT1", loadModel.StatusInBidding)
	seedLoad(t, db, "LOAD3", "CLIENT1", loadModel.StatusAssigned)

	if _, err := svc.SpawnFromDirectOffer("CLIENT1", "DRIVER2", "LOAD2", 0); !errors.Is(err, errs.ErrValidation) {
		t.Fatalf("zero rate err = %v, want ErrValidation", err)
	}
	if _, err := svc.SpawnFromDirectOffer("CLIENT1", "DRIVER2", "NOPE", 300); !errors.Is(err, errs.ErrNotFound) {
		t.Fatalf("missing load err = %v, want ErrNotFound", err)
	}
	if _, err := svc.SpawnFromDirectOffer("CLIENT2", "DRIVER2", "LOAD2", 300); !errors.Is(err, errs.ErrForbidden) {
		t.Fatalf("foreign load err = %v, want ErrForbidden", err)
	}
	if _, err := svc.SpawnFromDirectOffer("CLIENT1", "DRIVER2", "LOAD3", 300); !errors.Is(err, errs.ErrLoadNotBiddable) {
		t.Fatalf("assigned load err = %v, want ErrLoadNotBiddable", err)
	}
	// A client account cannot be offered a job.
	if _, err := svc.SpawnFromDirectOffer("CLIENT1", "CLIENT2", "LOAD2", 300); !errors.Is(err, errs.ErrValidation) {
		t.Fatalf("non-driver err = %v, want ErrValidation", err)
	}
}

func TestDirectOfferDuplicateJob(t *testing.T) {
	db := newTestDB(t)
	svc := jobService.NewService(db)
	seedUser(t, db, "CLIENT1", "CLIENT")
	seedUser(t, db, "DRIVER2", "DRIVER")
	seedLoad(t, db, "LOAD2", "CLIENT1", loadModel.StatusInBidding)

	if _, err := svc.SpawnFromDirectOffer("CLIENT1", "DRIVER2", "LOAD2", 300); err != nil {
		t.Fatalf("first offer: %v", err)
	}

	// The load is now Assigned, so the duplicate surfaces as a conflict
	// either way; force the duplicate path by resetting the status.
	if err := db.Model(&loadModel.Load{}).Where("load_id = ?", "LOAD2").
		Update("status", loadModel.StatusInBidding).Error; err != nil {
		t.Fatalf("reset load: %v", err)
	}

	if _, err := svc.SpawnFromDirectOffer("CLIENT1", "DRIVER2", "LOAD2", 350); !errors.Is(err, errs.ErrDuplicateJob) {
		t.Fatalf("second offer err = %v, want ErrDuplicateJob", err)
	}
}

func TestJobIDsAreSequentialAcrossSpawns(t *testing.T) {
	db := newTestDB(t)
	svc := jobService.NewService(db)
	seedUser(t, db, "CLIENT1", "CLIENT")
	seedUser(t, db, "DRIVER1", "DRIVER")
	seedUser(t, db, "DRIVER2", "DRIVER")
	seedLoad(t, db, "LOADX", "CLIENT1", loadModel.StatusInBidding)
	seedLoad(t, db, "LOADY", "CLIENT1", loadModel.StatusInBidding)

	j1, err := svc.SpawnFromDirectOffer("CLIENT1", "DRIVER1", "LOADX", 200)
	if err != nil {
		t.Fatalf("first spawn: %v", err)
	}
	j2, err := svc.SpawnFromDirectOffer("CLIENT1", "DRIVER2", "LOADY", 250)
	if err != nil {
		t.Fatalf("second spawn: %v", err)
	}
	if j1.JobID != "JOB001" || j2.JobID != "JOB002" {
		t.Fatalf("job ids = %s, %s, want JOB001, JOB002", j1.JobID, j2.JobID)
	}
}

func TestDriverAccept(t *testing.T) {
	db := newTestDB(t)
	svc := jobService.NewService(db)
	seedUser(t, db, "CLIENT1", "CLIENT")
	seedUser(t, db, "DRIVER2", "DRIVER")
	seedUser(t, db, "DRIVER3", "DRIVER")
	seedLoad(t, db, "LOAD2", "CLIENT1", loadModel.StatusInBidding)

	j, err := svc.SpawnFromDirectOffer("CLIENT1", "DRIVER2", "LOAD2", 300)
	if err != nil {
		t.Fatalf("offer: %v", err)
	}

	// Another driver's job reads as not found.
	if _, err := svc.Accept(j.JobID, "DRIVER3"); !errors.Is(err, errs.ErrNotFound) {
		t.Fatalf("foreign driver accept err = %v, want ErrNotFound", err)
	}

	accepted, err := svc.Accept(j.JobID, "DRIVER2")
	if err != nil {
		t.Fatalf("accept: %v", err)
	}
	if accepted.Status != jobModel.StatusActive {
		t.Fatalf("job status = %s, want Active", accepted.Status)
	}
	if accepted.StartedAt == nil {
		t.Fatal("started_at not set on acceptance")
	}

	// Accepting twice is an illegal transition.
	if _, err := svc.Accept(j.JobID, "DRIVER2"); !errors.Is(err, errs.ErrInvalidTransition) {
		t.Fatalf("double accept err = %v, want ErrInvalidTransition", err)
	}
}
