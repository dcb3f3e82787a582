package job

import (
	"errors"
	"fmt"
	"time"

	"takura-freight/errs"
	jobModel "takura-freight/models/job"
	loadModel "takura-freight/models/load"
	userModel "takura-freight/models/user"

	"gorm.io/gorm"
)

// Service spawns jobs and owns their Pending -> Active step. Job ids come
// from an atomic increment of a single counter row, never from reading the
// current maximum, so concurrent spawns cannot collide.
type Service struct {
	DB *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{DB: db}
}

// AllocateJobID reserves the next sequence number inside tx and returns the
// formatted identifier. The increment takes the counter's row lock, which is
// held until tx commits or rolls back, so concurrent spawns serialize on it
// and a rolled-back spawn releases its number.
func AllocateJobID(tx *gorm.DB) (string, error) {
	res := tx.Model(&jobModel.Counter{}).
		Where("id = ?", 1).
		Update("last_seq", gorm.Expr("last_seq + 1"))
	if res.Error != nil {
		return "", res.Error
	}
	if res.RowsAffected == 0 {
		return "", fmt.Errorf("job counter row missing")
	}

	var counter jobModel.Counter
	if err := tx.First(&counter, "id = ?", 1).Error; err != nil {
		return "", err
	}

	return jobModel.FormatJobID(counter.LastSeq), nil
}

// SpawnFromBid creates the Pending job for an accepted bid. It must run
// inside the same transaction that accepts the bid so the two are visible
// together or not at all.
func SpawnFromBid(tx *gorm.DB, loadID, driverID, clientID string, rateUsd float64) (*jobModel.Job, error) {
	jobID, err := AllocateJobID(tx)
	if err != nil {
		return nil, err
	}

	j := jobModel.Job{
		JobID:       jobID,
		LoadID:      loadID,
		DriverID:    driverID,
		ClientID:    clientID,
		RateUsd:     rateUsd,
		Status:      jobModel.StatusPending,
		ProgressPct: 0,
	}
	if err := tx.Create(&j).Error; err != nil {
		return nil, err
	}
	return &j, nil
}

// SpawnFromDirectOffer creates a job for a driver the client picked without a
// bidding round. The load must belong to the caller and still be in bidding;
// the guarded update assigning the driver is what decides a race between two
// offers (or an offer and a bid acceptance) for the same load.
func (s *Service) SpawnFromDirectOffer(clientID, driverID, loadID string, rateUsd float64) (*jobModel.Job, error) {
	if rateUsd <= 0 {
		return nil, fmt.Errorf("%w: rate_usd must be greater than zero", errs.ErrValidation)
	}

	var spawned *jobModel.Job
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var l loadModel.Load
		if err := tx.First(&l, "load_id = ?", loadID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: load %s", errs.ErrNotFound, loadID)
			}
			return err
		}
		if l.ClientID != clientID {
			return fmt.Errorf("%w: load does not belong to caller", errs.ErrForbidden)
		}
		if !l.Status.IsBiddable() {
			return fmt.Errorf("%w: load %s", errs.ErrLoadNotBiddable, loadID)
		}

		var driver userModel.User
		if err := tx.First(&driver, "user_id = ?", driverID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: driver %s", errs.ErrNotFound, driverID)
			}
			return err
		}
		if !driver.IsDriver() {
			return fmt.Errorf("%w: user %s is not a driver", errs.ErrValidation, driverID)
		}

		var existing jobModel.Job
		err := tx.Where("load_id = ? AND driver_id = ?", loadID, driverID).First(&existing).Error
		if err == nil {
			return fmt.Errorf("%w: job %s", errs.ErrDuplicateJob, existing.JobID)
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		// Claim the load. Zero rows means another offer or acceptance
		// committed first.
		res := tx.Model(&loadModel.Load{}).
			Where("load_id = ? AND status = ?", loadID, loadModel.StatusInBidding).
			Updates(map[string]interface{}{
				"status":             loadModel.StatusAssigned,
				"assigned_driver_id": driverID,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("%w: load %s", errs.ErrLoadNotBiddable, loadID)
		}

		j, err := SpawnFromBid(tx, loadID, driverID, clientID, rateUsd)
		if err != nil {
			return err
		}
		spawned = j
		return nil
	})
	if err != nil {
		return nil, err
	}
	return spawned, nil
}

// Accept is the driver confirming a pending offer, moving the job to Active.
// A job belonging to another driver is reported as not found rather than
// forbidden, matching what the driver can see.
func (s *Service) Accept(jobID, driverID string) (*jobModel.Job, error) {
	var j jobModel.Job
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&j, "job_id = ?", jobID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: job %s", errs.ErrNotFound, jobID)
			}
			return err
		}
		if j.DriverID != driverID {
			return fmt.Errorf("%w: job %s", errs.ErrNotFound, jobID)
		}
		if !j.Status.CanTransitionTo(jobModel.StatusActive) {
			return fmt.Errorf("%w: %s -> %s", errs.ErrInvalidTransition, j.Status, jobModel.StatusActive)
		}

		startedAt := time.Now()
		res := tx.Model(&jobModel.Job{}).
			Where("job_id = ? AND status = ?", jobID, jobModel.StatusPending).
			Updates(map[string]interface{}{
				"status":     jobModel.StatusActive,
				"started_at": startedAt,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("%w: %s -> %s", errs.ErrInvalidTransition, j.Status, jobModel.StatusActive)
		}
		j.Status = jobModel.StatusActive
		j.StartedAt = &startedAt
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &j, nil
}

// ByDriver lists a driver's jobs, newest first.
func (s *Service) ByDriver(driverID string) ([]jobModel.Job, error) {
	var jobs []jobModel.Job
	err := s.DB.
		Preload("Load").
		Where("driver_id = ?", driverID).
		Order("created_at DESC").
		Find(&jobs).Error
	return jobs, err
}
