package bidding

import (
	"errors"
	"fmt"

	"takura-freight/errs"
	bidModel "takura-freight/models/bid"
	jobModel "takura-freight/models/job"
	loadModel "takura-freight/models/load"
	jobService "takura-freight/services/job"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Service is the bid ledger: it appends bids and runs the accept operation,
// the one multi-table write in the system. Every mutating statement re-checks
// the load status in its WHERE clause, so of two racing accepts exactly one
// commits and the loser sees zero rows affected.
type Service struct {
	DB *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{DB: db}
}

// Submit appends a Pending bid for a driver on an open load and bumps the
// load's denormalized bid count in the same transaction.
func (s *Service) Submit(loadID, driverID string, amountUsd float64, message string) (*bidModel.Bid, error) {
	if amountUsd <= 0 {
		return nil, fmt.Errorf("%w: amount_usd must be greater than zero", errs.ErrValidation)
	}

	var b bidModel.Bid
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var l loadModel.Load
		if err := tx.First(&l, "load_id = ?", loadID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: load %s", errs.ErrNotFound, loadID)
			}
			return err
		}
		if !l.Status.IsBiddable() {
			return fmt.Errorf("%w: load %s", errs.ErrLoadNotBiddable, loadID)
		}

		var existing bidModel.Bid
		err := tx.Where("load_id = ? AND driver_id = ?", loadID, driverID).First(&existing).Error
		if err == nil {
			return fmt.Errorf("%w", errs.ErrDuplicateBid)
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		b = bidModel.Bid{
			BidID:     uuid.NewString(),
			LoadID:    loadID,
			DriverID:  driverID,
			AmountUsd: amountUsd,
			Status:    bidModel.StatusPending,
		}
		if message != "" {
			b.Message = &message
		}
		if err := tx.Create(&b).Error; err != nil {
			// The composite unique index backstops the duplicate check
			// against a concurrent submit.
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return fmt.Errorf("%w", errs.ErrDuplicateBid)
			}
			return err
		}

		return tx.Model(&loadModel.Load{}).
			Where("load_id = ?", loadID).
			Update("bids_count", gorm.Expr("bids_count + 1")).Error
	})
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// AcceptResult is everything the accept operation committed.
type AcceptResult struct {
	Bid *bidModel.Bid `json:"bid"`
	Job *jobModel.Job `json:"job"`
}

// Accept settles the bidding round for a load: the target bid wins, every
// sibling is rejected, the load is assigned to the winning driver and a
// Pending job is spawned — all inside one transaction. The guarded load
// update is the commit point; a second accept racing on the same load
// affects zero rows there and fails with ErrLoadNotBiddable.
func (s *Service) Accept(bidID, actingClientID string) (*AcceptResult, error) {
	var result AcceptResult
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var b bidModel.Bid
		if err := tx.First(&b, "bid_id = ?", bidID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: bid %s", errs.ErrNotFound, bidID)
			}
			return err
		}

		var l loadModel.Load
		if err := tx.First(&l, "load_id = ?", b.LoadID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: load %s", errs.ErrNotFound, b.LoadID)
			}
			return err
		}
		if l.ClientID != actingClientID {
			return fmt.Errorf("%w: load does not belong to caller", errs.ErrForbidden)
		}
		if !l.Status.IsBiddable() {
			return fmt.Errorf("%w: load %s", errs.ErrLoadNotBiddable, b.LoadID)
		}

		// Claim the load first. This is the only write two racing accepts
		// contend on; the loser stops here with no other rows touched.
		res := tx.Model(&loadModel.Load{}).
			Where("load_id = ? AND status = ?", b.LoadID, loadModel.StatusInBidding).
			Updates(map[string]interface{}{
				"status":             loadModel.StatusAssigned,
				"assigned_driver_id": b.DriverID,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("%w: load %s", errs.ErrLoadNotBiddable, b.LoadID)
		}

		if err := tx.Model(&bidModel.Bid{}).
			Where("bid_id = ?", bidID).
			Update("status", bidModel.StatusAccepted).Error; err != nil {
			return err
		}

		if err := tx.Model(&bidModel.Bid{}).
			Where("load_id = ? AND bid_id <> ?", b.LoadID, bidID).
			Update("status", bidModel.StatusRejected).Error; err != nil {
			return err
		}

		j, err := jobService.SpawnFromBid(tx, b.LoadID, b.DriverID, actingClientID, b.AmountUsd)
		if err != nil {
			return err
		}

		b.Status = bidModel.StatusAccepted
		result.Bid = &b
		result.Job = j
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// ForLoad lists every bid on a load, newest first. Only the load owner may
// see the full ledger.
func (s *Service) ForLoad(loadID, actingClientID string) ([]bidModel.Bid, error) {
	var l loadModel.Load
	if err := s.DB.First(&l, "load_id = ?", loadID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: load %s", errs.ErrNotFound, loadID)
		}
		return nil, err
	}
	if l.ClientID != actingClientID {
		return nil, fmt.Errorf("%w: load does not belong to caller", errs.ErrForbidden)
	}

	var bids []bidModel.Bid
	err := s.DB.
		Preload("Driver").
		Where("load_id = ?", loadID).
		Order("created_at DESC").
		Find(&bids).Error
	return bids, err
}

// ByDriver lists a driver's own bids, newest first.
func (s *Service) ByDriver(driverID string) ([]bidModel.Bid, error) {
	var bids []bidModel.Bid
	err := s.DB.
		Preload("Load").
		Where("driver_id = ?", driverID).
		Order("created_at DESC").
		Find(&bids).Error
	return bids, err
}
