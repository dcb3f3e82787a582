package load

import (
	"errors"
	"fmt"
	"time"

	"takura-freight/errs"
	loadModel "takura-freight/models/load"
	loadTypes "takura-freight/types/load"

	"gorm.io/gorm"
)

// Service owns load creation and the load status state machine.
type Service struct {
	DB *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{DB: db}
}

// NewLoadID generates a load identifier from the posting time, matching the
// LOAD<unix-millis> format used across the marketplace.
func NewLoadID() string {
	return fmt.Sprintf("LOAD%d", time.Now().UnixMilli())
}

// Create validates and persists a new load. Status is always forced to
// "In Bidding" and the bid count to zero regardless of input.
func (s *Service) Create(clientID string, req loadTypes.LoadCreateRequest) (*loadModel.Load, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", errs.ErrValidation, err.Error())
	}

	distance := req.DistanceKm
	if distance <= 0 {
		distance = 300
	}
	tripType := req.TripType
	if tripType == "" {
		tripType = "One Way"
	}
	urgency := req.Urgency
	if urgency == "" {
		urgency = "Standard"
	}

	l := loadModel.Load{
		LoadID:          NewLoadID(),
		ClientID:        clientID,
		Title:           req.Title,
		CargoType:       req.CargoType,
		WeightTons:      req.WeightTons,
		OriginCity:      req.OriginCity,
		DestinationCity: req.DestinationCity,
		DistanceKm:      distance,
		BudgetUsd:       req.BudgetUsd,
		PickupDate:      req.PickupDate,
		DeliveryDate:    req.DeliveryDate,
		TripType:        tripType,
		Urgency:         urgency,
		Status:          loadModel.StatusInBidding,
		BidsCount:       0,
	}
	if req.Description != "" {
		l.Description = &req.Description
	}
	if req.Requirements != "" {
		l.Requirements = &req.Requirements
	}

	if err := s.DB.Create(&l).Error; err != nil {
		return nil, err
	}
	return &l, nil
}

// Get fetches a single load by id.
func (s *Service) Get(loadID string) (*loadModel.Load, error) {
	var l loadModel.Load
	if err := s.DB.First(&l, "load_id = ?", loadID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: load %s", errs.ErrNotFound, loadID)
		}
		return nil, err
	}
	return &l, nil
}

// Available lists loads still open for bidding, newest first.
func (s *Service) Available() ([]loadModel.Load, error) {
	var loads []loadModel.Load
	err := s.DB.
		Where("status = ?", loadModel.StatusInBidding).
		Order("created_at DESC").
		Find(&loads).Error
	return loads, err
}

// ByClient lists every load a client has posted, newest first.
func (s *Service) ByClient(clientID string) ([]loadModel.Load, error) {
	var loads []loadModel.Load
	err := s.DB.
		Where("client_id = ?", clientID).
		Order("created_at DESC").
		Find(&loads).Error
	return loads, err
}

// TransitionStatus moves a load one step along its lifecycle. Only the
// transitions in the load status table are legal; the write itself is guarded
// on the current status so a concurrent mover affects zero rows and fails.
func (s *Service) TransitionStatus(loadID string, next loadModel.Status) (*loadModel.Load, error) {
	if !next.IsValid() {
		return nil, fmt.Errorf("%w: unknown status %q", errs.ErrValidation, next)
	}

	var l loadModel.Load
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&l, "load_id = ?", loadID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: load %s", errs.ErrNotFound, loadID)
			}
			return err
		}

		if !l.Status.CanTransitionTo(next) {
			return fmt.Errorf("%w: %s -> %s", errs.ErrInvalidTransition, l.Status, next)
		}

		res := tx.Model(&loadModel.Load{}).
			Where("load_id = ? AND status = ?", loadID, l.Status).
			Update("status", next)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			// Lost a race with another writer.
			return fmt.Errorf("%w: %s -> %s", errs.ErrInvalidTransition, l.Status, next)
		}
		l.Status = next
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &l, nil
}
