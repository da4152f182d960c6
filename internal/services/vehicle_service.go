package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"mis-backend/internal/models"
	"mis-backend/internal/pipeline"
	"mis-backend/internal/repositories"
	"mis-backend/internal/timeutil"

	"github.com/shopspring/decimal"
)

// VehicleService handles stage 4: assigning a vehicle and transporter to
// a delivery order. Pending is the delivery history minus the placement
// history.
type VehicleService struct {
	repo *repositories.StageRepository
}

func NewVehicleService(repo *repositories.StageRepository) *VehicleService {
	return &VehicleService{repo: repo}
}

// Pending lists delivery orders still awaiting a vehicle.
func (s *VehicleService) Pending(ctx context.Context, filter models.ListFilter) ([]models.DeliveryEntry, error) {
	upstream, err := s.repo.DeliveryHistory(ctx)
	if err != nil {
		return nil, err
	}
	downstream, err := s.repo.VehicleHistory(ctx)
	if err != nil {
		return nil, err
	}
	ids := pipeline.IDSet(downstream, func(e models.VehiclePlacement) int64 { return e.ID })
	carried := pipeline.CarryForward(upstream, ids, func(e models.DeliveryEntry) int64 { return e.ID })

	out := make([]models.DeliveryEntry, 0, len(carried))
	for i, e := range carried {
		e.SerialNo = pipeline.Serial(pipeline.SerialPrefixOrder, i)
		if pipeline.MatchFilter(filter, e.ProjectName, e.PartyName, e.Date) {
			out = append(out, e)
		}
	}
	return out, nil
}

// History lists completed placements.
func (s *VehicleService) History(ctx context.Context, filter models.ListFilter) ([]models.VehiclePlacement, error) {
	history, err := s.repo.VehicleHistory(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]models.VehiclePlacement, 0, len(history))
	for i, e := range history {
		e.SerialNo = pipeline.Serial(pipeline.SerialPrefixOrder, i)
		if pipeline.MatchFilter(filter, e.ProjectName, e.PartyName, e.Date) {
			out = append(out, e)
		}
	}
	return out, nil
}

// Place assigns a vehicle to a pending delivery order. The dispatch
// quantity defaults to the delivery quantity and may not exceed it.
func (s *VehicleService) Place(ctx context.Context, req *models.PlaceVehicleRequest) (*models.VehiclePlacement, error) {
	if req.VehicleNo == "" {
		return nil, errors.New("vehicle number is required")
	}
	if req.TransporterDetails == "" {
		return nil, errors.New("transporter details are required")
	}

	s.repo.Lock()
	defer s.repo.Unlock()

	upstream, err := s.repo.DeliveryHistory(ctx)
	if err != nil {
		return nil, err
	}
	history, err := s.repo.VehicleHistory(ctx)
	if err != nil {
		return nil, err
	}
	done := pipeline.IDSet(history, func(e models.VehiclePlacement) int64 { return e.ID })
	if done[req.OrderID] {
		return nil, errors.New("order already has a vehicle placed")
	}

	var source *models.DeliveryEntry
	for i := range upstream {
		if upstream[i].ID == req.OrderID {
			source = &upstream[i]
			break
		}
	}
	if source == nil {
		return nil, errors.New("pending delivery order not found")
	}

	dispatchQty := req.DispatchQty
	if dispatchQty.IsZero() {
		dispatchQty = source.DeliveryQty
	}
	if dispatchQty.LessThanOrEqual(decimal.Zero) {
		return nil, pipeline.ErrQtyNotPositive
	}
	if dispatchQty.GreaterThan(source.DeliveryQty) {
		return nil, fmt.Errorf("%w (%s)", pipeline.ErrQtyExceedsRemaining, source.DeliveryQty.String())
	}

	entry := models.VehiclePlacement{
		ID:                    source.ID,
		EnquiryID:             source.EnquiryID,
		OrderNo:               source.OrderNo,
		Date:                  source.Date,
		ProjectName:           source.ProjectName,
		PartyName:             source.PartyName,
		GredType:              source.GredType,
		MaterialType:          source.MaterialType,
		PartyAddress:          source.PartyAddress,
		ShippingAddress:       source.ShippingAddress,
		GstNo:                 source.GstNo,
		ReceiverPersonName:    source.ReceiverPersonName,
		ReceiverContactNumber: source.ReceiverContactNumber,
		DeliveryQty:           source.DeliveryQty,
		ConsigneeName:         source.ConsigneeName,
		ConsigneeAddress:      source.ConsigneeAddress,
		DispatchQty:           dispatchQty,
		VehicleNo:             req.VehicleNo,
		TransporterDetails:    req.TransporterDetails,
		CompletedDate:         timeutil.Today(),
	}

	history = append(history, entry)
	if err := s.repo.SaveVehicleHistory(ctx, history); err != nil {
		return nil, err
	}

	entry.SerialNo = pipeline.Serial(pipeline.SerialPrefixOrder, len(history)-1)
	log.Printf("[Vehicle] Placed vehicle %s on order %d", req.VehicleNo, entry.ID)
	return &entry, nil
}
