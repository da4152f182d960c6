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

// FollowUpService handles stage 5: tracking a placed vehicle through its
// loading cycle. A placement can accumulate several follow-up entries; it
// leaves the pending set only when its latest status is "Get Out", and a
// later non-terminal entry would bring it back.
type FollowUpService struct {
	repo *repositories.StageRepository
}

func NewFollowUpService(repo *repositories.StageRepository) *FollowUpService {
	return &FollowUpService{repo: repo}
}

// Pending lists placements whose latest follow-up status is not "Get Out".
func (s *FollowUpService) Pending(ctx context.Context, filter models.ListFilter) ([]models.VehiclePlacement, error) {
	upstream, err := s.repo.VehicleHistory(ctx)
	if err != nil {
		return nil, err
	}
	followUps, err := s.repo.FollowUpHistory(ctx)
	if err != nil {
		return nil, err
	}
	latest := pipeline.LatestStatusByID(followUps)

	out := make([]models.VehiclePlacement, 0, len(upstream))
	i := 0
	for _, e := range upstream {
		if latest[e.ID] == models.StatusGetOut {
			continue
		}
		e.SerialNo = pipeline.Serial(pipeline.SerialPrefixOrder, i)
		i++
		if pipeline.MatchFilter(filter, e.ProjectName, e.PartyName, e.Date) {
			out = append(out, e)
		}
	}
	return out, nil
}

// History lists every follow-up entry, all statuses included.
func (s *FollowUpService) History(ctx context.Context, filter models.ListFilter) ([]models.FollowUpEntry, error) {
	history, err := s.repo.FollowUpHistory(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]models.FollowUpEntry, 0, len(history))
	for i, e := range history {
		e.SerialNo = pipeline.Serial(pipeline.SerialPrefixOrder, i)
		if pipeline.MatchFilter(filter, e.ProjectName, e.PartyName, e.Date) {
			out = append(out, e)
		}
	}
	return out, nil
}

// Submit stamps a status onto a placed vehicle. "Get Out" requires a
// positive dispatch quantity no greater than the placement's dispatch
// quantity; it is what feeds the enquiry settlement sum, so it must be
// exact. Other statuses carry no quantity.
func (s *FollowUpService) Submit(ctx context.Context, req *models.FollowUpRequest) (*models.FollowUpEntry, error) {
	if !validFollowUpStatus(req.Status) {
		return nil, fmt.Errorf("unknown follow-up status %q", req.Status)
	}

	s.repo.Lock()
	defer s.repo.Unlock()

	upstream, err := s.repo.VehicleHistory(ctx)
	if err != nil {
		return nil, err
	}
	var source *models.VehiclePlacement
	for i := range upstream {
		if upstream[i].ID == req.OrderID {
			source = &upstream[i]
			break
		}
	}
	if source == nil {
		return nil, errors.New("placement not found")
	}

	history, err := s.repo.FollowUpHistory(ctx)
	if err != nil {
		return nil, err
	}
	if pipeline.LatestStatusByID(history)[req.OrderID] == models.StatusGetOut {
		return nil, errors.New("placement has already gone out")
	}

	dispatchQty := decimal.Zero
	if req.Status == models.StatusGetOut {
		dispatchQty = req.DispatchQty
		if dispatchQty.IsZero() {
			dispatchQty = source.DispatchQty
		}
		if dispatchQty.LessThanOrEqual(decimal.Zero) {
			return nil, pipeline.ErrQtyNotPositive
		}
		if dispatchQty.GreaterThan(source.DispatchQty) {
			return nil, fmt.Errorf("%w (%s)", pipeline.ErrQtyExceedsRemaining, source.DispatchQty.String())
		}
	}

	entry := models.FollowUpEntry{
		ID:                    source.ID,
		EnquiryID:             source.EnquiryID,
		FollowUpNo:            pipeline.Serial(pipeline.SerialPrefixFollowUp, len(history)),
		OrderNo:               source.OrderNo,
		Date:                  source.Date,
		ProjectName:           source.ProjectName,
		PartyName:             source.PartyName,
		MaterialType:          source.MaterialType,
		PartyAddress:          source.PartyAddress,
		ShippingAddress:       source.ShippingAddress,
		GstNo:                 source.GstNo,
		ReceiverPersonName:    source.ReceiverPersonName,
		ReceiverContactNumber: source.ReceiverContactNumber,
		DeliveryQty:           source.DeliveryQty,
		VehicleNo:             source.VehicleNo,
		TransporterDetails:    source.TransporterDetails,
		Status:                req.Status,
		DispatchQty:           dispatchQty,
		Remarks:               req.Remarks,
		CompletedDate:         timeutil.Today(),
	}

	history = append(history, entry)
	if err := s.repo.SaveFollowUpHistory(ctx, history); err != nil {
		return nil, err
	}

	entry.SerialNo = pipeline.Serial(pipeline.SerialPrefixOrder, len(history)-1)
	log.Printf("[FollowUp] Order %d -> %s", entry.ID, req.Status)
	return &entry, nil
}

func validFollowUpStatus(status string) bool {
	for _, s := range models.FollowUpStatuses {
		if s == status {
			return true
		}
	}
	return false
}
