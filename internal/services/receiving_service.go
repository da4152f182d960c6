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

// ReceivingService handles stage 6, the terminal stage: confirming what
// arrived at the consignee against the dispatched quantity. Only orders
// whose latest follow-up status is "Get Out" are eligible.
type ReceivingService struct {
	repo *repositories.StageRepository
}

func NewReceivingService(repo *repositories.StageRepository) *ReceivingService {
	return &ReceivingService{repo: repo}
}

// Pending lists gone-out orders not yet received.
func (s *ReceivingService) Pending(ctx context.Context, filter models.ListFilter) ([]models.FollowUpEntry, error) {
	followUps, err := s.repo.FollowUpHistory(ctx)
	if err != nil {
		return nil, err
	}
	received, err := s.repo.ReceivingHistory(ctx)
	if err != nil {
		return nil, err
	}
	ids := pipeline.IDSet(received, func(e models.ReceivingEntry) int64 { return e.ID })
	carried := pipeline.CarryForward(pipeline.GetOutEntries(followUps), ids, func(e models.FollowUpEntry) int64 { return e.ID })

	out := make([]models.FollowUpEntry, 0, len(carried))
	for i, e := range carried {
		e.SerialNo = pipeline.Serial(pipeline.SerialPrefixReceiving, i)
		if pipeline.MatchFilter(filter, e.ProjectName, e.PartyName, e.Date) {
			out = append(out, e)
		}
	}
	return out, nil
}

// History lists received orders.
func (s *ReceivingService) History(ctx context.Context, filter models.ListFilter) ([]models.ReceivingEntry, error) {
	history, err := s.repo.ReceivingHistory(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]models.ReceivingEntry, 0, len(history))
	for i, e := range history {
		e.SerialNo = pipeline.Serial(pipeline.SerialPrefixReceiving, i)
		if pipeline.MatchFilter(filter, e.ProjectName, e.PartyName, e.Date) {
			out = append(out, e)
		}
	}
	return out, nil
}

// Receive closes out a dispatched order with the LR/GRN reference and the
// quantity that actually arrived. Short receipt is allowed (and recorded
// via Condition); over-receipt is not.
func (s *ReceivingService) Receive(ctx context.Context, req *models.ReceiveRequest) (*models.ReceivingEntry, error) {
	if req.LrWithGrn == "" {
		return nil, errors.New("LR/GRN reference is required")
	}
	if req.QtyReceived.LessThanOrEqual(decimal.Zero) {
		return nil, pipeline.ErrQtyNotPositive
	}

	s.repo.Lock()
	defer s.repo.Unlock()

	followUps, err := s.repo.FollowUpHistory(ctx)
	if err != nil {
		return nil, err
	}
	var source *models.FollowUpEntry
	for _, e := range pipeline.GetOutEntries(followUps) {
		if e.ID == req.OrderID {
			src := e
			source = &src
			break
		}
	}
	if source == nil {
		return nil, errors.New("order is not awaiting receipt")
	}
	if req.QtyReceived.GreaterThan(source.DispatchQty) {
		return nil, fmt.Errorf("%w (%s)", pipeline.ErrQtyExceedsRemaining, source.DispatchQty.String())
	}

	history, err := s.repo.ReceivingHistory(ctx)
	if err != nil {
		return nil, err
	}
	if pipeline.IDSet(history, func(e models.ReceivingEntry) int64 { return e.ID })[req.OrderID] {
		return nil, errors.New("order already received")
	}

	entry := models.ReceivingEntry{
		ID:                    source.ID,
		EnquiryID:             source.EnquiryID,
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
		Qty:                   source.DeliveryQty,
		TransporterDetails:    source.TransporterDetails,
		VehicleNo:             source.VehicleNo,
		Status:                source.Status,
		DispatchQty:           source.DispatchQty,
		LrWithGrn:             req.LrWithGrn,
		QtyReceived:           req.QtyReceived,
		Condition:             req.Condition,
		ReceivedDate:          timeutil.Today(),
	}

	history = append(history, entry)
	if err := s.repo.SaveReceivingHistory(ctx, history); err != nil {
		return nil, err
	}

	entry.SerialNo = pipeline.Serial(pipeline.SerialPrefixReceiving, len(history)-1)
	log.Printf("[Receiving] Received order %d (%s of %s dispatched)", entry.ID, req.QtyReceived.String(), source.DispatchQty.String())
	return &entry, nil
}
