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

// DeliveryService handles stage 3: committing a realised order to a single
// consignee as a delivery order. Its pending set is never stored; it is
// the realisation history minus the delivery history, recomputed on every
// load.
type DeliveryService struct {
	repo *repositories.StageRepository
}

func NewDeliveryService(repo *repositories.StageRepository) *DeliveryService {
	return &DeliveryService{repo: repo}
}

// Pending lists realisations that have not yet become delivery orders.
func (s *DeliveryService) Pending(ctx context.Context, filter models.ListFilter) ([]models.RealisationEntry, error) {
	upstream, err := s.repo.RealisationHistory(ctx)
	if err != nil {
		return nil, err
	}
	downstream, err := s.repo.DeliveryHistory(ctx)
	if err != nil {
		return nil, err
	}
	ids := pipeline.IDSet(downstream, func(e models.DeliveryEntry) int64 { return e.ID })
	carried := pipeline.CarryForward(upstream, ids, func(e models.RealisationEntry) int64 { return e.ID })

	out := make([]models.RealisationEntry, 0, len(carried))
	for i, e := range carried {
		e.SerialNo = pipeline.Serial(pipeline.SerialPrefixOrder, i)
		if pipeline.MatchFilter(filter, e.ProjectName, e.PartyName, e.Date) {
			out = append(out, e)
		}
	}
	return out, nil
}

// History lists committed delivery orders.
func (s *DeliveryService) History(ctx context.Context, filter models.ListFilter) ([]models.DeliveryEntry, error) {
	history, err := s.repo.DeliveryHistory(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]models.DeliveryEntry, 0, len(history))
	for i, e := range history {
		e.SerialNo = pipeline.Serial(pipeline.SerialPrefixOrder, i)
		if pipeline.MatchFilter(filter, e.ProjectName, e.PartyName, e.Date) {
			out = append(out, e)
		}
	}
	return out, nil
}

// Get returns one delivery order by ID. Used by the PDF export.
func (s *DeliveryService) Get(ctx context.Context, id int64) (*models.DeliveryEntry, error) {
	history, err := s.repo.DeliveryHistory(ctx)
	if err != nil {
		return nil, err
	}
	for i, e := range history {
		if e.ID == id {
			e.SerialNo = pipeline.Serial(pipeline.SerialPrefixOrder, i)
			return &e, nil
		}
	}
	return nil, errors.New("delivery order not found")
}

// Create commits a pending realisation to one of its consignees. The
// delivery entry keeps the realisation's ID, which removes the record
// from this stage's pending set and carries the chain downstream.
func (s *DeliveryService) Create(ctx context.Context, req *models.CreateDeliveryRequest) (*models.DeliveryEntry, error) {
	if req.ConsigneeName == "" {
		return nil, errors.New("consignee name is required")
	}

	s.repo.Lock()
	defer s.repo.Unlock()

	upstream, err := s.repo.RealisationHistory(ctx)
	if err != nil {
		return nil, err
	}
	history, err := s.repo.DeliveryHistory(ctx)
	if err != nil {
		return nil, err
	}
	done := pipeline.IDSet(history, func(e models.DeliveryEntry) int64 { return e.ID })
	if done[req.OrderID] {
		return nil, errors.New("order already has a delivery order")
	}

	var source *models.RealisationEntry
	for i := range upstream {
		if upstream[i].ID == req.OrderID {
			source = &upstream[i]
			break
		}
	}
	if source == nil {
		return nil, errors.New("pending order not found")
	}

	consignee, ok := source.ConsigneeByName(req.ConsigneeName)
	if !ok {
		return nil, fmt.Errorf("consignee %q is not on this order", req.ConsigneeName)
	}

	qty := req.DeliveryQty
	if qty.IsZero() {
		qty = source.Qty
	}
	if qty.LessThanOrEqual(decimal.Zero) {
		return nil, pipeline.ErrQtyNotPositive
	}
	if qty.GreaterThan(source.Qty) {
		return nil, fmt.Errorf("%w (%s)", pipeline.ErrQtyExceedsRemaining, source.Qty.String())
	}

	entry := models.DeliveryEntry{
		ID:                    source.ID,
		EnquiryID:             source.EnquiryID,
		OrderNo:               source.PoNumber,
		Date:                  source.Date,
		ProjectName:           source.ProjectName,
		PartyName:             source.PartyName,
		Qty:                   source.Qty,
		DeliveryQty:           qty,
		PoPrice:               source.PoPrice,
		PoValidation:          source.PoValidation,
		PoPdf:                 source.PoPdf,
		GredType:              source.GredType,
		MaterialType:          source.MaterialType,
		PartyAddress:          source.PartyAddress,
		ShippingAddress:       source.ShippingAddress,
		GstNo:                 source.GstNo,
		ReceiverPersonName:    source.ReceiverPersonName,
		ReceiverContactNumber: source.ReceiverContactNumber,
		ConsigneeName:         consignee.Name,
		ConsigneeAddress:      consignee.Address,
		CompletedDate:         timeutil.Today(),
	}

	history = append(history, entry)
	if err := s.repo.SaveDeliveryHistory(ctx, history); err != nil {
		return nil, err
	}

	entry.SerialNo = pipeline.Serial(pipeline.SerialPrefixOrder, len(history)-1)
	log.Printf("[Delivery] Created delivery order for realisation %d to %s", entry.ID, consignee.Name)
	return &entry, nil
}
