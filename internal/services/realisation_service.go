package services

import (
	"context"
	"errors"
	"log"

	"mis-backend/internal/models"
	"mis-backend/internal/pipeline"
	"mis-backend/internal/repositories"
	"mis-backend/internal/timeutil"
)

// RealisationService handles stage 2: turning received enquiries into
// realised orders against a purchase order, possibly across several
// partial realisations. It owns the only persisted pending ledger with a
// running remaining quantity.
type RealisationService struct {
	repo *repositories.StageRepository
}

func NewRealisationService(repo *repositories.StageRepository) *RealisationService {
	return &RealisationService{repo: repo}
}

// Pending lists orders awaiting (further) realisation. New "Order
// Received" enquiries are pulled into the ledger on every load, so the
// page is always current without a push from stage 1.
func (s *RealisationService) Pending(ctx context.Context, filter models.ListFilter) ([]models.RealisationOrder, error) {
	s.repo.Lock()
	defer s.repo.Unlock()

	pendingList, err := s.syncPending(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]models.RealisationOrder, 0, len(pendingList))
	for i, r := range pendingList {
		r.SerialNo = pipeline.Serial(pipeline.SerialPrefixEnquiry, i)
		if pipeline.MatchFilter(filter, r.ProjectName, r.PartyName, r.Date) {
			out = append(out, r)
		}
	}
	return out, nil
}

// History lists completed realisations, newest position last.
func (s *RealisationService) History(ctx context.Context, filter models.ListFilter) ([]models.RealisationEntry, error) {
	history, err := s.repo.RealisationHistory(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]models.RealisationEntry, 0, len(history))
	for i, e := range history {
		e.SerialNo = pipeline.Serial(pipeline.SerialPrefixOrder, i)
		if pipeline.MatchFilter(filter, e.ProjectName, e.PartyName, e.Date) {
			out = append(out, e)
		}
	}
	return out, nil
}

// Realise applies a (possibly partial) realisation to a pending order.
// The submitted quantity is apportioned against the remaining quantity;
// the pending record survives with the reduced remainder until it is
// exhausted. Nothing is written when validation fails.
func (s *RealisationService) Realise(ctx context.Context, req *models.RealiseOrderRequest) (*models.RealisationEntry, error) {
	if req.PoNumber == "" {
		return nil, errors.New("PO number is required")
	}
	if len(req.Consignees) == 0 {
		return nil, errors.New("at least one consignee is required")
	}
	if len(req.Consignees) > 5 {
		return nil, errors.New("at most five consignees are allowed")
	}
	for _, c := range req.Consignees {
		if c.Name == "" || c.Address == "" {
			return nil, errors.New("every consignee needs a name and address")
		}
	}

	s.repo.Lock()
	defer s.repo.Unlock()

	pendingList, err := s.syncPending(ctx)
	if err != nil {
		return nil, err
	}

	idx := -1
	for i, r := range pendingList {
		if r.ID == req.EnquiryID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return nil, errors.New("pending order not found")
	}
	order := pendingList[idx]

	newRemaining, err := pipeline.Apply(order.RemainingQty, req.Qty)
	if err != nil {
		return nil, err
	}

	entry := models.RealisationEntry{
		ID:                    pipeline.NewID(),
		EnquiryID:             order.ID,
		Date:                  order.Date,
		ProjectName:           order.ProjectName,
		PartyName:             order.PartyName,
		Location:              firstNonEmpty(req.Location, order.Location),
		Qty:                   req.Qty,
		PoPrice:               req.PoPrice,
		PoNumber:              req.PoNumber,
		PoValidation:          req.PoValidation,
		PoPdf:                 req.PoPdf,
		GredType:              req.GredType,
		MaterialType:          req.MaterialType,
		PartyAddress:          req.PartyAddress,
		ShippingAddress:       req.ShippingAddress,
		GstNo:                 req.GstNo,
		ReceiverPersonName:    req.ReceiverPersonName,
		ReceiverContactNumber: req.ReceiverContactNumber,
		Consignees:            req.Consignees,
		CompletedDate:         timeutil.Today(),
	}

	history, err := s.repo.RealisationHistory(ctx)
	if err != nil {
		return nil, err
	}
	history = append(history, entry)
	if err := s.repo.SaveRealisationHistory(ctx, history); err != nil {
		return nil, err
	}

	if pipeline.Exhausted(newRemaining) {
		pendingList = append(pendingList[:idx], pendingList[idx+1:]...)
	} else {
		pendingList[idx].RemainingQty = newRemaining
	}
	if err := s.repo.SaveRealisationPending(ctx, pendingList); err != nil {
		return nil, err
	}

	entry.SerialNo = pipeline.Serial(pipeline.SerialPrefixOrder, len(history)-1)
	log.Printf("[Realisation] Realised %s of enquiry %d (remaining %s)", req.Qty.String(), order.ID, newRemaining.String())
	return &entry, nil
}

// syncPending pulls newly received enquiries into the realisation ledger.
// An enquiry enters exactly once: it is skipped while present in the
// ledger and forever after it has produced at least one realisation.
// The caller must hold the repository lock.
func (s *RealisationService) syncPending(ctx context.Context) ([]models.RealisationOrder, error) {
	pendingList, err := s.repo.RealisationPending(ctx)
	if err != nil {
		return nil, err
	}
	enquiries, err := s.repo.EnquiryPending(ctx)
	if err != nil {
		return nil, err
	}
	history, err := s.repo.RealisationHistory(ctx)
	if err != nil {
		return nil, err
	}

	inLedger := pipeline.IDSet(pendingList, func(r models.RealisationOrder) int64 { return r.ID })
	realised := pipeline.IDSet(history, func(e models.RealisationEntry) int64 { return e.EnquiryID })

	added := 0
	for _, e := range enquiries {
		if e.Status != models.StatusOrderReceived || inLedger[e.ID] || realised[e.ID] {
			continue
		}
		pendingList = append(pendingList, models.RealisationOrder{
			Enquiry:      e,
			OriginalQty:  e.Qty,
			RemainingQty: e.Qty,
		})
		added++
	}
	if added > 0 {
		if err := s.repo.SaveRealisationPending(ctx, pendingList); err != nil {
			return nil, err
		}
		log.Printf("[Realisation] Pulled %d new enquiries into pending", added)
	}
	return pendingList, nil
}

func firstNonEmpty(a, b string) string {
	if a != "" {
		return a
	}
	return b
}
