package services

import (
	"context"
	"errors"
	"log"

	"mis-backend/internal/models"
	"mis-backend/internal/pipeline"
	"mis-backend/internal/repositories"
	"mis-backend/internal/timeutil"

	"github.com/shopspring/decimal"
)

// EnquiryService handles stage-1 business logic: capturing enquiries and
// settling them into history once the pipeline has dispatched their full
// quantity.
type EnquiryService struct {
	repo *repositories.StageRepository
}

func NewEnquiryService(repo *repositories.StageRepository) *EnquiryService {
	return &EnquiryService{repo: repo}
}

// Create records a new enquiry. The ID is a creation timestamp in
// milliseconds and is never reused; it is the join key every downstream
// stage carries.
func (s *EnquiryService) Create(ctx context.Context, req *models.CreateEnquiryRequest) (*models.Enquiry, error) {
	if req.ProjectName == "" || req.PartyName == "" {
		return nil, errors.New("project name and party name are required")
	}
	if req.Qty.LessThanOrEqual(decimal.Zero) {
		return nil, pipeline.ErrQtyNotPositive
	}
	if req.Status != models.StatusOrderReceived && req.Status != models.StatusNotReceived {
		return nil, errors.New("status must be 'Order Received' or 'Not'")
	}
	if req.Status == models.StatusNotReceived && req.Reason == "" {
		return nil, errors.New("reason is required when the order was not received")
	}
	reason := req.Reason
	if req.Status == models.StatusOrderReceived && reason == "" {
		reason = "-"
	}

	enquiry := models.Enquiry{
		ID:          pipeline.NewID(),
		Date:        timeutil.Today(),
		ProjectName: req.ProjectName,
		PartyName:   req.PartyName,
		Location:    req.Location,
		Qty:         req.Qty,
		BidPrice:    req.BidPrice,
		Status:      req.Status,
		Reason:      reason,
	}

	s.repo.Lock()
	defer s.repo.Unlock()

	pendingList, err := s.repo.EnquiryPending(ctx)
	if err != nil {
		return nil, err
	}
	pendingList = append(pendingList, enquiry)
	if err := s.repo.SaveEnquiryPending(ctx, pendingList); err != nil {
		return nil, err
	}

	log.Printf("[Enquiry] Created enquiry %d for %s / %s", enquiry.ID, enquiry.ProjectName, enquiry.PartyName)
	return &enquiry, nil
}

// Pending lists open enquiries after running the settlement pass. Display
// serials reflect the record's current position in the list.
func (s *EnquiryService) Pending(ctx context.Context, filter models.ListFilter) ([]models.Enquiry, error) {
	s.repo.Lock()
	defer s.repo.Unlock()

	pendingList, err := s.settle(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]models.Enquiry, 0, len(pendingList))
	for i, e := range pendingList {
		e.SerialNo = pipeline.Serial(pipeline.SerialPrefixEnquiry, i)
		if pipeline.MatchFilter(filter, e.ProjectName, e.PartyName, e.Date) {
			out = append(out, e)
		}
	}
	return out, nil
}

// History lists settled enquiries.
func (s *EnquiryService) History(ctx context.Context, filter models.ListFilter) ([]models.Enquiry, error) {
	s.repo.Lock()
	defer s.repo.Unlock()

	if _, err := s.settle(ctx); err != nil {
		return nil, err
	}
	history, err := s.repo.EnquiryHistory(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]models.Enquiry, 0, len(history))
	for _, e := range history {
		if pipeline.MatchFilter(filter, e.ProjectName, e.PartyName, e.Date) {
			out = append(out, e)
		}
	}
	return out, nil
}

// Delete removes a pending enquiry. The realisation pending ledger is
// cleaned up in the same pass so a deleted enquiry can never surface
// downstream; realised history is untouched.
func (s *EnquiryService) Delete(ctx context.Context, id int64) error {
	s.repo.Lock()
	defer s.repo.Unlock()

	pendingList, err := s.repo.EnquiryPending(ctx)
	if err != nil {
		return err
	}
	kept := make([]models.Enquiry, 0, len(pendingList))
	found := false
	for _, e := range pendingList {
		if e.ID == id {
			found = true
			continue
		}
		kept = append(kept, e)
	}
	if !found {
		return errors.New("enquiry not found")
	}
	if err := s.repo.SaveEnquiryPending(ctx, kept); err != nil {
		return err
	}

	realisations, err := s.repo.RealisationPending(ctx)
	if err != nil {
		return err
	}
	keptRealisations := make([]models.RealisationOrder, 0, len(realisations))
	for _, r := range realisations {
		if r.ID == id {
			continue
		}
		keptRealisations = append(keptRealisations, r)
	}
	if len(keptRealisations) != len(realisations) {
		if err := s.repo.SaveRealisationPending(ctx, keptRealisations); err != nil {
			return err
		}
	}

	log.Printf("[Enquiry] Deleted enquiry %d", id)
	return nil
}

// settle moves fully dispatched enquiries from pending to history. The
// caller must hold the repository lock. Returns the surviving pending set.
func (s *EnquiryService) settle(ctx context.Context) ([]models.Enquiry, error) {
	pendingList, err := s.repo.EnquiryPending(ctx)
	if err != nil {
		return nil, err
	}
	if len(pendingList) == 0 {
		return pendingList, nil
	}
	history, err := s.repo.EnquiryHistory(ctx)
	if err != nil {
		return nil, err
	}
	followUps, err := s.repo.FollowUpHistory(ctx)
	if err != nil {
		return nil, err
	}

	result := pipeline.SettleEnquiries(pendingList, history, followUps, timeutil.Today())
	if len(result.Settled) == 0 {
		return pendingList, nil
	}

	history = append(history, result.Settled...)
	if err := s.repo.SaveEnquiryHistory(ctx, history); err != nil {
		return nil, err
	}
	if err := s.repo.SaveEnquiryPending(ctx, result.Pending); err != nil {
		return nil, err
	}
	for _, e := range result.Settled {
		log.Printf("[Enquiry] Settled enquiry %d (%s dispatched of %s)", e.ID, e.TotalDispatchedQty.String(), e.Qty.String())
	}
	return result.Pending, nil
}
