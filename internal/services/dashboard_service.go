package services

import (
	"context"
	"encoding/json"
	"log"
	"sort"
	"time"

	"mis-backend/internal/cache"
	"mis-backend/internal/models"
	"mis-backend/internal/repositories"
	"mis-backend/internal/timeutil"
)

// recentActivityLimit caps the dashboard activity feed.
const recentActivityLimit = 8

// DashboardSnapshot is the landing-page payload: per-stage counts plus a
// short feed of the latest pipeline activity.
type DashboardSnapshot struct {
	GeneratedAt string                        `json:"generatedAt"`
	Stages      map[string]models.StageCounts `json:"stages"`
	Recent      []ActivityItem                `json:"recentActivity"`
}

// ActivityItem is one feed row.
type ActivityItem struct {
	Stage       string `json:"stage"`
	Description string `json:"description"`
	Date        string `json:"date"`

	sortKey int64
}

// DashboardService aggregates stage counts and recent activity. Snapshots
// are cached in Redis for the dashboard poll interval; a background
// refresher keeps the cache warm so polls rarely hit the store.
type DashboardService struct {
	repo      *repositories.StageRepository
	enquiry   *EnquiryService
	delivery  *DeliveryService
	vehicle   *VehicleService
	followUp  *FollowUpService
	receiving *ReceivingService
}

func NewDashboardService(
	repo *repositories.StageRepository,
	enquiry *EnquiryService,
	delivery *DeliveryService,
	vehicle *VehicleService,
	followUp *FollowUpService,
	receiving *ReceivingService,
) *DashboardService {
	return &DashboardService{
		repo:      repo,
		enquiry:   enquiry,
		delivery:  delivery,
		vehicle:   vehicle,
		followUp:  followUp,
		receiving: receiving,
	}
}

// Snapshot returns the dashboard payload, from cache when fresh.
func (s *DashboardService) Snapshot(ctx context.Context) (*DashboardSnapshot, error) {
	if raw, ok := cache.GetCachedDashboard(ctx); ok {
		var snap DashboardSnapshot
		if err := json.Unmarshal(raw, &snap); err == nil {
			return &snap, nil
		}
	}
	return s.rebuild(ctx)
}

// StartRefresher rebuilds the snapshot on a fixed tick until ctx is
// cancelled. The tick matches the cache expiry.
func (s *DashboardService) StartRefresher(ctx context.Context) {
	ticker := time.NewTicker(cache.DashboardExpiry)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := s.rebuild(ctx); err != nil {
				log.Printf("[Dashboard] Refresh failed: %v", err)
			}
		}
	}
}

func (s *DashboardService) rebuild(ctx context.Context) (*DashboardSnapshot, error) {
	none := models.ListFilter{}

	enquiryPending, err := s.enquiry.Pending(ctx, none)
	if err != nil {
		return nil, err
	}
	enquiryHistory, err := s.repo.EnquiryHistory(ctx)
	if err != nil {
		return nil, err
	}
	realisationPending, err := s.repo.RealisationPending(ctx)
	if err != nil {
		return nil, err
	}
	realisationHistory, err := s.repo.RealisationHistory(ctx)
	if err != nil {
		return nil, err
	}
	deliveryPending, err := s.delivery.Pending(ctx, none)
	if err != nil {
		return nil, err
	}
	deliveryHistory, err := s.repo.DeliveryHistory(ctx)
	if err != nil {
		return nil, err
	}
	vehiclePending, err := s.vehicle.Pending(ctx, none)
	if err != nil {
		return nil, err
	}
	vehicleHistory, err := s.repo.VehicleHistory(ctx)
	if err != nil {
		return nil, err
	}
	followUpPending, err := s.followUp.Pending(ctx, none)
	if err != nil {
		return nil, err
	}
	followUpHistory, err := s.repo.FollowUpHistory(ctx)
	if err != nil {
		return nil, err
	}
	receivingPending, err := s.receiving.Pending(ctx, none)
	if err != nil {
		return nil, err
	}
	receivingHistory, err := s.repo.ReceivingHistory(ctx)
	if err != nil {
		return nil, err
	}

	snap := &DashboardSnapshot{
		GeneratedAt: timeutil.Now().Format(time.RFC3339),
		Stages: map[string]models.StageCounts{
			"enquiry":     {Pending: len(enquiryPending), History: len(enquiryHistory)},
			"realisation": {Pending: len(realisationPending), History: len(realisationHistory)},
			"delivery":    {Pending: len(deliveryPending), History: len(deliveryHistory)},
			"vehicle":     {Pending: len(vehiclePending), History: len(vehicleHistory)},
			"followUp":    {Pending: len(followUpPending), History: len(followUpHistory)},
			"receiving":   {Pending: len(receivingPending), History: len(receivingHistory)},
		},
	}

	var feed []ActivityItem
	for _, e := range realisationHistory {
		feed = append(feed, ActivityItem{
			Stage:       "realisation",
			Description: "Order realised for " + e.PartyName + " (PO " + e.PoNumber + ")",
			Date:        e.CompletedDate,
			sortKey:     e.ID,
		})
	}
	for _, e := range deliveryHistory {
		feed = append(feed, ActivityItem{
			Stage:       "delivery",
			Description: "Delivery order to " + e.ConsigneeName,
			Date:        e.CompletedDate,
			sortKey:     e.ID + 1,
		})
	}
	for _, e := range vehicleHistory {
		feed = append(feed, ActivityItem{
			Stage:       "vehicle",
			Description: "Vehicle " + e.VehicleNo + " placed for " + e.PartyName,
			Date:        e.CompletedDate,
			sortKey:     e.ID + 2,
		})
	}
	for _, e := range followUpHistory {
		feed = append(feed, ActivityItem{
			Stage:       "followUp",
			Description: e.VehicleNo + ": " + e.Status,
			Date:        e.CompletedDate,
			sortKey:     e.ID + 3,
		})
	}
	for _, e := range receivingHistory {
		feed = append(feed, ActivityItem{
			Stage:       "receiving",
			Description: "Received " + e.QtyReceived.String() + " against " + e.LrWithGrn,
			Date:        e.ReceivedDate,
			sortKey:     e.ID + 4,
		})
	}
	sort.SliceStable(feed, func(i, j int) bool { return feed[i].sortKey > feed[j].sortKey })
	if len(feed) > recentActivityLimit {
		feed = feed[:recentActivityLimit]
	}
	snap.Recent = feed

	if raw, err := json.Marshal(snap); err == nil {
		cache.CacheDashboard(ctx, raw)
	}
	return snap, nil
}
