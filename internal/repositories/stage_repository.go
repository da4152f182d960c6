// Package repositories provides typed access to the stage ledgers stored
// as JSON documents in the key-value stage store.
package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync"

	"mis-backend/internal/models"
	"mis-backend/internal/store"
	"mis-backend/internal/timeutil"
)

// StageRepository reads and writes the eight stage ledgers. All mutating
// service flows take the repository lock around their read-modify-write
// sequence; the store itself only sees whole-document swaps.
type StageRepository struct {
	Store store.Store

	mu sync.Mutex
}

func NewStageRepository(s store.Store) *StageRepository {
	return &StageRepository{Store: s}
}

// Lock serializes read-modify-write sequences against the stage ledgers.
// Read-only listings do not need it; the store swap is atomic per key.
func (r *StageRepository) Lock()   { r.mu.Lock() }
func (r *StageRepository) Unlock() { r.mu.Unlock() }

// loadList decodes one ledger. A missing key is an empty ledger; a corrupt
// document is logged and treated the same so one bad write cannot brick a
// stage page.
func loadList[T any](ctx context.Context, s store.Store, key string) ([]T, error) {
	raw, err := s.Get(ctx, key)
	if errors.Is(err, store.ErrNotFound) {
		return []T{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", key, err)
	}
	var list []T
	if err := json.Unmarshal(raw, &list); err != nil {
		log.Printf("[StageRepository] Corrupt ledger %s, starting empty: %v", key, err)
		return []T{}, nil
	}
	if list == nil {
		list = []T{}
	}
	return list, nil
}

func saveList[T any](ctx context.Context, s store.Store, key string, list []T) error {
	if list == nil {
		list = []T{}
	}
	raw, err := json.Marshal(list)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := s.Set(ctx, key, raw); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

func (r *StageRepository) EnquiryPending(ctx context.Context) ([]models.Enquiry, error) {
	list, err := loadList[models.Enquiry](ctx, r.Store, models.KeyEnquiryPending)
	if err != nil {
		return nil, err
	}
	for i := range list {
		list[i].Date = timeutil.Normalize(list[i].Date)
	}
	return list, nil
}

func (r *StageRepository) SaveEnquiryPending(ctx context.Context, list []models.Enquiry) error {
	return saveList(ctx, r.Store, models.KeyEnquiryPending, list)
}

func (r *StageRepository) EnquiryHistory(ctx context.Context) ([]models.Enquiry, error) {
	return loadList[models.Enquiry](ctx, r.Store, models.KeyEnquiryHistory)
}

func (r *StageRepository) SaveEnquiryHistory(ctx context.Context, list []models.Enquiry) error {
	return saveList(ctx, r.Store, models.KeyEnquiryHistory, list)
}

func (r *StageRepository) RealisationPending(ctx context.Context) ([]models.RealisationOrder, error) {
	list, err := loadList[models.RealisationOrder](ctx, r.Store, models.KeyRealisationPending)
	if err != nil {
		return nil, err
	}
	for i := range list {
		list[i].Date = timeutil.Normalize(list[i].Date)
	}
	return list, nil
}

func (r *StageRepository) SaveRealisationPending(ctx context.Context, list []models.RealisationOrder) error {
	return saveList(ctx, r.Store, models.KeyRealisationPending, list)
}

func (r *StageRepository) RealisationHistory(ctx context.Context) ([]models.RealisationEntry, error) {
	list, err := loadList[models.RealisationEntry](ctx, r.Store, models.KeyRealisationHistory)
	if err != nil {
		return nil, err
	}
	for i := range list {
		list[i].Date = timeutil.Normalize(list[i].Date)
	}
	return list, nil
}

func (r *StageRepository) SaveRealisationHistory(ctx context.Context, list []models.RealisationEntry) error {
	return saveList(ctx, r.Store, models.KeyRealisationHistory, list)
}

func (r *StageRepository) DeliveryHistory(ctx context.Context) ([]models.DeliveryEntry, error) {
	list, err := loadList[models.DeliveryEntry](ctx, r.Store, models.KeyDeliveryHistory)
	if err != nil {
		return nil, err
	}
	for i := range list {
		list[i].Date = timeutil.Normalize(list[i].Date)
	}
	return list, nil
}

func (r *StageRepository) SaveDeliveryHistory(ctx context.Context, list []models.DeliveryEntry) error {
	return saveList(ctx, r.Store, models.KeyDeliveryHistory, list)
}

func (r *StageRepository) VehicleHistory(ctx context.Context) ([]models.VehiclePlacement, error) {
	list, err := loadList[models.VehiclePlacement](ctx, r.Store, models.KeyVehicleHistory)
	if err != nil {
		return nil, err
	}
	for i := range list {
		list[i].Date = timeutil.Normalize(list[i].Date)
	}
	return list, nil
}

func (r *StageRepository) SaveVehicleHistory(ctx context.Context, list []models.VehiclePlacement) error {
	return saveList(ctx, r.Store, models.KeyVehicleHistory, list)
}

func (r *StageRepository) FollowUpHistory(ctx context.Context) ([]models.FollowUpEntry, error) {
	list, err := loadList[models.FollowUpEntry](ctx, r.Store, models.KeyFollowUpHistory)
	if err != nil {
		return nil, err
	}
	for i := range list {
		list[i].Date = timeutil.Normalize(list[i].Date)
	}
	return list, nil
}

func (r *StageRepository) SaveFollowUpHistory(ctx context.Context, list []models.FollowUpEntry) error {
	return saveList(ctx, r.Store, models.KeyFollowUpHistory, list)
}

func (r *StageRepository) ReceivingHistory(ctx context.Context) ([]models.ReceivingEntry, error) {
	list, err := loadList[models.ReceivingEntry](ctx, r.Store, models.KeyReceivingHistory)
	if err != nil {
		return nil, err
	}
	for i := range list {
		list[i].Date = timeutil.Normalize(list[i].Date)
	}
	return list, nil
}

func (r *StageRepository) SaveReceivingHistory(ctx context.Context, list []models.ReceivingEntry) error {
	return saveList(ctx, r.Store, models.KeyReceivingHistory, list)
}

// RawSnapshot reads every stage ledger as raw JSON, keyed by ledger name.
// Missing keys are skipped. Used by the backup service.
func (r *StageRepository) RawSnapshot(ctx context.Context) (map[string]json.RawMessage, error) {
	snap := make(map[string]json.RawMessage, len(models.AllStageKeys))
	for _, key := range models.AllStageKeys {
		raw, err := r.Store.Get(ctx, key)
		if errors.Is(err, store.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("snapshot %s: %w", key, err)
		}
		snap[key] = json.RawMessage(raw)
	}
	return snap, nil
}

// RestoreSnapshot writes ledgers back from a snapshot. Only known ledger
// keys are restored; unknown keys in the snapshot are ignored.
func (r *StageRepository) RestoreSnapshot(ctx context.Context, snap map[string]json.RawMessage) error {
	known := make(map[string]bool, len(models.AllStageKeys))
	for _, key := range models.AllStageKeys {
		known[key] = true
	}
	for key, raw := range snap {
		if !known[key] {
			log.Printf("[StageRepository] Skipping unknown ledger %s in snapshot", key)
			continue
		}
		if err := r.Store.Set(ctx, key, []byte(raw)); err != nil {
			return fmt.Errorf("restore %s: %w", key, err)
		}
	}
	return nil
}
