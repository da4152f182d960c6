package repositories

import (
	"context"
	"testing"

	"mis-backend/internal/models"
	"mis-backend/internal/store"

	"github.com/shopspring/decimal"
)

func newTestRepo() *StageRepository {
	return NewStageRepository(store.NewMemoryStore())
}

func TestMissingLedgerIsEmpty(t *testing.T) {
	repo := newTestRepo()
	ctx := context.Background()

	list, err := repo.EnquiryPending(ctx)
	if err != nil {
		t.Fatalf("EnquiryPending on fresh store: %v", err)
	}
	if len(list) != 0 {
		t.Errorf("fresh ledger has %d records, want 0", len(list))
	}
}

func TestRoundTripPreservesQuantities(t *testing.T) {
	repo := newTestRepo()
	ctx := context.Background()

	in := []models.RealisationOrder{
		{
			Enquiry: models.Enquiry{
				ID:          1700000000000,
				Date:        "15/06/2026",
				ProjectName: "Highway Expansion",
				PartyName:   "Acme Infra",
				Qty:         decimal.NewFromInt(100),
				Status:      models.StatusOrderReceived,
			},
			OriginalQty:  decimal.NewFromInt(100),
			RemainingQty: decimal.RequireFromString("40.5"),
		},
	}
	if err := repo.SaveRealisationPending(ctx, in); err != nil {
		t.Fatalf("SaveRealisationPending: %v", err)
	}

	out, err := repo.RealisationPending(ctx)
	if err != nil {
		t.Fatalf("RealisationPending: %v", err)
	}
	if len(out) != 1 {
		t.Fatalf("got %d records, want 1", len(out))
	}
	if out[0].ID != in[0].ID {
		t.Errorf("ID = %d, want %d", out[0].ID, in[0].ID)
	}
	if !out[0].RemainingQty.Equal(decimal.RequireFromString("40.5")) {
		t.Errorf("RemainingQty = %s, want 40.5", out[0].RemainingQty)
	}
}

func TestLoadNormalizesISODates(t *testing.T) {
	repo := newTestRepo()
	ctx := context.Background()

	raw := []byte(`[{"id":1,"date":"2026-06-15","projectName":"P","partyName":"A","qty":"10","bidPrice":"0","status":"Order Received","reason":"","totalDispatchedQty":"0"}]`)
	if err := repo.Store.Set(ctx, models.KeyEnquiryPending, raw); err != nil {
		t.Fatalf("seed store: %v", err)
	}

	list, err := repo.EnquiryPending(ctx)
	if err != nil {
		t.Fatalf("EnquiryPending: %v", err)
	}
	if list[0].Date != "15/06/2026" {
		t.Errorf("Date = %q, want normalized 15/06/2026", list[0].Date)
	}
}

func TestCorruptLedgerStartsEmpty(t *testing.T) {
	repo := newTestRepo()
	ctx := context.Background()

	if err := repo.Store.Set(ctx, models.KeyDeliveryHistory, []byte(`{not json`)); err != nil {
		t.Fatalf("seed store: %v", err)
	}

	list, err := repo.DeliveryHistory(ctx)
	if err != nil {
		t.Fatalf("DeliveryHistory on corrupt ledger: %v", err)
	}
	if len(list) != 0 {
		t.Errorf("corrupt ledger returned %d records, want 0", len(list))
	}
}

func TestSnapshotRestoreRoundTrip(t *testing.T) {
	repo := newTestRepo()
	ctx := context.Background()

	if err := repo.SaveEnquiryPending(ctx, []models.Enquiry{{ID: 1, Qty: decimal.NewFromInt(5)}}); err != nil {
		t.Fatalf("SaveEnquiryPending: %v", err)
	}
	if err := repo.SaveFollowUpHistory(ctx, []models.FollowUpEntry{{ID: 2, Status: models.StatusGetOut}}); err != nil {
		t.Fatalf("SaveFollowUpHistory: %v", err)
	}

	snap, err := repo.RawSnapshot(ctx)
	if err != nil {
		t.Fatalf("RawSnapshot: %v", err)
	}
	if len(snap) != 2 {
		t.Fatalf("snapshot has %d ledgers, want 2", len(snap))
	}

	// restore into a fresh repository
	other := newTestRepo()
	if err := other.RestoreSnapshot(ctx, snap); err != nil {
		t.Fatalf("RestoreSnapshot: %v", err)
	}

	pending, err := other.EnquiryPending(ctx)
	if err != nil {
		t.Fatalf("EnquiryPending after restore: %v", err)
	}
	if len(pending) != 1 || pending[0].ID != 1 {
		t.Errorf("restored pending = %+v, want the original enquiry", pending)
	}
}
