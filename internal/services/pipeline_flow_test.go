package services

import (
	"context"
	"errors"
	"testing"

	"mis-backend/internal/models"
	"mis-backend/internal/pipeline"
	"mis-backend/internal/repositories"
	"mis-backend/internal/store"

	"github.com/shopspring/decimal"
)

type fixture struct {
	repo      *repositories.StageRepository
	enquiry   *EnquiryService
	real      *RealisationService
	delivery  *DeliveryService
	vehicle   *VehicleService
	followUp  *FollowUpService
	receiving *ReceivingService
}

func newFixture() *fixture {
	repo := repositories.NewStageRepository(store.NewMemoryStore())
	return &fixture{
		repo:      repo,
		enquiry:   NewEnquiryService(repo),
		real:      NewRealisationService(repo),
		delivery:  NewDeliveryService(repo),
		vehicle:   NewVehicleService(repo),
		followUp:  NewFollowUpService(repo),
		receiving: NewReceivingService(repo),
	}
}

func qty(n int64) decimal.Decimal { return decimal.NewFromInt(n) }

var noFilter = models.ListFilter{}

func (f *fixture) mustCreateEnquiry(t *testing.T, project string, q int64) *models.Enquiry {
	t.Helper()
	enquiry, err := f.enquiry.Create(context.Background(), &models.CreateEnquiryRequest{
		ProjectName: project,
		PartyName:   "Acme Infra",
		Location:    "Pune",
		Qty:         qty(q),
		BidPrice:    qty(500),
		Status:      models.StatusOrderReceived,
	})
	if err != nil {
		t.Fatalf("Create enquiry: %v", err)
	}
	return enquiry
}

func (f *fixture) mustRealise(t *testing.T, enquiryID int64, q int64) *models.RealisationEntry {
	t.Helper()
	entry, err := f.real.Realise(context.Background(), &models.RealiseOrderRequest{
		EnquiryID: enquiryID,
		Qty:       qty(q),
		PoPrice:   qty(480),
		PoNumber:  "PO-7781",
		Consignees: []models.Consignee{
			{Name: "Depot A", Address: "Plot 4, MIDC"},
		},
	})
	if err != nil {
		t.Fatalf("Realise %d of enquiry %d: %v", q, enquiryID, err)
	}
	return entry
}

// mustDispatch walks one realisation entry through delivery, vehicle
// placement and a Get Out follow-up.
func (f *fixture) mustDispatch(t *testing.T, orderID int64, q int64) {
	t.Helper()
	ctx := context.Background()

	if _, err := f.delivery.Create(ctx, &models.CreateDeliveryRequest{
		OrderID:       orderID,
		DeliveryQty:   qty(q),
		ConsigneeName: "Depot A",
	}); err != nil {
		t.Fatalf("Create delivery for %d: %v", orderID, err)
	}
	if _, err := f.vehicle.Place(ctx, &models.PlaceVehicleRequest{
		OrderID:            orderID,
		VehicleNo:          "MH12AB1234",
		TransporterDetails: "Sharma Logistics",
	}); err != nil {
		t.Fatalf("Place vehicle for %d: %v", orderID, err)
	}
	if _, err := f.followUp.Submit(ctx, &models.FollowUpRequest{
		OrderID:     orderID,
		Status:      models.StatusGetOut,
		DispatchQty: qty(q),
	}); err != nil {
		t.Fatalf("Get Out for %d: %v", orderID, err)
	}
}

func TestFullPipelinePartialRealisation(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	enquiry := f.mustCreateEnquiry(t, "Highway Expansion", 100)

	// the received enquiry appears in realisation pending with full qty
	pending, err := f.real.Pending(ctx, noFilter)
	if err != nil {
		t.Fatalf("Pending: %v", err)
	}
	if len(pending) != 1 || !pending[0].RemainingQty.Equal(qty(100)) {
		t.Fatalf("realisation pending = %+v, want one order with remaining 100", pending)
	}

	// realise 60, remaining drops to 40
	entry1 := f.mustRealise(t, enquiry.ID, 60)
	pending, _ = f.real.Pending(ctx, noFilter)
	if len(pending) != 1 || !pending[0].RemainingQty.Equal(qty(40)) {
		t.Fatalf("after 60: pending = %+v, want remaining 40", pending)
	}

	// 150 against remaining 40 is rejected and changes nothing
	_, err = f.real.Realise(ctx, &models.RealiseOrderRequest{
		EnquiryID:  enquiry.ID,
		Qty:        qty(150),
		PoNumber:   "PO-7782",
		Consignees: []models.Consignee{{Name: "Depot A", Address: "Plot 4"}},
	})
	if !errors.Is(err, pipeline.ErrQtyExceedsRemaining) {
		t.Fatalf("over-realisation error = %v, want ErrQtyExceedsRemaining", err)
	}
	pending, _ = f.real.Pending(ctx, noFilter)
	if len(pending) != 1 || !pending[0].RemainingQty.Equal(qty(40)) {
		t.Fatalf("rejected submission changed state: %+v", pending)
	}
	history, _ := f.real.History(ctx, noFilter)
	if len(history) != 1 {
		t.Fatalf("rejected submission appended history: %d entries", len(history))
	}

	// realise the final 40, the order leaves pending
	entry2 := f.mustRealise(t, enquiry.ID, 40)
	pending, _ = f.real.Pending(ctx, noFilter)
	if len(pending) != 0 {
		t.Fatalf("exhausted order still pending: %+v", pending)
	}

	// the exhausted enquiry must not re-enter the ledger on reload
	pending, _ = f.real.Pending(ctx, noFilter)
	if len(pending) != 0 {
		t.Fatalf("exhausted enquiry re-entered pending: %+v", pending)
	}

	// both realisations flow downstream
	f.mustDispatch(t, entry1.ID, 60)
	f.mustDispatch(t, entry2.ID, 40)

	// receive both
	for _, e := range []*models.RealisationEntry{entry1, entry2} {
		recvPending, err := f.receiving.Pending(ctx, noFilter)
		if err != nil {
			t.Fatalf("receiving pending: %v", err)
		}
		found := false
		for _, p := range recvPending {
			if p.ID == e.ID {
				found = true
			}
		}
		if !found {
			t.Fatalf("gone-out order %d missing from receiving pending", e.ID)
		}
		if _, err := f.receiving.Receive(ctx, &models.ReceiveRequest{
			OrderID:     e.ID,
			LrWithGrn:   "LR-1001",
			QtyReceived: e.Qty,
		}); err != nil {
			t.Fatalf("Receive %d: %v", e.ID, err)
		}
	}

	// 60 + 40 dispatched settles the enquiry into history
	enqPending, err := f.enquiry.Pending(ctx, noFilter)
	if err != nil {
		t.Fatalf("enquiry pending: %v", err)
	}
	if len(enqPending) != 0 {
		t.Fatalf("fully dispatched enquiry still pending: %+v", enqPending)
	}
	enqHistory, _ := f.enquiry.History(ctx, noFilter)
	if len(enqHistory) != 1 {
		t.Fatalf("enquiry history has %d records, want 1", len(enqHistory))
	}
	settled := enqHistory[0]
	if settled.ID != enquiry.ID {
		t.Errorf("settled ID = %d, want %d", settled.ID, enquiry.ID)
	}
	if !settled.TotalDispatchedQty.Equal(qty(100)) {
		t.Errorf("TotalDispatchedQty = %s, want 100", settled.TotalDispatchedQty)
	}
	if settled.CompletedDate == "" || settled.SerialNo == "" {
		t.Errorf("settled enquiry missing stamp: %+v", settled)
	}
}

func TestGetOutGate(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	enquiry := f.mustCreateEnquiry(t, "Metro Line 3", 50)
	if _, err := f.real.Pending(ctx, noFilter); err != nil {
		t.Fatal(err)
	}
	entry := f.mustRealise(t, enquiry.ID, 50)

	if _, err := f.delivery.Create(ctx, &models.CreateDeliveryRequest{
		OrderID:       entry.ID,
		DeliveryQty:   qty(50),
		ConsigneeName: "Depot A",
	}); err != nil {
		t.Fatal(err)
	}
	if _, err := f.vehicle.Place(ctx, &models.PlaceVehicleRequest{
		OrderID:            entry.ID,
		VehicleNo:          "MH14XY9876",
		TransporterDetails: "Verma Carriers",
	}); err != nil {
		t.Fatal(err)
	}

	// non-terminal statuses keep the order out of receiving
	for _, status := range []string{models.StatusGetIn, models.StatusLoading} {
		if _, err := f.followUp.Submit(ctx, &models.FollowUpRequest{OrderID: entry.ID, Status: status}); err != nil {
			t.Fatalf("Submit %s: %v", status, err)
		}
		recvPending, _ := f.receiving.Pending(ctx, noFilter)
		if len(recvPending) != 0 {
			t.Fatalf("order visible to receiving after %q", status)
		}
	}

	// the order is still in follow-up pending
	fuPending, _ := f.followUp.Pending(ctx, noFilter)
	if len(fuPending) != 1 {
		t.Fatalf("follow-up pending = %d, want 1", len(fuPending))
	}

	if _, err := f.followUp.Submit(ctx, &models.FollowUpRequest{
		OrderID:     entry.ID,
		Status:      models.StatusGetOut,
		DispatchQty: qty(50),
	}); err != nil {
		t.Fatal(err)
	}

	// Get Out removes it from follow-up pending and opens receiving
	fuPending, _ = f.followUp.Pending(ctx, noFilter)
	if len(fuPending) != 0 {
		t.Fatalf("gone-out order still in follow-up pending: %+v", fuPending)
	}
	recvPending, _ := f.receiving.Pending(ctx, noFilter)
	if len(recvPending) != 1 {
		t.Fatalf("receiving pending = %d, want 1", len(recvPending))
	}

	// a second Get Out on the same order is rejected
	if _, err := f.followUp.Submit(ctx, &models.FollowUpRequest{
		OrderID: entry.ID,
		Status:  models.StatusGetOut,
	}); err == nil {
		t.Error("second Get Out on the same order was accepted")
	}
}

func TestDeletedEnquiryNeverAppearsDownstream(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	enquiry := f.mustCreateEnquiry(t, "Doomed Project", 10)

	// let it enter the realisation ledger first
	if _, err := f.real.Pending(ctx, noFilter); err != nil {
		t.Fatal(err)
	}

	if err := f.enquiry.Delete(ctx, enquiry.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	pending, err := f.real.Pending(ctx, noFilter)
	if err != nil {
		t.Fatal(err)
	}
	for _, p := range pending {
		if p.ID == enquiry.ID {
			t.Fatal("deleted enquiry still in realisation pending")
		}
	}

	enqPending, _ := f.enquiry.Pending(ctx, noFilter)
	if len(enqPending) != 0 {
		t.Errorf("deleted enquiry still pending: %+v", enqPending)
	}
}

func TestPendingAndHistoryDisjoint(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	enquiry := f.mustCreateEnquiry(t, "Port Upgrade", 30)
	if _, err := f.real.Pending(ctx, noFilter); err != nil {
		t.Fatal(err)
	}
	entry := f.mustRealise(t, enquiry.ID, 30)
	f.mustDispatch(t, entry.ID, 30)

	delPending, _ := f.delivery.Pending(ctx, noFilter)
	delHistory, _ := f.delivery.History(ctx, noFilter)
	for _, p := range delPending {
		for _, h := range delHistory {
			if p.ID == h.ID {
				t.Fatalf("order %d in both delivery pending and history", p.ID)
			}
		}
	}

	vehPending, _ := f.vehicle.Pending(ctx, noFilter)
	vehHistory, _ := f.vehicle.History(ctx, noFilter)
	for _, p := range vehPending {
		for _, h := range vehHistory {
			if p.ID == h.ID {
				t.Fatalf("order %d in both vehicle pending and history", p.ID)
			}
		}
	}
}

func TestEnquiryValidation(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	tests := []struct {
		name string
		req  models.CreateEnquiryRequest
	}{
		{
			name: "missing party",
			req:  models.CreateEnquiryRequest{ProjectName: "P", Qty: qty(5), Status: models.StatusOrderReceived},
		},
		{
			name: "zero qty",
			req:  models.CreateEnquiryRequest{ProjectName: "P", PartyName: "A", Qty: qty(0), Status: models.StatusOrderReceived},
		},
		{
			name: "unknown status",
			req:  models.CreateEnquiryRequest{ProjectName: "P", PartyName: "A", Qty: qty(5), Status: "Maybe"},
		},
		{
			name: "not received without reason",
			req:  models.CreateEnquiryRequest{ProjectName: "P", PartyName: "A", Qty: qty(5), Status: models.StatusNotReceived},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := f.enquiry.Create(ctx, &tt.req); err == nil {
				t.Error("invalid enquiry was accepted")
			}
		})
	}
}

func TestNotReceivedEnquiryStaysOutOfRealisation(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	if _, err := f.enquiry.Create(ctx, &models.CreateEnquiryRequest{
		ProjectName: "Lost Bid",
		PartyName:   "Acme Infra",
		Qty:         qty(20),
		Status:      models.StatusNotReceived,
		Reason:      "Price too high",
	}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	pending, err := f.real.Pending(ctx, noFilter)
	if err != nil {
		t.Fatal(err)
	}
	if len(pending) != 0 {
		t.Errorf("not-received enquiry entered realisation pending: %+v", pending)
	}
}

func TestOverReceiptRejected(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	enquiry := f.mustCreateEnquiry(t, "Dam Repair", 25)
	if _, err := f.real.Pending(ctx, noFilter); err != nil {
		t.Fatal(err)
	}
	entry := f.mustRealise(t, enquiry.ID, 25)
	f.mustDispatch(t, entry.ID, 25)

	if _, err := f.receiving.Receive(ctx, &models.ReceiveRequest{
		OrderID:     entry.ID,
		LrWithGrn:   "LR-9",
		QtyReceived: qty(30),
	}); !errors.Is(err, pipeline.ErrQtyExceedsRemaining) {
		t.Fatalf("over-receipt error = %v, want ErrQtyExceedsRemaining", err)
	}

	// short receipt is allowed
	if _, err := f.receiving.Receive(ctx, &models.ReceiveRequest{
		OrderID:     entry.ID,
		LrWithGrn:   "LR-9",
		QtyReceived: qty(24),
		Condition:   "one bag damaged",
	}); err != nil {
		t.Fatalf("short receipt rejected: %v", err)
	}

	// and the order cannot be received twice
	if _, err := f.receiving.Receive(ctx, &models.ReceiveRequest{
		OrderID:     entry.ID,
		LrWithGrn:   "LR-9",
		QtyReceived: qty(1),
	}); err == nil {
		t.Error("order received twice")
	}
}
