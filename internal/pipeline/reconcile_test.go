package pipeline

import (
	"testing"

	"mis-backend/internal/models"
)

func TestCarryForward(t *testing.T) {
	upstream := []models.RealisationEntry{
		{ID: 1, ProjectName: "A"},
		{ID: 2, ProjectName: "B"},
		{ID: 3, ProjectName: "C"},
	}
	downstream := map[int64]bool{2: true}

	got := CarryForward(upstream, downstream, func(e models.RealisationEntry) int64 { return e.ID })

	if len(got) != 2 {
		t.Fatalf("CarryForward returned %d records, want 2", len(got))
	}
	if got[0].ID != 1 || got[1].ID != 3 {
		t.Errorf("CarryForward order = [%d %d], want [1 3]", got[0].ID, got[1].ID)
	}
}

func TestCarryForwardEmptyDownstream(t *testing.T) {
	upstream := []models.DeliveryEntry{{ID: 7}, {ID: 8}}
	got := CarryForward(upstream, nil, func(e models.DeliveryEntry) int64 { return e.ID })
	if len(got) != len(upstream) {
		t.Errorf("CarryForward with empty downstream returned %d records, want %d", len(got), len(upstream))
	}
}

func TestLatestStatusByID(t *testing.T) {
	history := []models.FollowUpEntry{
		{ID: 1, Status: models.StatusGetIn},
		{ID: 2, Status: models.StatusGetIn},
		{ID: 1, Status: models.StatusLoading},
		{ID: 1, Status: models.StatusGetOut},
	}

	latest := LatestStatusByID(history)
	if latest[1] != models.StatusGetOut {
		t.Errorf("latest[1] = %q, want %q", latest[1], models.StatusGetOut)
	}
	if latest[2] != models.StatusGetIn {
		t.Errorf("latest[2] = %q, want %q", latest[2], models.StatusGetIn)
	}
}

func TestGetOutEntries(t *testing.T) {
	history := []models.FollowUpEntry{
		{ID: 1, Status: models.StatusGetIn},
		{ID: 2, Status: models.StatusGetOut, DispatchQty: d("60")},
		{ID: 1, Status: models.StatusLoading},
		{ID: 3, Status: models.StatusGetOut, DispatchQty: d("40")},
	}

	out := GetOutEntries(history)
	if len(out) != 2 {
		t.Fatalf("GetOutEntries returned %d entries, want 2", len(out))
	}
	if out[0].ID != 2 || out[1].ID != 3 {
		t.Errorf("GetOutEntries IDs = [%d %d], want [2 3]", out[0].ID, out[1].ID)
	}
}

func TestGetOutEntriesIgnoresStale(t *testing.T) {
	// a record whose Get Out was followed by another status is not eligible
	history := []models.FollowUpEntry{
		{ID: 1, Status: models.StatusGetOut},
		{ID: 1, Status: models.StatusUnloading},
	}
	if out := GetOutEntries(history); len(out) != 0 {
		t.Errorf("GetOutEntries returned %d entries for re-stamped record, want 0", len(out))
	}
}

func TestSettleEnquiries(t *testing.T) {
	pending := []models.Enquiry{
		{ID: 10, Qty: d("100")},
		{ID: 20, Qty: d("50")},
	}
	followUps := []models.FollowUpEntry{
		{ID: 100, EnquiryID: 10, Status: models.StatusGetOut, DispatchQty: d("60")},
		{ID: 101, EnquiryID: 10, Status: models.StatusGetOut, DispatchQty: d("40")},
		{ID: 102, EnquiryID: 20, Status: models.StatusGetOut, DispatchQty: d("30")},
	}

	result := SettleEnquiries(pending, nil, followUps, "01/01/2026")

	if len(result.Settled) != 1 || result.Settled[0].ID != 10 {
		t.Fatalf("Settled = %+v, want exactly enquiry 10", result.Settled)
	}
	if len(result.Pending) != 1 || result.Pending[0].ID != 20 {
		t.Fatalf("Pending = %+v, want exactly enquiry 20", result.Pending)
	}

	settled := result.Settled[0]
	if !settled.TotalDispatchedQty.Equal(d("100")) {
		t.Errorf("TotalDispatchedQty = %s, want 100", settled.TotalDispatchedQty)
	}
	if settled.CompletedDate != "01/01/2026" {
		t.Errorf("CompletedDate = %q", settled.CompletedDate)
	}
	if settled.SerialNo == "" {
		t.Error("SerialNo not stamped on settled enquiry")
	}
}

func TestSettleEnquiriesNeverTwice(t *testing.T) {
	pending := []models.Enquiry{{ID: 10, Qty: d("100")}}
	history := []models.Enquiry{{ID: 10, Qty: d("100")}}
	followUps := []models.FollowUpEntry{
		{ID: 100, EnquiryID: 10, Status: models.StatusGetOut, DispatchQty: d("100")},
	}

	result := SettleEnquiries(pending, history, followUps, "01/01/2026")
	if len(result.Settled) != 0 {
		t.Errorf("enquiry already in history was settled again: %+v", result.Settled)
	}
}

func TestMatchFilter(t *testing.T) {
	tests := []struct {
		name   string
		filter models.ListFilter
		want   bool
	}{
		{name: "empty filter", filter: models.ListFilter{}, want: true},
		{name: "project substring", filter: models.ListFilter{ProjectName: "high"}, want: true},
		{name: "project mismatch", filter: models.ListFilter{ProjectName: "bridge"}, want: false},
		{name: "party case-insensitive", filter: models.ListFilter{PartyName: "ACME"}, want: true},
		{name: "date in range", filter: models.ListFilter{StartDate: "01/06/2026", EndDate: "30/06/2026"}, want: true},
		{name: "date out of range", filter: models.ListFilter{StartDate: "01/07/2026", EndDate: "31/07/2026"}, want: false},
		{name: "open ended range ignored", filter: models.ListFilter{StartDate: "01/07/2026"}, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MatchFilter(tt.filter, "Highway Expansion", "Acme Infra", "15/06/2026")
			if got != tt.want {
				t.Errorf("MatchFilter() = %v, want %v", got, tt.want)
			}
		})
	}
}
