package pipeline

import (
	"strings"

	"mis-backend/internal/models"
	"mis-backend/internal/timeutil"

	"github.com/shopspring/decimal"
)

// IDSet builds the membership set used for carry-forward exclusion.
func IDSet[T any](records []T, id func(T) int64) map[int64]bool {
	set := make(map[int64]bool, len(records))
	for _, r := range records {
		set[id(r)] = true
	}
	return set
}

// CarryForward derives a downstream stage's pending set: every upstream
// history record whose ID is not already in the downstream history,
// preserving upstream insertion order. This is recomputed on every load;
// it is a pure function of the two persisted histories.
func CarryForward[T any](upstream []T, downstreamIDs map[int64]bool, id func(T) int64) []T {
	pending := make([]T, 0, len(upstream))
	for _, r := range upstream {
		if downstreamIDs[id(r)] {
			continue
		}
		pending = append(pending, r)
	}
	return pending
}

// LatestStatusByID reduces a follow-up history to each record's most
// recent status. History is append-ordered, so the last entry wins; a
// record re-enters consideration every time a new entry is stamped.
func LatestStatusByID(history []models.FollowUpEntry) map[int64]string {
	latest := make(map[int64]string, len(history))
	for _, e := range history {
		latest[e.ID] = e.Status
	}
	return latest
}

// GetOutEntries filters a follow-up history down to the entries eligible
// for the receiving stage: the record's latest status must be "Get Out",
// and the returned entry is that terminal one. Records still in "Get In",
// "Loading" or "Unloading" stay invisible to receiving until a later
// entry re-stamps them.
func GetOutEntries(history []models.FollowUpEntry) []models.FollowUpEntry {
	latest := LatestStatusByID(history)
	seen := make(map[int64]bool, len(history))
	out := make([]models.FollowUpEntry, 0, len(history))
	for _, e := range history {
		if e.Status != models.StatusGetOut || latest[e.ID] != models.StatusGetOut {
			continue
		}
		if seen[e.ID] {
			continue
		}
		seen[e.ID] = true
		out = append(out, e)
	}
	return out
}

// SettleResult is the outcome of the enquiry-stage retrospective
// reconciliation pass.
type SettleResult struct {
	Pending []models.Enquiry
	Settled []models.Enquiry
}

// SettleEnquiries runs the batch form of the conservation check: for each
// pending enquiry, sum the dispatch quantities of its follow-up history
// entries (joined by the stable enquiry ID) and settle the enquiry into
// history once the cumulative dispatched quantity meets or exceeds the
// enquiry quantity. Enquiries already in history are never settled twice.
func SettleEnquiries(pending []models.Enquiry, history []models.Enquiry, followUps []models.FollowUpEntry, completedDate string) SettleResult {
	dispatched := make(map[int64]decimal.Decimal, len(followUps))
	for _, f := range followUps {
		dispatched[f.EnquiryID] = dispatched[f.EnquiryID].Add(f.DispatchQty)
	}
	historyIDs := IDSet(history, func(e models.Enquiry) int64 { return e.ID })

	result := SettleResult{Pending: make([]models.Enquiry, 0, len(pending))}
	for i, e := range pending {
		total := dispatched[e.ID]
		if total.GreaterThanOrEqual(e.Qty) && !historyIDs[e.ID] {
			settled := e
			settled.SerialNo = Serial(SerialPrefixEnquiry, i)
			settled.CompletedDate = completedDate
			settled.TotalDispatchedQty = total
			result.Settled = append(result.Settled, settled)
			continue
		}
		result.Pending = append(result.Pending, e)
	}
	return result
}

// MatchFilter applies a stage listing filter to one record's display
// fields. The date range only applies when both ends are present, and an
// unparseable stored date never hides the record.
func MatchFilter(f models.ListFilter, projectName, partyName, date string) bool {
	if f.Empty() {
		return true
	}
	if f.ProjectName != "" && !containsFold(projectName, f.ProjectName) {
		return false
	}
	if f.PartyName != "" && !containsFold(partyName, f.PartyName) {
		return false
	}
	if f.StartDate != "" && f.EndDate != "" {
		return timeutil.InRange(date, f.StartDate, f.EndDate)
	}
	return true
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}
