package models

// Store keys, one per stage ledger. Stage 1 and 2 persist their own
// pending sets; stages 3-6 derive pending from the upstream history on
// every load and persist only history.
const (
	KeyEnquiryPending     = "orderEnquiries"
	KeyEnquiryHistory     = "enquiryHistory"
	KeyRealisationPending = "orderRealisationPending"
	KeyRealisationHistory = "orderRealisationHistory"
	KeyDeliveryHistory    = "deliveryOrderHistory"
	KeyVehicleHistory     = "vehiclePlacedHistory"
	KeyFollowUpHistory    = "followUpHistory"
	KeyReceivingHistory   = "receivingHistory"
)

// AllStageKeys lists every persisted ledger, in pipeline order. Used by
// backup snapshots and the health probe.
var AllStageKeys = []string{
	KeyEnquiryPending,
	KeyEnquiryHistory,
	KeyRealisationPending,
	KeyRealisationHistory,
	KeyDeliveryHistory,
	KeyVehicleHistory,
	KeyFollowUpHistory,
	KeyReceivingHistory,
}

// Enquiry statuses.
const (
	StatusOrderReceived = "Order Received"
	StatusNotReceived   = "Not"
)

// Follow-up statuses. StatusGetOut is the terminal status that makes a
// record eligible for the receiving stage.
const (
	StatusGetIn     = "Get In"
	StatusLoading   = "Loading"
	StatusUnloading = "Unloading"
	StatusGetOut    = "Get Out"
)

// FollowUpStatuses are the accepted follow-up form values.
var FollowUpStatuses = []string{StatusGetIn, StatusLoading, StatusUnloading, StatusGetOut}

// ListFilter narrows stage listings. Name filters are case-insensitive
// substring matches; the date range applies only when both ends are set.
type ListFilter struct {
	ProjectName string
	PartyName   string
	StartDate   string
	EndDate     string
}

func (f ListFilter) Empty() bool {
	return f.ProjectName == "" && f.PartyName == "" && (f.StartDate == "" || f.EndDate == "")
}

// StageCounts is one dashboard cell: records awaiting action vs acted upon.
type StageCounts struct {
	Pending int `json:"pending"`
	History int `json:"history"`
}
