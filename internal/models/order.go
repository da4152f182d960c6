package models

import "github.com/shopspring/decimal"

// Enquiry is the stage-1 record and the root of the pipeline. Its ID is
// assigned once at creation and is the sole join key carried through every
// downstream stage; display serials (PM-###) are recomputed per response
// and never used for joins.
type Enquiry struct {
	ID          int64           `json:"id"`
	Date        string          `json:"date"`
	ProjectName string          `json:"projectName"`
	PartyName   string          `json:"partyName"`
	Location    string          `json:"location"`
	Qty         decimal.Decimal `json:"qty"`
	BidPrice    decimal.Decimal `json:"bidPrice"`
	Status      string          `json:"status"`
	Reason      string          `json:"reason"`

	// Stamped when the enquiry is settled into history by the dispatch-sum
	// reconciliation.
	SerialNo           string          `json:"serialNo,omitempty"`
	CompletedDate      string          `json:"completedDate,omitempty"`
	TotalDispatchedQty decimal.Decimal `json:"totalDispatchedQty"`
}

// RealisationOrder is a stage-2 pending record: the originating enquiry
// plus the running remaining quantity. It exists only while
// 0 < RemainingQty <= OriginalQty; once remaining hits zero the record is
// removed from the pending ledger.
type RealisationOrder struct {
	Enquiry
	OriginalQty  decimal.Decimal `json:"originalQty"`
	RemainingQty decimal.Decimal `json:"remainingQty"`
}

// Consignee is one delivery destination on a realisation. A realisation
// captures one to five of them; the delivery-order stage later picks one.
type Consignee struct {
	Name    string `json:"name"`
	Address string `json:"address"`
}

// RealisationEntry is a stage-2 history record: one (possibly partial)
// realisation of an enquiry. It gets its own ID, which becomes the join
// key for stages 3-6; EnquiryID points back at the stage-1 record.
type RealisationEntry struct {
	ID                    int64           `json:"id"`
	EnquiryID             int64           `json:"enquiryId"`
	SerialNo              string          `json:"serialNo"`
	Date                  string          `json:"date"`
	ProjectName           string          `json:"projectName"`
	PartyName             string          `json:"partyName"`
	Location              string          `json:"location"`
	Qty                   decimal.Decimal `json:"qty"`
	PoPrice               decimal.Decimal `json:"poPrice"`
	PoNumber              string          `json:"poNumber"`
	PoValidation          string          `json:"poValidation"`
	PoPdf                 string          `json:"poPdf,omitempty"`
	GredType              string          `json:"gredType"`
	MaterialType          string          `json:"materialType"`
	PartyAddress          string          `json:"partyAddress"`
	ShippingAddress       string          `json:"shippingAddress"`
	GstNo                 string          `json:"gstNo"`
	ReceiverPersonName    string          `json:"receiverPersonName"`
	ReceiverContactNumber string          `json:"receiverContactNumber"`
	Consignees            []Consignee     `json:"consignees"`
	CompletedDate         string          `json:"completedDate"`
}

// ConsigneeByName returns the consignee with the given name, if any.
func (r *RealisationEntry) ConsigneeByName(name string) (Consignee, bool) {
	for _, c := range r.Consignees {
		if c.Name == name {
			return c, true
		}
	}
	return Consignee{}, false
}

// DeliveryEntry is a stage-3 history record: a realisation committed to a
// single consignee with a delivery quantity.
type DeliveryEntry struct {
	ID                    int64           `json:"id"`
	EnquiryID             int64           `json:"enquiryId"`
	SerialNo              string          `json:"serialNo"`
	OrderNo               string          `json:"orderNo"`
	Date                  string          `json:"date"`
	ProjectName           string          `json:"projectName"`
	PartyName             string          `json:"partyName"`
	Qty                   decimal.Decimal `json:"qty"`
	DeliveryQty           decimal.Decimal `json:"deliveryQty"`
	PoPrice               decimal.Decimal `json:"poPrice"`
	PoValidation          string          `json:"poValidation"`
	PoPdf                 string          `json:"poPdf,omitempty"`
	GredType              string          `json:"gredType"`
	MaterialType          string          `json:"materialType"`
	PartyAddress          string          `json:"partyAddress"`
	ShippingAddress       string          `json:"shippingAddress"`
	GstNo                 string          `json:"gstNo"`
	ReceiverPersonName    string          `json:"receiverPersonName"`
	ReceiverContactNumber string          `json:"receiverContactNumber"`
	ConsigneeName         string          `json:"consigneeName"`
	ConsigneeAddress      string          `json:"consigneeAddress"`
	CompletedDate         string          `json:"completedDate"`
}

// VehiclePlacement is a stage-4 history record: a delivery assigned to a
// vehicle and transporter.
type VehiclePlacement struct {
	ID                    int64           `json:"id"`
	EnquiryID             int64           `json:"enquiryId"`
	SerialNo              string          `json:"serialNo"`
	OrderNo               string          `json:"orderNo"`
	Date                  string          `json:"date"`
	ProjectName           string          `json:"projectName"`
	PartyName             string          `json:"partyName"`
	GredType              string          `json:"gredType"`
	MaterialType          string          `json:"materialType"`
	PartyAddress          string          `json:"partyAddress"`
	ShippingAddress       string          `json:"shippingAddress"`
	GstNo                 string          `json:"gstNo"`
	ReceiverPersonName    string          `json:"receiverPersonName"`
	ReceiverContactNumber string          `json:"receiverContactNumber"`
	DeliveryQty           decimal.Decimal `json:"deliveryQty"`
	ConsigneeName         string          `json:"consigneeName"`
	ConsigneeAddress      string          `json:"consigneeAddress"`
	DispatchQty           decimal.Decimal `json:"dispatchQty"`
	VehicleNo             string          `json:"vehicleNo"`
	TransporterDetails    string          `json:"transporterDetails"`
	CompletedDate         string          `json:"completedDate"`
}

// FollowUpEntry is a stage-5 history record. A placement can accumulate
// several of these, one per status change; only a "Get Out" entry removes
// the placement from follow-up pending and opens the receiving stage.
type FollowUpEntry struct {
	ID                    int64           `json:"id"`
	EnquiryID             int64           `json:"enquiryId"`
	FollowUpNo            string          `json:"followUpNo"`
	SerialNo              string          `json:"serialNo"`
	OrderNo               string          `json:"orderNo"`
	Date                  string          `json:"date"`
	ProjectName           string          `json:"projectName"`
	PartyName             string          `json:"partyName"`
	MaterialType          string          `json:"materialType"`
	PartyAddress          string          `json:"partyAddress"`
	ShippingAddress       string          `json:"shippingAddress"`
	GstNo                 string          `json:"gstNo"`
	ReceiverPersonName    string          `json:"receiverPersonName"`
	ReceiverContactNumber string          `json:"receiverContactNumber"`
	DeliveryQty           decimal.Decimal `json:"deliveryQty"`
	VehicleNo             string          `json:"vehicleNo"`
	TransporterDetails    string          `json:"transporterDetails"`
	Status                string          `json:"status"`
	DispatchQty           decimal.Decimal `json:"dispatchQty"`
	Remarks               string          `json:"remarks,omitempty"`
	CompletedDate         string          `json:"completedDate"`
}

// ReceivingEntry is a stage-6 history record, terminal for the pipeline.
type ReceivingEntry struct {
	ID                    int64           `json:"id"`
	EnquiryID             int64           `json:"enquiryId"`
	SerialNo              string          `json:"serialNo"`
	OrderNo               string          `json:"orderNo"`
	Date                  string          `json:"date"`
	ProjectName           string          `json:"projectName"`
	PartyName             string          `json:"partyName"`
	PartyAddress          string          `json:"partyAddress"`
	ShippingAddress       string          `json:"shippingAddress"`
	GstNo                 string          `json:"gstNo"`
	ReceiverPersonName    string          `json:"receiverPersonName"`
	ReceiverContactNumber string          `json:"receiverContactNumber"`
	Qty                   decimal.Decimal `json:"qty"`
	PoPrice               decimal.Decimal `json:"poPrice"`
	MaterialType          string          `json:"materialType"`
	TransporterDetails    string          `json:"transporterDetails"`
	VehicleNo             string          `json:"vehicleNo"`
	Status                string          `json:"status"`
	DispatchQty           decimal.Decimal `json:"dispatchQty"`
	LrWithGrn             string          `json:"lrWithGrn"`
	QtyReceived           decimal.Decimal `json:"qtyReceived"`
	Condition             string          `json:"condition"`
	ReceivedDate          string          `json:"receivedDate"`
}
