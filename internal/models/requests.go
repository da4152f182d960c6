package models

import "github.com/shopspring/decimal"

// CreateEnquiryRequest is the stage-1 form payload.
type CreateEnquiryRequest struct {
	ProjectName string          `json:"projectName"`
	PartyName   string          `json:"partyName"`
	Location    string          `json:"location"`
	Qty         decimal.Decimal `json:"qty"`
	BidPrice    decimal.Decimal `json:"bidPrice"`
	Status      string          `json:"status"`
	Reason      string          `json:"reason"`
}

// RealiseOrderRequest realises (part of) a pending enquiry against a PO.
type RealiseOrderRequest struct {
	EnquiryID             int64           `json:"enquiryId"`
	Qty                   decimal.Decimal `json:"qty"`
	PoPrice               decimal.Decimal `json:"poPrice"`
	PoNumber              string          `json:"poNumber"`
	PoValidation          string          `json:"poValidation"`
	PoPdf                 string          `json:"poPdf"`
	GredType              string          `json:"gredType"`
	MaterialType          string          `json:"materialType"`
	Location              string          `json:"location"`
	PartyAddress          string          `json:"partyAddress"`
	ShippingAddress       string          `json:"shippingAddress"`
	GstNo                 string          `json:"gstNo"`
	ReceiverPersonName    string          `json:"receiverPersonName"`
	ReceiverContactNumber string          `json:"receiverContactNumber"`
	Consignees            []Consignee     `json:"consignees"`
}

// CreateDeliveryRequest commits a realised order to one consignee.
// OrderID is the realisation entry ID.
type CreateDeliveryRequest struct {
	OrderID       int64           `json:"orderId"`
	DeliveryQty   decimal.Decimal `json:"deliveryQty"`
	ConsigneeName string          `json:"consigneeName"`
}

// PlaceVehicleRequest assigns a vehicle to a pending delivery order.
// DispatchQty defaults to the delivery quantity when omitted.
type PlaceVehicleRequest struct {
	OrderID            int64           `json:"orderId"`
	VehicleNo          string          `json:"vehicleNo"`
	TransporterDetails string          `json:"transporterDetails"`
	DispatchQty        decimal.Decimal `json:"dispatchQty"`
}

// FollowUpRequest stamps a status onto a placed vehicle. DispatchQty is
// required only for "Get Out".
type FollowUpRequest struct {
	OrderID     int64           `json:"orderId"`
	Status      string          `json:"status"`
	DispatchQty decimal.Decimal `json:"dispatchQty"`
	Remarks     string          `json:"remarks"`
}

// ReceiveRequest closes out a dispatched order at the receiving end.
type ReceiveRequest struct {
	OrderID     int64           `json:"orderId"`
	LrWithGrn   string          `json:"lrWithGrn"`
	QtyReceived decimal.Decimal `json:"qtyReceived"`
	Condition   string          `json:"condition"`
}

// LoginRequest is the single-credential admin login payload.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse carries the issued token.
type LoginResponse struct {
	Token string `json:"token"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}
