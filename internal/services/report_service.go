package services

import (
	"bytes"
	"context"
	"fmt"

	"mis-backend/internal/timeutil"

	"github.com/jung-kurt/gofpdf/v2"
)

// ReportService renders delivery orders as printable PDFs.
type ReportService struct {
	delivery *DeliveryService
}

func NewReportService(delivery *DeliveryService) *ReportService {
	return &ReportService{delivery: delivery}
}

// DeliveryOrderPDF renders one delivery order.
func (s *ReportService) DeliveryOrderPDF(ctx context.Context, id int64) ([]byte, error) {
	entry, err := s.delivery.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(10, 10, 10)
	pdf.AddPage()

	// Header
	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(190, 10, "Delivery Order", "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(190, 6, fmt.Sprintf("Generated: %s", timeutil.Now().Format("02-Jan-2006 03:04 PM")), "", 1, "C", false, 0, "")
	pdf.Ln(5)

	// Order Info Box
	pdf.SetFillColor(240, 240, 240)
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(190, 8, "Order Information", "1", 1, "L", true, 0, "")

	pdf.SetFont("Arial", "", 11)
	pdf.CellFormat(95, 7, fmt.Sprintf("Order No: %s", entry.SerialNo), "LB", 0, "L", false, 0, "")
	pdf.CellFormat(95, 7, fmt.Sprintf("PO Number: %s", entry.OrderNo), "RB", 1, "L", false, 0, "")
	pdf.CellFormat(95, 7, fmt.Sprintf("Project: %s", entry.ProjectName), "LB", 0, "L", false, 0, "")
	pdf.CellFormat(95, 7, fmt.Sprintf("Date: %s", entry.Date), "RB", 1, "L", false, 0, "")
	pdf.CellFormat(95, 7, fmt.Sprintf("Party: %s", entry.PartyName), "LB", 0, "L", false, 0, "")
	pdf.CellFormat(95, 7, fmt.Sprintf("GST No: %s", entry.GstNo), "RB", 1, "L", false, 0, "")
	pdf.Ln(5)

	// Material
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(190, 8, "Material", "1", 1, "L", true, 0, "")

	pdf.SetFont("Arial", "B", 10)
	pdf.SetFillColor(200, 200, 200)
	pdf.CellFormat(50, 7, "Material Type", "1", 0, "C", true, 0, "")
	pdf.CellFormat(35, 7, "Gred", "1", 0, "C", true, 0, "")
	pdf.CellFormat(35, 7, "Order Qty", "1", 0, "C", true, 0, "")
	pdf.CellFormat(35, 7, "Delivery Qty", "1", 0, "C", true, 0, "")
	pdf.CellFormat(35, 7, "PO Price", "1", 1, "C", true, 0, "")

	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(50, 6, entry.MaterialType, "1", 0, "C", false, 0, "")
	pdf.CellFormat(35, 6, entry.GredType, "1", 0, "C", false, 0, "")
	pdf.CellFormat(35, 6, entry.Qty.String(), "1", 0, "C", false, 0, "")
	pdf.CellFormat(35, 6, entry.DeliveryQty.String(), "1", 0, "C", false, 0, "")
	pdf.CellFormat(35, 6, fmt.Sprintf("Rs. %s", entry.PoPrice.String()), "1", 1, "R", false, 0, "")
	pdf.Ln(5)

	// Shipping
	pdf.SetFont("Arial", "B", 12)
	pdf.SetFillColor(240, 240, 240)
	pdf.CellFormat(190, 8, "Shipping", "1", 1, "L", true, 0, "")

	pdf.SetFont("Arial", "", 11)
	pdf.CellFormat(190, 7, fmt.Sprintf("Consignee: %s", entry.ConsigneeName), "LRB", 1, "L", false, 0, "")
	pdf.MultiCell(190, 7, fmt.Sprintf("Address: %s", entry.ConsigneeAddress), "LRB", "L", false)
	pdf.MultiCell(190, 7, fmt.Sprintf("Shipping Address: %s", entry.ShippingAddress), "LRB", "L", false)
	pdf.CellFormat(95, 7, fmt.Sprintf("Receiver: %s", entry.ReceiverPersonName), "LB", 0, "L", false, 0, "")
	pdf.CellFormat(95, 7, fmt.Sprintf("Contact: %s", entry.ReceiverContactNumber), "RB", 1, "L", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}
