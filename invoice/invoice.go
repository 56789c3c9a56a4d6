package invoice

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"time"

	"verda/db"
	"verda/models"
	"verda/utils"

	"github.com/julienschmidt/httprouter"
	"github.com/phpdave11/gofpdf"
	"github.com/skip2/go-qrcode"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// GetInvoice renders a PDF invoice for an order, with a signed QR code for
// verification at handover. Owner or admin only.
func GetInvoice(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	orderID := ps.ByName("id")
	userID := utils.GetUserIDFromRequest(r)

	var order models.Order
	err := db.OrderCollection.FindOne(ctx, bson.M{"orderid": orderID}).Decode(&order)
	if err == mongo.ErrNoDocuments {
		http.Error(w, "Order not found", http.StatusNotFound)
		return
	} else if err != nil {
		http.Error(w, "Could not retrieve order", http.StatusInternalServerError)
		return
	}

	if order.UserID != userID && !utils.IsAdminRequest(r) {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}

	qrPNG, err := qrcode.Encode(QRPayload(order.OrderID, order.UserID, time.Now()), qrcode.Medium, 256)
	if err != nil {
		http.Error(w, "Failed to generate QR code", http.StatusInternalServerError)
		return
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(40, 10, "Invoice")
	pdf.Ln(12)

	pdf.SetFont("Arial", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Order: %s", order.OrderID))
	pdf.Ln(8)
	pdf.Cell(0, 8, fmt.Sprintf("Date: %s", order.CreatedAt.Format("2006-01-02")))
	pdf.Ln(8)
	pdf.Cell(0, 8, fmt.Sprintf("Payment: %s", order.PaymentMethod))
	pdf.Ln(8)
	status := "unpaid"
	if order.IsPaid {
		status = "paid " + order.PaidAt.Format("2006-01-02")
	}
	pdf.Cell(0, 8, fmt.Sprintf("Status: %s", status))
	pdf.Ln(12)

	addr := order.ShippingAddress
	pdf.SetFont("Arial", "B", 12)
	pdf.Cell(0, 8, "Ship to")
	pdf.Ln(8)
	pdf.SetFont("Arial", "", 12)
	pdf.Cell(0, 8, addr.Address)
	pdf.Ln(6)
	pdf.Cell(0, 8, fmt.Sprintf("%s %s, %s", addr.City, addr.PostalCode, addr.Country))
	pdf.Ln(6)
	pdf.Cell(0, 8, addr.Phone)
	pdf.Ln(12)

	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(110, 8, "Item", "B", 0, "", false, 0, "")
	pdf.CellFormat(20, 8, "Qty", "B", 0, "R", false, 0, "")
	pdf.CellFormat(30, 8, "Price", "B", 1, "R", false, 0, "")
	pdf.SetFont("Arial", "", 12)
	for _, it := range order.Items {
		pdf.CellFormat(110, 8, it.Name, "", 0, "", false, 0, "")
		pdf.CellFormat(20, 8, fmt.Sprintf("%d", it.Quantity), "", 0, "R", false, 0, "")
		pdf.CellFormat(30, 8, fmt.Sprintf("%.2f", it.Price*float64(it.Quantity)), "", 1, "R", false, 0, "")
	}
	pdf.Ln(4)

	pdf.CellFormat(130, 8, "", "", 0, "", false, 0, "")
	pdf.CellFormat(30, 8, fmt.Sprintf("Items: %.2f", order.ItemsPrice), "", 1, "R", false, 0, "")
	pdf.CellFormat(130, 8, "", "", 0, "", false, 0, "")
	pdf.CellFormat(30, 8, fmt.Sprintf("Shipping: %.2f", order.ShippingPrice), "", 1, "R", false, 0, "")
	pdf.CellFormat(130, 8, "", "", 0, "", false, 0, "")
	pdf.CellFormat(30, 8, fmt.Sprintf("Tax: %.2f", order.TaxPrice), "", 1, "R", false, 0, "")
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(130, 8, "", "", 0, "", false, 0, "")
	pdf.CellFormat(30, 8, fmt.Sprintf("Total: %.2f", order.TotalPrice), "T", 1, "R", false, 0, "")

	imageOpts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("qr", imageOpts, bytes.NewReader(qrPNG))
	pdf.ImageOptions("qr", 150, 20, 40, 40, false, imageOpts, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		http.Error(w, "Failed to generate PDF", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=invoice-"+order.OrderID+".pdf")
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}
