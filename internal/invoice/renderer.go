package invoice

import (
	"bytes"
	"context"
	"fmt"
	"strconv"

	"lavajato-backend/internal/models"
	"lavajato-backend/internal/pkg/apperr"

	"github.com/google/uuid"
	"github.com/jung-kurt/gofpdf"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const defaultPrimaryColor = "#0071CE"

// Renderer produces the printable "Ordem de Serviço" PDF for an order.
// Stateless per call; reflects current store contents at render time.
type Renderer struct {
	DB *gorm.DB
}

// Render builds the invoice PDF. NotFound when the order does not belong
// to the tenant.
func (r *Renderer) Render(ctx context.Context, orderID, tenantID uuid.UUID) ([]byte, error) {
	var order models.Order
	err := r.DB.WithContext(ctx).
		Where("id = ? AND tenant_id = ?", orderID, tenantID).
		First(&order).Error
	if err == gorm.ErrRecordNotFound {
		return nil, apperr.NotFound("Order not found")
	} else if err != nil {
		return nil, err
	}

	var tenant models.Tenant
	if err := r.DB.WithContext(ctx).First(&tenant, "id = ?", tenantID).Error; err != nil {
		return nil, err
	}

	var client *models.Client
	if order.ClientID != nil {
		var c models.Client
		if err := r.DB.WithContext(ctx).First(&c, "id = ?", *order.ClientID).Error; err == nil {
			client = &c
		}
	}

	var items []models.OrderItem
	if err := r.DB.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("created_at ASC").
		Find(&items).Error; err != nil {
		return nil, err
	}

	return draw(&tenant, &order, client, items)
}

func draw(tenant *models.Tenant, order *models.Order, client *models.Client, items []models.OrderItem) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pr, pg, pb := hexToRGB(tenant.PrimaryColor)
	pdf.AddPage()

	// Header: company name over a rule in the tenant's brand color.
	pdf.SetFont("Arial", "B", 22)
	pdf.SetTextColor(pr, pg, pb)
	pdf.CellFormat(0, 12, tr(tenant.Name), "", 1, "L", false, 0, "")
	pdf.SetDrawColor(pr, pg, pb)
	pdf.SetLineWidth(1)
	pdf.Line(10, pdf.GetY()+2, 200, pdf.GetY()+2)
	pdf.Ln(8)

	pdf.SetFont("Arial", "B", 16)
	pdf.SetTextColor(51, 51, 51)
	pdf.CellFormat(0, 10, tr(fmt.Sprintf("Ordem de Serviço #%s", order.OrderNumber)), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	clientName, clientPhone, vehicle := "N/A", "N/A", "N/A"
	if client != nil {
		clientName = client.Name
		if client.Phone != nil {
			clientPhone = *client.Phone
		}
		model, plate := "N/A", "N/A"
		if client.VehicleModel != nil {
			model = *client.VehicleModel
		}
		if client.VehiclePlate != nil {
			plate = *client.VehiclePlate
		}
		vehicle = fmt.Sprintf("%s - %s", model, plate)
	}

	infoPair(pdf, tr, "CLIENTE", clientName, "TELEFONE", clientPhone)
	infoPair(pdf, tr, "VEÍCULO", vehicle, "DATA", order.CreatedAt.Format("02/01/2006 15:04"))
	payment := ""
	if order.PaymentMethod != nil {
		payment = *order.PaymentMethod
	}
	infoPair(pdf, tr, "STATUS", order.Status, "FORMA DE PAGAMENTO", payment)
	pdf.Ln(6)

	// Line-item table.
	pdf.SetFont("Arial", "B", 11)
	pdf.SetFillColor(pr, pg, pb)
	pdf.SetTextColor(255, 255, 255)
	pdf.CellFormat(90, 9, tr("Serviço"), "", 0, "L", true, 0, "")
	pdf.CellFormat(20, 9, "Qtd", "", 0, "C", true, 0, "")
	pdf.CellFormat(40, 9, tr("Preço Unit."), "", 0, "R", true, 0, "")
	pdf.CellFormat(40, 9, "Total", "", 1, "R", true, 0, "")

	pdf.SetFont("Arial", "", 11)
	pdf.SetTextColor(51, 51, 51)
	for _, item := range items {
		lineTotal := item.Price.Mul(decimal.NewFromInt(int64(item.Quantity)))
		pdf.CellFormat(90, 8, tr(item.ServiceName), "B", 0, "L", false, 0, "")
		pdf.CellFormat(20, 8, strconv.Itoa(item.Quantity), "B", 0, "C", false, 0, "")
		pdf.CellFormat(40, 8, money(item.Price), "B", 0, "R", false, 0, "")
		pdf.CellFormat(40, 8, money(lineTotal), "B", 1, "R", false, 0, "")
	}

	pdf.SetFont("Arial", "B", 12)
	pdf.SetFillColor(245, 245, 245)
	pdf.CellFormat(150, 10, "TOTAL:", "", 0, "R", true, 0, "")
	pdf.CellFormat(40, 10, money(order.TotalAmount), "", 1, "R", true, 0, "")

	if order.Notes != nil && *order.Notes != "" {
		pdf.Ln(8)
		pdf.SetFont("Arial", "B", 9)
		pdf.SetTextColor(102, 102, 102)
		pdf.CellFormat(0, 6, tr("OBSERVAÇÕES"), "", 1, "L", false, 0, "")
		pdf.SetFont("Arial", "", 11)
		pdf.SetTextColor(51, 51, 51)
		pdf.MultiCell(0, 6, tr(*order.Notes), "", "L", false)
	}

	pdf.Ln(12)
	pdf.SetFont("Arial", "", 9)
	pdf.SetTextColor(102, 102, 102)
	pdf.CellFormat(0, 5, tr(tenant.Name), "", 1, "C", false, 0, "")
	pdf.CellFormat(0, 5, tr("Obrigado pela preferência!"), "", 1, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func infoPair(pdf *gofpdf.Fpdf, tr func(string) string, label1, value1, label2, value2 string) {
	pdf.SetFont("Arial", "B", 8)
	pdf.SetTextColor(102, 102, 102)
	pdf.CellFormat(95, 5, tr(label1), "", 0, "L", false, 0, "")
	pdf.CellFormat(95, 5, tr(label2), "", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "", 11)
	pdf.SetTextColor(51, 51, 51)
	pdf.CellFormat(95, 7, tr(value1), "", 0, "L", false, 0, "")
	pdf.CellFormat(95, 7, tr(value2), "", 1, "L", false, 0, "")
	pdf.Ln(2)
}

func money(d decimal.Decimal) string {
	return "R$ " + d.StringFixed(2)
}

func hexToRGB(hexColor string) (int, int, int) {
	if len(hexColor) != 7 || hexColor[0] != '#' {
		hexColor = defaultPrimaryColor
	}
	r, err1 := strconv.ParseInt(hexColor[1:3], 16, 0)
	g, err2 := strconv.ParseInt(hexColor[3:5], 16, 0)
	b, err3 := strconv.ParseInt(hexColor[5:7], 16, 0)
	if err1 != nil || err2 != nil || err3 != nil {
		return hexToRGB(defaultPrimaryColor)
	}
	return int(r), int(g), int(b)
}
