package infra

// pdf.go: PDF receipt generation using go-pdf/fpdf.
// Generates narrow thermal-style receipts with:
//   - Business name header
//   - Comprobante type, SERIE-NUMERO and date
//   - Customer name and document
//   - Line table (product, quantity, subtotal)
//   - Discount line (if applicable) and bold total
//   - Installment schedule for credit sales
//
// The output file is saved to storagePath/{tipo}_{serie}-{numero}.pdf.

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"sneakerfever/internal/model"

	"github.com/go-pdf/fpdf"
)

// GenerarComprobantePDF renders the receipt for a committed Venta and returns
// the path of the written file. storagePath is created if needed.
func GenerarComprobantePDF(venta *model.Venta, storagePath, negocio string) (string, error) {
	if err := os.MkdirAll(storagePath, 0755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}

	fileName := fmt.Sprintf("%s_%s.pdf", strings.ToLower(venta.TipoComprobante), venta.ComprobanteCompleto())
	filePath := filepath.Join(storagePath, fileName)

	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "mm",
		Size:           fpdf.SizeType{Wd: 80, Ht: 160},
	})
	pdf.SetMargins(4, 4, 4)
	pdf.SetAutoPageBreak(true, 4)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 8

	// ── Header ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 13)
	pdf.CellFormat(contentW, 7, tr(negocio), "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(contentW, 5, tituloComprobante(venta.TipoComprobante), "", 1, "C", false, 0, "")
	pdf.CellFormat(contentW, 5, venta.ComprobanteCompleto(), "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 7)
	pdf.CellFormat(contentW, 4, venta.FechaVenta.Format("02/01/2006  15:04"), "", 1, "C", false, 0, "")
	pdf.Ln(2)

	if venta.Cliente != nil {
		doc := "DNI"
		if venta.Cliente.EsRUC() {
			doc = "RUC"
		}
		pdf.CellFormat(contentW, 4, tr("Cliente: "+venta.Cliente.Nombre), "", 1, "L", false, 0, "")
		pdf.CellFormat(contentW, 4, doc+": "+venta.Cliente.Documento, "", 1, "L", false, 0, "")
	}
	pdf.CellFormat(contentW, 4, "Forma de pago: "+venta.FormaPago, "", 1, "L", false, 0, "")
	pdf.Ln(1)
	pdf.Line(4, pdf.GetY(), pageW-4, pdf.GetY())
	pdf.Ln(2)

	// ── Lines ─────────────────────────────────────────────────────────────────
	col1 := contentW * 0.52
	col2 := contentW * 0.16
	col3 := contentW * 0.32

	pdf.SetFont("Helvetica", "B", 7)
	pdf.CellFormat(col1, 5, "Producto", "B", 0, "L", false, 0, "")
	pdf.CellFormat(col2, 5, "Cant", "B", 0, "C", false, 0, "")
	pdf.CellFormat(col3, 5, "Subtotal", "B", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	for _, d := range venta.Detalles {
		nombre := ""
		if d.Producto != nil {
			nombre = d.Producto.Nombre
		}
		if len(nombre) > 24 {
			nombre = nombre[:23] + "."
		}
		pdf.CellFormat(col1, 5, tr(nombre), "", 0, "L", false, 0, "")
		pdf.CellFormat(col2, 5, fmt.Sprintf("x%d", d.Cantidad), "", 0, "C", false, 0, "")
		pdf.CellFormat(col3, 5, "S/ "+d.Subtotal.StringFixed(2), "", 1, "R", false, 0, "")
	}

	pdf.Ln(2)
	pdf.Line(4, pdf.GetY(), pageW-4, pdf.GetY())
	pdf.Ln(2)

	// ── Totals ────────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "", 7)
	pdf.CellFormat(col1+col2, 5, "Subtotal:", "", 0, "L", false, 0, "")
	pdf.CellFormat(col3, 5, "S/ "+venta.Subtotal.StringFixed(2), "", 1, "R", false, 0, "")
	if !venta.MontoDescuento.IsZero() {
		pdf.CellFormat(col1+col2, 5, "Descuento:", "", 0, "L", false, 0, "")
		pdf.CellFormat(col3, 5, "-S/ "+venta.MontoDescuento.StringFixed(2), "", 1, "R", false, 0, "")
	}
	pdf.CellFormat(col1+col2, 5, "IGV:", "", 0, "L", false, 0, "")
	pdf.CellFormat(col3, 5, "S/ "+venta.IGV.StringFixed(2), "", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(col1+col2, 6, "TOTAL:", "", 0, "L", false, 0, "")
	pdf.CellFormat(col3, 6, "S/ "+venta.Total.StringFixed(2), "", 1, "R", false, 0, "")

	// ── Credit schedule ───────────────────────────────────────────────────────
	if c := venta.Credito; c != nil {
		pdf.Ln(2)
		pdf.SetFont("Helvetica", "B", 7)
		pdf.CellFormat(contentW, 5, fmt.Sprintf("Credito %d cuotas (%s)", c.NumeroCuotas, c.IntervaloCuotas), "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 7)
		pdf.CellFormat(col1+col2, 4, "Inicial:", "", 0, "L", false, 0, "")
		pdf.CellFormat(col3, 4, "S/ "+c.MontoInicial.StringFixed(2), "", 1, "R", false, 0, "")
		for _, q := range c.Cuotas {
			label := fmt.Sprintf("Cuota %d - %s", q.NumeroCuota, q.FechaVencimiento.Format("02/01/2006"))
			pdf.CellFormat(col1+col2, 4, label, "", 0, "L", false, 0, "")
			pdf.CellFormat(col3, 4, "S/ "+q.Monto.StringFixed(2), "", 1, "R", false, 0, "")
		}
	}

	// ── Footer ────────────────────────────────────────────────────────────────
	pdf.Ln(3)
	pdf.SetFont("Helvetica", "I", 7)
	pdf.CellFormat(contentW, 4, tr("¡Gracias por su compra!"), "", 1, "C", false, 0, "")

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: write file: %w", err)
	}

	return filePath, nil
}

func tituloComprobante(tipo string) string {
	switch tipo {
	case model.ComprobanteFactura:
		return "FACTURA DE VENTA"
	case model.ComprobanteBoleta:
		return "BOLETA DE VENTA"
	default:
		return "NOTA DE VENTA"
	}
}
