package receipt

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/jung-kurt/gofpdf"

	"shopmanager/internal/sales"
)

// ErrRender is returned when the receipt document could not be written.
// The underlying sale is unaffected; the receipt can be regenerated.
var ErrRender = errors.New("receipt rendering failed")

// Identity is the shop header printed on every receipt.
type Identity struct {
	Name    string
	Address string
	Phone   string
}

// Generator renders persisted sales into fixed-layout PDF receipts. The
// output is a pure projection: nothing is recomputed or re-validated, and
// rendering the same sale twice yields byte-identical documents.
type Generator struct {
	shop Identity
}

// NewGenerator creates a Generator for the given shop identity.
func NewGenerator(shop Identity) *Generator {
	return &Generator{shop: shop}
}

// Render writes the receipt for an already-persisted sale to w.
func (g *Generator) Render(sale *sales.Sale, w io.Writer) error {
	pdf := gofpdf.New("P", "mm", "Letter", "")
	// pin the document dates to the sale and sort the object catalog so
	// repeated renders of the same sale are byte-identical; without the sort
	// gofpdf emits font objects in map-iteration order
	pdf.SetCreationDate(sale.CreatedAt)
	pdf.SetModificationDate(sale.CreatedAt)
	pdf.SetCatalogSort(true)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 20)
	pdf.CellFormat(0, 10, g.shop.Name, "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	if g.shop.Address != "" {
		pdf.CellFormat(0, 6, g.shop.Address, "", 1, "C", false, 0, "")
	}
	if g.shop.Phone != "" {
		pdf.CellFormat(0, 6, "Phone: "+g.shop.Phone, "", 1, "C", false, 0, "")
	}
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(120, 8, "Receipt #: "+sale.ID, "", 0, "L", false, 0, "")
	pdf.CellFormat(0, 8, "Date: "+sale.CreatedAt.Format("02/01/2006 15:04"), "", 1, "R", false, 0, "")
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(95, 7, "Product", "B", 0, "L", false, 0, "")
	pdf.CellFormat(20, 7, "Qty", "B", 0, "C", false, 0, "")
	pdf.CellFormat(40, 7, "Unit Price", "B", 0, "R", false, 0, "")
	pdf.CellFormat(40, 7, "Subtotal", "B", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	for _, item := range sale.Items {
		pdf.CellFormat(95, 7, item.ProductName, "", 0, "L", false, 0, "")
		pdf.CellFormat(20, 7, strconv.Itoa(item.Quantity), "", 0, "C", false, 0, "")
		pdf.CellFormat(40, 7, item.UnitPrice.StringFixed(2), "", 0, "R", false, 0, "")
		pdf.CellFormat(40, 7, item.Subtotal.StringFixed(2), "", 1, "R", false, 0, "")
	}

	pdf.Ln(2)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(155, 8, "Total:", "T", 0, "R", false, 0, "")
	pdf.CellFormat(40, 8, sale.Total.StringFixed(2), "T", 1, "R", false, 0, "")

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("%w: %v", ErrRender, err)
	}
	return nil
}
