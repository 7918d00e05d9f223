package reports

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"storefront-service/internal/analytics"
	"storefront-service/internal/models"
)

const (
	// XLSXContentType is the MIME type of the generated workbooks
	XLSXContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	dateLayout      = "2006-01-02 15:04"
)

type sheet struct {
	name    string
	headers []string
	rows    [][]interface{}
	widths  []float64
}

// writeWorkbook renders sheets in order; the first replaces the default Sheet1
func writeWorkbook(sheets ...sheet) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
		Border: []excelize.Border{
			{Type: "bottom", Color: "000000", Style: 1},
		},
	})
	if err != nil {
		return nil, err
	}

	for i, s := range sheets {
		if i == 0 {
			if err := f.SetSheetName("Sheet1", s.name); err != nil {
				return nil, err
			}
		} else if _, err := f.NewSheet(s.name); err != nil {
			return nil, err
		}

		header := make([]interface{}, len(s.headers))
		for j, h := range s.headers {
			header[j] = h
		}
		if err := f.SetSheetRow(s.name, "A1", &header); err != nil {
			return nil, err
		}
		last, _ := excelize.CoordinatesToCellName(len(s.headers), 1)
		if err := f.SetCellStyle(s.name, "A1", last, headerStyle); err != nil {
			return nil, err
		}
		for j := range s.headers {
			width := 18.0
			if j < len(s.widths) {
				width = s.widths[j]
			}
			colName, _ := excelize.ColumnNumberToName(j + 1)
			if err := f.SetColWidth(s.name, colName, colName, width); err != nil {
				return nil, err
			}
		}

		for r, row := range s.rows {
			cell, _ := excelize.CoordinatesToCellName(1, r+2)
			row := row
			if err := f.SetSheetRow(s.name, cell, &row); err != nil {
				return nil, fmt.Errorf("sheet %s row %d: %w", s.name, r+2, err)
			}
		}
	}

	var buf *bytes.Buffer
	if buf, err = f.WriteToBuffer(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// SalesWorkbook exports orders with their totals, plus monthly revenue and top products
func SalesWorkbook(orders []models.Order, products []models.Product) ([]byte, error) {
	orderRows := make([][]interface{}, 0, len(orders))
	for _, o := range orders {
		code := ""
		if o.DiscountCode != nil {
			code = *o.DiscountCode
		}
		orderRows = append(orderRows, []interface{}{
			o.OrderNumber,
			o.CreatedAt.Format(dateLayout),
			o.Customer.FullName(),
			o.Customer.Email,
			string(o.Status),
			string(o.PaymentStatus),
			string(o.FulfillmentStatus),
			len(o.Items),
			o.Subtotal,
			o.Tax,
			o.Shipping,
			o.Discount,
			code,
			o.Total,
		})
	}

	monthly := analytics.MonthlyRevenue(orders)
	monthRows := make([][]interface{}, 0, len(monthly))
	for _, m := range monthly {
		monthRows = append(monthRows, []interface{}{m.Month, m.Orders, m.Revenue})
	}

	top := analytics.TopProducts(products, orders, len(products))
	topRows := make([][]interface{}, 0, len(top))
	for _, tp := range top {
		topRows = append(topRows, []interface{}{tp.Product.Name, tp.Product.SKU, tp.Units, tp.Orders, tp.Revenue})
	}

	return writeWorkbook(
		sheet{
			name: "Orders",
			headers: []string{"Order", "Date", "Customer", "Email", "Status", "Payment", "Fulfillment",
				"Items", "Subtotal", "Tax", "Shipping", "Discount", "Discount Code", "Total"},
			rows:   orderRows,
			widths: []float64{12, 18, 22, 28},
		},
		sheet{name: "Monthly Revenue", headers: []string{"Month", "Orders", "Revenue"}, rows: monthRows},
		sheet{name: "Top Products", headers: []string{"Product", "SKU", "Units", "Orders", "Revenue"}, rows: topRows, widths: []float64{30}},
	)
}

// CustomersWorkbook exports customers with their lifetime totals
func CustomersWorkbook(customers []models.Customer) ([]byte, error) {
	rows := make([][]interface{}, 0, len(customers))
	for _, c := range customers {
		phone, city, country := "", "", ""
		if c.Phone != nil {
			phone = *c.Phone
		}
		if addr, ok := c.DefaultAddress(); ok {
			city, country = addr.City, addr.Country
		}
		rows = append(rows, []interface{}{
			c.FirstName, c.LastName, c.Email, phone, string(c.Status),
			c.AcceptsMarketing, c.OrdersCount, c.TotalSpent, city, country,
			c.CreatedAt.Format(dateLayout),
		})
	}
	return writeWorkbook(sheet{
		name: "Customers",
		headers: []string{"First Name", "Last Name", "Email", "Phone", "Status", "Accepts Marketing",
			"Orders", "Total Spent", "City", "Country", "Created"},
		rows:   rows,
		widths: []float64{16, 16, 30},
	})
}

// InventoryWorkbook exports every product and variant with stock and pricing
func InventoryWorkbook(products []models.Product) ([]byte, error) {
	rows := make([][]interface{}, 0, len(products))
	for _, p := range products {
		rows = append(rows, []interface{}{
			p.Name, "", p.SKU, string(p.Status), p.Category, p.TrackQuantity, p.Quantity, p.Price, p.Cost,
			p.Quantity > 0 || !p.TrackQuantity,
		})
		for _, v := range p.Variants {
			rows = append(rows, []interface{}{
				p.Name, v.Title, v.SKU, string(p.Status), p.Category, p.TrackQuantity, v.Quantity, v.Price, v.Cost,
				v.Quantity > 0 || !p.TrackQuantity,
			})
		}
	}
	return writeWorkbook(sheet{
		name:    "Inventory",
		headers: []string{"Product", "Variant", "SKU", "Status", "Category", "Tracked", "Quantity", "Price", "Cost", "In Stock"},
		rows:    rows,
		widths:  []float64{30, 18, 16},
	})
}
