package store

import (
	"aisolutions-backend/models"

	"github.com/xuri/excelize/v2"
)

const exportSheet = "Sales"

// ExportXLSX renders records as a single-sheet workbook with the store header.
// Numeric columns are written as numbers so spreadsheet formulas work on them.
func ExportXLSX(records []models.Record) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(exportSheet)
	if err != nil {
		return nil, err
	}
	_ = f.DeleteSheet("Sheet1")
	f.SetActiveSheet(index)

	if err := f.SetSheetRow(exportSheet, "A1", &Columns); err != nil {
		return nil, err
	}
	for i, rec := range records {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		values := xlsxRow(rec)
		if err := f.SetSheetRow(exportSheet, cell, &values); err != nil {
			return nil, err
		}
	}

	last, _ := excelize.ColumnNumberToName(len(Columns))
	_ = f.SetColWidth(exportSheet, "A", last, 18)
	style, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "#FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#1F2937"}, Pattern: 1},
	})
	_ = f.SetCellStyle(exportSheet, "A1", last+"1", style)
	_ = f.SetPanes(exportSheet, &excelize.Panes{Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft"})

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func xlsxRow(r models.Record) []any {
	return []any{
		r.CustomerID.String(),
		r.CustomerName,
		r.Email,
		r.Phone,
		r.Country,
		string(r.Gender),
		r.Age,
		r.CompanyName,
		string(r.CustomerType),
		string(r.SubscriptionType),
		r.MembershipBenefit,
		r.SubscriptionDuration,
		r.SubscriptionDate.Format(dateLayout),
		r.SubscriptionPrice.InexactFloat64(),
		r.ProductID,
		r.ProductType,
		r.Inquiry,
		r.CostOfProduct.InexactFloat64(),
		r.SalesAmount.InexactFloat64(),
		r.SalesDate.Format(dateLayout),
		r.SalesTime,
		r.PaymentMethod,
		string(r.DemoScheduled),
		string(r.PromoParticipation),
		r.PromoEvent,
		r.ResponseTimeDays,
		string(r.ProductStatus),
		r.RefundAmount.InexactFloat64(),
		r.Comments,
		r.ProductRating,
		r.Profit.InexactFloat64(),
		r.Loss.InexactFloat64(),
	}
}
