package ingest

import (
	"github.com/vendorlens/vendorlens/constants"
	"github.com/vendorlens/vendorlens/internal/entity"
	"github.com/vendorlens/vendorlens/internal/normalize"
)

// ParsePOFile decodes and normalizes one purchase-order document into
// canonical records, one per source row, in source order.
func ParsePOFile(content []byte, filename string) ([]entity.PORecord, error) {
	ds, err := DecodeTable(content, filename)
	if err != nil {
		return nil, err
	}
	ds = normalize.Normalize(ds, constants.DocTypePO)

	records := make([]entity.PORecord, 0, len(ds.Rows))
	for _, row := range ds.Rows {
		records = append(records, entity.PORecord{
			PONumber:     cellString(row, constants.FieldPONumber),
			Date:         cellDate(row, constants.FieldDate),
			SKU:          cellStringPtr(row, constants.FieldSKU),
			Quantity:     cellFloat(row, constants.FieldQuantity),
			DeliveryDate: cellDate(row, constants.FieldDeliveryDate),
			PromisedDate: cellDate(row, constants.FieldPromisedDate),
			Vendor:       cellStringPtr(row, constants.FieldVendor),
		})
	}
	return records, nil
}
