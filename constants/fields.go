package constants

// Canonical field names for purchase-order rows.
const (
	FieldPONumber     = "po_number"
	FieldDate         = "date"
	FieldSKU          = "sku"
	FieldQuantity     = "quantity"
	FieldDeliveryDate = "delivery_date"
	FieldPromisedDate = "promised_date"
	FieldVendor       = "vendor"
)

// Canonical field names for invoice rows.
const (
	FieldInvoiceNumber = "invoice_number"
	FieldAmount        = "amount"
	FieldStatus        = "status"
	FieldAmountPaid    = "amount_paid"
	FieldDatePaid      = "date_paid"
)

// requiredPOFields is the baseline every normalized PO row must carry.
var requiredPOFields = []string{
	FieldPONumber,
	FieldDate,
	FieldSKU,
	FieldQuantity,
	FieldDeliveryDate,
}

// requiredInvoiceFields is the baseline every normalized invoice row must carry.
var requiredInvoiceFields = []string{
	FieldInvoiceNumber,
	FieldPONumber,
	FieldAmount,
	FieldDate,
	FieldStatus,
}

// RequiredFields returns the canonical fields that must be present
// (possibly null) on every normalized row of the given document type.
func RequiredFields(dt DocType) []string {
	switch dt {
	case DocTypeInvoice:
		return requiredInvoiceFields
	default:
		return requiredPOFields
	}
}

// Financial figure names extracted from statement documents.
const (
	FigureRevenue            = "revenue"
	FigureNetIncome          = "net_income"
	FigureTotalAssets        = "total_assets"
	FigureTotalLiabilities   = "total_liabilities"
	FigureCurrentAssets      = "current_assets"
	FigureCurrentLiabilities = "current_liabilities"
	FigureInventory          = "inventory"
	FigureEquity             = "equity"
)

// AllFigures lists every figure the statement parser targets.
var AllFigures = []string{
	FigureRevenue,
	FigureNetIncome,
	FigureTotalAssets,
	FigureTotalLiabilities,
	FigureCurrentAssets,
	FigureCurrentLiabilities,
	FigureInventory,
	FigureEquity,
}

// CriticalFigures are the figures that must be set before heuristic-only
// extraction is considered sufficient; when any is missing the generative
// extractor is consulted.
var CriticalFigures = []string{
	FigureRevenue,
	FigureNetIncome,
	FigureTotalAssets,
	FigureTotalLiabilities,
}
