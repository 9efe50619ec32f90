package fulfillment

// ValidationError reports a missing or malformed request field.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

// NotFoundError reports an unknown order or SKU.
type NotFoundError struct {
	Msg string
	Err error
}

func (e *NotFoundError) Error() string {
	return e.Msg
}

func (e *NotFoundError) Unwrap() error {
	return e.Err
}

// Messages returned to API clients.
const (
	msgMissingFields   = "Missing required fields"
	msgMissingStatus   = "Missing status"
	msgOrderNotFound   = "Order not found"
	msgOrderOrSKU      = "Order or SKU not found"
	msgEmptyImport     = "No orders to import"
	msgInvalidOrderID  = "Order id must not be empty"
	msgInvalidSKU      = "SKU must not be empty"
	msgInvalidQuantity = "Quantity and scanned must not be negative"
	msgMissingTransfer = "Missing transfer type"
	msgUnknownTransfer = "Unknown transfer type"
)
