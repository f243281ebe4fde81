package integration

// ---------------------------------------------------------------------------
// Inbound webhook envelope
// ---------------------------------------------------------------------------

// OrderStatusEnvelope is the body the POS posts on order status changes.
// It is transient: only its effects on local order records persist.
type OrderStatusEnvelope struct {
	ID            string              `json:"Id"`
	Attempt       int                 `json:"Attempt"`
	Notifications []OrderNotification `json:"Notifications"`
}

// OrderNotification groups the order records affected by one POS action.
type OrderNotification struct {
	Action string             `json:"Action"`
	Data   []OrderStatusEntry `json:"Data"`
}

// OrderStatusEntry is one order record inside a notification.
type OrderStatusEntry struct {
	RemoteOrderID int64   `json:"Id"`
	Code          string  `json:"Code"`
	BranchID      int64   `json:"BranchId"`
	SaleChannelID int64   `json:"SaleChannelId"`
	Status        int     `json:"Status"`
	CustomerID    *int64  `json:"CustomerId"`
	Total         float64 `json:"Total"`
	ModifiedDate  string  `json:"ModifiedDate"`
}

// SignatureHeader is the request header carrying the HMAC of the raw body.
const SignatureHeader = "x-hub-signature"
