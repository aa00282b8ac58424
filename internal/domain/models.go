package domain

// Category groups items. No nesting: a category never references another one.
type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Item is a stocked inventory entry. PriceCents and Quantity are never
// negative once the item has passed creation or edit validation. An empty
// CategoryID means the item is uncategorized.
type Item struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	PriceCents int64  `json:"price"`
	Quantity   int    `json:"quantity"`
	CategoryID string `json:"categoryId,omitempty"`
}

// BillLine is a snapshot of an item at the moment it was added to the working
// bill. Name and PriceCents are copies, not live references: editing the item
// afterwards does not change an already-added line.
type BillLine struct {
	ID         string `json:"id"`
	ItemID     string `json:"itemId"`
	Name       string `json:"name"`
	PriceCents int64  `json:"price"`
	Quantity   int    `json:"quantity"`
	TotalCents int64  `json:"total"`
}

// Bill is a finalized, immutable record. Date is a DateLayout day string.
type Bill struct {
	ID         string     `json:"id"`
	Number     string     `json:"number"`
	Date       string     `json:"date"`
	Customer   string     `json:"customer,omitempty"`
	WhatsApp   string     `json:"whatsapp,omitempty"`
	Notes      string     `json:"notes,omitempty"`
	Items      []BillLine `json:"items"`
	TotalCents int64      `json:"total"`
}

// CustomerLabel is the display fallback for bills taken without a name.
func (b Bill) CustomerLabel() string {
	if b.Customer == "" {
		return "Walk-in"
	}
	return b.Customer
}

// Snapshot is the full persisted state: everything except the working bill,
// which is session-scoped and deliberately not durable.
type Snapshot struct {
	Categories []Category `json:"categories"`
	Items      []Item     `json:"items"`
	Bills      []Bill     `json:"bills"`
}

// Clone returns a deep copy so callers can hand snapshots out without
// aliasing the owned state.
func (s Snapshot) Clone() Snapshot {
	out := Snapshot{
		Categories: make([]Category, len(s.Categories)),
		Items:      make([]Item, len(s.Items)),
		Bills:      make([]Bill, len(s.Bills)),
	}
	copy(out.Categories, s.Categories)
	copy(out.Items, s.Items)
	for i, bill := range s.Bills {
		lines := make([]BillLine, len(bill.Items))
		copy(lines, bill.Items)
		bill.Items = lines
		out.Bills[i] = bill
	}
	return out
}

type CategoryCreateRequest struct {
	Name string `json:"name"`
}

type ItemCreateRequest struct {
	Name       string `json:"name"`
	PriceCents int64  `json:"price_cents"`
	Quantity   int    `json:"quantity"`
	CategoryID string `json:"category_id,omitempty"`
}

// ItemUpdateRequest carries the complete field set for an edit. The caller is
// expected to have resolved which fields the user actually changed; the core
// applies all of them atomically.
type ItemUpdateRequest struct {
	Name       string `json:"name"`
	PriceCents int64  `json:"price_cents"`
	Quantity   int    `json:"quantity"`
}

type BillLineRequest struct {
	ItemID string `json:"item_id"`
	Qty    int    `json:"qty"`
}

type BillFinalizeRequest struct {
	Customer string `json:"customer"`
	WhatsApp string `json:"whatsapp"`
	Notes    string `json:"notes"`
}

// WorkingBill is the read-only view of the in-progress bill.
type WorkingBill struct {
	Lines      []BillLine `json:"lines"`
	TotalCents int64      `json:"total_cents"`
	NextNumber string     `json:"next_number"`
}

type DashboardStats struct {
	TotalStock         int    `json:"total_stock"`
	ItemCount          int    `json:"item_count"`
	BillsToday         int    `json:"bills_today"`
	TodaysRevenueCents int64  `json:"todays_revenue_cents"`
	LowStockCount      int    `json:"low_stock_count"`
	RecentBills        []Bill `json:"recent_bills"`
}

type ReceiptResponse struct {
	PreviewText  string `json:"preview_text"`
	EscposBase64 string `json:"escpos_base64"`
	FileName     string `json:"file_name"`
}

type ShareLinkResponse struct {
	Number  string `json:"number"`
	Message string `json:"message"`
	URL     string `json:"url"`
}

// DateLayout is the calendar-day format used for bill dates and stats lookups.
const DateLayout = "2006-01-02"

// CategoryFilterAll selects items from every category, uncategorized included.
const CategoryFilterAll = "all"

// DefaultLowStockThreshold marks items needing a restock on the dashboard.
const DefaultLowStockThreshold = 5
