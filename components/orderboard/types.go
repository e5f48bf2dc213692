package orderboard

import "time"

// OrderStatus tracks order fulfillment progress.
type OrderStatus string

const (
	StatusPending    OrderStatus = "Pending"
	StatusInProgress OrderStatus = "In Progress"
	StatusCompleted  OrderStatus = "Completed"
)

// DateFilter constrains the order collection to a rolling or fixed window
// before any widget aggregation runs.
type DateFilter string

const (
	FilterAllTime    DateFilter = "all-time"
	FilterToday      DateFilter = "today"
	FilterLast7Days  DateFilter = "last-7-days"
	FilterLast30Days DateFilter = "last-30-days"
	FilterLast90Days DateFilter = "last-90-days"
)

// CustomerOrder is a single order record owned by a user. TotalAmount is
// derived from Quantity and UnitPrice and is never settable on its own.
type CustomerOrder struct {
	ID            string      `json:"id"`
	FirstName     string      `json:"firstName"`
	LastName      string      `json:"lastName"`
	Email         string      `json:"email"`
	Phone         string      `json:"phone"`
	StreetAddress string      `json:"streetAddress"`
	City          string      `json:"city"`
	State         string      `json:"state"`
	PostalCode    string      `json:"postalCode"`
	Country       string      `json:"country"`
	Product       string      `json:"product"`
	Quantity      int         `json:"quantity"`
	UnitPrice     float64     `json:"unitPrice"`
	TotalAmount   float64     `json:"totalAmount"`
	Status        OrderStatus `json:"status"`
	CreatedBy     string      `json:"createdBy"`
	CreatedAt     time.Time   `json:"createdAt"`
}

// FullName is used as the point label on scatter plots.
func (o CustomerOrder) FullName() string {
	switch {
	case o.FirstName == "":
		return o.LastName
	case o.LastName == "":
		return o.FirstName
	default:
		return o.FirstName + " " + o.LastName
	}
}

// Dashboard is a named, ordered arrangement of widget configurations.
type Dashboard struct {
	ID         string         `json:"id"`
	UserID     string         `json:"userId,omitempty"`
	Name       string         `json:"name"`
	Widgets    []WidgetConfig `json:"widgets"`
	DateFilter DateFilter     `json:"dateFilter"`
	CreatedAt  time.Time      `json:"createdAt"`
	UpdatedAt  time.Time      `json:"updatedAt"`
}

// FieldKind classifies an order field for aggregation and filtering.
type FieldKind string

const (
	FieldString FieldKind = "string"
	FieldNumber FieldKind = "number"
	FieldDate   FieldKind = "date"
)

// OrderField describes one bindable field of CustomerOrder.
type OrderField struct {
	Key   string
	Label string
	Kind  FieldKind
}

var orderFields = []OrderField{
	{Key: "firstName", Label: "First Name", Kind: FieldString},
	{Key: "lastName", Label: "Last Name", Kind: FieldString},
	{Key: "email", Label: "Email", Kind: FieldString},
	{Key: "phone", Label: "Phone", Kind: FieldString},
	{Key: "city", Label: "City", Kind: FieldString},
	{Key: "state", Label: "State", Kind: FieldString},
	{Key: "country", Label: "Country", Kind: FieldString},
	{Key: "product", Label: "Product", Kind: FieldString},
	{Key: "quantity", Label: "Quantity", Kind: FieldNumber},
	{Key: "unitPrice", Label: "Unit Price", Kind: FieldNumber},
	{Key: "totalAmount", Label: "Total Amount", Kind: FieldNumber},
	{Key: "status", Label: "Status", Kind: FieldString},
	{Key: "createdBy", Label: "Created By", Kind: FieldString},
	{Key: "createdAt", Label: "Created At", Kind: FieldDate},
}

// OrderFields returns copies of the bindable field descriptors.
func OrderFields() []OrderField {
	out := make([]OrderField, len(orderFields))
	copy(out, orderFields)
	return out
}

// FieldByKey looks up a field descriptor.
func FieldByKey(key string) (OrderField, bool) {
	for _, f := range orderFields {
		if f.Key == key {
			return f, true
		}
	}
	return OrderField{}, false
}

// FieldLabel returns the display label for a field key, falling back to the
// key itself for unknown bindings.
func FieldLabel(key string) string {
	if f, ok := FieldByKey(key); ok {
		return f.Label
	}
	return key
}

// NumericFields lists the fields usable as KPI metrics and chart y-axes.
func NumericFields() []OrderField {
	var out []OrderField
	for _, f := range orderFields {
		if f.Kind == FieldNumber {
			out = append(out, f)
		}
	}
	return out
}

// FieldValue resolves a field key against an order. Unknown keys yield nil.
func FieldValue(o CustomerOrder, key string) any {
	switch key {
	case "id":
		return o.ID
	case "firstName":
		return o.FirstName
	case "lastName":
		return o.LastName
	case "email":
		return o.Email
	case "phone":
		return o.Phone
	case "streetAddress":
		return o.StreetAddress
	case "city":
		return o.City
	case "state":
		return o.State
	case "postalCode":
		return o.PostalCode
	case "country":
		return o.Country
	case "product":
		return o.Product
	case "quantity":
		return o.Quantity
	case "unitPrice":
		return o.UnitPrice
	case "totalAmount":
		return o.TotalAmount
	case "status":
		return string(o.Status)
	case "createdBy":
		return o.CreatedBy
	case "createdAt":
		return o.CreatedAt
	default:
		return nil
	}
}

// NumericFieldValue projects a field to a number. Non-numeric and missing
// values reduce to 0.
func NumericFieldValue(o CustomerOrder, key string) float64 {
	switch v := FieldValue(o, key).(type) {
	case int:
		return float64(v)
	case float64:
		return v
	default:
		return 0
	}
}

// StringFieldValue projects a field to its string representation. The empty
// string marks a missing value; callers choose the placeholder.
func StringFieldValue(o CustomerOrder, key string) string {
	switch v := FieldValue(o, key).(type) {
	case nil:
		return ""
	case string:
		return v
	case int:
		return formatInt(v)
	case float64:
		return formatFloat(v)
	case time.Time:
		return v.Format(time.RFC3339)
	default:
		return ""
	}
}

// Countries supported on the order form.
var Countries = []string{
	"United States",
	"Canada",
	"Australia",
	"Singapore",
	"Hong Kong",
}

// Products available in the demo catalog.
var Products = []string{
	"Fiber Internet 300 Mbps",
	"5G Unlimited Mobile Plan",
	"Fiber Internet 1 Gbps",
	"Business Internet 500 Mbps",
	"VoIP Corporate Package",
}
