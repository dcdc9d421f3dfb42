package requests

import (
	"bytes"
	"encoding/json"
	"strconv"
	"time"

	"github.com/ledgerprint/ledgerprint-api/libs/go/types/business"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// IssueDateLayout is the accepted format of DocumentRequest.IssueDate
const IssueDateLayout = "2006-01-02"

// Amount accepts a JSON number or a string as typed by an operator.
// Text that is not a non-negative number becomes zero.
type Amount struct {
	decimal.Decimal
}

func (a *Amount) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		a.Decimal = decimal.Zero
		return nil
	}
	text := string(data)
	if len(data) > 0 && data[0] == '"' {
		if err := json.Unmarshal(data, &text); err != nil {
			return err
		}
	}
	a.Decimal = business.ParseAmount(text)
	return nil
}

// ClientRequest identifies the document recipient
type ClientRequest struct {
	Name       string `json:"name"`
	Email      string `json:"email,omitempty"`
	Address    string `json:"address,omitempty"`
	Phone      string `json:"phone,omitempty"`
	PostalCode string `json:"postal_code,omitempty"`
}

// LineItemRequest is one billable row. A missing quantity means 1.
type LineItemRequest struct {
	ID               string   `json:"id,omitempty"`
	Description      string   `json:"description"`
	Features         []string `json:"features,omitempty"`
	Quantity         *Amount  `json:"quantity,omitempty"`
	UnitPrice        Amount   `json:"unit_price"`
	DeliveryFee      Amount   `json:"delivery_fee"`
	CornerCuttingFee Amount   `json:"corner_cutting_fee"`
}

// DocumentRequest carries a draft over the API
type DocumentRequest struct {
	Client      ClientRequest     `json:"client"`
	Kind        string            `json:"kind" binding:"required"`
	Number      string            `json:"number,omitempty"`
	IssueDate   string            `json:"issue_date,omitempty"`
	Items       []LineItemRequest `json:"items"`
	Discount    Amount            `json:"discount"`
	AdvancePaid Amount            `json:"advance_paid"`
	PaymentMode string            `json:"payment_mode,omitempty"`
}

// RenderDocumentRequest additionally asks for the side effects of generation
type RenderDocumentRequest struct {
	DocumentRequest
	Export    bool `json:"export"`
	SendEmail bool `json:"send_email"`
}

// ToDraft converts the request into a normalized draft. An empty issue date means today in loc.
func (r *DocumentRequest) ToDraft(now time.Time, loc *time.Location) (*business.DocumentDraft, error) {
	kind, err := business.ParseDocumentKind(r.Kind)
	if err != nil {
		return nil, errors.Wrapf(err, "kind %q", r.Kind)
	}
	if loc == nil {
		loc = time.UTC
	}

	issueDate := now.In(loc)
	if r.IssueDate != "" {
		issueDate, err = time.ParseInLocation(IssueDateLayout, r.IssueDate, loc)
		if err != nil {
			return nil, errors.Wrap(err, "issue_date must be YYYY-MM-DD")
		}
	}

	draft := business.NewDocumentDraft(kind, issueDate)
	draft.Client = business.ClientInfo{
		Name:       r.Client.Name,
		Email:      r.Client.Email,
		Address:    r.Client.Address,
		Phone:      r.Client.Phone,
		PostalCode: r.Client.PostalCode,
	}
	draft.Number = r.Number
	draft.Discount = r.Discount.Decimal
	draft.AdvancePaid = r.AdvancePaid.Decimal
	draft.PaymentMode = r.PaymentMode

	draft.Items = make([]business.LineItem, 0, len(r.Items))
	for i, item := range r.Items {
		id := item.ID
		if id == "" {
			id = strconv.Itoa(i + 1)
		}
		quantity := decimal.NewFromInt(1)
		if item.Quantity != nil {
			quantity = item.Quantity.Decimal
		}
		draft.Items = append(draft.Items, business.LineItem{
			ID:               id,
			Description:      item.Description,
			Features:         item.Features,
			Quantity:         quantity,
			UnitPrice:        item.UnitPrice.Decimal,
			DeliveryFee:      item.DeliveryFee.Decimal,
			CornerCuttingFee: item.CornerCuttingFee.Decimal,
		})
	}

	draft.Normalize()
	return draft, nil
}
