package notification

import (
	"bytes"
	"fmt"
	"html/template"
	"time"

	"github.com/shopspring/decimal"

	"github.com/polkiloo/sushibar/internal/domain/model"
)

const (
	newOrderSubject     = "New Order Received"
	statusUpdateSubject = "Order Status Update"
	pushTitle           = "Order Update"
	currency            = "CHF"
)

var newOrderTemplate = template.Must(template.New("new_order").Parse(`<div class="container">
<h2>New Order Received</h2>
<p>A new order has been placed.</p>
<h3>Customer Details:</h3>
<p><strong>Email:</strong> {{.Email}}</p>
<p><strong>Mobile:</strong> {{.Mobile}}</p>
<p><strong>Address:</strong> {{.Address}}</p>
<h3>Order Details:</h3>
<ul>
{{- range .Lines}}
<li>{{.Name}} (x{{.Quantity}}): {{.Total}}</li>
{{- end}}
</ul>
<p><strong>Total Price:</strong> {{.Total}}</p>
<p><strong>Delivery Method:</strong> {{.Delivery}}</p>
<p><strong>Order Type:</strong> {{.Type}}</p>
{{- if .Scheduled}}
<p><strong>Scheduled for:</strong> {{.ScheduledDate}} at {{.ScheduledTime}}</p>
{{- end}}
<p><small>Order ids: {{range $i, $id := .OrderIDs}}{{if $i}}, {{end}}#{{$id}}{{end}}</small></p>
</div>`))

var reservationTemplate = template.Must(template.New("reservation").Parse(`<div class="container">
<h2>{{.Heading}}</h2>
<p><strong>Name:</strong> {{.Name}}</p>
<p><strong>Email:</strong> {{.Email}}</p>
<p><strong>Mobile:</strong> {{.Mobile}}</p>
<p><strong>Guests:</strong> {{.Guests}}</p>
<p><strong>Date:</strong> {{.When}}</p>
{{- if .Note}}
<p><strong>Note:</strong> {{.Note}}</p>
{{- end}}
</div>`))

var statusTexts = map[model.OrderStatus]string{
	model.OrderStatusAccepted:  "Your order has been accepted",
	model.OrderStatusMaking:    "Your order is being prepared",
	model.OrderStatusReady:     "Your order is ready for collection",
	model.OrderStatusDelivered: "Your order has been delivered",
	model.OrderStatusCancelled: "Your order has been cancelled",
}

// FormatMoney renders amount with two decimals and currency.
func FormatMoney(amount decimal.Decimal) string {
	return amount.StringFixed(2) + " " + currency
}

// NewOrderMessage renders the staff alert for a fresh submission.
func NewOrderMessage(recipients []string, sub model.OrderSubmission, ids []int64) (Message, error) {
	type line struct {
		Name     string
		Quantity int
		Total    string
	}
	data := struct {
		Email, Mobile, Address, Delivery string
		Type                             model.OrderType
		Scheduled                        bool
		ScheduledDate, ScheduledTime     string
		Lines                            []line
		Total                            string
		OrderIDs                         []int64
	}{
		Email:         sub.Email,
		Mobile:        sub.Mobile,
		Address:       sub.Address,
		Delivery:      sub.Delivery,
		Type:          sub.Type,
		Scheduled:     sub.Type == model.OrderTypeLater,
		ScheduledDate: sub.ScheduledDate,
		ScheduledTime: sub.ScheduledTime,
		OrderIDs:      ids,
	}

	total := decimal.Zero
	for _, l := range sub.Lines {
		lineTotal := l.Total()
		total = total.Add(lineTotal)
		data.Lines = append(data.Lines, line{Name: l.Name, Quantity: l.Quantity, Total: FormatMoney(lineTotal)})
	}
	data.Total = FormatMoney(total)

	var buf bytes.Buffer
	if err := newOrderTemplate.Execute(&buf, data); err != nil {
		return Message{}, fmt.Errorf("render new order: %w", err)
	}
	return Message{
		To:      recipients,
		Subject: newOrderSubject,
		Body:    buf.String(),
		HTML:    true,
	}, nil
}

// StatusText returns the customer facing sentence for a status.
func StatusText(status model.OrderStatus) string {
	if text, ok := statusTexts[status]; ok {
		return text
	}
	return "Your order status has been updated"
}

// StatusMessage renders the customer update sent after a transition.
func StatusMessage(order model.Order) Message {
	text := StatusText(order.Status)
	body := text
	if order.Status == model.OrderStatusCancelled && order.CancellationReason != nil && *order.CancellationReason != "" {
		body += ". Reason: " + *order.CancellationReason
	}

	msg := Message{
		To:        []string{order.Email},
		Subject:   statusUpdateSubject,
		Body:      body,
		PushTitle: pushTitle,
		PushBody:  text,
	}
	if order.DeviceToken != nil {
		msg.PushToken = *order.DeviceToken
	}
	return msg
}

// ContactMessage forwards a contact form entry to the restaurant.
func ContactMessage(recipients []string, c model.Contact) Message {
	return Message{
		To:      recipients,
		Subject: "New message from " + c.Name,
		Body:    fmt.Sprintf("From: %s <%s>\n\nMessage:\n%s", c.Name, c.Email, c.Message),
	}
}

// ReservationRequestMessage alerts staff about a new booking.
func ReservationRequestMessage(recipients []string, r model.Reservation, loc *time.Location) (Message, error) {
	body, err := renderReservation("New Table Reservation", r, loc)
	if err != nil {
		return Message{}, err
	}
	return Message{To: recipients, Subject: "New Table Reservation", Body: body, HTML: true}, nil
}

// ReservationDecisionMessage tells the guest whether the booking was accepted.
func ReservationDecisionMessage(r model.Reservation, loc *time.Location) (Message, error) {
	heading := "Your table reservation has been accepted"
	if r.Status == model.ReservationStatusRejected {
		heading = "Unfortunately we cannot accept your table reservation"
	}
	body, err := renderReservation(heading, r, loc)
	if err != nil {
		return Message{}, err
	}
	return Message{To: []string{r.Email}, Subject: "Table Reservation Update", Body: body, HTML: true}, nil
}

func renderReservation(heading string, r model.Reservation, loc *time.Location) (string, error) {
	if loc == nil {
		loc = time.UTC
	}
	data := struct {
		Heading, Name, Email, Mobile, Note, When string
		Guests                                   int
	}{
		Heading: heading,
		Name:    r.Name,
		Email:   r.Email,
		Mobile:  r.Mobile,
		Note:    r.Note,
		Guests:  r.Guests,
		When:    r.ReservedFor.In(loc).Format("2006-01-02 15:04"),
	}
	var buf bytes.Buffer
	if err := reservationTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render reservation: %w", err)
	}
	return buf.String(), nil
}
