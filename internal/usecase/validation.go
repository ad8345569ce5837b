package usecase

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	domainErrors "github.com/polkiloo/sushibar/internal/domain/errors"
	"github.com/polkiloo/sushibar/internal/domain/model"
)

const (
	dateLayout      = "2006-01-02"
	timeLayout      = "15:04"
	maxReasonLength = 200
	maxQuantity     = math.MaxInt32
	priceScale      = 2
)

// maxPrice is the largest value an orders.price NUMERIC(10,2) column holds.
var maxPrice = decimal.RequireFromString("99999999.99")

var validate = validator.New(validator.WithRequiredStructEnabled())

// CredentialsInput is a customer sign-up or sign-in request.
type CredentialsInput struct {
	Login    string `validate:"required,max=64"`
	Email    string `validate:"omitempty,email"`
	Password string `validate:"required,min=6"`
}

// ContactInput is a public contact form entry.
type ContactInput struct {
	Name    string `validate:"required,max=100"`
	Email   string `validate:"required,email"`
	Message string `validate:"required,max=2000"`
}

// ReservationInput is a public table booking request.
type ReservationInput struct {
	Name   string `validate:"required,max=100"`
	Email  string `validate:"required,email"`
	Mobile string `validate:"required,max=32"`
	Guests int    `validate:"min=1,max=50"`
	Date   string `validate:"required"`
	Time   string `validate:"required"`
	Note   string `validate:"max=500"`
}

// CategoryInput creates a menu category.
type CategoryInput struct {
	Name        string `validate:"required,max=100"`
	Description string `validate:"max=500"`
	AddedBy     string `validate:"required,max=100"`
}

// MenuItemInput creates or replaces a menu item.
type MenuItemInput struct {
	CategoryID  int64  `validate:"min=0"`
	Name        string `validate:"required,max=150"`
	Description string `validate:"max=1000"`
	Price       string `validate:"required,numeric"`
	ImageURL    string `validate:"max=500"`
	Featured    bool
}

// validateStruct runs tag rules and converts the first failure into a ValidationError.
func validateStruct(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return domainErrors.NewValidationError(err.Error())
	}
	fe := fieldErrs[0]
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return domainErrors.NewValidationError(field + " is required")
	case "email":
		return domainErrors.NewValidationError(field + " must be a valid email")
	case "numeric":
		return domainErrors.NewValidationError(field + " must be a number")
	case "min", "max":
		return domainErrors.NewValidationError(fmt.Sprintf("%s must be %s %s", field, boundWord(fe.Tag()), fe.Param()))
	default:
		return domainErrors.NewValidationError(field + " is invalid")
	}
}

func boundWord(tag string) string {
	if tag == "min" {
		return "at least"
	}
	return "at most"
}

// validateSubmission checks the whole batch before anything is written.
func validateSubmission(sub model.OrderSubmission) error {
	if len(sub.Lines) == 0 {
		if sub.Cart {
			return domainErrors.NewValidationError("cart is empty")
		}
		return domainErrors.NewValidationError("item and quantity are required")
	}
	for i, line := range sub.Lines {
		if strings.TrimSpace(line.Name) == "" {
			if sub.Cart {
				return domainErrors.NewValidationError(fmt.Sprintf("cart item %d has no name", i+1))
			}
			return domainErrors.NewValidationError("item and quantity are required")
		}
		if line.Quantity < 1 {
			return domainErrors.NewValidationError("quantity must be at least 1")
		}
		if line.Quantity > maxQuantity {
			return domainErrors.NewValidationError(fmt.Sprintf("quantity must be at most %d", maxQuantity))
		}
		if line.Price.IsNegative() {
			return domainErrors.NewValidationError("price must not be negative")
		}
		if line.Price.GreaterThan(maxPrice) {
			return domainErrors.NewValidationError("price must be at most " + maxPrice.StringFixed(priceScale))
		}
		if !line.Price.Equal(line.Price.Round(priceScale)) {
			return domainErrors.NewValidationError("price must have at most 2 decimal places")
		}
	}
	if err := validate.Var(sub.Email, "required,email"); err != nil {
		return domainErrors.NewValidationError("email must be a valid email")
	}
	if strings.TrimSpace(sub.Mobile) == "" || strings.TrimSpace(sub.Address) == "" || strings.TrimSpace(sub.Delivery) == "" {
		return domainErrors.NewValidationError("mobile, address and delivery are required")
	}
	if _, ok := model.ParseDeliveryMethod(sub.Delivery); !ok {
		return domainErrors.NewValidationError("unknown delivery method " + sub.Delivery)
	}
	switch sub.Type {
	case model.OrderTypeNow, "":
	case model.OrderTypeLater:
		if strings.TrimSpace(sub.ScheduledDate) == "" || strings.TrimSpace(sub.ScheduledTime) == "" {
			return domainErrors.NewValidationError("scheduled orders need date and time")
		}
	default:
		return domainErrors.NewValidationError("unknown order type " + string(sub.Type))
	}
	return nil
}

// parseLocalDateTime combines a YYYY-MM-DD date and HH:MM time in loc.
func parseLocalDateTime(date, clock string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}
	t, err := time.ParseInLocation(dateLayout+" "+timeLayout, strings.TrimSpace(date)+" "+strings.TrimSpace(clock), loc)
	if err != nil {
		return time.Time{}, domainErrors.NewValidationError("invalid date or time")
	}
	return t, nil
}

// dayRange returns [start, end) of the calendar day named by date in loc.
func dayRange(date string, loc *time.Location) (time.Time, time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}
	start, err := time.ParseInLocation(dateLayout, strings.TrimSpace(date), loc)
	if err != nil {
		return time.Time{}, time.Time{}, domainErrors.NewValidationError("invalid date " + date)
	}
	return start, start.AddDate(0, 0, 1), nil
}

// normalizeReason trims reason and caps it at maxReasonLength runes.
func normalizeReason(reason string) *string {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil
	}
	if r := []rune(reason); len(r) > maxReasonLength {
		reason = strings.TrimSpace(string(r[:maxReasonLength]))
	}
	return &reason
}

func requireStaff(principal *model.Principal) error {
	if principal == nil {
		return domainErrors.ErrUnauthorized
	}
	if !principal.Role.IsStaff() {
		return domainErrors.ErrForbidden
	}
	return nil
}
