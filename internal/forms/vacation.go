package forms

import (
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"
)

const (
	dateLayout = "2006-01-02"
	maxPrice   = 10000
)

// VacationForm — данные формы создания/редактирования путёвки.
// Сырые строки сохраняются для повторного рендера формы с ошибками.
type VacationForm struct {
	CountryID   uint
	Description string
	StartDate   time.Time
	EndDate     time.Time
	Price       float64

	RawCountry   string
	RawStartDate string
	RawEndDate   string
	RawPrice     string

	Errors Errors
}

func ParseVacationForm(r *http.Request) *VacationForm {
	f := &VacationForm{
		Description:  strings.TrimSpace(r.PostFormValue("description")),
		RawCountry:   strings.TrimSpace(r.PostFormValue("country")),
		RawStartDate: strings.TrimSpace(r.PostFormValue("start_date")),
		RawEndDate:   strings.TrimSpace(r.PostFormValue("end_date")),
		RawPrice:     strings.TrimSpace(r.PostFormValue("price")),
		Errors:       Errors{},
	}

	if id, err := strconv.ParseUint(f.RawCountry, 10, 32); err == nil {
		f.CountryID = uint(id)
	}
	if t, err := time.Parse(dateLayout, f.RawStartDate); err == nil {
		f.StartDate = t
	}
	if t, err := time.Parse(dateLayout, f.RawEndDate); err == nil {
		f.EndDate = t
	}
	if p, err := strconv.ParseFloat(f.RawPrice, 64); err == nil {
		f.Price = p
	}

	return f
}

// Validate проверяет правила полей; isCreate включает запрет прошедшей
// даты начала (редактировать старые путёвки можно). Существование
// страны проверяет хендлер по базе.
func (f *VacationForm) Validate(today time.Time, isCreate bool) bool {
	if f.RawCountry == "" {
		f.Errors.Add("country", "This field is required.")
	} else if f.CountryID == 0 {
		f.Errors.Add("country", "Select a valid country.")
	}

	if f.Description == "" {
		f.Errors.Add("description", "This field is required.")
	}

	if f.RawStartDate == "" {
		f.Errors.Add("start_date", "This field is required.")
	} else if f.StartDate.IsZero() {
		f.Errors.Add("start_date", "Enter a valid date.")
	}

	if f.RawEndDate == "" {
		f.Errors.Add("end_date", "This field is required.")
	} else if f.EndDate.IsZero() {
		f.Errors.Add("end_date", "Enter a valid date.")
	}

	if !f.StartDate.IsZero() && !f.EndDate.IsZero() {
		if !f.EndDate.After(f.StartDate) {
			f.Errors.Add("", "End date must be after start date")
		}
		if isCreate && f.StartDate.Before(truncateToDay(today)) {
			f.Errors.Add("", "Start date cannot be in the past")
		}
	}

	if f.RawPrice == "" {
		f.Errors.Add("price", "This field is required.")
	} else if _, err := strconv.ParseFloat(f.RawPrice, 64); err != nil {
		f.Errors.Add("price", "Enter a valid price.")
	} else if f.Price < 0 || f.Price > maxPrice {
		f.Errors.Add("price", "Price must be between 0 and 10000.")
	} else if hasExtraDecimals(f.Price) {
		f.Errors.Add("price", "Price allows at most 2 decimal places.")
	}

	return !f.Errors.Any()
}

// truncateToDay приводит момент времени к календарной дате в UTC —
// так сравнение с распарсенной датой формы (полночь UTC) не зависит
// от часового пояса сервера.
func truncateToDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func hasExtraDecimals(price float64) bool {
	cents := price * 100
	return math.Abs(cents-math.Round(cents)) > 1e-9
}
