package forms

import (
	"net/http"
	"net/mail"
	"strings"
	"unicode/utf8"
)

const (
	maxNameLen     = 50
	maxEmailLen    = 100
	minPasswordLen = 4
)

// RegisterForm — данные формы регистрации. Уникальность email
// проверяет хендлер по базе, здесь только правила полей.
type RegisterForm struct {
	FirstName string
	LastName  string
	Email     string
	Password1 string
	Password2 string

	Errors Errors
}

func ParseRegisterForm(r *http.Request) *RegisterForm {
	return &RegisterForm{
		FirstName: strings.TrimSpace(r.PostFormValue("first_name")),
		LastName:  strings.TrimSpace(r.PostFormValue("last_name")),
		Email:     normalizeEmail(r.PostFormValue("email")),
		Password1: r.PostFormValue("password1"),
		Password2: r.PostFormValue("password2"),
		Errors:    Errors{},
	}
}

func (f *RegisterForm) Validate() bool {
	if f.FirstName == "" {
		f.Errors.Add("first_name", "This field is required.")
	} else if utf8.RuneCountInString(f.FirstName) > maxNameLen {
		f.Errors.Add("first_name", "First name is too long.")
	}

	if f.LastName == "" {
		f.Errors.Add("last_name", "This field is required.")
	} else if utf8.RuneCountInString(f.LastName) > maxNameLen {
		f.Errors.Add("last_name", "Last name is too long.")
	}

	validateEmail(f.Errors, f.Email)

	if utf8.RuneCountInString(f.Password1) < minPasswordLen {
		f.Errors.Add("password1", "Password must be at least 4 characters.")
	}
	if f.Password2 == "" {
		f.Errors.Add("password2", "This field is required.")
	} else if f.Password1 != f.Password2 {
		f.Errors.Add("password2", "Passwords do not match.")
	}

	return !f.Errors.Any()
}

func normalizeEmail(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

func validateEmail(errs Errors, email string) {
	if email == "" {
		errs.Add("email", "This field is required.")
		return
	}
	if utf8.RuneCountInString(email) > maxEmailLen {
		errs.Add("email", "Email is too long.")
		return
	}
	if addr, err := mail.ParseAddress(email); err != nil || addr.Address != email {
		errs.Add("email", "Enter a valid email address.")
	}
}
