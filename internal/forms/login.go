package forms

import "net/http"

type LoginForm struct {
	Email    string
	Password string

	Errors Errors
}

func ParseLoginForm(r *http.Request) *LoginForm {
	return &LoginForm{
		Email:    normalizeEmail(r.PostFormValue("email")),
		Password: r.PostFormValue("password"),
		Errors:   Errors{},
	}
}

func (f *LoginForm) Validate() bool {
	validateEmail(f.Errors, f.Email)

	if len(f.Password) < minPasswordLen {
		f.Errors.Add("password", "Password must be at least 4 characters.")
	}

	return !f.Errors.Any()
}
