package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/v/vacationCatalog/internal/auth"
	"github.com/v/vacationCatalog/internal/forms"
	"github.com/v/vacationCatalog/internal/models"
	"github.com/v/vacationCatalog/internal/storage"
)

// HandleRegister — GET/POST /register/
func (h *Handler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		data := h.pageData(w, r, "Register")
		data.RegisterForm = &forms.RegisterForm{Errors: forms.Errors{}}
		h.render(w, "register.html", data)
		return
	}

	form := forms.ParseRegisterForm(r)
	ok := form.Validate()

	if ok {
		taken, err := h.Repos.Users.EmailTaken(form.Email)
		if err != nil {
			h.Log.Error("check email", "err", err)
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}
		if taken {
			form.Errors.Add("email", "A user with this email already exists.")
			ok = false
		}
	}

	if ok {
		hash, err := auth.HashPassword(form.Password1)
		if err != nil {
			h.Log.Error("hash password", "err", err)
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}

		user := &models.User{
			FirstName:    form.FirstName,
			LastName:     form.LastName,
			Email:        form.Email,
			PasswordHash: hash,
			IsActive:     true,
			RoleID:       models.RoleUser,
		}
		err = h.Repos.Users.Create(user)
		if errors.Is(err, storage.ErrDuplicateEmail) {
			form.Errors.Add("email", "A user with this email already exists.")
			ok = false
		} else if err != nil {
			h.Log.Error("create user", "err", err)
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}

		if ok {
			if err := h.establishSession(w, r, user.ID); err != nil {
				h.Log.Error("establish session", "err", err)
			}
			h.flash(w, r, flashSuccess, "Registration successful!")
			http.Redirect(w, r, "/", http.StatusFound)
			return
		}
	}

	h.flash(w, r, flashError, "Please correct the errors below.")
	data := h.pageData(w, r, "Register")
	data.RegisterForm = form
	h.render(w, "register.html", data)
}

// HandleLogin — GET/POST /login/
func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	h.handleLogin(w, r, "login.html", "Invalid email or password. Please try again.")
}

// HandleLoginSimple — та же логика, другой шаблон.
func (h *Handler) HandleLoginSimple(w http.ResponseWriter, r *http.Request) {
	h.handleLogin(w, r, "login_simple.html", "Invalid email or password.")
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request, tmpl, failMessage string) {
	if r.Method != http.MethodPost {
		data := h.pageData(w, r, "Login")
		data.LoginForm = &forms.LoginForm{Errors: forms.Errors{}}
		h.render(w, tmpl, data)
		return
	}

	form := forms.ParseLoginForm(r)
	if form.Validate() {
		user, err := h.authenticate(form.Email, form.Password)
		if err == nil {
			if err := h.establishSession(w, r, user.ID); err != nil {
				h.Log.Error("establish session", "err", err)
			}
			h.flash(w, r, flashSuccess, "Welcome back, "+user.FirstName+"!")
			http.Redirect(w, r, "/", http.StatusFound)
			return
		}
		// Сообщение нарочно одно и то же: "нет такого email" и
		// "неверный пароль" снаружи неотличимы.
		h.flash(w, r, flashError, failMessage)
	}

	data := h.pageData(w, r, "Login")
	data.LoginForm = form
	h.render(w, tmpl, data)
}

var errInvalidCredentials = errors.New("invalid credentials")

func (h *Handler) authenticate(email, password string) (*models.User, error) {
	user, err := h.Repos.Users.ByEmail(email)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, errInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if !user.IsActive {
		return nil, errInvalidCredentials
	}
	if !auth.VerifyPassword(password, user.PasswordHash) {
		return nil, errInvalidCredentials
	}
	return user, nil
}

// HandleLogout — POST /logout/. Сброс сессии безусловный.
func (h *Handler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	session, _ := h.Store.Get(r, sessionName)
	session.Options.MaxAge = -1
	if err := session.Save(r, w); err != nil {
		h.Log.Warn("destroy session", "err", err)
	}
	http.Redirect(w, r, "/login/", http.StatusFound)
}

// HandleGoogleLogin — GET /auth/google/login
func (h *Handler) HandleGoogleLogin(w http.ResponseWriter, r *http.Request) {
	url := h.OAuth.AuthCodeURL("random_state")
	http.Redirect(w, r, url, http.StatusTemporaryRedirect)
}

// HandleGoogleCallback — GET /auth/google/callback
func (h *Handler) HandleGoogleCallback(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("state") != "random_state" {
		http.Error(w, "Invalid state", http.StatusUnauthorized)
		return
	}

	code := r.URL.Query().Get("code")
	token, err := h.OAuth.Exchange(context.Background(), code)
	if err != nil {
		http.Error(w, "Token exchange error", http.StatusBadRequest)
		return
	}

	client := h.OAuth.Client(context.Background(), token)
	resp, err := client.Get("https://www.googleapis.com/oauth2/v2/userinfo")
	if err != nil {
		http.Error(w, "Google API error", http.StatusBadRequest)
		return
	}
	defer resp.Body.Close()

	var info struct {
		ID         string `json:"id"`
		Email      string `json:"email"`
		GivenName  string `json:"given_name"`
		FamilyName string `json:"family_name"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		http.Error(w, "JSON decode error", http.StatusInternalServerError)
		return
	}

	user, err := h.Repos.Users.FindOrCreateByGoogle(info.ID, info.Email, info.GivenName, info.FamilyName)
	if err != nil {
		h.Log.Error("save google user", "err", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	if err := h.establishSession(w, r, user.ID); err != nil {
		h.Log.Error("establish session", "err", err)
	}
	h.flash(w, r, flashSuccess, "Welcome back, "+user.FirstName+"!")
	http.Redirect(w, r, "/", http.StatusFound)
}
