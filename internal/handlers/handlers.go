package handlers

import (
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/gorilla/sessions"
	"golang.org/x/oauth2"
	"gorm.io/datatypes"

	"github.com/v/vacationCatalog/internal/forms"
	"github.com/v/vacationCatalog/internal/models"
	"github.com/v/vacationCatalog/internal/storage"
	"github.com/v/vacationCatalog/pkg/logger"
)

const (
	sessionName  = "session"
	flashSuccess = "_flash_success"
	flashError   = "_flash_error"
)

type Handler struct {
	Repos  *storage.Repos
	Store  *sessions.CookieStore
	Tmpl   *template.Template
	Images storage.ImageStore
	Log    logger.Logger
	OAuth  *oauth2.Config // nil, когда вход через Google выключен
}

func NewHandler(repos *storage.Repos, store *sessions.CookieStore, tmpl *template.Template,
	images storage.ImageStore, log logger.Logger, oauth *oauth2.Config) *Handler {
	return &Handler{
		Repos:  repos,
		Store:  store,
		Tmpl:   tmpl,
		Images: images,
		Log:    log,
		OAuth:  oauth,
	}
}

// LoadTemplates парсит страницы из папки template с функциями
// форматирования дат и цен.
func LoadTemplates(dir string) (*template.Template, error) {
	funcMap := template.FuncMap{
		"formatDate": func(d datatypes.Date) string {
			return time.Time(d).Format("2006-01-02")
		},
		"money": func(price float64) string {
			return fmt.Sprintf("%.2f", price)
		},
	}

	tmpl, err := template.New("").Funcs(funcMap).ParseGlob(dir + "/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return tmpl, nil
}

type PageData struct {
	Title           string
	IsAuthenticated bool
	UserID          uint
	IsAdmin         bool
	UserName        string
	Successes       []string
	ErrorMessages   []string
	GoogleEnabled   bool

	Vacations []models.Vacation
	Vacation  *models.Vacation
	Countries []models.Country

	RegisterForm *forms.RegisterForm
	LoginForm    *forms.LoginForm
	VacationForm *forms.VacationForm
}

func (h *Handler) GetAuthenticatedUserID(r *http.Request) (uint, bool) {
	session, _ := h.Store.Get(r, sessionName)

	userIDValue := session.Values["user_id"]
	userID, ok := userIDValue.(uint)

	return userID, ok && userID != 0
}

// CurrentUser читает user_id из подписанной куки и поднимает
// пользователя с ролью из базы.
func (h *Handler) CurrentUser(r *http.Request) (*models.User, bool) {
	userID, ok := h.GetAuthenticatedUserID(r)
	if !ok {
		return nil, false
	}

	user, err := h.Repos.Users.ByID(userID)
	if err != nil {
		return nil, false
	}
	return user, true
}

func (h *Handler) establishSession(w http.ResponseWriter, r *http.Request, userID uint) error {
	session, _ := h.Store.Get(r, sessionName)
	session.Values["user_id"] = userID
	return session.Save(r, w)
}

// Flash показывает сообщение об ошибке на следующей странице.
func (h *Handler) Flash(w http.ResponseWriter, r *http.Request, message string) {
	h.flash(w, r, flashError, message)
}

func (h *Handler) flash(w http.ResponseWriter, r *http.Request, key, message string) {
	session, _ := h.Store.Get(r, sessionName)
	session.AddFlash(message, key)
	if err := session.Save(r, w); err != nil {
		h.Log.Warn("save flash", "err", err)
	}
}

func (h *Handler) popFlashes(w http.ResponseWriter, r *http.Request, data *PageData) {
	session, _ := h.Store.Get(r, sessionName)
	for _, f := range session.Flashes(flashSuccess) {
		if msg, ok := f.(string); ok {
			data.Successes = append(data.Successes, msg)
		}
	}
	for _, f := range session.Flashes(flashError) {
		if msg, ok := f.(string); ok {
			data.ErrorMessages = append(data.ErrorMessages, msg)
		}
	}
	if err := session.Save(r, w); err != nil {
		h.Log.Warn("clear flashes", "err", err)
	}
}

func (h *Handler) pageData(w http.ResponseWriter, r *http.Request, title string) PageData {
	data := PageData{
		Title:         title,
		GoogleEnabled: h.OAuth != nil,
	}
	if user, ok := h.CurrentUser(r); ok {
		data.IsAuthenticated = true
		data.UserID = user.ID
		data.IsAdmin = user.IsAdmin()
		data.UserName = user.FullName()
	}
	h.popFlashes(w, r, &data)
	return data
}

func (h *Handler) render(w http.ResponseWriter, name string, data PageData) {
	if err := h.Tmpl.ExecuteTemplate(w, name, data); err != nil {
		h.Log.Error("render template", "template", name, "err", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}
