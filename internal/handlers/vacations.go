package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"gorm.io/datatypes"

	"github.com/v/vacationCatalog/internal/forms"
	"github.com/v/vacationCatalog/internal/models"
	"github.com/v/vacationCatalog/internal/storage"
)

// HandleVacationList — GET/POST /. Каталог по возрастанию даты начала;
// админ и пользователь получают разные шаблоны.
func (h *Handler) HandleVacationList(w http.ResponseWriter, r *http.Request) {
	user, ok := h.CurrentUser(r)
	if !ok {
		http.Redirect(w, r, "/login/", http.StatusFound)
		return
	}

	vacations, err := h.Repos.Vacations.ListByStartDate(user.ID)
	if err != nil {
		h.Log.Error("list vacations", "err", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	data := h.pageData(w, r, "Vacations")
	data.Vacations = vacations

	if user.IsAdmin() {
		h.render(w, "admin_vacation_list.html", data)
	} else {
		h.render(w, "vacation_list.html", data)
	}
}

// HandleAddVacation — GET/POST /add/ (только админ, через middleware).
func (h *Handler) HandleAddVacation(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		h.renderVacationForm(w, r, "add_vacation.html", "Add Vacation",
			&forms.VacationForm{Errors: forms.Errors{}}, nil)
		return
	}

	form := forms.ParseVacationForm(r)
	ok := form.Validate(time.Now(), true)
	ok = h.checkCountry(form, ok)

	if !ok {
		h.flash(w, r, flashError, "Please correct the errors below.")
		h.renderVacationForm(w, r, "add_vacation.html", "Add Vacation", form, nil)
		return
	}

	imageFile := models.DefaultImage
	if name, uploaded, err := h.saveUpload(r); err != nil {
		h.Log.Error("save image", "err", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	} else if uploaded {
		imageFile = name
	}

	vacation := &models.Vacation{
		CountryID:   form.CountryID,
		Description: form.Description,
		StartDate:   datatypes.Date(form.StartDate),
		EndDate:     datatypes.Date(form.EndDate),
		Price:       form.Price,
		ImageFile:   imageFile,
	}
	if err := h.Repos.Vacations.Create(vacation); err != nil {
		h.Log.Error("create vacation", "err", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	h.flash(w, r, flashSuccess, "Vacation added successfully!")
	http.Redirect(w, r, "/", http.StatusFound)
}

// HandleEditVacation — GET/POST /edit/{id}/ (только админ, через middleware).
func (h *Handler) HandleEditVacation(w http.ResponseWriter, r *http.Request) {
	vacation, ok := h.vacationFromPath(w, r)
	if !ok {
		return
	}

	if r.Method != http.MethodPost {
		form := &forms.VacationForm{
			CountryID:    vacation.CountryID,
			Description:  vacation.Description,
			StartDate:    vacation.Starts(),
			EndDate:      vacation.Ends(),
			Price:        vacation.Price,
			RawCountry:   strconv.FormatUint(uint64(vacation.CountryID), 10),
			RawStartDate: vacation.Starts().Format("2006-01-02"),
			RawEndDate:   vacation.Ends().Format("2006-01-02"),
			RawPrice:     strconv.FormatFloat(vacation.Price, 'f', 2, 64),
			Errors:       forms.Errors{},
		}
		h.renderVacationForm(w, r, "edit_vacation.html", "Edit Vacation", form, vacation)
		return
	}

	form := forms.ParseVacationForm(r)
	ok = form.Validate(time.Now(), false)
	ok = h.checkCountry(form, ok)

	if !ok {
		h.flash(w, r, flashError, "Please correct the errors below.")
		h.renderVacationForm(w, r, "edit_vacation.html", "Edit Vacation", form, vacation)
		return
	}

	// Без новой картинки прежняя ссылка сохраняется.
	if name, uploaded, err := h.saveUpload(r); err != nil {
		h.Log.Error("save image", "err", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	} else if uploaded {
		vacation.ImageFile = name
	}

	vacation.CountryID = form.CountryID
	vacation.Description = form.Description
	vacation.StartDate = datatypes.Date(form.StartDate)
	vacation.EndDate = datatypes.Date(form.EndDate)
	vacation.Price = form.Price

	if err := h.Repos.Vacations.Update(vacation); err != nil {
		h.Log.Error("update vacation", "err", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	h.flash(w, r, flashSuccess, "Vacation updated successfully!")
	http.Redirect(w, r, "/", http.StatusFound)
}

// HandleDeleteVacation — POST /delete/{id}/. Отказ не-админу уходит
// JSON-флагом, не HTTP-ошибкой.
func (h *Handler) HandleDeleteVacation(w http.ResponseWriter, r *http.Request) {
	user, ok := h.CurrentUser(r)
	if !ok {
		http.Redirect(w, r, "/login/", http.StatusFound)
		return
	}
	if !user.IsAdmin() {
		writeJSON(w, http.StatusOK, map[string]any{"success": false, "error": "Permission denied"})
		return
	}

	id, err := pathID(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"success": false, "error": "Invalid vacation ID"})
		return
	}

	err = h.Repos.Vacations.Delete(id)
	if errors.Is(err, storage.ErrNotFound) {
		writeJSON(w, http.StatusNotFound, map[string]any{"success": false, "error": "Vacation not found"})
		return
	}
	if err != nil {
		h.Log.Error("delete vacation", "err", err)
		writeJSON(w, http.StatusInternalServerError, map[string]any{"success": false, "error": "Database error"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

// HandleToggleLike — POST /like/{id}/
func (h *Handler) HandleToggleLike(w http.ResponseWriter, r *http.Request) {
	user, ok := h.CurrentUser(r)
	if !ok {
		http.Redirect(w, r, "/login/", http.StatusFound)
		return
	}

	id, err := pathID(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"success": false, "error": "Invalid vacation ID"})
		return
	}

	if _, err := h.Repos.Vacations.ByID(id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, map[string]any{"success": false, "error": "Vacation not found"})
			return
		}
		h.Log.Error("load vacation", "err", err)
		writeJSON(w, http.StatusInternalServerError, map[string]any{"success": false, "error": "Database error"})
		return
	}

	liked, count, err := h.Repos.Likes.Toggle(user.ID, id)
	if err != nil {
		h.Log.Error("toggle like", "err", err)
		writeJSON(w, http.StatusInternalServerError, map[string]any{"success": false, "error": "Database error"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":    true,
		"liked":      liked,
		"like_count": count,
	})
}

func (h *Handler) renderVacationForm(w http.ResponseWriter, r *http.Request,
	tmpl, title string, form *forms.VacationForm, vacation *models.Vacation) {
	countries, err := h.Repos.Countries.All()
	if err != nil {
		h.Log.Error("list countries", "err", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	data := h.pageData(w, r, title)
	data.Countries = countries
	data.VacationForm = form
	data.Vacation = vacation
	h.render(w, tmpl, data)
}

func (h *Handler) checkCountry(form *forms.VacationForm, ok bool) bool {
	if form.CountryID == 0 {
		return ok
	}
	exists, err := h.Repos.Countries.Exists(form.CountryID)
	if err != nil {
		h.Log.Error("check country", "err", err)
		return false
	}
	if !exists {
		form.Errors.Add("country", "Select a valid country.")
		return false
	}
	return ok
}

// saveUpload кладёт картинку из multipart-поля image в хранилище.
func (h *Handler) saveUpload(r *http.Request) (string, bool, error) {
	file, header, err := r.FormFile("image")
	if errors.Is(err, http.ErrMissingFile) {
		return "", false, nil
	}
	if err != nil {
		// Не multipart-запрос — картинки нет.
		return "", false, nil
	}
	defer file.Close()

	name, err := h.Images.Save(header.Filename, file)
	if err != nil {
		return "", false, err
	}
	return name, true, nil
}

func (h *Handler) vacationFromPath(w http.ResponseWriter, r *http.Request) (*models.Vacation, bool) {
	id, err := pathID(r)
	if err != nil {
		http.NotFound(w, r)
		return nil, false
	}

	vacation, err := h.Repos.Vacations.ByID(id)
	if errors.Is(err, storage.ErrNotFound) {
		http.NotFound(w, r)
		return nil, false
	}
	if err != nil {
		h.Log.Error("load vacation", "err", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return nil, false
	}
	return vacation, true
}

func pathID(r *http.Request) (uint, error) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	return uint(id), err
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}
