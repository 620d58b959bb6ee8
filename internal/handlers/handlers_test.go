package handlers_test

import (
	"encoding/json"
	"fmt"
	"html/template"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/sessions"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"github.com/v/vacationCatalog/internal/auth"
	"github.com/v/vacationCatalog/internal/handlers"
	"github.com/v/vacationCatalog/internal/middleware"
	"github.com/v/vacationCatalog/internal/models"
	"github.com/v/vacationCatalog/internal/storage"
	"github.com/v/vacationCatalog/pkg/logger"
)

// ---------------------------------------------------------------------------
// In-memory fakes for the repository interfaces
// ---------------------------------------------------------------------------

func roleFor(id uint) models.Role {
	if id == models.RoleAdmin {
		return models.Role{ID: models.RoleAdmin, Name: models.RoleNameAdmin}
	}
	return models.Role{ID: models.RoleUser, Name: models.RoleNameUser}
}

type fakeUserRepo struct {
	mu    sync.Mutex
	seq   uint
	users map[uint]*models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uint]*models.User)}
}

func (r *fakeUserRepo) ByID(id uint) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	copied := *user
	copied.Role = roleFor(user.RoleID)
	return &copied, nil
}

func (r *fakeUserRepo) ByEmail(email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.Email == email {
			copied := *user
			copied.Role = roleFor(user.RoleID)
			return &copied, nil
		}
	}
	return nil, storage.ErrNotFound
}

func (r *fakeUserRepo) EmailTaken(email string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeUserRepo) Create(user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if existing.Email == user.Email {
			return storage.ErrDuplicateEmail
		}
	}
	r.seq++
	user.ID = r.seq
	copied := *user
	r.users[user.ID] = &copied
	return nil
}

func (r *fakeUserRepo) FindOrCreateByGoogle(googleID, email, firstName, lastName string) (*models.User, error) {
	if user, err := r.ByEmail(email); err == nil {
		return user, nil
	}
	user := &models.User{
		FirstName: firstName,
		LastName:  lastName,
		Email:     email,
		GoogleID:  googleID,
		IsActive:  true,
		RoleID:    models.RoleUser,
	}
	if err := r.Create(user); err != nil {
		return nil, err
	}
	return r.ByID(user.ID)
}

type fakeCountryRepo struct {
	countries []models.Country
}

func (r *fakeCountryRepo) All() ([]models.Country, error) {
	return r.countries, nil
}

func (r *fakeCountryRepo) Exists(id uint) (bool, error) {
	for _, c := range r.countries {
		if c.ID == id {
			return true, nil
		}
	}
	return false, nil
}

type fakeLikeRepo struct {
	mu  sync.Mutex
	set map[[2]uint]bool
}

func newFakeLikeRepo() *fakeLikeRepo {
	return &fakeLikeRepo{set: make(map[[2]uint]bool)}
}

func (r *fakeLikeRepo) Toggle(userID, vacationID uint) (bool, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := [2]uint{userID, vacationID}
	liked := !r.set[key]
	if liked {
		r.set[key] = true
	} else {
		delete(r.set, key)
	}
	return liked, r.countLocked(vacationID), nil
}

func (r *fakeLikeRepo) countLocked(vacationID uint) int64 {
	var count int64
	for key := range r.set {
		if key[1] == vacationID {
			count++
		}
	}
	return count
}

func (r *fakeLikeRepo) count(vacationID uint) int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.countLocked(vacationID)
}

func (r *fakeLikeRepo) liked(userID, vacationID uint) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.set[[2]uint{userID, vacationID}]
}

type fakeVacationRepo struct {
	mu        sync.Mutex
	seq       uint
	vacations map[uint]*models.Vacation
	likes     *fakeLikeRepo
	countries *fakeCountryRepo
}

func newFakeVacationRepo(likes *fakeLikeRepo, countries *fakeCountryRepo) *fakeVacationRepo {
	return &fakeVacationRepo{vacations: make(map[uint]*models.Vacation), likes: likes, countries: countries}
}

func (r *fakeVacationRepo) ListByStartDate(userID uint) ([]models.Vacation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	result := make([]models.Vacation, 0, len(r.vacations))
	for _, v := range r.vacations {
		copied := *v
		copied.LikeCount = r.likes.count(v.ID)
		copied.UserLiked = r.likes.liked(userID, v.ID)
		result = append(result, copied)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Starts().Before(result[j].Starts())
	})
	return result, nil
}

func (r *fakeVacationRepo) ByID(id uint) (*models.Vacation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.vacations[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	copied := *v
	return &copied, nil
}

func (r *fakeVacationRepo) Create(vacation *models.Vacation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	vacation.ID = r.seq
	copied := *vacation
	r.vacations[vacation.ID] = &copied
	return nil
}

func (r *fakeVacationRepo) Update(vacation *models.Vacation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.vacations[vacation.ID]; !ok {
		return storage.ErrNotFound
	}
	copied := *vacation
	r.vacations[vacation.ID] = &copied
	return nil
}

func (r *fakeVacationRepo) Delete(id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.vacations[id]; !ok {
		return storage.ErrNotFound
	}
	delete(r.vacations, id)
	return nil
}

type fakeImageStore struct {
	mu    sync.Mutex
	saved map[string][]byte
}

func (s *fakeImageStore) Save(filename string, content io.Reader) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.saved == nil {
		s.saved = make(map[string][]byte)
	}
	name := filepath.Base(filename)
	data, _ := io.ReadAll(content)
	s.saved[name] = data
	return name, nil
}

// ---------------------------------------------------------------------------
// Test server wiring (routes mirror cmd/main.go)
// ---------------------------------------------------------------------------

const testTemplates = `
{{define "flashes"}}{{range .Successes}}[success:{{.}}]{{end}}{{range .ErrorMessages}}[error:{{.}}]{{end}}{{end}}
{{define "fielderrors"}}{{range $field, $messages := .}}{{range $messages}}({{$field}}:{{.}}){{end}}{{end}}{{end}}
{{define "login.html"}}login-page {{template "flashes" .}}{{with .LoginForm}}{{template "fielderrors" .Errors}}{{end}}{{end}}
{{define "login_simple.html"}}login-simple {{template "flashes" .}}{{end}}
{{define "register.html"}}register-page {{template "flashes" .}}{{with .RegisterForm}}{{template "fielderrors" .Errors}}{{end}}{{end}}
{{define "vacation_list.html"}}user-list:{{len .Vacations}} {{template "flashes" .}}{{end}}
{{define "admin_vacation_list.html"}}admin-list:{{len .Vacations}} {{template "flashes" .}}{{end}}
{{define "add_vacation.html"}}add-form {{template "flashes" .}}{{with .VacationForm}}{{template "fielderrors" .Errors}}{{end}}{{end}}
{{define "edit_vacation.html"}}edit-form {{template "flashes" .}}{{with .VacationForm}}{{template "fielderrors" .Errors}}{{end}}{{end}}
`

type testEnv struct {
	server    *httptest.Server
	users     *fakeUserRepo
	vacations *fakeVacationRepo
	likes     *fakeLikeRepo
	images    *fakeImageStore
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	users := newFakeUserRepo()
	likes := newFakeLikeRepo()
	countries := &fakeCountryRepo{countries: []models.Country{
		{ID: 1, Name: "Spain"},
		{ID: 2, Name: "Japan"},
	}}
	vacations := newFakeVacationRepo(likes, countries)
	images := &fakeImageStore{}

	repos := &storage.Repos{
		Users:     users,
		Countries: countries,
		Vacations: vacations,
		Likes:     likes,
	}

	tmpl := template.Must(template.New("").Parse(testTemplates))
	store := sessions.NewCookieStore([]byte("test-session-key"))
	log := logger.New(io.Discard, 0, "text")

	h := handlers.NewHandler(repos, store, tmpl, images, log, nil)
	loginRequired := middleware.LoginRequired(h)
	adminRequired := middleware.AdminRequired(h)

	r := mux.NewRouter()
	r.HandleFunc("/register/", h.HandleRegister).Methods("GET", "POST")
	r.HandleFunc("/login/", h.HandleLogin).Methods("GET", "POST")
	r.HandleFunc("/login-simple/", h.HandleLoginSimple).Methods("GET", "POST")
	r.HandleFunc("/", loginRequired(h.HandleVacationList)).Methods("GET", "POST")
	r.HandleFunc("/logout/", loginRequired(h.HandleLogout)).Methods("POST")
	r.HandleFunc("/like/{id:[0-9]+}/", loginRequired(h.HandleToggleLike)).Methods("POST")
	r.HandleFunc("/delete/{id:[0-9]+}/", loginRequired(h.HandleDeleteVacation)).Methods("POST")
	r.HandleFunc("/add/", adminRequired(h.HandleAddVacation)).Methods("GET", "POST")
	r.HandleFunc("/edit/{id:[0-9]+}/", adminRequired(h.HandleEditVacation)).Methods("GET", "POST")

	server := httptest.NewServer(middleware.SuppressWellKnown(r))
	t.Cleanup(server.Close)

	return &testEnv{server: server, users: users, vacations: vacations, likes: likes, images: images}
}

func (e *testEnv) addUser(t *testing.T, email, password string, roleID uint) *models.User {
	t.Helper()
	hash, err := auth.HashPassword(password)
	require.NoError(t, err)
	user := &models.User{
		FirstName:    "Test",
		LastName:     "User",
		Email:        email,
		PasswordHash: hash,
		IsActive:     true,
		RoleID:       roleID,
	}
	require.NoError(t, e.users.Create(user))
	return user
}

func (e *testEnv) addVacation(t *testing.T, daysFromNow int) *models.Vacation {
	t.Helper()
	start := time.Now().AddDate(0, 0, daysFromNow)
	vacation := &models.Vacation{
		CountryID:   1,
		Description: "Test vacation",
		StartDate:   datatypes.Date(start),
		EndDate:     datatypes.Date(start.AddDate(0, 0, 7)),
		Price:       1000,
		ImageFile:   models.DefaultImage,
	}
	require.NoError(t, e.vacations.Create(vacation))
	return vacation
}

// newClient keeps cookies but never follows redirects, so each
// response's status code is observable.
func newClient(t *testing.T) *http.Client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &http.Client{
		Jar: jar,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}

func postForm(t *testing.T, client *http.Client, target string, form url.Values) *http.Response {
	t.Helper()
	resp, err := client.PostForm(target, form)
	require.NoError(t, err)
	return resp
}

func bodyString(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(data)
}

func login(t *testing.T, client *http.Client, base, email, password string) {
	t.Helper()
	resp := postForm(t, client, base+"/login/", url.Values{
		"email":    {email},
		"password": {password},
	})
	resp.Body.Close()
	require.Equal(t, http.StatusFound, resp.StatusCode, "login should redirect")
	require.Equal(t, "/", resp.Header.Get("Location"))
}

// ---------------------------------------------------------------------------
// Tests
// ---------------------------------------------------------------------------

func TestAnonymousRequestsRedirectToLogin(t *testing.T) {
	env := newTestEnv(t)
	client := newClient(t)

	requests := []struct {
		method string
		path   string
	}{
		{"GET", "/"},
		{"GET", "/add/"},
		{"POST", "/like/1/"},
		{"POST", "/logout/"},
		{"GET", "/edit/1/"},
	}

	for _, rq := range requests {
		req, err := http.NewRequest(rq.method, env.server.URL+rq.path, nil)
		require.NoError(t, err)
		resp, err := client.Do(req)
		require.NoError(t, err)
		resp.Body.Close()

		assert.Equal(t, http.StatusFound, resp.StatusCode, "%s %s", rq.method, rq.path)
		assert.Equal(t, "/login/", resp.Header.Get("Location"), "%s %s", rq.method, rq.path)
	}
}

func TestWellKnownProbesGetBare404(t *testing.T) {
	env := newTestEnv(t)
	client := newClient(t)

	resp, err := client.Get(env.server.URL + "/.well-known/appspecific/com.chrome.devtools.json")
	require.NoError(t, err)
	body := bodyString(t, resp)

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Empty(t, body)
}

func TestRegisterCreatesUserAndSignsIn(t *testing.T) {
	env := newTestEnv(t)
	client := newClient(t)

	resp := postForm(t, client, env.server.URL+"/register/", url.Values{
		"first_name": {"Alice"},
		"last_name":  {"Smith"},
		"email":      {"alice@example.com"},
		"password1":  {"pw1234"},
		"password2":  {"pw1234"},
	})
	resp.Body.Close()

	require.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/", resp.Header.Get("Location"))

	user, err := env.users.ByEmail("alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, models.RoleNameUser, user.Role.Name)
	assert.NotEqual(t, "pw1234", user.PasswordHash, "password must never be stored in plaintext")
	assert.True(t, auth.VerifyPassword("pw1234", user.PasswordHash))

	// Сессия уже установлена: каталог открывается без логина.
	resp, err = client.Get(env.server.URL + "/")
	require.NoError(t, err)
	body := bodyString(t, resp)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "user-list")
	assert.Contains(t, body, "[success:Registration successful!]")
}

func TestRegisterDuplicateEmailFails(t *testing.T) {
	env := newTestEnv(t)
	env.addUser(t, "taken@example.com", "whatever", models.RoleUser)

	resp := postForm(t, newClient(t), env.server.URL+"/register/", url.Values{
		"first_name": {"Bob"},
		"last_name":  {"Jones"},
		"email":      {"taken@example.com"},
		"password1":  {"pw1234"},
		"password2":  {"pw1234"},
	})
	body := bodyString(t, resp)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "(email:A user with this email already exists.)")
}

func TestRegisterValidation(t *testing.T) {
	env := newTestEnv(t)

	cases := []struct {
		name string
		form url.Values
		want string
	}{
		{
			name: "short password",
			form: url.Values{
				"first_name": {"A"}, "last_name": {"B"},
				"email": {"a@b.com"}, "password1": {"abc"}, "password2": {"abc"},
			},
			want: "(password1:Password must be at least 4 characters.)",
		},
		{
			name: "password mismatch",
			form: url.Values{
				"first_name": {"A"}, "last_name": {"B"},
				"email": {"a@b.com"}, "password1": {"pw1234"}, "password2": {"pw5678"},
			},
			want: "(password2:Passwords do not match.)",
		},
		{
			name: "missing first name",
			form: url.Values{
				"last_name": {"B"},
				"email":     {"a@b.com"}, "password1": {"pw1234"}, "password2": {"pw1234"},
			},
			want: "(first_name:This field is required.)",
		},
		{
			name: "bad email",
			form: url.Values{
				"first_name": {"A"}, "last_name": {"B"},
				"email": {"not-an-email"}, "password1": {"pw1234"}, "password2": {"pw1234"},
			},
			want: "(email:Enter a valid email address.)",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp := postForm(t, newClient(t), env.server.URL+"/register/", tc.form)
			body := bodyString(t, resp)
			assert.Equal(t, http.StatusOK, resp.StatusCode)
			assert.Contains(t, body, tc.want)
		})
	}
}

func TestLoginWrongPasswordShowsGenericMessage(t *testing.T) {
	env := newTestEnv(t)
	env.addUser(t, "alice@example.com", "pw1234", models.RoleUser)
	client := newClient(t)

	resp := postForm(t, client, env.server.URL+"/login/", url.Values{
		"email":    {"alice@example.com"},
		"password": {"wrong-password"},
	})
	body := bodyString(t, resp)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "[error:Invalid email or password. Please try again.]")

	// Сессии нет — каталог по-прежнему закрыт.
	resp2, err := client.Get(env.server.URL + "/")
	require.NoError(t, err)
	resp2.Body.Close()
	assert.Equal(t, http.StatusFound, resp2.StatusCode)
}

func TestLoginUnknownEmailShowsSameMessage(t *testing.T) {
	env := newTestEnv(t)

	resp := postForm(t, newClient(t), env.server.URL+"/login/", url.Values{
		"email":    {"nobody@example.com"},
		"password": {"pw1234"},
	})
	body := bodyString(t, resp)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "[error:Invalid email or password. Please try again.]")
}

func TestLoginInactiveUserRejected(t *testing.T) {
	env := newTestEnv(t)
	user := env.addUser(t, "gone@example.com", "pw1234", models.RoleUser)
	env.users.users[user.ID].IsActive = false

	resp := postForm(t, newClient(t), env.server.URL+"/login/", url.Values{
		"email":    {"gone@example.com"},
		"password": {"pw1234"},
	})
	body := bodyString(t, resp)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "[error:Invalid email or password. Please try again.]")
}

func TestLoginSuccessEstablishesSession(t *testing.T) {
	env := newTestEnv(t)
	env.addUser(t, "alice@example.com", "pw1234", models.RoleUser)
	client := newClient(t)

	login(t, client, env.server.URL, "alice@example.com", "pw1234")

	resp, err := client.Get(env.server.URL + "/")
	require.NoError(t, err)
	body := bodyString(t, resp)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "[success:Welcome back, Test!]")
}

func TestLogoutDestroysSession(t *testing.T) {
	env := newTestEnv(t)
	env.addUser(t, "alice@example.com", "pw1234", models.RoleUser)
	client := newClient(t)
	login(t, client, env.server.URL, "alice@example.com", "pw1234")

	resp := postForm(t, client, env.server.URL+"/logout/", url.Values{})
	resp.Body.Close()
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/login/", resp.Header.Get("Location"))

	resp2, err := client.Get(env.server.URL + "/")
	require.NoError(t, err)
	resp2.Body.Close()
	assert.Equal(t, http.StatusFound, resp2.StatusCode)
}

func TestCatalogTemplateDependsOnRole(t *testing.T) {
	env := newTestEnv(t)
	env.addUser(t, "admin@example.com", "admin123", models.RoleAdmin)
	env.addUser(t, "user@example.com", "user123", models.RoleUser)
	env.addVacation(t, 30)

	adminClient := newClient(t)
	login(t, adminClient, env.server.URL, "admin@example.com", "admin123")
	resp, err := adminClient.Get(env.server.URL + "/")
	require.NoError(t, err)
	assert.Contains(t, bodyString(t, resp), "admin-list:1")

	userClient := newClient(t)
	login(t, userClient, env.server.URL, "user@example.com", "user123")
	resp, err = userClient.Get(env.server.URL + "/")
	require.NoError(t, err)
	assert.Contains(t, bodyString(t, resp), "user-list:1")
}

func TestAdminPagesRejectNonAdmins(t *testing.T) {
	env := newTestEnv(t)
	env.addUser(t, "user@example.com", "user123", models.RoleUser)
	vacation := env.addVacation(t, 30)
	client := newClient(t)
	login(t, client, env.server.URL, "user@example.com", "user123")

	for _, path := range []string{"/add/", fmt.Sprintf("/edit/%d/", vacation.ID)} {
		resp, err := client.Get(env.server.URL + path)
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusFound, resp.StatusCode, path)
		assert.Equal(t, "/", resp.Header.Get("Location"), path)
	}
}

func TestAdminPagesOpenForAdmins(t *testing.T) {
	env := newTestEnv(t)
	env.addUser(t, "admin@example.com", "admin123", models.RoleAdmin)
	vacation := env.addVacation(t, 30)
	client := newClient(t)
	login(t, client, env.server.URL, "admin@example.com", "admin123")

	for _, path := range []string{"/add/", fmt.Sprintf("/edit/%d/", vacation.ID)} {
		resp, err := client.Get(env.server.URL + path)
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode, path)
	}
}

func TestAddVacationRejectsPastStartDate(t *testing.T) {
	env := newTestEnv(t)
	env.addUser(t, "admin@example.com", "admin123", models.RoleAdmin)
	client := newClient(t)
	login(t, client, env.server.URL, "admin@example.com", "admin123")

	yesterday := time.Now().AddDate(0, 0, -1).Format("2006-01-02")
	nextWeek := time.Now().AddDate(0, 0, 7).Format("2006-01-02")

	resp := postForm(t, client, env.server.URL+"/add/", url.Values{
		"country":     {"1"},
		"description": {"Too late"},
		"start_date":  {yesterday},
		"end_date":    {nextWeek},
		"price":       {"500"},
	})
	body := bodyString(t, resp)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "Start date cannot be in the past")
}

func TestAddVacationRejectsEndBeforeStart(t *testing.T) {
	env := newTestEnv(t)
	env.addUser(t, "admin@example.com", "admin123", models.RoleAdmin)
	client := newClient(t)
	login(t, client, env.server.URL, "admin@example.com", "admin123")

	start := time.Now().AddDate(0, 0, 30).Format("2006-01-02")
	end := time.Now().AddDate(0, 0, 20).Format("2006-01-02")

	resp := postForm(t, client, env.server.URL+"/add/", url.Values{
		"country":     {"1"},
		"description": {"Backwards"},
		"start_date":  {start},
		"end_date":    {end},
		"price":       {"500"},
	})
	body := bodyString(t, resp)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "End date must be after start date")
}

func TestAddVacationWithoutImageUsesDefault(t *testing.T) {
	env := newTestEnv(t)
	env.addUser(t, "admin@example.com", "admin123", models.RoleAdmin)
	client := newClient(t)
	login(t, client, env.server.URL, "admin@example.com", "admin123")

	start := time.Now().AddDate(0, 0, 30).Format("2006-01-02")
	end := time.Now().AddDate(0, 0, 37).Format("2006-01-02")

	resp := postForm(t, client, env.server.URL+"/add/", url.Values{
		"country":     {"2"},
		"description": {"Tokyo trip"},
		"start_date":  {start},
		"end_date":    {end},
		"price":       {"2500"},
	})
	resp.Body.Close()

	require.Equal(t, http.StatusFound, resp.StatusCode)

	created, err := env.vacations.ByID(1)
	require.NoError(t, err)
	assert.Equal(t, models.DefaultImage, created.ImageFile)
	assert.Equal(t, uint(2), created.CountryID)
	assert.Equal(t, 2500.0, created.Price)
}

func TestEditVacationKeepsPriorImageAndAllowsPastStart(t *testing.T) {
	env := newTestEnv(t)
	env.addUser(t, "admin@example.com", "admin123", models.RoleAdmin)
	vacation := env.addVacation(t, 30)
	env.vacations.vacations[vacation.ID].ImageFile = "madrid.jpg"

	client := newClient(t)
	login(t, client, env.server.URL, "admin@example.com", "admin123")

	// Дата начала в прошлом допустима при редактировании.
	start := time.Now().AddDate(0, 0, -10).Format("2006-01-02")
	end := time.Now().AddDate(0, 0, 10).Format("2006-01-02")

	resp := postForm(t, client, fmt.Sprintf("%s/edit/%d/", env.server.URL, vacation.ID), url.Values{
		"country":     {"1"},
		"description": {"Updated description"},
		"start_date":  {start},
		"end_date":    {end},
		"price":       {"750.50"},
	})
	resp.Body.Close()

	require.Equal(t, http.StatusFound, resp.StatusCode)

	updated, err := env.vacations.ByID(vacation.ID)
	require.NoError(t, err)
	assert.Equal(t, "madrid.jpg", updated.ImageFile, "image reference must survive edits without upload")
	assert.Equal(t, "Updated description", updated.Description)
	assert.Equal(t, 750.50, updated.Price)
}

func TestEditUnknownVacationReturns404(t *testing.T) {
	env := newTestEnv(t)
	env.addUser(t, "admin@example.com", "admin123", models.RoleAdmin)
	client := newClient(t)
	login(t, client, env.server.URL, "admin@example.com", "admin123")

	resp, err := client.Get(env.server.URL + "/edit/999/")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

type likeResponse struct {
	Success   bool  `json:"success"`
	Liked     bool  `json:"liked"`
	LikeCount int64 `json:"like_count"`
}

func TestLikeToggleFlipsAndRestores(t *testing.T) {
	env := newTestEnv(t)
	env.addUser(t, "user@example.com", "user123", models.RoleUser)
	vacation := env.addVacation(t, 30)
	client := newClient(t)
	login(t, client, env.server.URL, "user@example.com", "user123")

	target := fmt.Sprintf("%s/like/%d/", env.server.URL, vacation.ID)

	resp := postForm(t, client, target, url.Values{})
	var first likeResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&first))
	resp.Body.Close()
	assert.Equal(t, likeResponse{Success: true, Liked: true, LikeCount: 1}, first)

	resp = postForm(t, client, target, url.Values{})
	var second likeResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&second))
	resp.Body.Close()
	assert.Equal(t, likeResponse{Success: true, Liked: false, LikeCount: 0}, second)
}

func TestLikeUnknownVacationReturns404(t *testing.T) {
	env := newTestEnv(t)
	env.addUser(t, "user@example.com", "user123", models.RoleUser)
	client := newClient(t)
	login(t, client, env.server.URL, "user@example.com", "user123")

	resp := postForm(t, client, env.server.URL+"/like/999/", url.Values{})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestDeleteVacationRequiresAdmin(t *testing.T) {
	env := newTestEnv(t)
	env.addUser(t, "user@example.com", "user123", models.RoleUser)
	vacation := env.addVacation(t, 30)
	client := newClient(t)
	login(t, client, env.server.URL, "user@example.com", "user123")

	resp := postForm(t, client, fmt.Sprintf("%s/delete/%d/", env.server.URL, vacation.ID), url.Values{})
	var payload map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	resp.Body.Close()

	// Отказ приходит JSON-флагом при статусе 200, не HTTP-ошибкой.
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, false, payload["success"])
	assert.Equal(t, "Permission denied", payload["error"])

	_, err := env.vacations.ByID(vacation.ID)
	assert.NoError(t, err, "vacation must survive a denied delete")
}

func TestDeleteVacationAsAdmin(t *testing.T) {
	env := newTestEnv(t)
	env.addUser(t, "admin@example.com", "admin123", models.RoleAdmin)
	vacation := env.addVacation(t, 30)
	client := newClient(t)
	login(t, client, env.server.URL, "admin@example.com", "admin123")

	resp := postForm(t, client, fmt.Sprintf("%s/delete/%d/", env.server.URL, vacation.ID), url.Values{})
	var payload map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, payload["success"])

	_, err := env.vacations.ByID(vacation.ID)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}
