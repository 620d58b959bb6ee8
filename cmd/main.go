package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/gorilla/sessions"
	"golang.org/x/oauth2"

	"github.com/v/vacationCatalog/internal/auth"
	"github.com/v/vacationCatalog/internal/config"
	"github.com/v/vacationCatalog/internal/database"
	"github.com/v/vacationCatalog/internal/handlers"
	"github.com/v/vacationCatalog/internal/middleware"
	"github.com/v/vacationCatalog/internal/storage"
	"github.com/v/vacationCatalog/pkg/logger"
)

func main() {
	// ---------------------------
	// 0. Загрузка конфигурации (.env)
	// ---------------------------
	cfg := config.Load()
	logg := logger.NewFromEnv()

	// ---------------------------
	// 1. Подключаем GORM (База данных)
	// ---------------------------
	db, err := database.Connect(cfg.DB.DSN)
	if err != nil {
		log.Fatal("Ошибка подключения к БД:", err)
	}

	// ---------------------------
	// 2. Делаем миграции
	// ---------------------------
	if err := database.AutoMigrate(db); err != nil {
		log.Fatal("Ошибка миграции:", err)
	}

	// ---------------------------
	// 3. Запускаем сиды
	// ---------------------------
	if err := database.Seed(db); err != nil {
		log.Println("Ошибка сидов (возможно, данные уже есть):", err)
	}

	// ---------------------------
	// 4. Хранилище картинок
	// ---------------------------
	var images storage.ImageStore
	switch cfg.Storage.Backend {
	case "minio":
		images, err = storage.NewMinioStore(cfg.Storage)
	default:
		images, err = storage.NewDiskStore(cfg.Storage.MediaDir)
	}
	if err != nil {
		log.Fatal("Ошибка хранилища картинок:", err)
	}

	// ---------------------------
	// 5. Настройка сессий
	// ---------------------------
	sessionKey := cfg.SessionKey
	if sessionKey == "" {
		sessionKey = "super-secret-default-key" // Только для разработки!
		log.Println("Внимание: SESSION_KEY не задан, используется дефолтный.")
	}
	store := sessions.NewCookieStore([]byte(sessionKey))
	// Настройки безопасности куки
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7,
		HttpOnly: true,
		Secure:   false, // Поставьте true, если используете HTTPS
	}

	// ---------------------------
	// 6. Google OAuth (опционально)
	// ---------------------------
	var oauthConfig *oauth2.Config
	if cfg.Google.Enabled() {
		oauthConfig = auth.InitGoogleOAuthConfig(
			cfg.Google.ClientID, cfg.Google.ClientSecret, cfg.Google.RedirectURL)
	}

	// ---------------------------
	// 7. Инициализация Хендлеров
	// ---------------------------
	tmpl, err := handlers.LoadTemplates("template")
	if err != nil {
		log.Fatal("Ошибка шаблонов:", err)
	}

	h := handlers.NewHandler(storage.NewRepos(db), store, tmpl, images, logg, oauthConfig)

	loginRequired := middleware.LoginRequired(h)
	adminRequired := middleware.AdminRequired(h)

	// ---------------------------
	// 8. Роутинг с Gorilla Mux
	// ---------------------------
	r := mux.NewRouter()

	// --- Статические файлы (CSS, JS) и загруженные картинки ---
	r.PathPrefix("/static/").Handler(http.StripPrefix("/static/", http.FileServer(http.Dir("./static"))))
	r.PathPrefix("/media/").Handler(http.StripPrefix("/media/", http.FileServer(http.Dir(cfg.Storage.MediaDir))))

	// --- Публичные маршруты ---
	r.HandleFunc("/register/", h.HandleRegister).Methods("GET", "POST")
	r.HandleFunc("/login/", h.HandleLogin).Methods("GET", "POST")
	r.HandleFunc("/login-simple/", h.HandleLoginSimple).Methods("GET", "POST")
	if oauthConfig != nil {
		r.HandleFunc("/auth/google/login", h.HandleGoogleLogin).Methods("GET")
		r.HandleFunc("/auth/google/callback", h.HandleGoogleCallback).Methods("GET")
	}

	// --- Защищенные маршруты пользователя ---
	r.HandleFunc("/", loginRequired(h.HandleVacationList)).Methods("GET", "POST")
	r.HandleFunc("/logout/", loginRequired(h.HandleLogout)).Methods("POST")
	r.HandleFunc("/like/{id:[0-9]+}/", loginRequired(h.HandleToggleLike)).Methods("POST")
	// Отказ в /delete/ уходит JSON-ответом, поэтому роль проверяет сам хендлер
	r.HandleFunc("/delete/{id:[0-9]+}/", loginRequired(h.HandleDeleteVacation)).Methods("POST")

	// --- Маршруты администратора ---
	r.HandleFunc("/add/", adminRequired(h.HandleAddVacation)).Methods("GET", "POST")
	r.HandleFunc("/edit/{id:[0-9]+}/", adminRequired(h.HandleEditVacation)).Methods("GET", "POST")

	// ---------------------------
	// 9. Запуск сервера
	// ---------------------------
	root := middleware.SuppressWellKnown(r)
	fmt.Printf("Сервер запущен: http://localhost:%s\n", cfg.HTTPPort)
	log.Fatal(http.ListenAndServe(":"+cfg.HTTPPort, root))
}
