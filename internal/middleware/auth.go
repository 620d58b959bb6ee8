package middleware

import (
	"net/http"

	"github.com/v/vacationCatalog/internal/handlers"
)

// LoginRequired перенаправляет анонимные запросы на страницу входа.
func LoginRequired(h *handlers.Handler) func(next http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			if _, ok := h.GetAuthenticatedUserID(r); !ok {
				http.Redirect(w, r, "/login/", http.StatusFound)
				return
			}
			next.ServeHTTP(w, r)
		}
	}
}

// AdminRequired пускает только пользователей с ролью "admin"; остальным
// флеш-сообщение и редирект на каталог, без HTTP-ошибки.
func AdminRequired(h *handlers.Handler) func(next http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			user, ok := h.CurrentUser(r)
			if !ok {
				http.Redirect(w, r, "/login/", http.StatusFound)
				return
			}

			if !user.IsAdmin() {
				h.Flash(w, r, "You do not have permission to access this page.")
				http.Redirect(w, r, "/", http.StatusFound)
				return
			}

			next.ServeHTTP(w, r)
		}
	}
}
