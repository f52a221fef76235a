// internal/handlers/admin/admin_users.go
package adminhandlers

import (
	"log/slog"
	"math"
	"net/http"
	"strconv"

	"inventory-dashboard/internal/db"
	"inventory-dashboard/internal/handlers"
)

const DefaultUsersPerPage = 10

// listUsers is swapped in tests.
var listUsers = db.GetAllUsers

// UsersListPageHandler renders the paginated user management page.
func UsersListPageHandler(app *handlers.AppHandlers) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data := app.NewPageData(r)
		data.PageTitle = "User Management"

		page, _ := strconv.Atoi(r.URL.Query().Get("page"))
		if page < 1 {
			page = 1
		}
		limit := DefaultUsersPerPage
		offset := (page - 1) * limit

		users, totalUsers, err := listUsers(limit, offset)
		if err != nil {
			slog.Error("UsersListPageHandler: could not load users", "error", err)
			http.Error(w, "Server error while loading users", http.StatusInternalServerError)
			return
		}

		data.Users = users
		data.TotalUsers = totalUsers
		data.CurrentPage = page
		data.Limit = limit
		data.TotalPages = int(math.Ceil(float64(totalUsers) / float64(limit)))

		app.RenderPage(w, r, "users.html", data)
	}
}
