package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"scooter-rental-backend/internal/domain"
)

func pathID(r *http.Request) (int32, error) {
	raw := mux.Vars(r)["id"]
	id, err := strconv.ParseInt(raw, 10, 32)
	if err != nil || id <= 0 {
		return 0, domain.Validation("invalid id %q", raw)
	}
	return int32(id), nil
}

// pagination reads ?page and ?page_size with sane bounds.
func pagination(r *http.Request) (int32, int32) {
	page := int32(1)
	pageSize := int32(20)
	if raw := r.URL.Query().Get("page"); raw != "" {
		if v, err := strconv.ParseInt(raw, 10, 32); err == nil && v > 0 {
			page = int32(v)
		}
	}
	if raw := r.URL.Query().Get("page_size"); raw != "" {
		if v, err := strconv.ParseInt(raw, 10, 32); err == nil && v > 0 && v <= 100 {
			pageSize = int32(v)
		}
	}
	return page, pageSize
}

func queryDate(r *http.Request, name string) (time.Time, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return time.Time{}, domain.Validation("%s query parameter is required (YYYY-MM-DD)", name)
	}
	date, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return time.Time{}, domain.Validation("invalid %s %q, expected YYYY-MM-DD", name, raw)
	}
	return date, nil
}

// listResponse is the standard paginated envelope.
type listResponse struct {
	Items    any   `json:"items"`
	Total    int32 `json:"total"`
	Page     int32 `json:"page"`
	PageSize int32 `json:"page_size"`
}
