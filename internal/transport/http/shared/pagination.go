package shared

import (
	"net/http"
	"strconv"
	"strings"

	"taskdesk/internal/platform/validation"
)

const DefaultLimit = 10

type Pagination struct {
	Limit  int
	Offset int
}

// ParsePagination reads offset and limit from the query string. Range checks
// belong to the services; this only rejects values that are not integers.
func ParsePagination(r *http.Request) (Pagination, error) {
	page := Pagination{Limit: DefaultLimit}
	v := validation.New()
	query := r.URL.Query()
	if raw := strings.TrimSpace(query.Get("limit")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			v.Add("limit", "must be an integer")
		}
		page.Limit = n
	}
	if raw := strings.TrimSpace(query.Get("offset")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			v.Add("offset", "must be an integer")
		}
		page.Offset = n
	}
	if err := v.Err(); err != nil {
		return Pagination{}, err
	}
	return page, nil
}

// SetTotal exposes the unpaged collection size alongside a list response.
func SetTotal(w http.ResponseWriter, total int) {
	w.Header().Set("X-Total-Count", strconv.Itoa(total))
}
