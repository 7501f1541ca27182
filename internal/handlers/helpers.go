package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"codama/internal/middlewares"
	"codama/internal/models"
	"codama/internal/responses"
	"codama/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// reserved query parameters that are not treated as filters.
var listParams = map[string]bool{
	"page":     true,
	"per_page": true,
	"search":   true,
	"sort":     true,
	"order":    true,
	"trashed":  true,
}

// actorFromContext returns the authenticated user set by the Authenticate
// middleware. It answers 401 itself when there is none.
func actorFromContext(c *gin.Context) (services.Actor, bool) {
	value, exists := c.Get(middlewares.ContextUserID)
	if !exists {
		responses.Fail(c, http.StatusUnauthorized, nil, "Unauthorized")
		return services.Actor{}, false
	}

	userID, ok := value.(uuid.UUID)
	if !ok || userID == uuid.Nil {
		responses.Fail(c, http.StatusUnauthorized, nil, "Invalid user ID format")
		return services.Actor{}, false
	}

	return services.Actor{ID: userID, Role: c.GetString(middlewares.ContextUserRole)}, true
}

// pathID parses the named path parameter. Malformed ids cannot match any
// record, so they are answered with 404.
func pathID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		responses.Fail(c, http.StatusNotFound, nil, "Record not found")
		return uuid.Nil, false
	}
	return id, true
}

// listQuery reads paging, search, sorting and filter parameters. Any query
// parameter that is not a paging or sorting parameter becomes a filter.
func listQuery(c *gin.Context) models.ListQuery {
	q := models.ListQuery{
		Search:  c.Query("search"),
		Sort:    c.Query("sort"),
		Order:   c.Query("order"),
		Trashed: c.Query("trashed"),
		Filters: map[string]string{},
	}
	q.Page, _ = strconv.Atoi(c.Query("page"))
	q.PerPage, _ = strconv.Atoi(c.Query("per_page"))

	for key, values := range c.Request.URL.Query() {
		if listParams[key] || len(values) == 0 {
			continue
		}
		q.Filters[key] = values[0]
	}
	q.Normalize()
	return q
}

// statusFor maps service errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, services.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, services.ErrValidation):
		return http.StatusUnprocessableEntity
	case errors.Is(err, services.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, services.ErrUnauthorized):
		return http.StatusUnauthorized
	}
	return http.StatusInternalServerError
}

// fail answers with the status matching err. Internal errors are not echoed
// to the client.
func fail(c *gin.Context, err error, message string) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		_ = c.Error(err)
		responses.Fail(c, status, errors.New("internal server error"), message)
		return
	}
	responses.Fail(c, status, err, message)
}

// formUpload returns the multipart file under field, or nil when the request
// has none. The returned close func must be called.
func formUpload(c *gin.Context, field string) (*services.Upload, func(), error) {
	header, err := c.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil, func() {}, nil
		}
		return nil, func() {}, err
	}
	file, err := header.Open()
	if err != nil {
		return nil, func() {}, err
	}
	return &services.Upload{Filename: header.Filename, Body: file}, func() { file.Close() }, nil
}
