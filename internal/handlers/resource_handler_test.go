package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"strings"
	"testing"

	"codama/internal/models"
	"codama/internal/services"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestResourceHandler_List_ParsesQuery(t *testing.T) {
	categories := new(MockCategoryService)
	handler := NewResourceHandler[models.Category, services.CategoryRequest](categories, "Category")

	expected := models.ListQuery{
		Page:    2,
		PerPage: models.MaxPerPage,
		Search:  "shirt",
		Sort:    "name",
		Order:   "asc",
		Filters: map[string]string{"slug": "t-shirt"},
	}
	page := models.NewPage([]models.Category{{ID: uuid.New(), Name: "T-Shirt"}}, expected, 1)
	categories.On("List", mock.Anything, testUser, expected).Return(page, nil)

	c, w := newTestContext(http.MethodGet, "/api/v1/categories?page=2&per_page=500&search=shirt&sort=name&order=ASC&slug=t-shirt", nil, &testUser)

	handler.List(c)

	require.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Data models.Page[models.Category] `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, 1, body.Data.Total)
	assert.Equal(t, "T-Shirt", body.Data.Items[0].Name)
	categories.AssertExpectations(t)
}

func TestResourceHandler_Get_InvalidIDIsNotFound(t *testing.T) {
	categories := new(MockCategoryService)
	handler := NewResourceHandler[models.Category, services.CategoryRequest](categories, "Category")

	c, w := newTestContext(http.MethodGet, "/api/v1/categories/not-a-uuid", nil, &testUser)
	withID(c, "not-a-uuid")

	handler.Get(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
	categories.AssertNotCalled(t, "Get", mock.Anything, mock.Anything, mock.Anything)
}

func TestResourceHandler_Create_MapsServiceErrors(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"forbidden", fmt.Errorf("%w: admin only", services.ErrForbidden), http.StatusForbidden},
		{"invalid", fmt.Errorf("%w: name is required", services.ErrValidation), http.StatusUnprocessableEntity},
		{"duplicate", fmt.Errorf("%w: slug taken", services.ErrConflict), http.StatusConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			categories := new(MockCategoryService)
			handler := NewResourceHandler[models.Category, services.CategoryRequest](categories, "Category")
			categories.On("Create", mock.Anything, testUser, mock.Anything).Return(nil, tt.err)

			c, w := newTestContext(http.MethodPost, "/api/v1/categories", strings.NewReader(`{"name":"Mugs"}`), &testUser)

			handler.Create(c)

			assert.Equal(t, tt.status, w.Code)
			assert.Contains(t, w.Body.String(), tt.err.Error())
		})
	}
}

func TestResourceHandler_Create_Success(t *testing.T) {
	categories := new(MockCategoryService)
	handler := NewResourceHandler[models.Category, services.CategoryRequest](categories, "Category")

	created := &models.Category{ID: uuid.New(), Name: "Mugs", Slug: "mugs"}
	categories.On("Create", mock.Anything, testAdmin, mock.MatchedBy(func(req services.CategoryRequest) bool {
		return req.Name != nil && *req.Name == "Mugs"
	})).Return(created, nil)

	c, w := newTestContext(http.MethodPost, "/api/v1/categories", strings.NewReader(`{"name":"Mugs"}`), &testAdmin)

	handler.Create(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"slug":"mugs"`)
	categories.AssertExpectations(t)
}

func TestResourceHandler_Create_BadJSON(t *testing.T) {
	categories := new(MockCategoryService)
	handler := NewResourceHandler[models.Category, services.CategoryRequest](categories, "Category")

	c, w := newTestContext(http.MethodPost, "/api/v1/categories", strings.NewReader(`{"name":`), &testAdmin)

	handler.Create(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	categories.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
}

func TestResourceHandler_DeleteRestoreForceDelete(t *testing.T) {
	categories := new(MockCategoryService)
	handler := NewResourceHandler[models.Category, services.CategoryRequest](categories, "Category")
	id := uuid.New()

	categories.On("Delete", mock.Anything, testAdmin, id).Return(nil)
	categories.On("Restore", mock.Anything, testAdmin, id).Return(&models.Category{ID: id, Name: "Mugs"}, nil)
	categories.On("ForceDelete", mock.Anything, testAdmin, id).Return(fmt.Errorf("%w: category", services.ErrNotFound))

	c, w := newTestContext(http.MethodDelete, "/api/v1/categories/"+id.String(), nil, &testAdmin)
	withID(c, id.String())
	handler.Delete(c)
	assert.Equal(t, http.StatusOK, w.Code)

	c, w = newTestContext(http.MethodPost, "/api/v1/categories/"+id.String()+"/restore", nil, &testAdmin)
	withID(c, id.String())
	handler.Restore(c)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), id.String())

	c, w = newTestContext(http.MethodDelete, "/api/v1/categories/"+id.String()+"/force", nil, &testAdmin)
	withID(c, id.String())
	handler.ForceDelete(c)
	assert.Equal(t, http.StatusNotFound, w.Code)

	categories.AssertExpectations(t)
}

func multipartBody(t *testing.T, fields map[string]string, fileField, fileName, content string) (*bytes.Buffer, string) {
	t.Helper()
	var b bytes.Buffer
	writer := multipart.NewWriter(&b)
	for key, value := range fields {
		require.NoError(t, writer.WriteField(key, value))
	}
	if fileField != "" {
		fileWriter, err := writer.CreateFormFile(fileField, fileName)
		require.NoError(t, err)
		_, err = fileWriter.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())
	return &b, writer.FormDataContentType()
}

func TestUploadHandler_Create_PassesFormAndFile(t *testing.T) {
	designs := new(MockDesignService)
	handler := NewUploadHandler[models.Design, services.DesignRequest](designs, "Design", "file")

	categoryID := uuid.New().String()
	body, contentType := multipartBody(t, map[string]string{
		"title":       "Logo",
		"category_id": categoryID,
	}, "file", "logo.ai", "vector")

	created := &models.Design{ID: uuid.New(), Title: "Logo"}
	designs.On("Create", mock.Anything, testUser,
		mock.MatchedBy(func(req services.DesignRequest) bool {
			return req.Title != nil && *req.Title == "Logo" && req.CategoryID != nil && *req.CategoryID == categoryID
		}),
		mock.MatchedBy(func(file *services.Upload) bool {
			return file != nil && file.Filename == "logo.ai"
		}),
	).Return(created, nil)

	c, w := newTestContext(http.MethodPost, "/api/v1/designs", body, &testUser)
	c.Request.Header.Set("Content-Type", contentType)

	handler.Create(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	designs.AssertExpectations(t)
}

func TestUploadHandler_Update_WithoutFileKeepsStoredOne(t *testing.T) {
	designs := new(MockDesignService)
	handler := NewUploadHandler[models.Design, services.DesignRequest](designs, "Design", "file")
	id := uuid.New()

	body, contentType := multipartBody(t, map[string]string{"title": "Renamed"}, "", "", "")
	designs.On("Update", mock.Anything, testUser, id, mock.Anything, (*services.Upload)(nil)).
		Return(&models.Design{ID: id, Title: "Renamed"}, nil)

	c, w := newTestContext(http.MethodPost, "/api/v1/designs/"+id.String(), body, &testUser)
	c.Request.Header.Set("Content-Type", contentType)
	withID(c, id.String())

	handler.Update(c)

	assert.Equal(t, http.StatusOK, w.Code)
	designs.AssertExpectations(t)
}
