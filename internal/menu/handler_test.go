package menu_test

import (
	"bytes"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/platehub/backoffice/internal/menu"
	"github.com/platehub/backoffice/internal/permissions"
	"github.com/platehub/backoffice/internal/testing/webtest"
)

var pngBytes = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01")

func newRouter(env *webtest.Env) http.Handler {
	h := menu.NewHandler(env.Logger, menu.NewService(env.API.Client), env.Presenter)
	r := chi.NewRouter()
	r.Route("/inventory", h.MountRoutes)
	return r
}

func seedMenu(env *webtest.Env) {
	env.API.Reply("GET /menu_category", http.StatusOK, []map[string]any{{"id": 1, "name": "Burgers"}, {"id": 2, "name": "Drinks"}})
	env.API.Reply("GET /food", http.StatusOK, []map[string]any{
		{"id": 10, "category_id": 1, "name": "Smash Burger", "price": 11.5, "is_available": true},
		{"id": 11, "category_id": 1, "name": "Veggie Stack", "description": "halloumi", "price": 10, "is_available": false},
	})
}

func foodRequest(t *testing.T, target string, fields map[string]string, image []byte) *http.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	if image != nil {
		part, err := mw.CreateFormFile("image", "photo.png")
		require.NoError(t, err)
		_, err = part.Write(image)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())
	req := httptest.NewRequest(http.MethodPost, target, &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestGridFiltersBySearchTerm(t *testing.T) {
	env := webtest.New(t)
	env.SignIn(t, permissions.Flags{Role: permissions.RoleManager})
	seedMenu(env)

	res := env.Get(t, newRouter(env), "/inventory?category=1&q=hallo")
	require.Equal(t, http.StatusOK, res.Code)
	body := res.Body.String()
	assert.Contains(t, body, "Veggie Stack")
	assert.NotContains(t, body, "Smash Burger")
	assert.Equal(t, "1", env.API.CallsTo("GET /food")[0].Query.Get("category_id"))
}

func TestCreateFoodUploadsImage(t *testing.T) {
	env := webtest.New(t)
	env.SignIn(t, permissions.Flags{Role: permissions.RoleManager})
	seedMenu(env)

	var gotName, gotPrice, gotType string
	env.API.Handle("POST /food", func(w http.ResponseWriter, r *http.Request) {
		if !assert.NoError(t, r.ParseMultipartForm(1<<20)) {
			return
		}
		gotName = r.FormValue("name")
		gotPrice = r.FormValue("price")
		file, header, err := r.FormFile("image")
		if !assert.NoError(t, err) {
			return
		}
		_, _ = io.ReadAll(file)
		gotType = header.Header.Get("Content-Type")
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"id":12,"name":"Fries"}`)
	})

	req := foodRequest(t, "/inventory/foods", map[string]string{
		"name": "Fries", "category_id": "1", "price": "4.5", "is_available": "on",
	}, pngBytes)
	res := env.Do(t, newRouter(env), req)

	require.Equal(t, http.StatusSeeOther, res.Code)
	assert.Equal(t, "Fries", gotName)
	assert.Equal(t, "4.50", gotPrice)
	assert.Equal(t, "image/png", gotType)
}

func TestCreateFoodRejectsNonImage(t *testing.T) {
	env := webtest.New(t)
	env.SignIn(t, permissions.Flags{Role: permissions.RoleManager})
	seedMenu(env)

	req := foodRequest(t, "/inventory/foods", map[string]string{
		"name": "Fries", "category_id": "1", "price": "4.5",
	}, []byte("%PDF-1.4 not an image"))
	res := env.Do(t, newRouter(env), req)

	require.Equal(t, http.StatusBadRequest, res.Code)
	assert.Contains(t, res.Body.String(), "Upload a JPEG, PNG, GIF or WEBP image")
	assert.Empty(t, env.API.CallsTo("POST /food"))
}

func TestCreateFoodValidatesFields(t *testing.T) {
	env := webtest.New(t)
	env.SignIn(t, permissions.Flags{Role: permissions.RoleManager})
	seedMenu(env)

	req := foodRequest(t, "/inventory/foods", map[string]string{"name": "", "price": "-2"}, nil)
	res := env.Do(t, newRouter(env), req)

	require.Equal(t, http.StatusBadRequest, res.Code)
	body := res.Body.String()
	assert.Contains(t, body, "Name is required")
	assert.Contains(t, body, "Choose a category")
	assert.Contains(t, body, "Price cannot be negative")
}

func TestKitchenCanToggleButNotEdit(t *testing.T) {
	env := webtest.New(t)
	env.SignIn(t, permissions.Flags{HasInventory: true, Role: permissions.RoleKitchen})
	env.API.Reply("PATCH /food/10/availability", http.StatusOK, map[string]any{"id": 10, "name": "Smash Burger", "is_available": false})
	router := newRouter(env)

	res := env.PostForm(t, router, "/inventory/foods/10/availability", url.Values{"available": {"false"}})
	require.Equal(t, http.StatusSeeOther, res.Code)
	var sent map[string]bool
	env.API.CallsTo("PATCH /food/10/availability")[0].JSON(t, &sent)
	assert.False(t, sent["is_available"])

	res = env.PostForm(t, router, "/inventory/foods/10/delete", url.Values{})
	assert.Equal(t, http.StatusForbidden, res.Code)
}

func TestCategoryNameRequired(t *testing.T) {
	env := webtest.New(t)
	env.SignIn(t, permissions.Flags{Role: permissions.RoleOwner})
	seedMenu(env)

	res := env.PostForm(t, newRouter(env), "/inventory/categories", url.Values{"name": {"  "}})
	require.Equal(t, http.StatusBadRequest, res.Code)
	assert.Contains(t, res.Body.String(), "Name is required")
	assert.Empty(t, env.API.CallsTo("POST /menu_category"))
}
