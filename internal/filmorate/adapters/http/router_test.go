package http_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"filmorate/internal/filmorate/adapters/cache"
	httpadapter "filmorate/internal/filmorate/adapters/http"
	"filmorate/internal/filmorate/adapters/http/dto"
	"filmorate/internal/filmorate/adapters/http/middleware"
	"filmorate/internal/filmorate/adapters/memory"
	"filmorate/internal/filmorate/app"
	"filmorate/internal/filmorate/config"
)

func newApp(t *testing.T, opts httpadapter.Options) *fiber.App {
	t.Helper()

	ids := memory.NewIDAllocator()
	users := memory.NewUserStore(ids)
	films := memory.NewFilmStore(ids)
	relations := app.NewRelationshipService(users, films)
	popular := app.NewPopularCache(cache.NoopCache{}, time.Minute)

	fiberApp := fiber.New()
	httpadapter.SetupRouter(fiberApp,
		app.NewFilmUseCase(films, relations, popular),
		app.NewUserUseCase(users, relations, popular),
		opts)
	return fiberApp
}

func do(t *testing.T, a *fiber.App, method, path, body string) (int, []byte) {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := a.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, raw
}

func decode[T any](t *testing.T, raw []byte) T {
	t.Helper()

	var v T
	require.NoError(t, json.Unmarshal(raw, &v), string(raw))
	return v
}

func errorMessage(t *testing.T, raw []byte) string {
	t.Helper()
	return decode[map[string]string](t, raw)["error"]
}

const (
	filmMatrix = `{"name":"Matrix","description":"Neo","releaseDate":"1999-03-31","duration":136}`
	filmAlien  = `{"name":"Alien","description":"","releaseDate":"1979-05-25","duration":117}`
	userJdoe   = `{"email":"jdoe@example.com","login":"jdoe","birthday":"1990-01-01"}`
	userAnna   = `{"email":"anna@example.com","login":"anna","name":"Anna"}`
)

func TestFilmsAPI(t *testing.T) {
	a := newApp(t, httpadapter.Options{PopularDefaultCount: 10})

	status, raw := do(t, a, http.MethodPost, "/films", filmMatrix)
	require.Equal(t, http.StatusCreated, status, string(raw))
	matrix := decode[dto.FilmResponse](t, raw)
	assert.Equal(t, int64(1), matrix.ID)
	assert.Equal(t, "1999-03-31", matrix.ReleaseDate)
	assert.Empty(t, matrix.Likes)

	status, raw = do(t, a, http.MethodPost, "/films", filmAlien)
	require.Equal(t, http.StatusCreated, status, string(raw))
	alien := decode[dto.FilmResponse](t, raw)

	status, raw = do(t, a, http.MethodPost, "/users", userJdoe)
	require.Equal(t, http.StatusCreated, status, string(raw))
	user := decode[dto.UserResponse](t, raw)

	t.Run("like and popular", func(t *testing.T) {
		status, _ := do(t, a, http.MethodPut, "/films/2/like/1", "")
		require.Equal(t, http.StatusOK, status)

		status, raw := do(t, a, http.MethodPut, "/films/2/like/1", "")
		assert.Equal(t, http.StatusBadRequest, status)
		assert.Contains(t, errorMessage(t, raw), "already liked")

		status, raw = do(t, a, http.MethodGet, "/films/popular", "")
		require.Equal(t, http.StatusOK, status)
		popular := decode[[]dto.FilmResponse](t, raw)
		require.Len(t, popular, 2)
		assert.Equal(t, alien.ID, popular[0].ID)
		assert.Equal(t, []int64{user.ID}, popular[0].Likes)

		status, raw = do(t, a, http.MethodGet, "/films/popular?count=1", "")
		require.Equal(t, http.StatusOK, status)
		assert.Len(t, decode[[]dto.FilmResponse](t, raw), 1)

		status, raw = do(t, a, http.MethodGet, "/films/popular?count=0", "")
		require.Equal(t, http.StatusOK, status)
		assert.Empty(t, decode[[]dto.FilmResponse](t, raw))

		status, _ = do(t, a, http.MethodGet, "/films/popular?count=abc", "")
		assert.Equal(t, http.StatusBadRequest, status)
	})

	t.Run("update keeps likes", func(t *testing.T) {
		body := `{"id":2,"name":"Aliens","description":"","releaseDate":"1986-07-18","duration":137}`
		status, raw := do(t, a, http.MethodPut, "/films", body)
		require.Equal(t, http.StatusOK, status, string(raw))
		updated := decode[dto.FilmResponse](t, raw)
		assert.Equal(t, "Aliens", updated.Name)
		assert.Equal(t, []int64{user.ID}, updated.Likes)

		status, _ = do(t, a, http.MethodPut, "/films", `{"id":99,"name":"x","releaseDate":"2000-01-01","duration":1}`)
		assert.Equal(t, http.StatusNotFound, status)

		status, _ = do(t, a, http.MethodPut, "/films", filmMatrix)
		assert.Equal(t, http.StatusBadRequest, status)
	})

	t.Run("unlike", func(t *testing.T) {
		status, _ := do(t, a, http.MethodDelete, "/films/2/like/1", "")
		assert.Equal(t, http.StatusNoContent, status)

		status, raw := do(t, a, http.MethodDelete, "/films/2/like/1", "")
		assert.Equal(t, http.StatusNotFound, status)
		assert.Contains(t, errorMessage(t, raw), "like")
	})

	t.Run("get list delete", func(t *testing.T) {
		status, raw := do(t, a, http.MethodGet, "/films/1", "")
		require.Equal(t, http.StatusOK, status)
		assert.Equal(t, "Matrix", decode[dto.FilmResponse](t, raw).Name)

		status, raw = do(t, a, http.MethodGet, "/films", "")
		require.Equal(t, http.StatusOK, status)
		assert.Len(t, decode[[]dto.FilmResponse](t, raw), 2)

		status, _ = do(t, a, http.MethodDelete, "/films/1", "")
		assert.Equal(t, http.StatusNoContent, status)
		status, _ = do(t, a, http.MethodDelete, "/films/1", "")
		assert.Equal(t, http.StatusNotFound, status)
		status, _ = do(t, a, http.MethodGet, "/films/1", "")
		assert.Equal(t, http.StatusNotFound, status)
	})

	t.Run("bad input", func(t *testing.T) {
		tests := []struct {
			name   string
			method string
			path   string
			body   string
			want   int
		}{
			{name: "malformed json", method: http.MethodPost, path: "/films", body: `{"name":`, want: http.StatusBadRequest},
			{name: "too early", method: http.MethodPost, path: "/films", body: `{"name":"x","releaseDate":"1890-01-01","duration":1}`, want: http.StatusBadRequest},
			{name: "long description", method: http.MethodPost, path: "/films", body: `{"name":"x","description":"` + strings.Repeat("a", 201) + `","releaseDate":"2000-01-01","duration":1}`, want: http.StatusBadRequest},
			{name: "non numeric id", method: http.MethodGet, path: "/films/abc", want: http.StatusBadRequest},
			{name: "negative id", method: http.MethodGet, path: "/films/-1", want: http.StatusBadRequest},
			{name: "unknown user for like", method: http.MethodPut, path: "/films/2/like/42", want: http.StatusNotFound},
			{name: "unknown route", method: http.MethodGet, path: "/directors", want: http.StatusNotFound},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				status, raw := do(t, a, tt.method, tt.path, tt.body)
				assert.Equal(t, tt.want, status, string(raw))
				assert.NotEmpty(t, errorMessage(t, raw))
			})
		}
	})
}

func TestUsersAPI(t *testing.T) {
	a := newApp(t, httpadapter.Options{PopularDefaultCount: 10})

	status, raw := do(t, a, http.MethodPost, "/users", userJdoe)
	require.Equal(t, http.StatusCreated, status, string(raw))
	jdoe := decode[dto.UserResponse](t, raw)
	assert.Equal(t, "jdoe", jdoe.Name)
	assert.Equal(t, "1990-01-01", jdoe.Birthday)

	status, raw = do(t, a, http.MethodPost, "/users", userAnna)
	require.Equal(t, http.StatusCreated, status, string(raw))
	anna := decode[dto.UserResponse](t, raw)

	status, raw = do(t, a, http.MethodPost, "/users", `{"email":"c@example.com","login":"carl"}`)
	require.Equal(t, http.StatusCreated, status, string(raw))
	carl := decode[dto.UserResponse](t, raw)

	t.Run("friends", func(t *testing.T) {
		status, _ := do(t, a, http.MethodPut, "/users/1/friends/3", "")
		require.Equal(t, http.StatusOK, status)
		status, _ = do(t, a, http.MethodPut, "/users/2/friends/3", "")
		require.Equal(t, http.StatusOK, status)

		status, raw := do(t, a, http.MethodGet, "/users/3/friends", "")
		require.Equal(t, http.StatusOK, status)
		friends := decode[[]dto.UserResponse](t, raw)
		require.Len(t, friends, 2)
		assert.Equal(t, jdoe.ID, friends[0].ID)
		assert.Equal(t, anna.ID, friends[1].ID)

		status, raw = do(t, a, http.MethodGet, "/users/1/friends/common/2", "")
		require.Equal(t, http.StatusOK, status)
		common := decode[[]dto.UserResponse](t, raw)
		require.Len(t, common, 1)
		assert.Equal(t, carl.ID, common[0].ID)

		status, _ = do(t, a, http.MethodPut, "/users/3/friends/1", "")
		assert.Equal(t, http.StatusBadRequest, status)
		status, _ = do(t, a, http.MethodPut, "/users/1/friends/1", "")
		assert.Equal(t, http.StatusBadRequest, status)
		status, _ = do(t, a, http.MethodPut, "/users/1/friends/99", "")
		assert.Equal(t, http.StatusNotFound, status)

		status, _ = do(t, a, http.MethodDelete, "/users/1/friends/3", "")
		assert.Equal(t, http.StatusNoContent, status)
		status, _ = do(t, a, http.MethodDelete, "/users/1/friends/3", "")
		assert.Equal(t, http.StatusNoContent, status)
	})

	t.Run("update keeps friends", func(t *testing.T) {
		body := `{"id":2,"email":"anna@example.org","login":"anna_k","name":""}`
		status, raw := do(t, a, http.MethodPut, "/users", body)
		require.Equal(t, http.StatusOK, status, string(raw))
		updated := decode[dto.UserResponse](t, raw)
		assert.Equal(t, "anna_k", updated.Name)
		assert.Equal(t, []int64{carl.ID}, updated.Friends)
	})

	t.Run("delete cascades", func(t *testing.T) {
		status, _ := do(t, a, http.MethodDelete, "/users/3", "")
		require.Equal(t, http.StatusNoContent, status)

		status, raw := do(t, a, http.MethodGet, "/users/2", "")
		require.Equal(t, http.StatusOK, status)
		assert.Empty(t, decode[dto.UserResponse](t, raw).Friends)

		status, _ = do(t, a, http.MethodDelete, "/users/3", "")
		assert.Equal(t, http.StatusNotFound, status)

		status, raw = do(t, a, http.MethodGet, "/users", "")
		require.Equal(t, http.StatusOK, status)
		assert.Len(t, decode[[]dto.UserResponse](t, raw), 2)
	})

	t.Run("validation", func(t *testing.T) {
		for _, body := range []string{
			`{"email":"bad","login":"x"}`,
			`{"email":"a@b.ru","login":"with space"}`,
			`{"email":"a@b.ru","login":"x","birthday":"2999-01-01"}`,
		} {
			status, raw := do(t, a, http.MethodPost, "/users", body)
			assert.Equal(t, http.StatusBadRequest, status, body)
			assert.NotEmpty(t, errorMessage(t, raw))
		}
	})
}

func TestServiceRoutes(t *testing.T) {
	a := newApp(t, httpadapter.Options{})

	status, raw := do(t, a, http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "ok", decode[map[string]string](t, raw)["status"])

	status, _ = do(t, a, http.MethodGet, "/films", "")
	require.Equal(t, http.StatusOK, status)

	status, raw = do(t, a, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(raw), "filmorate_http_requests_total")
}

func TestRequestID(t *testing.T) {
	a := newApp(t, httpadapter.Options{})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(middleware.HeaderRequestID, "req-42")
	resp, err := a.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, "req-42", resp.Header.Get(middleware.HeaderRequestID))

	resp2, err := a.Test(httptest.NewRequest(http.MethodGet, "/health", nil))
	require.NoError(t, err)
	defer resp2.Body.Close()
	assert.NotEmpty(t, resp2.Header.Get(middleware.HeaderRequestID))
}

func TestRateLimit(t *testing.T) {
	a := newApp(t, httpadapter.Options{
		RateLimit: config.RateLimitConfig{RequestsPerSecond: 0.001, Burst: 2},
	})

	for range 2 {
		status, _ := do(t, a, http.MethodGet, "/health", "")
		require.Equal(t, http.StatusOK, status)
	}

	status, raw := do(t, a, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusTooManyRequests, status)
	assert.Equal(t, "too many requests", errorMessage(t, raw))
}
