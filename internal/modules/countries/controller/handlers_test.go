package controller

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"meteodb-server/internal/apperr"
	"meteodb-server/internal/modules/countries/types"
)

type mockRepo struct {
	createID  int64
	createErr error
	list      []types.Country
	listErr   error
	updateErr error
	deleteErr error

	lastCreateName string
	lastUpdateID   int64
	lastUpdateBody types.Country
	lastDeleteID   int64
}

func (m *mockRepo) Create(name string, lat, lon float64) (int64, error) {
	m.lastCreateName = name
	return m.createID, m.createErr
}

func (m *mockRepo) List() ([]types.Country, error) { return m.list, m.listErr }

func (m *mockRepo) Update(id int64, c types.Country) error {
	m.lastUpdateID = id
	m.lastUpdateBody = c
	return m.updateErr
}

func (m *mockRepo) Delete(id int64) error {
	m.lastDeleteID = id
	return m.deleteErr
}

func newTestMux(repo *mockRepo) *http.ServeMux {
	mux := http.NewServeMux()
	NewCountryController(repo).RegisterRoutes(mux)
	return mux
}

func Test_handleCreate(t *testing.T) {
	t.Run("returns 201 with the generated id", func(t *testing.T) {
		repo := &mockRepo{createID: 7}
		mux := newTestMux(repo)
		body := `{"nume":"Romania","lat":45.9432,"lon":24.9668}`
		req := httptest.NewRequest(http.MethodPost, "/api/countries", strings.NewReader(body))
		rec := httptest.NewRecorder()

		mux.ServeHTTP(rec, req)

		if rec.Code != http.StatusCreated {
			t.Fatalf("status = %d, want 201", rec.Code)
		}
		var got map[string]int64
		if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
			t.Fatalf("unmarshal response: %v", err)
		}
		if got["id"] != 7 {
			t.Errorf("id = %d, want 7", got["id"])
		}
		if repo.lastCreateName != "Romania" {
			t.Errorf("created name = %q, want Romania", repo.lastCreateName)
		}
	})

	t.Run("returns 400 when a field is missing", func(t *testing.T) {
		mux := newTestMux(&mockRepo{})
		body := `{"nume":"Romania","lat":45.9432}`
		req := httptest.NewRequest(http.MethodPost, "/api/countries", strings.NewReader(body))
		rec := httptest.NewRecorder()

		mux.ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", rec.Code)
		}
	})

	t.Run("returns 400 when an extra field is present", func(t *testing.T) {
		mux := newTestMux(&mockRepo{})
		body := `{"nume":"Romania","lat":45.9432,"lon":24.9668,"extra":1}`
		req := httptest.NewRequest(http.MethodPost, "/api/countries", strings.NewReader(body))
		rec := httptest.NewRecorder()

		mux.ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", rec.Code)
		}
	})

	t.Run("returns 400 when lat is not a number", func(t *testing.T) {
		mux := newTestMux(&mockRepo{})
		body := `{"nume":"Romania","lat":"north","lon":24.9668}`
		req := httptest.NewRequest(http.MethodPost, "/api/countries", strings.NewReader(body))
		rec := httptest.NewRecorder()

		mux.ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", rec.Code)
		}
	})

	t.Run("returns 400 when body is not JSON", func(t *testing.T) {
		mux := newTestMux(&mockRepo{})
		req := httptest.NewRequest(http.MethodPost, "/api/countries", strings.NewReader("not json"))
		rec := httptest.NewRecorder()

		mux.ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", rec.Code)
		}
	})

	t.Run("returns 409 on duplicate name", func(t *testing.T) {
		repo := &mockRepo{createErr: apperr.New(apperr.Conflict, errors.New("UNIQUE constraint failed"))}
		mux := newTestMux(repo)
		body := `{"nume":"Romania","lat":45.9432,"lon":24.9668}`
		req := httptest.NewRequest(http.MethodPost, "/api/countries", strings.NewReader(body))
		rec := httptest.NewRecorder()

		mux.ServeHTTP(rec, req)

		if rec.Code != http.StatusConflict {
			t.Fatalf("status = %d, want 409", rec.Code)
		}
	})

	t.Run("returns 400 when the generated id cannot be read back", func(t *testing.T) {
		repo := &mockRepo{createErr: apperr.New(apperr.Retrieval, errors.New("no rows"))}
		mux := newTestMux(repo)
		body := `{"nume":"Romania","lat":45.9432,"lon":24.9668}`
		req := httptest.NewRequest(http.MethodPost, "/api/countries", strings.NewReader(body))
		rec := httptest.NewRecorder()

		mux.ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", rec.Code)
		}
	})
}

func Test_handleList(t *testing.T) {
	t.Run("returns the countries", func(t *testing.T) {
		repo := &mockRepo{list: []types.Country{
			{ID: 1, Name: "Romania", Lat: 45.9432, Lon: 24.9668},
		}}
		mux := newTestMux(repo)
		req := httptest.NewRequest(http.MethodGet, "/api/countries", nil)
		rec := httptest.NewRecorder()

		mux.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}
		body := rec.Body.String()
		if !strings.Contains(body, `"nume":"Romania"`) {
			t.Errorf("body = %q; expected wire key nume", body)
		}
	})

	t.Run("serializes an empty list as []", func(t *testing.T) {
		repo := &mockRepo{list: []types.Country{}}
		mux := newTestMux(repo)
		req := httptest.NewRequest(http.MethodGet, "/api/countries", nil)
		rec := httptest.NewRecorder()

		mux.ServeHTTP(rec, req)

		if got := strings.TrimSpace(rec.Body.String()); got != "[]" {
			t.Errorf("body = %q, want []", got)
		}
	})
}

func Test_handleUpdate(t *testing.T) {
	t.Run("returns 200 with an empty object", func(t *testing.T) {
		repo := &mockRepo{}
		mux := newTestMux(repo)
		body := `{"id":3,"nume":"Romania","lat":46.0,"lon":25.0}`
		req := httptest.NewRequest(http.MethodPut, "/api/countries/3", strings.NewReader(body))
		rec := httptest.NewRecorder()

		mux.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}
		if got := strings.TrimSpace(rec.Body.String()); got != "{}" {
			t.Errorf("body = %q, want {}", got)
		}
		if repo.lastUpdateID != 3 || repo.lastUpdateBody.Name != "Romania" {
			t.Errorf("update call = (%d, %+v)", repo.lastUpdateID, repo.lastUpdateBody)
		}
	})

	t.Run("returns 404 when the path id is not an integer", func(t *testing.T) {
		mux := newTestMux(&mockRepo{})
		body := `{"id":3,"nume":"Romania","lat":46.0,"lon":25.0}`
		req := httptest.NewRequest(http.MethodPut, "/api/countries/abc", strings.NewReader(body))
		rec := httptest.NewRecorder()

		mux.ServeHTTP(rec, req)

		if rec.Code != http.StatusNotFound {
			t.Fatalf("status = %d, want 404", rec.Code)
		}
	})

	t.Run("returns 400 when the body id is missing", func(t *testing.T) {
		mux := newTestMux(&mockRepo{})
		body := `{"nume":"Romania","lat":46.0,"lon":25.0,"x":1}`
		req := httptest.NewRequest(http.MethodPut, "/api/countries/3", strings.NewReader(body))
		rec := httptest.NewRecorder()

		mux.ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", rec.Code)
		}
	})

	t.Run("returns 400 on repository failure", func(t *testing.T) {
		repo := &mockRepo{updateErr: apperr.New(apperr.Storage, errors.New("disk I/O error"))}
		mux := newTestMux(repo)
		body := `{"id":3,"nume":"Romania","lat":46.0,"lon":25.0}`
		req := httptest.NewRequest(http.MethodPut, "/api/countries/3", strings.NewReader(body))
		rec := httptest.NewRecorder()

		mux.ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", rec.Code)
		}
	})
}

func Test_handleDelete(t *testing.T) {
	t.Run("returns 200 with an empty object", func(t *testing.T) {
		repo := &mockRepo{}
		mux := newTestMux(repo)
		req := httptest.NewRequest(http.MethodDelete, "/api/countries/5", nil)
		rec := httptest.NewRecorder()

		mux.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}
		if got := strings.TrimSpace(rec.Body.String()); got != "{}" {
			t.Errorf("body = %q, want {}", got)
		}
		if repo.lastDeleteID != 5 {
			t.Errorf("delete id = %d, want 5", repo.lastDeleteID)
		}
	})

	t.Run("returns 404 when the path id is not an integer", func(t *testing.T) {
		mux := newTestMux(&mockRepo{})
		req := httptest.NewRequest(http.MethodDelete, "/api/countries/abc", nil)
		rec := httptest.NewRecorder()

		mux.ServeHTTP(rec, req)

		if rec.Code != http.StatusNotFound {
			t.Fatalf("status = %d, want 404", rec.Code)
		}
	})
}
