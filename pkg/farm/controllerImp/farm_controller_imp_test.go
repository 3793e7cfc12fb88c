package controllerImp

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	sqlite "github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/JoeDalton318/farming-simulator/database"
	farmSvcImp "github.com/JoeDalton318/farming-simulator/pkg/farm/serviceImp"
)

func newCtrl(t *testing.T) *FarmCtrl {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return New(farmSvcImp.New(db))
}

func TestCreateAndStatusRoundTrip(t *testing.T) {
	ctrl := newCtrl(t)
	e := echo.New()

	req := httptest.NewRequest(http.MethodPost, "/farms", strings.NewReader(`{"name":"Home Farm","cash":"10000"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	if err := ctrl.Create(e.NewContext(req, rec)); err != nil {
		t.Fatalf("create: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var created struct {
		FarmID uint `json:"farm_id"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode: %v", err)
	}

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	rec = httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("1")
	if err := ctrl.Status(c); err != nil {
		t.Fatalf("status: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var st struct {
		Name string `json:"name"`
		Cash string `json:"cash"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &st); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if st.Name != "Home Farm" || st.Cash != "10000" {
		t.Fatalf("unexpected status %+v", st)
	}
}

func TestDeductMapsFaultsToStatus(t *testing.T) {
	ctrl := newCtrl(t)
	e := echo.New()

	// Unknown farm answers 404.
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"amount":"5"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("42")
	if err := ctrl.Deduct(c); err != nil {
		t.Fatalf("deduct: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}

	// Overdraft answers 409.
	req = httptest.NewRequest(http.MethodPost, "/farms", strings.NewReader(`{"name":"Poor Farm","cash":"3"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec = httptest.NewRecorder()
	if err := ctrl.Create(e.NewContext(req, rec)); err != nil {
		t.Fatalf("create: %v", err)
	}

	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"amount":"5"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec = httptest.NewRecorder()
	c = e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("1")
	if err := ctrl.Deduct(c); err != nil {
		t.Fatalf("deduct: %v", err)
	}
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d: %s", rec.Code, rec.Body.String())
	}
}
