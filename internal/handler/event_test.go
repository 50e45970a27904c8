package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avielle/event-booking-backend/internal/pricing"
	"github.com/avielle/event-booking-backend/internal/repository"
)

type emptyCatalog struct{}

func (emptyCatalog) CatalogPrice(ctx context.Context, kind pricing.Kind, id uint64) (decimal.Decimal, error) {
	return decimal.Zero, pricing.ErrNotPriced
}

func newEventContext(e *echo.Echo, body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodPost, "/v1/events", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("user_id", uint64(9))
	return c, rec
}

func TestEventCreateRollsBackWhenInclusionInsertFails(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	h := NewEventHandler(repository.NewEventRepo(db), pricing.NewResolver(emptyCatalog{}), nil)

	// The events row goes in, the supplier line fails, everything unwinds.
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO events").WillReturnResult(sqlmock.NewResult(77, 1))
	mock.ExpectExec("INSERT INTO event_package_configurations").WillReturnResult(sqlmock.NewResult(5, 1))
	mock.ExpectExec("INSERT INTO event_package_suppliers").WillReturnError(errors.New("column count mismatch"))
	mock.ExpectRollback()

	body := `{"event_name":"Garden Wedding","event_type":"Wedding","package_id":2,
	          "suppliers":[{"supplier_id":3,"price":20000}]}`
	c, rec := newEventContext(echo.New(), body)

	require.NoError(t, h.Create(c))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEventCreateCommitsFullOrder(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	h := NewEventHandler(repository.NewEventRepo(db), pricing.NewResolver(emptyCatalog{}), nil)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO events").WillReturnResult(sqlmock.NewResult(77, 1))
	mock.ExpectExec("INSERT INTO event_package_configurations").WillReturnResult(sqlmock.NewResult(5, 1))
	mock.ExpectExec("INSERT INTO event_package_suppliers").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	body := `{"event_name":"Garden Wedding","event_type":"Wedding","package_id":2,
	          "suppliers":[{"supplier_id":3,"price":20000}]}`
	c, rec := newEventContext(echo.New(), body)

	require.NoError(t, h.Create(c))
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"events_id":77`)
	assert.NoError(t, mock.ExpectationsWereMet())
}
