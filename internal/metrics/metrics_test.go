package metrics

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func newTestContext() echo.Context {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/opportunities", nil)
	return e.NewContext(req, httptest.NewRecorder())
}

func TestResponseStatus_HTTPErrorCode(t *testing.T) {
	c := newTestContext()
	assert.Equal(t, http.StatusNotFound, responseStatus(c, echo.NewHTTPError(http.StatusNotFound)))
}

func TestResponseStatus_WrappedHTTPErrorCode(t *testing.T) {
	c := newTestContext()
	err := fmt.Errorf("handler: %w", echo.NewHTTPError(http.StatusConflict))
	assert.Equal(t, http.StatusConflict, responseStatus(c, err))
}

func TestResponseStatus_PlainErrorRecordsAs500(t *testing.T) {
	c := newTestContext()
	assert.Equal(t, http.StatusInternalServerError, responseStatus(c, errors.New("boom")))
}

func TestResponseStatus_SuccessUsesWrittenStatus(t *testing.T) {
	c := newTestContext()
	assert.NoError(t, c.NoContent(http.StatusNoContent))
	assert.Equal(t, http.StatusNoContent, responseStatus(c, nil))
}

func TestResponseStatus_CommittedResponseWinsOverPlainError(t *testing.T) {
	c := newTestContext()
	assert.NoError(t, c.NoContent(http.StatusAccepted))
	assert.Equal(t, http.StatusAccepted, responseStatus(c, errors.New("post-write failure")))
}
