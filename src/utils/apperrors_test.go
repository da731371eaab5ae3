package utils_test

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"assethub/src/utils"
)

func TestErrorKinds(t *testing.T) {
	cases := []struct {
		err    error
		kind   utils.ErrorKind
		status int
	}{
		{utils.NotFound("missing"), utils.KindNotFound, http.StatusNotFound},
		{utils.InvalidState("bad state"), utils.KindInvalidState, http.StatusUnprocessableEntity},
		{utils.LocationMismatch("elsewhere"), utils.KindLocationMismatch, http.StatusUnprocessableEntity},
		{utils.InvalidArgument("garbage"), utils.KindInvalidArgument, http.StatusUnprocessableEntity},
		{utils.Conflict("taken"), utils.KindConflict, http.StatusConflict},
		{utils.Forbidden("nope"), utils.KindForbidden, http.StatusForbidden},
		{utils.Gone("vanished"), utils.KindGone, http.StatusGone},
	}

	for _, tc := range cases {
		t.Run(string(tc.kind), func(t *testing.T) {
			assert.True(t, utils.IsKind(tc.err, tc.kind))
			assert.Equal(t, tc.status, utils.HTTPStatus(tc.kind))
		})
	}
}

func TestIsKindWrappedAndForeign(t *testing.T) {
	wrapped := fmt.Errorf("context: %w", utils.Conflict("taken"))
	assert.True(t, utils.IsKind(wrapped, utils.KindConflict))
	assert.False(t, utils.IsKind(wrapped, utils.KindNotFound))
	assert.False(t, utils.IsKind(errors.New("plain"), utils.KindConflict))
}

func TestWriteError(t *testing.T) {
	t.Run("app error", func(t *testing.T) {
		rec := httptest.NewRecorder()
		utils.WriteError(rec, utils.NotFound("asset not found"))

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
		assert.JSONEq(t, `{"error": "asset not found", "code": "NOT_FOUND"}`, rec.Body.String())
	})

	t.Run("unknown errors map to 500 without leaking detail", func(t *testing.T) {
		rec := httptest.NewRecorder()
		utils.WriteError(rec, errors.New("pq: connection refused"))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.JSONEq(t, `{"error": "Internal Server Error", "code": "INTERNAL"}`, rec.Body.String())
	})
}
