package httputil

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/AdamBeresnev/padel-draw/internal/bracket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestError(t *testing.T) {
	violations := &bracket.ConfigurationError{}
	violations.Add("draw size 6 must be a power of two")

	testCases := []struct {
		name       string
		err        error
		status     int
		violations []string
	}{
		{"not found", fmt.Errorf("game: %w", bracket.ErrNotFound), http.StatusNotFound, nil},
		{"configuration", fmt.Errorf("create: %w", violations), http.StatusBadRequest, []string{"draw size 6 must be a power of two"}},
		{"occupied slot", fmt.Errorf("place: %w", bracket.ErrSlotOccupied), http.StatusBadRequest, nil},
		{"unexpected", errors.New("disk full"), http.StatusInternalServerError, nil},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			Error(rec, "request failed", tc.err)

			assert.Equal(t, tc.status, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
			var body errorResponse
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
			assert.NotEmpty(t, body.Error)
			assert.Equal(t, tc.violations, body.Violations)
		})
	}
}
