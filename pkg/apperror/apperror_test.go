package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToHTTPStatus(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{NewNotFound("experience", "x"), http.StatusNotFound},
		{NewAlreadyExists("skills"), http.StatusConflict},
		{NewDuplicateTitle("Publications"), http.StatusConflict},
		{NewInvalidOrder("bad"), http.StatusBadRequest},
		{NewIndexOutOfRange(3, 1), http.StatusBadRequest},
		{NewCredentialMissing(), http.StatusPreconditionFailed},
		{NewGateway("down", errors.New("dial")), http.StatusBadGateway},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, ToHTTPStatus(tc.err), tc.err.Error())
	}
}

func TestWrappedSentinelMatches(t *testing.T) {
	err := fmt.Errorf("add section: %w", NewDuplicateTitle("Awards"))
	assert.True(t, errors.Is(err, ErrDuplicateTitle))
	assert.False(t, errors.Is(err, ErrAlreadyExists))

	body := ToJSON(err)
	assert.Equal(t, "duplicate title", body["error"])
	assert.Contains(t, body["details"], "collides with an existing section")
}
