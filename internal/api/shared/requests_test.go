package shared

import (
	"errors"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type tagValidatedRequest struct {
	Amount int    `json:"amount" validate:"required,gte=0"`
	Source string `json:"source" validate:"required"`
}

type selfValidatedRequest struct {
	Fail bool
}

var errSelfValidation = errors.New("self validation failed")

func (r selfValidatedRequest) Validate() error {
	if r.Fail {
		return errSelfValidation
	}
	return nil
}

func TestDecodeJSON(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest("POST", "/api/xp/award", strings.NewReader(`{"amount": 50, "source": "quest_completion"}`))
	var body tagValidatedRequest
	require.NoError(t, DecodeJSON(req, &body))
	assert.Equal(t, 50, body.Amount)
	assert.Equal(t, "quest_completion", body.Source)

	req = httptest.NewRequest("POST", "/api/xp/award", strings.NewReader(`{broken`))
	assert.Error(t, DecodeJSON(req, &body))
}

func TestValidateRequest(t *testing.T) {
	t.Parallel()

	assert.NoError(t, ValidateRequest(tagValidatedRequest{Amount: 10, Source: "quest_completion"}))
	assert.Error(t, ValidateRequest(tagValidatedRequest{Amount: 10}), "missing source fails tag validation")

	assert.NoError(t, ValidateRequest(selfValidatedRequest{}))
	assert.ErrorIs(t, ValidateRequest(selfValidatedRequest{Fail: true}), errSelfValidation)
}
