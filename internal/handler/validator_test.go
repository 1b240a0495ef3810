package handler

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testRequest struct {
	UserID   string          `validate:"required,max=64"`
	Username string          `validate:"omitempty,min=3,max=32,username"`
	Stake    decimal.Decimal `validate:"money"`
	Game     string          `validate:"omitempty,game"`
}

func validRequest() testRequest {
	return testRequest{UserID: "u1", Username: "alice_01", Stake: decimal.RequireFromString("10.50"), Game: "mines"}
}

func TestValidator_Money(t *testing.T) {
	v := GetValidator()

	tests := []struct {
		name    string
		stake   string
		wantErr bool
	}{
		{"whole", "100", false},
		{"two places", "0.01", false},
		{"trailing zeros", "1.500", false},
		{"zero", "0", true},
		{"negative", "-5", true},
		{"three places", "1.005", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			req.Stake = decimal.RequireFromString(tt.stake)
			err := v.ValidateStruct(req)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, FormatValidationError(err), "stake")
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidator_MissingStake(t *testing.T) {
	req := validRequest()
	req.Stake = decimal.Decimal{}
	assert.Error(t, GetValidator().ValidateStruct(req))
}

func TestValidator_GameAndUsername(t *testing.T) {
	v := GetValidator()

	req := validRequest()
	req.Game = "poker"
	err := v.ValidateStruct(req)
	require.Error(t, err)
	assert.Equal(t, "Unsupported game", FormatValidationError(err)["game"])

	req = validRequest()
	req.Username = "bad name!"
	err = v.ValidateStruct(req)
	require.Error(t, err)
	assert.Contains(t, FormatValidationError(err), "username")

	req = validRequest()
	req.UserID = ""
	err = v.ValidateStruct(req)
	require.Error(t, err)
	assert.Equal(t, "This field is required", FormatValidationError(err)["userid"])
}

func TestFormatValidationError_NonValidationError(t *testing.T) {
	assert.Nil(t, FormatValidationError(nil))
	assert.Equal(t, map[string]string{"error": "Invalid request format"}, FormatValidationError(errors.New("boom")))
}
