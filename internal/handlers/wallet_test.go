package handlers

import (
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"testing"

	"vesta/internal/services/ledger"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWalletErrorMapping(t *testing.T) {
	cases := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{"wallet not found", ledger.ErrWalletNotFound, fiber.StatusNotFound, "wallet not found"},
		{"insufficient balance", ledger.ErrInsufficientBalance, fiber.StatusForbidden, "insufficient wallet balance"},
		{"rate unavailable", ledger.ErrRateUnavailable, fiber.StatusBadRequest, "exchange rate unavailable"},
		{"amount too small", ledger.ErrAmountTooSmall, fiber.StatusBadRequest, "amount too small to convert"},
		{"invalid amount", ledger.ErrInvalidAmount, fiber.StatusBadRequest, "invalid amount"},
		{"invalid action", ledger.ErrInvalidAction, fiber.StatusBadRequest, "invalid trade action"},
		{"transaction not found", ledger.ErrTransactionNotFound, fiber.StatusNotFound, "transaction not found"},
		{"storage failure stays generic", fmt.Errorf("pq: connection reset"), fiber.StatusInternalServerError, "Operation failed"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			app := fiber.New()
			// Wrapped errors must map the same as bare sentinels.
			wrapped := fmt.Errorf("operation: %w", tc.err)
			app.Get("/", func(c *fiber.Ctx) error {
				return walletError(c, wrapped)
			})

			resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/", nil))
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, tc.status, resp.StatusCode)

			var body struct {
				Error string `json:"error"`
			}
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			assert.Equal(t, tc.message, body.Error)
		})
	}
}
