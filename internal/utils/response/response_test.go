package response

import (
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainErrors "quickpay/internal/errors"
)

func TestStatusFor(t *testing.T) {
	tests := map[domainErrors.Kind]int{
		domainErrors.KindQueryTooShort:     fiber.StatusBadRequest,
		domainErrors.KindInvalidAmount:     fiber.StatusBadRequest,
		domainErrors.KindRecipientNotFound: fiber.StatusNotFound,
		domainErrors.KindLedgerDeclined:    fiber.StatusUnprocessableEntity,
		domainErrors.KindTransportFailure:  fiber.StatusBadGateway,
		domainErrors.Kind("other"):         fiber.StatusInternalServerError,
	}
	for kind, want := range tests {
		assert.Equal(t, want, StatusFor(kind), kind)
	}
}

func TestDomainError(t *testing.T) {
	app := fiber.New()
	app.Get("/transport", func(c *fiber.Ctx) error {
		return DomainError(c, domainErrors.ErrTransportFailure.Wrap(errors.New("dial tcp")))
	})
	app.Get("/plain", func(c *fiber.Ctx) error {
		return DomainError(c, errors.New("secret detail"))
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/transport", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadGateway, resp.StatusCode)

	var body map[string]interface{}
	raw, _ := io.ReadAll(resp.Body)
	require.NoError(t, json.Unmarshal(raw, &body))
	assert.Equal(t, true, body["reconcile"])
	assert.Equal(t, "TRANSPORT_FAILURE", body["code"])

	resp, err = app.Test(httptest.NewRequest("GET", "/plain", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
	raw, _ = io.ReadAll(resp.Body)
	assert.NotContains(t, string(raw), "secret detail")
}
