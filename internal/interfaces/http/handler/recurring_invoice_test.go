package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/bizkit/backend/internal/application/finance"
	"github.com/bizkit/backend/internal/domain/shared"
)

type fakeGenerator struct {
	result *finance.GenerationResult
	err    error
	calls  int
}

func (f *fakeGenerator) GenerateDueInvoices(ctx context.Context) (*finance.GenerationResult, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

func TestRecurringInvoiceHandler_Generate(t *testing.T) {
	companyID := uuid.New()
	userID := uuid.New()

	t.Run("reports the batch outcome", func(t *testing.T) {
		generator := &fakeGenerator{result: &finance.GenerationResult{Generated: 3, Failed: 1}}
		router := newAuthedRouter(companyID, userID, NewRecurringInvoiceHandler(generator))

		rec := performJSON(router, http.MethodPost, "/api/v1/recurring-invoices/generate", nil)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"generated":3`)
		assert.Contains(t, rec.Body.String(), `"failed":1`)
		assert.Equal(t, 1, generator.calls)
	})

	t.Run("maps generator failures", func(t *testing.T) {
		generator := &fakeGenerator{err: shared.NewDomainError("INTERNAL_ERROR", "Batch run failed")}
		router := newAuthedRouter(companyID, userID, NewRecurringInvoiceHandler(generator))

		rec := performJSON(router, http.MethodPost, "/api/v1/recurring-invoices/generate", nil)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Contains(t, rec.Body.String(), "ERR_INTERNAL")
	})
}
