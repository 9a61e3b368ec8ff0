package persistence

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateSortOrder(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"uppercase ASC", "ASC", "ASC"},
		{"lowercase asc", "asc", "ASC"},
		{"mixed case Asc", "Asc", "ASC"},
		{"asc with whitespace", "  asc  ", "ASC"},
		{"uppercase DESC", "DESC", "DESC"},
		{"lowercase desc", "desc", "DESC"},
		{"empty defaults to DESC", "", "DESC"},
		{"garbage defaults to DESC", "sideways", "DESC"},
		{"injection attempt defaults to DESC", "ASC; DROP TABLE leads", "DESC"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ValidateSortOrder(tt.input))
		})
	}
}

func TestValidateSortField(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		allowed  map[string]bool
		expected string
	}{
		{"allowed field passes", "name", LeadSortFields, "name"},
		{"common field passes", "created_at", LeadSortFields, "created_at"},
		{"field with whitespace trimmed", "  status  ", LeadSortFields, "status"},
		{"unknown field falls back", "password_hash", UserSortFields, "created_at"},
		{"empty falls back", "", InvoiceSortFields, "created_at"},
		{"injection attempt falls back", "name; DROP TABLE invoices", InvoiceSortFields, "created_at"},
		{"field from another entity falls back", "subdomain", LeadSortFields, "created_at"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ValidateSortField(tt.input, tt.allowed, "created_at"))
		})
	}
}

func TestSortFieldWhitelists(t *testing.T) {
	t.Run("every whitelist contains the common fields", func(t *testing.T) {
		whitelists := map[string]map[string]bool{
			"leads":              LeadSortFields,
			"estimates":          EstimateSortFields,
			"projects":           ProjectSortFields,
			"clients":            ClientSortFields,
			"invoices":           InvoiceSortFields,
			"expenses":           ExpenseSortFields,
			"recurring_invoices": RecurringInvoiceSortFields,
			"users":              UserSortFields,
			"companies":          CompanySortFields,
		}
		for entity, fields := range whitelists {
			for common := range CommonSortFields {
				assert.True(t, fields[common], "%s whitelist missing %s", entity, common)
			}
		}
	})

	t.Run("sensitive columns are never sortable", func(t *testing.T) {
		assert.False(t, UserSortFields["password_hash"])
		assert.False(t, UserSortFields["failed_attempts"])
		assert.False(t, ExpenseSortFields["receipt_key"])
	})
}
