package finance

import (
	"testing"
	"time"

	"github.com/bizkit/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestTemplate(t *testing.T, frequency Frequency) *RecurringInvoice {
	amount, err := valueobject.NewMoneyFromMinorUnits(50000, valueobject.USD)
	require.NoError(t, err)
	template, err := NewRecurringInvoice(uuid.New(), uuid.New(), "Monthly retainer", amount, frequency, time.Now())
	require.NoError(t, err)
	return template
}

func TestFrequency_Next(t *testing.T) {
	from := time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		frequency Frequency
		expected  time.Time
	}{
		{FrequencyDaily, time.Date(2026, 1, 16, 12, 0, 0, 0, time.UTC)},
		{FrequencyWeekly, time.Date(2026, 1, 22, 12, 0, 0, 0, time.UTC)},
		{FrequencyMonthly, time.Date(2026, 2, 15, 12, 0, 0, 0, time.UTC)},
		{FrequencyYearly, time.Date(2027, 1, 15, 12, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(string(tt.frequency), func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.frequency.Next(from))
		})
	}
}

func TestNewRecurringInvoice(t *testing.T) {
	t.Run("first generation is one period out", func(t *testing.T) {
		template := createTestTemplate(t, FrequencyMonthly)

		assert.True(t, template.Active)
		assert.WithinDuration(t, time.Now().AddDate(0, 1, 0), template.NextGenerationDate, time.Second)
		assert.Nil(t, template.LastGeneratedAt)
	})

	t.Run("rejects invalid frequency", func(t *testing.T) {
		amount, _ := valueobject.NewMoneyFromMinorUnits(100, valueobject.USD)
		_, err := NewRecurringInvoice(uuid.New(), uuid.New(), "Retainer", amount, Frequency("FORTNIGHTLY"), time.Now())
		assert.Error(t, err)
	})

	t.Run("rejects zero amount", func(t *testing.T) {
		zero := valueobject.Zero(valueobject.USD)
		_, err := NewRecurringInvoice(uuid.New(), uuid.New(), "Retainer", zero, FrequencyMonthly, time.Now())
		assert.Error(t, err)
	})
}

func TestRecurringInvoice_ShouldGenerate(t *testing.T) {
	now := time.Now()

	t.Run("not due before the next generation date", func(t *testing.T) {
		template := createTestTemplate(t, FrequencyMonthly)
		assert.False(t, template.ShouldGenerate(now))
	})

	t.Run("due once the date has passed", func(t *testing.T) {
		template := createTestTemplate(t, FrequencyMonthly)
		template.NextGenerationDate = now.Add(-time.Hour)

		assert.True(t, template.ShouldGenerate(now))
	})

	t.Run("never due when inactive", func(t *testing.T) {
		template := createTestTemplate(t, FrequencyMonthly)
		template.NextGenerationDate = now.Add(-time.Hour)
		template.Deactivate()

		assert.False(t, template.ShouldGenerate(now))
	})

	t.Run("never due past the end date", func(t *testing.T) {
		template := createTestTemplate(t, FrequencyMonthly)
		template.NextGenerationDate = now.Add(-time.Hour)
		template.SetEndDate(now.AddDate(0, 0, -1))

		assert.False(t, template.ShouldGenerate(now))
	})

	t.Run("due when the end date is still ahead", func(t *testing.T) {
		template := createTestTemplate(t, FrequencyMonthly)
		template.NextGenerationDate = now.Add(-time.Hour)
		template.SetEndDate(now.AddDate(0, 1, 0))

		assert.True(t, template.ShouldGenerate(now))
	})
}

func TestRecurringInvoice_MarkGenerated(t *testing.T) {
	template := createTestTemplate(t, FrequencyWeekly)
	now := time.Now()
	template.NextGenerationDate = now.Add(-48 * time.Hour)

	template.MarkGenerated(now)

	require.NotNil(t, template.LastGeneratedAt)
	assert.Equal(t, now, *template.LastGeneratedAt)
	// Schedule drifts: the next date is one period from the generation
	// moment, not from the previous due date
	assert.Equal(t, now.AddDate(0, 0, 7), template.NextGenerationDate)
	assert.False(t, template.ShouldGenerate(now))
}
