package entities

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBookInstance_BeforeCreate(t *testing.T) {
	t.Run("assigns id and default status", func(t *testing.T) {
		bi := &BookInstance{}
		require.NoError(t, bi.BeforeCreate(nil))
		assert.NotEqual(t, uuid.Nil, bi.ID)
		assert.Equal(t, LoanStatusMaintenance, bi.Status)
	})

	t.Run("keeps explicit status", func(t *testing.T) {
		bi := &BookInstance{Status: LoanStatusReserved}
		require.NoError(t, bi.BeforeCreate(nil))
		assert.Equal(t, LoanStatusReserved, bi.Status)
	})

	t.Run("ten thousand identifiers never collide", func(t *testing.T) {
		seen := make(map[uuid.UUID]struct{}, 10000)
		for i := 0; i < 10000; i++ {
			bi := &BookInstance{}
			require.NoError(t, bi.BeforeCreate(nil))
			seen[bi.ID] = struct{}{}
		}
		assert.Len(t, seen, 10000)
	})
}

func TestLoanStatus(t *testing.T) {
	for _, s := range LoanStatuses {
		assert.True(t, s.IsValid(), s)
	}
	assert.Equal(t, "On loan", LoanStatusOnLoan.Label())
	assert.Equal(t, "Available", LoanStatusAvailable.Label())
	assert.False(t, LoanStatus("x").IsValid())
	assert.Equal(t, "x", LoanStatus("x").Label())
	assert.False(t, LoanStatus("").IsValid())
}
