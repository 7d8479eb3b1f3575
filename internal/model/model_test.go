package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransaction_AmountIsBareJSONNumber(t *testing.T) {
	draft := TransactionDraft{
		Date:        "2025-01-15",
		Description: "Coffee",
		Category:    "Food",
		Amount:      dec("4.50"),
		Type:        TypeExpense,
	}
	b, err := json.Marshal(draft)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"amount":4.5`)
	assert.NotContains(t, string(b), `"amount":"`, "the backend rejects stringified amounts")

	var tx Transaction
	require.NoError(t, json.Unmarshal([]byte(`{"id":7,"date":"2025-01-15","description":"Coffee","category":"Food","amount":4.50,"type":"expense"}`), &tx))
	assert.True(t, tx.Amount.Equal(dec("4.5")))
	assert.Equal(t, TypeExpense, tx.Type)
}

func TestTransactionDraft_OmitsID(t *testing.T) {
	b, err := json.Marshal(TransactionDraft{Date: "2025-01-15", Amount: dec("1")})
	require.NoError(t, err)
	assert.NotContains(t, string(b), `"id"`)
}

func TestDashboardSummary_OptionalGenerations(t *testing.T) {
	var s DashboardSummary
	require.NoError(t, json.Unmarshal([]byte(`{"totalIncome":5000,"totalExpenses":4500,"netWorth":500,"savingsRate":10}`), &s))
	assert.Nil(t, s.AIGenerationsLeft, "absent field stays nil, not zero")

	require.NoError(t, json.Unmarshal([]byte(`{"totalIncome":0,"aiGenerationsLeft":2}`), &s))
	require.NotNil(t, s.AIGenerationsLeft)
	assert.Equal(t, 2, *s.AIGenerationsLeft)
}

func TestAIAdvice_ErrorField(t *testing.T) {
	var a AIAdvice
	require.NoError(t, json.Unmarshal([]byte(`{"error":"AI advice generation limit reached.","generationsLeft":0}`), &a))
	assert.Empty(t, a.Advice)
	assert.Equal(t, "AI advice generation limit reached.", a.Message)
	assert.Zero(t, a.GenerationsLeft)
}
