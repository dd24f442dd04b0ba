package advisor_test

import (
	"math"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pesawise/backend/internal/application/usecase/advisor"
)

func dec(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}

func TestAdvise_BudgetWithIncome(t *testing.T) {
	req := advisor.AdviceRequest{
		Message: "How much should I budget?",
		Context: &advisor.AdviceContext{Income: dec(50000)},
	}

	first := advisor.Advise(req)
	second := advisor.Advise(req)

	assert.Equal(t, advisor.TopicBudget, first.Topic)
	assert.Equal(t, first, second)

	for _, want := range []string{
		"Based on your monthly income of Ksh 50,000, I recommend:",
		"- Housing: Ksh 15,000 (30%)",
		"- Food: Ksh 7,500 (15%)",
		"- Transport: Ksh 6,000 (12%)",
		"- Savings: Ksh 10,000 (20%)",
		"- Other: Ksh 11,500 (23%)",
		"- Emergency fund: Build to Ksh 150,000",
		"- Investment: Start with Ksh 5,000 monthly",
	} {
		assert.Contains(t, first.Response, want)
	}
	assert.NotContains(t, first.Response, "recorded expenses")
}

func TestAdvise_BudgetWithIncomeAndExpenses(t *testing.T) {
	resp := advisor.Advise(advisor.AdviceRequest{
		Message: "budget please",
		Context: &advisor.AdviceContext{Income: dec(50000), Expenses: dec(20000)},
	})

	assert.Contains(t, resp.Response, "Your recorded expenses of Ksh 20,000 are 40% of your income.")
}

func TestAdvise_BudgetWithoutIncome(t *testing.T) {
	tests := []struct {
		name string
		ctx  *advisor.AdviceContext
	}{
		{name: "nil context", ctx: nil},
		{name: "empty context", ctx: &advisor.AdviceContext{}},
		{name: "zero income", ctx: &advisor.AdviceContext{Income: dec(0)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := advisor.Advise(advisor.AdviceRequest{Message: "Budgeting tips?", Context: tt.ctx})

			assert.Equal(t, advisor.TopicBudget, resp.Topic)
			assert.Contains(t, resp.Response, "50/30/20 Rule")
			assert.NotContains(t, resp.Response, "<nil>")
			assert.NotContains(t, resp.Response, "Ksh 0")
		})
	}
}

func TestAdvise_RulePrecedence(t *testing.T) {
	tests := []struct {
		message string
		want    advisor.Topic
	}{
		{message: "Help me budget so I can save more", want: advisor.TopicBudget},
		{message: "How much should I SAVE monthly?", want: advisor.TopicSavings},
		{message: "I want to save and invest", want: advisor.TopicSavings},
		{message: "Best investment options in Kenya?", want: advisor.TopicInvestment},
		{message: "Tips for M-Pesa", want: advisor.TopicMobileMoney},
		{message: "mpesa savings plan", want: advisor.TopicSavings},
		{message: "How should I build an emergency fund?", want: advisor.TopicEmergencyFund},
		{message: "What about taxes?", want: advisor.TopicGeneral},
	}

	for _, tt := range tests {
		t.Run(tt.message, func(t *testing.T) {
			assert.Equal(t, tt.want, advisor.Advise(advisor.AdviceRequest{Message: tt.message}).Topic)
		})
	}
}

func TestAdvise_FallbackEchoesOriginalMessage(t *testing.T) {
	resp := advisor.Advise(advisor.AdviceRequest{Message: "Should I buy a Car?"})

	assert.Equal(t, advisor.TopicGeneral, resp.Topic)
	assert.True(t, strings.HasPrefix(resp.Response, `I understand you're asking about "Should I buy a Car?".`))
}

func TestAdvise_SavingsTarget(t *testing.T) {
	withIncome := advisor.Advise(advisor.AdviceRequest{
		Message: "saving tips",
		Context: &advisor.AdviceContext{Income: dec(75000)},
	})
	assert.Contains(t, withIncome.Response, "Save Ksh 15,000 per month (20% of your income)")

	generic := advisor.Advise(advisor.AdviceRequest{Message: "saving tips"})
	assert.Contains(t, generic.Response, "Aim to save at least 20% of your income monthly.")
}

func TestAdvise_EmergencyFundRange(t *testing.T) {
	resp := advisor.Advise(advisor.AdviceRequest{
		Message: "emergency fund",
		Context: &advisor.AdviceContext{Expenses: dec(30000)},
	})
	assert.Contains(t, resp.Response, "Ksh 90,000 to Ksh 180,000")

	generic := advisor.Advise(advisor.AdviceRequest{Message: "emergency fund"})
	assert.Contains(t, generic.Response, "3-6 months of expenses")
}

func TestRules_Order(t *testing.T) {
	require.Len(t, advisor.Rules, 5)

	got := make([]advisor.Topic, len(advisor.Rules))
	for i, r := range advisor.Rules {
		got[i] = r.Topic
	}
	assert.Equal(t, []advisor.Topic{
		advisor.TopicBudget,
		advisor.TopicSavings,
		advisor.TopicInvestment,
		advisor.TopicMobileMoney,
		advisor.TopicEmergencyFund,
	}, got)
}

func TestFormatKsh(t *testing.T) {
	assert.Equal(t, "Ksh 15,000", advisor.FormatKsh(decimal.NewFromInt(15000)))
	assert.Equal(t, "Ksh 1,234,568", advisor.FormatKsh(decimal.RequireFromString("1234567.5")))
	assert.Equal(t, "Ksh 0", advisor.FormatKsh(decimal.Zero))
	assert.Equal(t, "Ksh 9,223,372,036,854,775,807", advisor.FormatKsh(decimal.NewFromInt(math.MaxInt64)))
	assert.Equal(t, "Ksh 20,000,000,000,000,000,000", advisor.FormatKsh(decimal.RequireFromString("2e19")))
	assert.Equal(t, "Ksh -123,456,789,012,345,678,901", advisor.FormatKsh(decimal.RequireFromString("-123456789012345678901")))
}

func TestAdvise_HugeIncomeKeepsFigures(t *testing.T) {
	income := decimal.RequireFromString("2e19")

	resp := advisor.Advise(advisor.AdviceRequest{
		Message: "budget",
		Context: &advisor.AdviceContext{Income: &income},
	})

	assert.Contains(t, resp.Response, "monthly income of Ksh 20,000,000,000,000,000,000")
	assert.Contains(t, resp.Response, "Housing: Ksh 6,000,000,000,000,000,000 (30%)")
}
