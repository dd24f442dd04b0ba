// Package advisor contains the keyword advice matcher and advisor use cases.
package advisor

import (
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Topic identifies which rule produced an advice response.
type Topic string

const (
	TopicBudget        Topic = "budget"
	TopicSavings       Topic = "savings"
	TopicInvestment    Topic = "investment"
	TopicMobileMoney   Topic = "mobile_money"
	TopicEmergencyFund Topic = "emergency_fund"
	TopicGeneral       Topic = "general"
)

// AdviceContext carries the optional numeric context for an advice request.
type AdviceContext struct {
	Income   *decimal.Decimal
	Expenses *decimal.Decimal
}

// AdviceRequest is a free-text question plus optional context.
type AdviceRequest struct {
	Message string
	Context *AdviceContext
}

// AdviceResponse is the rendered advice text.
type AdviceResponse struct {
	Response string
	Topic    Topic
}

// Rule maps a keyword set to a response template.
type Rule struct {
	Topic    Topic
	Keywords []string
	Render   func(req AdviceRequest) string
}

// Matches reports whether any keyword occurs in the lower-cased message.
func (r Rule) Matches(lowered string) bool {
	for _, kw := range r.Keywords {
		if strings.Contains(lowered, kw) {
			return true
		}
	}
	return false
}

// Rules is evaluated in order and the first match wins.
// Budget precedes savings so "budget to save more" gets budget advice.
// Savings precedes emergency so "emergency savings" gets savings advice.
var Rules = []Rule{
	{Topic: TopicBudget, Keywords: []string{"budget", "budgeting"}, Render: renderBudget},
	{Topic: TopicSavings, Keywords: []string{"save", "saving"}, Render: renderSavings},
	{Topic: TopicInvestment, Keywords: []string{"invest", "investment"}, Render: renderInvestment},
	{Topic: TopicMobileMoney, Keywords: []string{"mpesa", "m-pesa"}, Render: renderMobileMoney},
	{Topic: TopicEmergencyFund, Keywords: []string{"emergency"}, Render: renderEmergencyFund},
}

// Advise selects the first rule matching the message and renders its response.
// Unmatched messages get a general response that echoes the original message.
func Advise(req AdviceRequest) AdviceResponse {
	lowered := strings.ToLower(req.Message)

	for _, rule := range Rules {
		if rule.Matches(lowered) {
			return AdviceResponse{Response: rule.Render(req), Topic: rule.Topic}
		}
	}

	return AdviceResponse{Response: renderGeneral(req), Topic: TopicGeneral}
}

func (c *AdviceContext) income() (decimal.Decimal, bool) {
	if c == nil || c.Income == nil || !c.Income.IsPositive() {
		return decimal.Zero, false
	}
	return *c.Income, true
}

func (c *AdviceContext) expenses() (decimal.Decimal, bool) {
	if c == nil || c.Expenses == nil || !c.Expenses.IsPositive() {
		return decimal.Zero, false
	}
	return *c.Expenses, true
}

var (
	minInt64 = decimal.NewFromInt(math.MinInt64)
	maxInt64 = decimal.NewFromInt(math.MaxInt64)
)

// FormatKsh renders an amount rounded to whole shillings with thousands separators.
func FormatKsh(amount decimal.Decimal) string {
	rounded := amount.Round(0)
	if rounded.LessThan(minInt64) || rounded.GreaterThan(maxInt64) {
		return "Ksh " + groupThousands(rounded.BigInt().String())
	}
	p := message.NewPrinter(language.English)
	return p.Sprintf("Ksh %d", rounded.IntPart())
}

// groupThousands inserts commas into a base-10 integer string.
func groupThousands(digits string) string {
	sign := ""
	if strings.HasPrefix(digits, "-") {
		sign, digits = "-", digits[1:]
	}

	var b strings.Builder
	for i, r := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	return sign + b.String()
}

func share(amount decimal.Decimal, pct int64) string {
	return FormatKsh(amount.Mul(decimal.NewFromInt(pct)).Div(decimal.NewFromInt(100)))
}

func renderBudget(req AdviceRequest) string {
	income, ok := req.Context.income()
	if !ok {
		return `Based on typical Kenyan living costs, here's my budgeting advice:

**50/30/20 Rule (Kenya-adapted):**
- 50% for needs (rent, food, transport, utilities)
- 30% for wants (entertainment, dining out, shopping)
- 20% for savings and debt repayment

**Housing:** Keep rent below 30% of income (Ksh 15,000-25,000 for mid-income earners)
**Transport:** Budget Ksh 5,000-8,000 for matatu/bus fare monthly
**Food:** Ksh 8,000-12,000 for groceries and occasional dining out

Would you like me to create a personalized budget based on your income?`
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Based on your monthly income of %s, I recommend:\n\n", FormatKsh(income))
	b.WriteString("**Optimized Budget:**\n")
	fmt.Fprintf(&b, "- Housing: %s (30%%)\n", share(income, 30))
	fmt.Fprintf(&b, "- Food: %s (15%%)\n", share(income, 15))
	fmt.Fprintf(&b, "- Transport: %s (12%%)\n", share(income, 12))
	fmt.Fprintf(&b, "- Savings: %s (20%%)\n", share(income, 20))
	fmt.Fprintf(&b, "- Other: %s (23%%)\n", share(income, 23))

	if expenses, ok := req.Context.expenses(); ok {
		pct := expenses.Div(income).Mul(decimal.NewFromInt(100)).Round(0)
		fmt.Fprintf(&b, "\nYour recorded expenses of %s are %s%% of your income.\n", FormatKsh(expenses), pct.String())
	}

	b.WriteString("\n**Key Recommendations:**\n")
	fmt.Fprintf(&b, "- Emergency fund: Build to %s\n", FormatKsh(income.Mul(decimal.NewFromInt(3))))
	fmt.Fprintf(&b, "- Investment: Start with %s monthly\n", share(income, 10))
	b.WriteString("- Review and adjust quarterly")

	return b.String()
}

func renderSavings(req AdviceRequest) string {
	var b strings.Builder
	b.WriteString(`Smart savings strategies for your situation:

**Priority Order:**
1. Emergency Fund (3-6 months expenses)
2. High-interest debt payoff
3. Investment in government bonds
4. Equity investments (NSE stocks)

**Automation Tips:**
- Set up automatic transfers on payday
- Use M-Shwari lock savings for discipline
- Consider a monthly Sacco contribution
- Save windfalls immediately

`)
	if income, ok := req.Context.income(); ok {
		fmt.Fprintf(&b, "**Target:** Save %s per month (20%% of your income).", share(income, 20))
	} else {
		b.WriteString("**Target:** Aim to save at least 20% of your income monthly.")
	}
	return b.String()
}

func renderInvestment(AdviceRequest) string {
	return `Investment opportunities in Kenya:

**Low Risk (8-15% returns):**
- Government Treasury Bills/Bonds
- Fixed deposits
- Money market funds

**Medium Risk (15-25% returns):**
- NSE stocks (Safaricom, Equity, KCB)
- Balanced unit trust funds
- Real estate investment trusts (REITs)

**Higher Risk (25%+ potential):**
- Individual stocks
- Cryptocurrency (small allocation)
- Starting a business

**My Recommendation:** Start with 60% bonds, 30% equity funds, 10% individual stocks. Only invest what you can afford to lose.`
}

func renderMobileMoney(AdviceRequest) string {
	return `M-Pesa financial management tips:

**M-Shwari Benefits:**
- Lock savings account (6% interest)
- Micro-loans for emergencies
- No monthly fees

**Smart M-Pesa Usage:**
- Track all transactions via statements
- Use M-Pesa for bill payments to avoid cash handling
- Set up automatic savings transfers
- Monitor spending via M-Pesa app

**Avoid:**
- Taking M-Shwari loans frequently (affects credit score)
- Keeping large amounts in M-Pesa (use bank for safety)
- Using M-Pesa for non-essential purchases

Would you like help setting up an M-Pesa savings plan?`
}

func renderEmergencyFund(req AdviceRequest) string {
	var b strings.Builder
	b.WriteString("Building an emergency fund:\n\n")

	if expenses, ok := req.Context.expenses(); ok {
		fmt.Fprintf(&b, "**Target:** %s to %s (3-6 months of your expenses of %s)\n\n",
			FormatKsh(expenses.Mul(decimal.NewFromInt(3))),
			FormatKsh(expenses.Mul(decimal.NewFromInt(6))),
			FormatKsh(expenses),
		)
	} else {
		b.WriteString("**Target:** 3-6 months of expenses (start with Ksh 50,000)\n\n")
	}

	b.WriteString(`**How to build it:**
- Keep it separate from your spending account
- Use a money market fund or M-Shwari lock savings
- Top it up automatically every payday
- Only use it for true emergencies and refill it afterwards`)
	return b.String()
}

func renderGeneral(req AdviceRequest) string {
	return fmt.Sprintf(`I understand you're asking about "%s". Let me help you with personalized advice:

Based on Kenyan financial best practices:
- Always maintain an emergency fund
- Diversify your investments
- Track every expense
- Plan for taxes and inflation
- Consider both short and long-term goals

What specific aspect would you like me to elaborate on?`, req.Message)
}
