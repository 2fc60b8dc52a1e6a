package projection

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/ndewijer/Budget-Projection-Backend/internal/model"
)

const (
	daysPerYear    = 365
	monthsPerYear  = 12
	moneyPrecision = 2
)

var (
	hundred = decimal.NewFromInt(100)
	oneCent = decimal.New(1, -moneyPrecision)
)

// simulation is the working state of one sweep. Balances and growth buffers are
// keyed by account id; the accounts themselves are never modified.
type simulation struct {
	accounts []model.Account
	byID     map[string]model.Account
	balances map[string]decimal.Decimal
	growth   map[string]decimal.Decimal // sub-cent growth not yet posted
	total    decimal.Decimal
	spent    map[bucketKey]decimal.Decimal
	periods  []time.Time
}

func newSimulation(accounts []model.Account) *simulation {
	s := &simulation{
		accounts: accounts,
		byID:     make(map[string]model.Account, len(accounts)),
		balances: make(map[string]decimal.Decimal, len(accounts)),
		growth:   make(map[string]decimal.Decimal, len(accounts)),
	}
	for _, a := range accounts {
		s.byID[a.ID] = a
		s.balances[a.ID] = a.Balance
		s.growth[a.ID] = decimal.Zero
	}
	return s
}

// bootstrap rolls every stored balance forward over the events and the daily growth
// between its balance date and the effective start. Nothing is emitted. The
// aggregate total is taken afterwards, so postings here never fold into it.
func (s *simulation) bootstrap(events []event, current time.Time) {
	from, grows := s.earliestGrowthDate()
	for _, e := range events {
		if !e.Date.Before(current) {
			break
		}
		if grows && from.Before(e.Date) {
			s.accrue(from, e.Date)
			from = e.Date
		}
		s.apply(e, e.Amount, false)
	}
	if grows && from.Before(current) {
		s.accrue(from, current)
	}

	s.total = decimal.Zero
	for _, a := range s.accounts {
		if a.IncludeInTotal {
			s.total = s.total.Add(signed(a, s.balances[a.ID]))
		}
	}
}

// earliestGrowthDate is the first balance date of any account that accrues daily
// growth. Accounts without a balance date do not count.
func (s *simulation) earliestGrowthDate() (time.Time, bool) {
	var earliest time.Time
	found := false
	for _, a := range s.accounts {
		if a.Type.IsDebt() || !a.AnnualGrowthRate.IsPositive() || a.BalanceAsOf.IsZero() {
			continue
		}
		if d := day(a.BalanceAsOf); !found || d.Before(earliest) {
			earliest, found = d, true
		}
	}
	return earliest, found
}

// accrue compounds daily growth for every day in [from, to). Each non-debt account
// with a growth rate collects growth in its buffer; whole cents are posted once the
// buffer reaches one cent, the remainder stays buffered.
func (s *simulation) accrue(from, to time.Time) {
	for d := from; d.Before(to); d = d.AddDate(0, 0, 1) {
		for _, a := range s.accounts {
			if a.Type.IsDebt() || !a.AnnualGrowthRate.IsPositive() {
				continue
			}
			if d.Before(day(a.BalanceAsOf)) {
				continue
			}

			dailyRate := a.AnnualGrowthRate.Div(hundred).Div(decimal.NewFromInt(daysPerYear))
			buffer := s.growth[a.ID].Add(s.balances[a.ID].Mul(dailyRate))

			if buffer.Abs().GreaterThanOrEqual(oneCent) {
				post := buffer.RoundBank(moneyPrecision)
				s.post(a, post, true)
				buffer = buffer.Sub(post)
			}
			s.growth[a.ID] = buffer
		}
	}
}

// step applies one live event and returns the amount actually applied.
func (s *simulation) step(e event) decimal.Decimal {
	switch e.Type {
	case EventInterest:
		return s.applyInterest(e)
	case EventBucket:
		amount := e.Amount
		if period, ok := periodFor(s.periods, e.Date); ok {
			amount = bucketAmount(e.Amount, s.spent[bucketKey{period: period, bucketID: e.BucketID}])
		}
		s.apply(e, amount, true)
		return amount.RoundBank(moneyPrecision)
	default:
		s.apply(e, e.Amount, true)
		return e.Amount.RoundBank(moneyPrecision)
	}
}

// applyInterest adds one month of mortgage interest, rounded to cents.
func (s *simulation) applyInterest(e event) decimal.Decimal {
	a, ok := s.byID[e.FromAccountID]
	if !ok || a.MortgageDetails == nil || !s.effective(a, e.Date) {
		return decimal.Zero
	}

	monthlyRate := a.MortgageDetails.InterestRate.Div(hundred).Div(decimal.NewFromInt(monthsPerYear))
	interest := s.balances[a.ID].Mul(monthlyRate).RoundBank(moneyPrecision)
	s.post(a, interest, true)
	return interest
}

// apply moves |amount| out of the source account and into the destination account
// according to the account-type rules. Accounts whose stored balance is dated after
// the event already include it and are left untouched.
func (s *simulation) apply(e event, amount decimal.Decimal, fold bool) {
	change := amount.Abs().RoundBank(moneyPrecision)

	if from, ok := s.byID[e.FromAccountID]; ok && s.effective(from, e.Date) {
		if from.Type.IsDebt() {
			// Drawing on a debt account increases what is owed.
			s.post(from, change, fold)
		} else {
			s.post(from, change.Neg(), fold)
		}
	}

	to, ok := s.byID[e.ToAccountID]
	if !ok || !s.effective(to, e.Date) {
		return
	}

	switch to.Type {
	case model.AccountTypeMortgage:
		if e.IsRebalance || e.ReplacesInterest {
			s.post(to, change, fold)
			return
		}
		s.post(to, principalOf(to, change, e.IsPrincipalOnly).Neg(), fold)
	case model.AccountTypePersonalLoan:
		if e.Type == EventTransaction && e.IsPrincipalOnly {
			s.post(to, change.Neg(), fold)
			return
		}
		// Disbursements and rebalances both raise the loan balance.
		s.post(to, change, fold)
	default:
		s.post(to, change, fold)
	}
}

// principalOf is the part of a mortgage payment that reduces the loan: everything
// after escrow and mortgage insurance, unless the payment is principal-only.
func principalOf(a model.Account, payment decimal.Decimal, principalOnly bool) decimal.Decimal {
	if principalOnly || a.MortgageDetails == nil {
		return payment
	}
	principal := payment.Sub(a.MortgageDetails.Escrow).Sub(a.MortgageDetails.MortgageInsurance)
	if principal.IsNegative() {
		return decimal.Zero
	}
	return principal
}

// post changes an account balance by delta and, when folding, mirrors the change in
// the aggregate total for included accounts with debt deltas inverted.
func (s *simulation) post(a model.Account, delta decimal.Decimal, fold bool) {
	s.balances[a.ID] = s.balances[a.ID].Add(delta)
	if fold && a.IncludeInTotal {
		s.total = s.total.Add(signed(a, delta))
	}
}

func (s *simulation) effective(a model.Account, date time.Time) bool {
	return !day(a.BalanceAsOf).After(date)
}

// emit snapshots the current state as an output line.
func (s *simulation) emit(e event, amount decimal.Decimal) model.ProjectionItem {
	balances := make(map[string]decimal.Decimal, len(s.accounts))
	warning := s.total.IsNegative()
	for _, a := range s.accounts {
		bal := s.balances[a.ID]
		balances[a.Name] = bal
		if !a.Type.IsDebt() && bal.IsNegative() {
			warning = true
		}
	}

	return model.ProjectionItem{
		Date:            e.Date,
		Description:     e.Description,
		Amount:          amount,
		Balance:         s.total,
		AccountBalances: balances,
		PaycheckID:      e.PaycheckID,
		IsWarning:       warning,
	}
}

// signed returns the contribution of a balance change to the aggregate total.
func signed(a model.Account, amount decimal.Decimal) decimal.Decimal {
	if a.Type.IsDebt() {
		return amount.Neg()
	}
	return amount
}
