package repositories

import (
	"strings"
	"time"

	"gorm.io/gorm"

	"checkoutdash/internal/models/request_models"
	"checkoutdash/pkg/utils"
)

// Clause is one parenthesised predicate and its bound values.
type Clause struct {
	SQL  string
	Args []interface{}
}

// FilterSet is an ordered list of predicates joined with AND. The same set
// drives the count, summary and page queries so they always agree.
type FilterSet struct {
	clauses []Clause
}

func (f *FilterSet) Add(sql string, args ...interface{}) {
	f.clauses = append(f.clauses, Clause{SQL: sql, Args: args})
}

func (f FilterSet) Empty() bool { return len(f.clauses) == 0 }

func (f FilterSet) Clauses() []Clause { return f.clauses }

func (f FilterSet) SQL() string {
	parts := make([]string, 0, len(f.clauses))
	for _, c := range f.clauses {
		parts = append(parts, c.SQL)
	}
	return strings.Join(parts, " AND ")
}

func (f FilterSet) Args() []interface{} {
	var args []interface{}
	for _, c := range f.clauses {
		args = append(args, c.Args...)
	}
	return args
}

// Apply adds the predicates to q as a single WHERE group.
func (f FilterSet) Apply(q *gorm.DB) *gorm.DB {
	if f.Empty() {
		return q
	}
	return q.Where(f.SQL(), f.Args()...)
}

func like(value string) string {
	return "%" + value + "%"
}

// BuildPaymentLogFilters translates payment-log query parameters into
// predicates. searchDate is a calendar day in loc.
func BuildPaymentLogFilters(p request_models.PaymentLogFilter, loc *time.Location) (FilterSet, error) {
	var f FilterSet

	if v := p.SearchByAppID; v != "" {
		f.Add("(product_id LIKE ? OR order_id LIKE ?)", like(v), like(v))
	}
	if v := p.SearchByAppIDOrTransaction; v != "" {
		f.Add("(product_id LIKE ? OR transaction_id LIKE ?)", like(v), like(v))
	}
	if v := strings.TrimSpace(p.SearchDate); v != "" {
		start, end, err := utils.DayRange(v, loc)
		if err != nil {
			return FilterSet{}, utils.NewFieldError("searchDate", "must be a date in YYYY-MM-DD format")
		}
		f.Add("(addedon >= ? AND addedon < ?)", start, end)
	}
	if v := p.SubscriptionType; v != "" {
		// unknown types are ignored rather than rejected
		if term, ok := utils.TermForSubscriptionType(v); ok {
			f.Add("(payment_terms = ?)", term)
		}
	}
	if v := p.ProductID; v != "" {
		f.Add("(product_name = ?)", v)
	}
	if v := p.SubscriptionPeriod; v != "" {
		f.Add("(subscription_period = ?)", v)
	}
	if v := p.Addons; v != "" {
		f.Add("(addon_type LIKE ?)", like(v))
	}
	if v := p.PaymentMode; v != "" {
		f.Add("(payment_method = ?)", v)
	}
	if v := p.PaymentSource; v != "" {
		f.Add("(payment_source = ?)", v)
	}
	switch v := p.ClaimedUser; v {
	case "":
	case "claimed":
		f.Add("(claim_user IS NOT NULL AND claim_user <> '')")
	case "unclaimed":
		f.Add("(claim_user IS NULL OR claim_user = '')")
	default:
		f.Add("(claim_user = ?)", v)
	}
	if v := p.Language; v != "" {
		f.Add("(payment_country = ?)", v)
	}

	return f, nil
}

// BuildSubscriptionFilters produces substring predicates against the
// subscription table (alias s) and its joined plan (alias p). dialect is the
// GORM dialector name; date columns are cast to text for matching.
func BuildSubscriptionFilters(p request_models.SubscriptionFilter, dialect string) FilterSet {
	var f FilterSet

	if v := p.ProductName; v != "" {
		f.Add("(s.product_name LIKE ?)", like(v))
	}
	if v := p.ProductID; v != "" {
		f.Add("(s.product_id LIKE ?)", like(v))
	}
	if v := p.PlanName; v != "" {
		f.Add("(p.plan_name LIKE ?)", like(v))
	}
	if v := p.Period; v != "" {
		f.Add("(s.subscription_period LIKE ?)", like(v))
	}
	if v := p.PaymentMethod; v != "" {
		f.Add("(s.payment_method LIKE ?)", like(v))
	}
	if v := p.StartDate; v != "" {
		f.Add("("+asText(dialect, "s.subscription_start_date")+" LIKE ?)", like(v))
	}
	if v := p.RenewalDate; v != "" {
		f.Add("("+asText(dialect, "s.subscription_end_date")+" LIKE ?)", like(v))
	}

	return f
}

func asText(dialect, column string) string {
	if dialect == "mysql" {
		return "CAST(" + column + " AS CHAR)"
	}
	return "CAST(" + column + " AS TEXT)"
}
