package core

// TaxRate is the fixed share of project income withheld as taxes. It
// is a domain constant, not per-project configuration.
const TaxRate = 0.11

// ProjectSummary is the profit-sharing breakdown for one project.
type ProjectSummary struct {
	Project          string  `json:"project"`
	TotalIncome      float64 `json:"totalIncome"`
	TotalExpense     float64 `json:"totalExpense"`
	Taxes            float64 `json:"taxes"`
	BonusFromSum     float64 `json:"bonusFromSum"`
	BonusFromBalance float64 `json:"bonusFromBalance"`
	TotalBonuses     float64 `json:"totalBonuses"`
	Balance          float64 `json:"balance"`
}

// ComputeProjectSummary totals a project's income and expenses and
// applies the two-tier bonus formula. The balance bonus is computed on
// income net of taxes and the sum bonus, never on gross income, and
// never goes negative; the subtraction order here is part of the
// contract.
func ComputeProjectSummary(txs []Transaction, project string, cfg ProjectBonuses) ProjectSummary {
	s := ProjectSummary{Project: project}
	for _, t := range txs {
		if t.Project != project {
			continue
		}
		switch t.Type {
		case TypeIncome:
			s.TotalIncome += t.Amount
		case TypeExpense:
			s.TotalExpense += t.Amount
		}
	}
	s.Taxes = s.TotalIncome * TaxRate
	s.BonusFromSum = s.TotalIncome * percent(cfg.BonusFromSum) / 100
	base := s.TotalIncome - s.Taxes - s.BonusFromSum
	if base < 0 {
		base = 0
	}
	s.BonusFromBalance = base * percent(cfg.BonusFromBalance) / 100
	s.TotalBonuses = s.BonusFromSum + s.BonusFromBalance
	s.Balance = s.TotalIncome - s.TotalExpense - s.Taxes - s.TotalBonuses
	return s
}

func percent(p *float64) float64 {
	if p == nil {
		return 0
	}
	return *p
}
