package core

import (
	"fmt"
	"math"
	"strings"
)

const (
	TxIncome  = "income"
	TxExpense = "expense"

	// CommitmentJarID is the reserved balance bucket the fixed monthly
	// deduction accumulates into.
	CommitmentJarID = "commitment"
)

type (
	// Jar is a named budget bucket receiving a percentage of distributed
	// income. Percentages across jars are deliberately not validated to sum
	// to 100: under- and over-allocation are both allowed.
	Jar struct {
		ID      string  `json:"id"`
		Label   string  `json:"label"`
		Percent float64 `json:"percent"`
	}

	// Transaction is one append-only ledger row. Positive amounts are
	// income, negative are expenses.
	Transaction struct {
		ID       string  `json:"id"`
		Amount   float64 `json:"amount"`
		Category string  `json:"category"`
		Remark   string  `json:"remark"`
		Date     string  `json:"date"`
		Type     string  `json:"type"`
	}

	WealthConfig struct {
		YearlyTarget   float64 `json:"yearlyTarget"`
		Commitment     float64 `json:"commitment"`
		ShowCommitment bool    `json:"showCommitment"`
		Jars           []Jar   `json:"jars"`
	}

	// Wealth bundles jar balances, the ledger, and the jar configuration.
	// Balances and transactions are independently recorded state: editing or
	// deleting a past transaction never recomputes jar balances.
	Wealth struct {
		Balances     map[string]float64 `json:"balances"`
		Transactions []Transaction      `json:"transactions"`
		Config       WealthConfig       `json:"config"`
	}

	// Distribution is the outcome of splitting one income amount.
	Distribution struct {
		JarDeltas    map[string]float64 `json:"jarDeltas"`
		Transactions []Transaction      `json:"transactions"`
	}
)

// DefaultWealth returns the wealth document seeded for a fresh account.
func DefaultWealth() Wealth {
	return Wealth{
		Balances: map[string]float64{CommitmentJarID: 0},
		Config: WealthConfig{
			YearlyTarget:   100000,
			Commitment:     2000,
			ShowCommitment: true,
			Jars: []Jar{
				{ID: "savings", Label: "Savings 储蓄", Percent: 50},
				{ID: "investment", Label: "Investment 投资", Percent: 50},
			},
		},
	}
}

// Distribute splits an income amount across jars after taking the fixed
// deduction off the top. Deltas are additive on top of whatever each jar
// already holds. A non-positive or non-finite income is a silent no-op.
func Distribute(income float64, jars []Jar, fixedDeduction float64, dateKey string) Distribution {
	if math.IsNaN(income) || math.IsInf(income, 0) || income <= 0 {
		return Distribution{}
	}
	if fixedDeduction < 0 || math.IsNaN(fixedDeduction) {
		fixedDeduction = 0
	}
	net := math.Max(0, income-fixedDeduction)

	d := Distribution{JarDeltas: make(map[string]float64, len(jars)+1)}
	for _, jar := range jars {
		d.JarDeltas[jar.ID] += net * (jar.Percent / 100)
	}
	d.Transactions = append(d.Transactions, Transaction{
		ID:       NewID(),
		Amount:   income,
		Category: "Income 收入",
		Remark:   "Manual Entry",
		Date:     dateKey,
		Type:     TxIncome,
	})
	if fixedDeduction > 0 {
		d.JarDeltas[CommitmentJarID] += fixedDeduction
		d.Transactions = append(d.Transactions, Transaction{
			ID:       NewID(),
			Amount:   -fixedDeduction,
			Category: "Commitment 扣除",
			Remark:   "Auto Deduction",
			Date:     dateKey,
			Type:     TxExpense,
		})
	}
	return d
}

// Distribute applies the configured split to w, crediting balances and
// prepending the resulting ledger rows (newest first).
func (w *Wealth) Distribute(income float64, dateKey string) Distribution {
	deduction := 0.0
	if w.Config.ShowCommitment {
		deduction = w.Config.Commitment
	}
	d := Distribute(income, w.Config.Jars, deduction, dateKey)
	if len(d.Transactions) == 0 {
		return d
	}
	if w.Balances == nil {
		w.Balances = make(map[string]float64)
	}
	for id, delta := range d.JarDeltas {
		w.Balances[id] += delta
	}
	w.Transactions = append(append([]Transaction{}, d.Transactions...), w.Transactions...)
	return d
}

// AddJar appends a jar with a fresh id.
func (w *Wealth) AddJar(label string, percent float64) (Jar, error) {
	label = strings.TrimSpace(label)
	if label == "" {
		return Jar{}, fmt.Errorf("add jar: %w", ErrEmptyLabel)
	}
	jar := Jar{ID: NewID(), Label: label, Percent: percent}
	w.Config.Jars = append(w.Config.Jars, jar)
	return jar, nil
}

// DeleteJar removes a jar from the configuration. A jar carrying a nonzero
// balance is only deletable with an explicit transfer target: the balance
// moves there first, otherwise the operation aborts with jar and balance
// unchanged.
func (w *Wealth) DeleteJar(id, transferTo string) error {
	idx := -1
	for i, jar := range w.Config.Jars {
		if jar.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return fmt.Errorf("delete jar %s: %w", id, ErrJarNotFound)
	}
	if balance := w.Balances[id]; balance != 0 {
		if transferTo == "" {
			return fmt.Errorf("delete jar %s: %w", id, ErrJarNotEmpty)
		}
		if transferTo == id || !w.hasJarOrCommitment(transferTo) {
			return fmt.Errorf("delete jar %s: transfer target %s: %w", id, transferTo, ErrJarNotFound)
		}
		w.Balances[transferTo] += balance
	}
	delete(w.Balances, id)
	w.Config.Jars = append(w.Config.Jars[:idx], w.Config.Jars[idx+1:]...)
	return nil
}

// AddTransaction prepends a ledger row, assigning an id when none is set.
func (w *Wealth) AddTransaction(tx Transaction) Transaction {
	if tx.ID == "" {
		tx.ID = NewID()
	}
	if tx.Type == "" {
		if tx.Amount < 0 {
			tx.Type = TxExpense
		} else {
			tx.Type = TxIncome
		}
	}
	w.Transactions = append([]Transaction{tx}, w.Transactions...)
	return tx
}

// RemoveTransaction deletes a ledger row. Jar balances are left as they
// are; the ledger and balances are deliberately independent.
func (w *Wealth) RemoveTransaction(id string) error {
	for i, tx := range w.Transactions {
		if tx.ID == id {
			w.Transactions = append(w.Transactions[:i], w.Transactions[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("remove transaction %s: %w", id, ErrNotFound)
}

// NetTotal sums the signed ledger.
func (w Wealth) NetTotal() float64 {
	var total float64
	for _, tx := range w.Transactions {
		total += tx.Amount
	}
	return total
}

func (w Wealth) hasJarOrCommitment(id string) bool {
	if id == CommitmentJarID {
		return true
	}
	for _, jar := range w.Config.Jars {
		if jar.ID == id {
			return true
		}
	}
	return false
}
