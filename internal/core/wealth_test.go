package core

import (
	"errors"
	"math"
	"testing"
)

func TestDistributeSplitsByPercent(t *testing.T) {
	jars := []Jar{{ID: "a", Percent: 50}, {ID: "b", Percent: 30}}
	d := Distribute(1000, jars, 0, "2024-01-15")
	if d.JarDeltas["a"] != 500 || d.JarDeltas["b"] != 300 {
		t.Fatalf("deltas: %+v", d.JarDeltas)
	}
	if len(d.Transactions) != 1 {
		t.Fatalf("expected exactly one income transaction, got %d", len(d.Transactions))
	}
	tx := d.Transactions[0]
	if tx.Amount != 1000 || tx.Type != TxIncome || tx.Date != "2024-01-15" {
		t.Fatalf("income transaction: %+v", tx)
	}
}

func TestDistributeTakesDeductionOffTheTop(t *testing.T) {
	jars := []Jar{{ID: "a", Percent: 50}, {ID: "b", Percent: 25}}
	d := Distribute(1000, jars, 200, "2024-01-15")
	if d.JarDeltas["a"] != 400 || d.JarDeltas["b"] != 200 {
		t.Fatalf("deltas: %+v", d.JarDeltas)
	}
	if d.JarDeltas[CommitmentJarID] != 200 {
		t.Fatalf("commitment delta: %v", d.JarDeltas[CommitmentJarID])
	}
	if len(d.Transactions) != 2 {
		t.Fatalf("expected income + deduction transactions, got %d", len(d.Transactions))
	}
	if d.Transactions[0].Amount != 1000 || d.Transactions[1].Amount != -200 {
		t.Fatalf("transactions: %+v", d.Transactions)
	}
}

func TestDistributeNoOps(t *testing.T) {
	jars := []Jar{{ID: "a", Percent: 50}}
	for _, income := range []float64{0, -10, math.NaN(), math.Inf(1)} {
		d := Distribute(income, jars, 0, "2024-01-15")
		if len(d.Transactions) != 0 || len(d.JarDeltas) != 0 {
			t.Fatalf("income %v: expected no-op, got %+v", income, d)
		}
	}
}

func TestDistributeAllowsOverAllocation(t *testing.T) {
	// Percent sums over 100 are intentionally accepted.
	jars := []Jar{{ID: "a", Percent: 80}, {ID: "b", Percent: 80}}
	d := Distribute(100, jars, 0, "2024-01-15")
	if d.JarDeltas["a"] != 80 || d.JarDeltas["b"] != 80 {
		t.Fatalf("deltas: %+v", d.JarDeltas)
	}
}

func TestWealthDistributeAccumulates(t *testing.T) {
	w := DefaultWealth()
	w.Config.Commitment = 0
	w.Config.ShowCommitment = false
	w.Distribute(1000, "2024-01-01")
	w.Distribute(1000, "2024-02-01")
	if w.Balances["savings"] != 1000 || w.Balances["investment"] != 1000 {
		t.Fatalf("balances must accumulate across calls: %+v", w.Balances)
	}
	if len(w.Transactions) != 2 {
		t.Fatalf("ledger rows: %d", len(w.Transactions))
	}
	if w.Transactions[0].Date != "2024-02-01" {
		t.Fatalf("newest transaction must come first: %+v", w.Transactions[0])
	}
}

func TestDeleteJarRequiresTransferTarget(t *testing.T) {
	w := DefaultWealth()
	w.Balances["savings"] = 750

	err := w.DeleteJar("savings", "")
	if !errors.Is(err, ErrJarNotEmpty) {
		t.Fatalf("expected ErrJarNotEmpty, got %v", err)
	}
	if w.Balances["savings"] != 750 || len(w.Config.Jars) != 2 {
		t.Fatalf("aborted delete must leave state unchanged: %+v", w)
	}

	if err := w.DeleteJar("savings", "nope"); !errors.Is(err, ErrJarNotFound) {
		t.Fatalf("expected ErrJarNotFound for bad target, got %v", err)
	}

	if err := w.DeleteJar("savings", "investment"); err != nil {
		t.Fatalf("delete with target: %v", err)
	}
	if w.Balances["investment"] != 750 {
		t.Fatalf("balance not transferred: %+v", w.Balances)
	}
	if _, ok := w.Balances["savings"]; ok {
		t.Fatal("deleted jar balance must be removed")
	}
	if len(w.Config.Jars) != 1 {
		t.Fatalf("jar not removed: %+v", w.Config.Jars)
	}
}

func TestDeleteEmptyJar(t *testing.T) {
	w := DefaultWealth()
	if err := w.DeleteJar("savings", ""); err != nil {
		t.Fatalf("empty jar should delete without a target: %v", err)
	}
	if err := w.DeleteJar("missing", ""); !errors.Is(err, ErrJarNotFound) {
		t.Fatalf("expected ErrJarNotFound, got %v", err)
	}
}

func TestRemoveTransactionKeepsBalances(t *testing.T) {
	w := DefaultWealth()
	w.Distribute(1000, "2024-01-01")
	savings := w.Balances["savings"]
	txID := w.Transactions[0].ID
	if err := w.RemoveTransaction(txID); err != nil {
		t.Fatalf("remove transaction: %v", err)
	}
	if w.Balances["savings"] != savings {
		t.Fatal("removing a ledger row must not touch jar balances")
	}
	if err := w.RemoveTransaction("missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestAddTransactionDefaultsType(t *testing.T) {
	var w Wealth
	tx := w.AddTransaction(Transaction{Amount: -42.5, Category: "Food", Date: "2024-01-01"})
	if tx.ID == "" || tx.Type != TxExpense {
		t.Fatalf("transaction: %+v", tx)
	}
	if w.NetTotal() != -42.5 {
		t.Fatalf("net total: %v", w.NetTotal())
	}
}
