package domain

import (
	"fmt"
	"strings"
)

// SSFormula selects how Social Security above the second tier is taxed.
type SSFormula int

const (
	// SSFormulaCapped is the IRS worksheet: the lesser of 85% of income over
	// tier 2 plus the tier-1 allowance, or the maximum taxable fraction of benefits.
	SSFormulaCapped SSFormula = iota
	// SSFormulaLinear adds a 35% slope over tier 2 to the tier-1 allowance.
	// The sum is clamped to the maximum taxable fraction of benefits.
	SSFormulaLinear
)

// DeductionOrder selects where the standard deduction is taken.
type DeductionOrder int

const (
	// DeductFromProvisional subtracts the deduction from provisional income
	// to arrive at AGI.
	DeductFromProvisional DeductionOrder = iota
	// DeductBeforeProvisional subtracts the deduction from non-SS income first,
	// then adds the taxable Social Security computed on that reduced base.
	DeductBeforeProvisional
)

// StateDeduction selects what the flat state tax subtracts from its base.
type StateDeduction int

const (
	// StateDeductionNone taxes the federal base as is.
	StateDeductionNone StateDeduction = iota
	// StateDeductionStandard subtracts the base standard deduction again.
	StateDeductionStandard
)

// GainsStacking selects how capital gains are placed in their bracket table.
type GainsStacking int

const (
	// GainsFromLowest consumes gains from the lowest bracket below total
	// income, each bracket's span being min(total, upper) - lower.
	GainsFromLowest GainsStacking = iota
	// GainsAboveOrdinary places gains strictly between ordinary income and
	// total income, so brackets already filled by ordinary income take none.
	GainsAboveOrdinary
)

var (
	gainsStackingNames = map[GainsStacking]string{
		GainsFromLowest:    "lowest",
		GainsAboveOrdinary: "above-ordinary",
	}
	ssFormulaNames = map[SSFormula]string{
		SSFormulaCapped: "capped",
		SSFormulaLinear: "linear",
	}
	deductionOrderNames = map[DeductionOrder]string{
		DeductFromProvisional:   "provisional",
		DeductBeforeProvisional: "before",
	}
	stateDeductionNames = map[StateDeduction]string{
		StateDeductionNone:     "none",
		StateDeductionStandard: "standard",
	}
)

func (f SSFormula) String() string      { return ssFormulaNames[f] }
func (o DeductionOrder) String() string { return deductionOrderNames[o] }
func (s StateDeduction) String() string { return stateDeductionNames[s] }
func (g GainsStacking) String() string  { return gainsStackingNames[g] }

// ParseSSFormula parses "capped" or "linear".
func ParseSSFormula(s string) (SSFormula, error) {
	for k, v := range ssFormulaNames {
		if strings.EqualFold(strings.TrimSpace(s), v) {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown social security formula %q (want capped or linear)", s)
}

// ParseDeductionOrder parses "provisional" or "before".
func ParseDeductionOrder(s string) (DeductionOrder, error) {
	for k, v := range deductionOrderNames {
		if strings.EqualFold(strings.TrimSpace(s), v) {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown deduction order %q (want provisional or before)", s)
}

// ParseStateDeduction parses "none" or "standard".
func ParseStateDeduction(s string) (StateDeduction, error) {
	for k, v := range stateDeductionNames {
		if strings.EqualFold(strings.TrimSpace(s), v) {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown state deduction %q (want none or standard)", s)
}

// ParseGainsStacking parses "lowest" or "above-ordinary".
func ParseGainsStacking(s string) (GainsStacking, error) {
	for k, v := range gainsStackingNames {
		if strings.EqualFold(strings.TrimSpace(s), v) {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown gains stacking %q (want lowest or above-ordinary)", s)
}
