package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AssetClass groups holdings for allocation purposes
type AssetClass string

const (
	AssetEquity AssetClass = "Equity"
	AssetBonds  AssetClass = "Bonds"
	AssetCash   AssetClass = "Cash"
	AssetGold   AssetClass = "Gold"
	AssetREIT   AssetClass = "REIT"
)

// AssetClasses lists every asset class in reporting order
var AssetClasses = []AssetClass{AssetEquity, AssetBonds, AssetCash, AssetGold, AssetREIT}

// Valid reports whether c is a known asset class
func (c AssetClass) Valid() bool {
	for _, known := range AssetClasses {
		if c == known {
			return true
		}
	}
	return false
}

// AllocationSnapshot maps an asset class to its share of the portfolio, in percent (0-100)
type AllocationSnapshot map[AssetClass]decimal.Decimal

// Percent returns the share of class c, zero when absent
func (s AllocationSnapshot) Percent(c AssetClass) decimal.Decimal {
	if s == nil {
		return decimal.Zero
	}
	return s[c]
}

// Holding is a position in the client's portfolio
type Holding struct {
	ID         uuid.UUID
	Name       string
	AssetClass AssetClass
	BookValue  decimal.Decimal // what was paid in, net of withdrawals
}

// Validate ensures the holding adheres to domain rules
func (h *Holding) Validate() error {
	if h.Name == "" {
		return errors.New("holding name cannot be empty")
	}

	if !h.AssetClass.Valid() {
		return errors.New("holding asset class is invalid")
	}

	if h.BookValue.IsNegative() {
		return errors.New("holding book value must not be negative")
	}

	return nil
}

// MarketValueHistory tracks the real-world value of a holding over time,
// as opposed to its book value
type MarketValueHistory struct {
	ID          uuid.UUID
	HoldingID   uuid.UUID
	Date        time.Time
	MarketValue decimal.Decimal
}
