package allocator

import (
	"errors"
	"sort"

	"github.com/shopspring/decimal"
	"github.com/simaogato/wealthflow-roadmap/internal/domain"
)

var hundred = decimal.NewFromInt(100)

// CalculateAllocation converts asset-class values into an allocation snapshot in percent.
// Logic:
//  1. Sum the value of every asset class
//  2. Compute each class's share of the total, rounded to 2 decimal places
//  3. Assign the rounding leftover to the largest class
//
// Safety: Ensures the snapshot sums to exactly 100 (no basis point lost)
func CalculateAllocation(values map[domain.AssetClass]decimal.Decimal) (domain.AllocationSnapshot, error) {
	if len(values) == 0 {
		return nil, errors.New("values cannot be empty")
	}

	total := decimal.Zero
	for class, value := range values {
		if !class.Valid() {
			return nil, errors.New("invalid asset class " + string(class))
		}
		if value.IsNegative() {
			return nil, errors.New("asset class value must not be negative")
		}
		total = total.Add(value)
	}

	if total.LessThanOrEqual(decimal.Zero) {
		return nil, errors.New("total portfolio value must be positive")
	}

	// Iterate in a fixed order so ties on the largest class resolve the same way every time
	classes := make([]domain.AssetClass, 0, len(values))
	for class := range values {
		classes = append(classes, class)
	}
	sort.Slice(classes, func(i, j int) bool {
		return classIndex(classes[i]) < classIndex(classes[j])
	})

	snapshot := make(domain.AllocationSnapshot, len(values))
	allocated := decimal.Zero
	largest := classes[0]
	for _, class := range classes {
		pct := values[class].Div(total).Mul(hundred).Round(2)
		snapshot[class] = pct
		allocated = allocated.Add(pct)

		if values[class].GreaterThan(values[largest]) {
			largest = class
		}
	}

	// Assign the rounding leftover to the largest class
	snapshot[largest] = snapshot[largest].Add(hundred.Sub(allocated))

	// Safety check: the snapshot must add up to 100 exactly
	sum := decimal.Zero
	for _, pct := range snapshot {
		sum = sum.Add(pct)
	}
	if !sum.Equal(hundred) {
		return nil, errors.New("allocation does not sum to 100")
	}

	return snapshot, nil
}

// classIndex returns the reporting position of an asset class
func classIndex(class domain.AssetClass) int {
	for i, known := range domain.AssetClasses {
		if known == class {
			return i
		}
	}
	return len(domain.AssetClasses)
}
