package main

import (
	"fmt"
	"io"
	"math"
	"strings"
	"text/tabwriter"

	"github.com/Rhymond/go-money"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/simaogato/wealthflow-roadmap/internal/domain"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#4ECDC4"))
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
	retiredStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#666666"))
	highStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FF6B6B"))
	mediumStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFE66D"))
)

var printer = message.NewPrinter(language.English)

// report renders a roadmap with amounts in one currency
type report struct {
	currency string
}

var (
	maxMinorUnits = decimal.NewFromInt(math.MaxInt64)
	minMinorUnits = decimal.NewFromInt(-math.MaxInt64)
)

// amount formats a value in the report currency, rounded to its minor unit.
// Values too large for int64 minor units are printed as plain decimals.
func (r report) amount(d decimal.Decimal) string {
	cur := money.GetCurrency(r.currency)
	minor := d.Shift(int32(cur.Fraction)).Round(0)
	if minor.GreaterThan(maxMinorUnits) || minor.LessThan(minMinorUnits) {
		return cur.Code + " " + d.StringFixed(int32(cur.Fraction))
	}
	return money.New(minor.IntPart(), cur.Code).Display()
}

func percent(d decimal.Decimal) string {
	return printer.Sprintf("%.1f%%", d.InexactFloat64())
}

// renderRoadmap writes a human-readable report of the roadmap.
// currency must be a known ISO 4217 code.
func renderRoadmap(w io.Writer, roadmap *domain.Roadmap, currency string) error {
	r := report{currency: currency}
	sections := []func(io.Writer, *domain.Roadmap) error{
		r.renderTimeline,
		r.renderRetirement,
		r.renderGoals,
		r.renderRecommendations,
	}

	for _, section := range sections {
		if err := section(w, roadmap); err != nil {
			return err
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}
	return nil
}

func (r report) renderTimeline(w io.Writer, roadmap *domain.Roadmap) error {
	if _, err := fmt.Fprintln(w, titleStyle.Render("Portfolio Timeline")); err != nil {
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	headers := []string{"Year", "Age", "Start", "Contribution", "Growth", "Goals", "Withdrawal", "End", "Income", ""}
	if _, err := fmt.Fprintln(tw, styledRow(headerStyle, headers)); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for _, entry := range roadmap.Timeline {
		cells := []string{
			fmt.Sprint(entry.Year),
			fmt.Sprint(entry.Age),
			r.amount(entry.PortfolioValueStart),
			r.amount(entry.Contribution),
			r.amount(entry.Growth),
			r.amount(entry.GoalWithdrawals),
			r.amount(entry.RetirementWithdrawal),
			r.amount(entry.PortfolioValueEnd),
			r.amount(entry.Income),
			"",
		}
		// lipgloss expands tabs, so cells are styled one by one
		if entry.IsRetired {
			for i, cell := range cells {
				cells[i] = retiredStyle.Render(cell)
			}
		}
		if _, err := fmt.Fprintln(tw, strings.Join(cells, "\t")); err != nil {
			return fmt.Errorf("failed to write timeline row: %w", err)
		}
	}

	return tw.Flush()
}

func (r report) renderRetirement(w io.Writer, roadmap *domain.Roadmap) error {
	ret := roadmap.Retirement
	lines := []string{
		titleStyle.Render("Retirement"),
		"Status:               " + string(ret.Status),
		"Corpus:               " + r.amount(ret.RetirementCorpus),
		"Sustainable income:   " + r.amount(ret.SustainableIncome),
		"Income replacement:   " + percent(ret.IncomeReplacementRatio),
		"Value at horizon end: " + r.amount(ret.PortfolioValueAtHorizonEnd),
	}
	if ret.PortfolioSustainability != "" {
		lines = append(lines, "Sustainability:       "+string(ret.PortfolioSustainability))
	}

	_, err := fmt.Fprintln(w, strings.Join(lines, "\n"))
	return err
}

func (r report) renderGoals(w io.Writer, roadmap *domain.Roadmap) error {
	if _, err := fmt.Fprintln(w, titleStyle.Render("Goals")); err != nil {
		return err
	}
	if len(roadmap.Goals) == 0 {
		_, err := fmt.Fprintln(w, "No goals defined.")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	headers := []string{"Goal", "Year", "Target", "Allocated", "Progress", "Monthly Needed", "On Track"}
	if _, err := fmt.Fprintln(tw, styledRow(headerStyle, headers)); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for _, g := range roadmap.Goals {
		onTrack := "no"
		if g.ProjectedToAchieve {
			onTrack = "yes"
		}
		if _, err := fmt.Fprintf(tw, "%s\t%d\t%s\t%s\t%s\t%s\t%s\n",
			g.Name,
			g.TargetYear,
			r.amount(g.TargetAmount),
			r.amount(g.CurrentAllocation),
			percent(g.ProgressPercent),
			r.amount(g.RequiredMonthlyContribution),
			onTrack,
		); err != nil {
			return fmt.Errorf("failed to write goal row: %w", err)
		}
	}

	return tw.Flush()
}

func (r report) renderRecommendations(w io.Writer, roadmap *domain.Roadmap) error {
	if _, err := fmt.Fprintln(w, titleStyle.Render("Recommendations")); err != nil {
		return err
	}
	if len(roadmap.Recommendations) == 0 {
		_, err := fmt.Fprintln(w, "No recommendations. The plan is on track.")
		return err
	}

	for i, rec := range roadmap.Recommendations {
		priority := mediumStyle.Render(string(rec.Priority))
		if rec.Priority == domain.PriorityHigh {
			priority = highStyle.Render(string(rec.Priority))
		}
		if _, err := fmt.Fprintf(w, "%d. [%s] %s: %s\n   %s\n", i+1, priority, rec.Category, rec.Description, rec.Details); err != nil {
			return err
		}
	}
	return nil
}

func styledRow(style lipgloss.Style, cells []string) string {
	styled := make([]string, len(cells))
	for i, cell := range cells {
		styled[i] = style.Render(cell)
	}
	return strings.Join(styled, "\t")
}
