package cli

import (
	"fmt"
	"strings"

	"github.com/andrescamacho/homestead-go/internal/domain/catalog"
	"github.com/andrescamacho/homestead-go/internal/domain/ledger"
)

// TreeFormatter renders a definition's upgrade path as a tree, one node per tier
type TreeFormatter struct {
	useColors bool
	current   int // tier to highlight, -1 for none
}

// NewTreeFormatter creates a new tree formatter
func NewTreeFormatter(useColors bool) *TreeFormatter {
	return &TreeFormatter{useColors: useColors, current: -1}
}

// Highlight marks the tier a placed building is currently at
func (f *TreeFormatter) Highlight(tier int) *TreeFormatter {
	f.current = tier
	return f
}

// FormatUpgradePath renders the base building and every tier above it
func (f *TreeFormatter) FormatUpgradePath(def *catalog.Definition) string {
	if def == nil {
		return "(no definition)"
	}

	var builder strings.Builder
	fmt.Fprintf(&builder, "%s (%s) [%s]\n", def.Name, def.ID, def.Category)
	for tier := 0; tier <= def.MaxTier(); tier++ {
		f.formatTier(&builder, def, tier, tier == def.MaxTier())
	}
	return builder.String()
}

func (f *TreeFormatter) formatTier(builder *strings.Builder, def *catalog.Definition, tier int, isLast bool) {
	prefix := "├── "
	childPrefix := "│   "
	if isLast {
		prefix = "└── "
		childPrefix = "    "
	}

	name := "Base"
	if tier > 0 {
		name = def.Tiers[tier-1].Name
	}
	marker := ""
	if tier == f.current {
		marker = f.color(colorGreen) + " ◀ current" + f.colorReset()
	}

	fmt.Fprintf(builder, "%s%stier %d%s %s%s\n", prefix, f.color(colorBold), tier, f.colorReset(), name, marker)
	fmt.Fprintf(builder, "%scost: %s  build: %s\n", childPrefix,
		ledger.BillFromCost(def.CostForTier(tier)).String(), formatSeconds(def.BuildTimeForTier(tier)))

	var perks []string
	if slots := def.GetTotalStorageSlots(tier); slots > 0 {
		perks = append(perks, fmt.Sprintf("%d storage slots", slots))
	}
	if def.Functionality.ProducesItems() {
		perks = append(perks, fmt.Sprintf("production x%.2g", def.ProductionSpeedMultiplier(tier)))
	}
	if bonus := def.QualityBonus(tier); bonus > 0 {
		perks = append(perks, fmt.Sprintf("quality +%.2g", bonus))
	}
	if len(perks) > 0 {
		fmt.Fprintf(builder, "%s%s\n", childPrefix, strings.Join(perks, ", "))
	}
}

const (
	colorBold  = "\033[1m"
	colorGreen = "\033[32m"
	colorReset = "\033[0m"
)

func (f *TreeFormatter) color(code string) string {
	if !f.useColors {
		return ""
	}
	return code
}

func (f *TreeFormatter) colorReset() string {
	return f.color(colorReset)
}

func formatSeconds(s float64) string {
	if s <= 0 {
		return "instant"
	}
	return fmt.Sprintf("%gs", s)
}
