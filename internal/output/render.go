package output

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/blackwell-systems/navwatch/internal/catalog"
	"github.com/blackwell-systems/navwatch/internal/insights"
	"github.com/blackwell-systems/navwatch/internal/predict"
)

// JSON writes v as indented JSON.
func JSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// Predictions renders ranked predictions as a table. Item labels are looked
// up in cat when available.
func Predictions(w io.Writer, preds []predict.Prediction, cat catalog.Catalog) {
	fmt.Fprintln(w, Section("Predicted Next Navigation"))
	fmt.Fprintln(w)
	if len(preds) == 0 {
		fmt.Fprintln(w, " Not enough activity to predict anything yet.")
		return
	}

	idx := cat.Index()
	tbl := NewTable("#", "Item", "Score", "Reason")
	for i, p := range preds {
		name := p.ItemID
		if it, ok := idx[p.ItemID]; ok {
			name = it.DisplayName()
		}
		tbl.AddRow(fmt.Sprintf("%d", i+1), name, ScoreBar(p.Score, 10), p.Reason)
	}
	fmt.Fprint(w, indent(tbl.Render()))
}

// Insights renders insights, warnings first.
func Insights(w io.Writer, list []insights.Insight) {
	fmt.Fprintln(w, Section("Insights"))
	fmt.Fprintln(w)
	if len(list) == 0 {
		fmt.Fprintln(w, " No insights. Your navigation looks healthy!")
		return
	}

	for i, ins := range list {
		fmt.Fprintf(w, " #%d %s %s\n", i+1, KindBadge(ins.Kind), StyleBold.Render(ins.Title))
		fmt.Fprintf(w, "    %s\n", ins.Description)
		if len(ins.RelatedItems) > 0 {
			fmt.Fprintf(w, "    %s %s\n", StyleMuted.Render("Related:"), strings.Join(ins.RelatedItems, ", "))
		}
		if ins.Action != nil {
			fmt.Fprintf(w, "    %s %s\n", StyleMuted.Render("Action:"), ins.Action.Label)
		}
		fmt.Fprintf(w, "    %s\n", StyleMuted.Render("id: "+ins.ID))
		fmt.Fprintln(w)
	}
}

// KindBadge returns a styled label for an insight kind.
func KindBadge(k insights.Kind) string {
	label := "[" + strings.ToUpper(string(k)) + "]"
	switch k {
	case insights.KindWarning:
		return StyleError.Render(label)
	case insights.KindSuggestion:
		return StyleWarning.Render(label)
	case insights.KindSuccess:
		return StyleSuccess.Render(label)
	default:
		return StyleMuted.Render(label)
	}
}

// Recommendations renders a blended recommendation list.
func Recommendations(w io.Writer, items []catalog.Item) {
	fmt.Fprintln(w, Section("Recommended For You"))
	fmt.Fprintln(w)
	if len(items) == 0 {
		fmt.Fprintln(w, " No recommendations yet.")
		return
	}

	tbl := NewTable("#", "Item", "Category")
	for i, it := range items {
		tbl.AddRow(fmt.Sprintf("%d", i+1), it.DisplayName(), it.Category)
	}
	fmt.Fprint(w, indent(tbl.Render()))
}

// Shortcuts renders shortcut candidates sorted by key.
func Shortcuts(w io.Writer, shortcuts map[string][]string) {
	fmt.Fprintln(w, Section("Shortcut Candidates"))
	fmt.Fprintln(w)
	if len(shortcuts) == 0 {
		fmt.Fprintln(w, " No repeated sequences found.")
		return
	}

	keys := make([]string, 0, len(shortcuts))
	for k := range shortcuts {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	tbl := NewTable("Sequence", "Steps")
	for _, k := range keys {
		tbl.AddRow(k, fmt.Sprintf("%d", len(shortcuts[k])))
	}
	fmt.Fprint(w, indent(tbl.Render()))
}

// Terms renders frequent search terms in rank order.
func Terms(w io.Writer, terms []string) {
	fmt.Fprintln(w, Section("Frequent Search Terms"))
	fmt.Fprintln(w)
	if len(terms) == 0 {
		fmt.Fprintln(w, " No search history.")
		return
	}
	for i, t := range terms {
		fmt.Fprintf(w, " %2d. %s\n", i+1, t)
	}
}

// indent prefixes every non-empty line with a space to match Section.
func indent(s string) string {
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		if l != "" {
			lines[i] = " " + l
		}
	}
	return strings.Join(lines, "\n")
}
