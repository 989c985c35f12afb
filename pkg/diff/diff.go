// Package diff renders test failures as line diffs.
package diff

import (
	"fmt"
	"strings"

	"github.com/k0kubun/pp/v3"
	"github.com/kylelemons/godebug/diff"

	"github.com/walteh/semls/pkg/semtok"
)

// DiffExportedOnly pretty prints both values, skipping unexported fields,
// and returns an empty string when they render the same.
func DiffExportedOnly[T any](want T, got T) string {
	printer := pp.New()
	printer.SetExportedOnly(true)
	printer.SetColoringEnabled(false)
	return render(diff.Diff(printer.Sprint(got), printer.Sprint(want)))
}

// Tokens compares token lists one token per line, naming types and
// modifiers from the legend.
func Tokens(want, got []semtok.Token) string {
	return render(diff.Diff(tokenLines(got), tokenLines(want)))
}

func tokenLines(tokens []semtok.Token) string {
	var sb strings.Builder
	for _, tok := range tokens {
		fmt.Fprintf(&sb, "%d:%d len=%d %s", tok.Line, tok.Column, tok.Length, tok.Type)
		if mods := tok.Modifiers.Names(); len(mods) > 0 {
			fmt.Fprintf(&sb, " [%s]", strings.Join(mods, ","))
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

func render(d string) string {
	if !changed(d) {
		return ""
	}
	str := "\n\n"
	str += "to convert ACTUAL ⏩️ EXPECTED:\n\n"
	str += "add:    ➕\n"
	str += "remove: ➖\n"
	str += "\n"
	str += strings.ReplaceAll(strings.ReplaceAll("\n"+d, "\n-", "\n➖"), "\n+", "\n➕")
	return str
}

// changed reports whether any line adds or removes text. Unchanged lines
// carry a leading space.
func changed(d string) bool {
	for _, line := range strings.Split(d, "\n") {
		if strings.HasPrefix(line, "+") || strings.HasPrefix(line, "-") {
			return true
		}
	}
	return false
}
