package diffwriter

import (
	"strings"

	"github.com/kenshaw/requirements/chardiff"
)

// Inline renders segments as a single text with d's deleted and inserted
// styles. Decorators that use diff markers write deletions as [-text-] and
// insertions as {+text+}. Control characters are escaped as by Escape.
func Inline(segments []chardiff.Segment, d Decorator) string {
	var sb strings.Builder
	for _, s := range segments {
		text := Escape(s.Text)
		switch {
		case s.Op == chardiff.OpKeep:
			sb.WriteString(text)
		case d.DiffMarkers() && s.Op == chardiff.OpDelete:
			sb.WriteString("[-" + text + "-]")
		case d.DiffMarkers() && s.Op == chardiff.OpInsert:
			sb.WriteString("{+" + text + "+}")
		case s.Op == chardiff.OpDelete:
			sb.WriteString(d.DecorateDeletedText(text) + d.StopDecoration())
		case s.Op == chardiff.OpInsert:
			sb.WriteString(d.DecorateInsertedText(text) + d.StopDecoration())
		}
	}
	return sb.String()
}
