package render

import (
	"html"
	"sort"
	"strings"

	"github.com/quiltspace/quilt/pkg/domain"
)

// SerializeHTML flattens an output tree to HTML text. Attribute order
// is sorted for deterministic output; text and attribute values are
// escaped. The result still passes through the sanitizer before
// delivery; serialization is not the trust boundary.
func SerializeHTML(n *domain.Node) string {
	var sb strings.Builder
	writeNode(&sb, n)
	return sb.String()
}

func writeNode(sb *strings.Builder, n *domain.Node) {
	switch n.Kind {
	case domain.KindText:
		sb.WriteString(html.EscapeString(n.Text))

	case domain.KindElement:
		sb.WriteByte('<')
		sb.WriteString(n.Name)

		if len(n.Attributes) > 0 {
			keys := make([]string, 0, len(n.Attributes))
			for k := range n.Attributes {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			for _, k := range keys {
				sb.WriteByte(' ')
				sb.WriteString(k)
				sb.WriteString(`="`)
				sb.WriteString(html.EscapeString(n.Attributes[k]))
				sb.WriteByte('"')
			}
		}

		if isVoid(n.Name) && len(n.Children) == 0 {
			sb.WriteString("/>")
			return
		}
		sb.WriteByte('>')
		for _, child := range n.Children {
			writeNode(sb, child)
		}
		sb.WriteString("</")
		sb.WriteString(n.Name)
		sb.WriteByte('>')

	default:
		// Component and expression nodes never survive rendering; an
		// unexpected one serializes to nothing.
	}
}

var voidTags = map[string]struct{}{
	"br": {}, "hr": {}, "img": {}, "input": {}, "meta": {}, "link": {},
}

func isVoid(name string) bool {
	_, ok := voidTags[strings.ToLower(name)]
	return ok
}
