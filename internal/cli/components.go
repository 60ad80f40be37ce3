package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/quiltspace/quilt/pkg/domain"
)

// ComponentsMarkdown builds the component reference document from the
// registered descriptors.
func ComponentsMarkdown(descs []*domain.ComponentDescriptor) string {
	var sb strings.Builder
	sb.WriteString("# Component Reference\n\n")

	for _, desc := range descs {
		sb.WriteString("## " + desc.Name + "\n\n")
		if desc.Doc != "" {
			sb.WriteString(desc.Doc + "\n\n")
		}

		var facts []string
		if desc.RequiresParent != "" {
			facts = append(facts, "requires parent `"+desc.RequiresParent+"`")
		}
		if desc.AcceptsChildren.None {
			facts = append(facts, "accepts no children")
		} else if len(desc.AcceptsChildren.Names) > 0 {
			facts = append(facts, "children: `"+strings.Join(desc.AcceptsChildren.Names, "`, `")+"`")
		}
		if len(facts) > 0 {
			sb.WriteString("_" + strings.Join(facts, "; ") + "_\n\n")
		}

		if len(desc.Props) > 0 {
			sb.WriteString("| Prop | Type | Required | Default |\n")
			sb.WriteString("|------|------|----------|--------|\n")

			names := make([]string, 0, len(desc.Props))
			for name := range desc.Props {
				names = append(names, name)
			}
			sort.Strings(names)

			for _, name := range names {
				spec := desc.Props[name]
				required := ""
				if spec.Required {
					required = "yes"
				}
				def := ""
				if spec.Default != nil {
					def = fmt.Sprintf("`%v`", spec.Default)
				}
				propType := string(spec.Type)
				if len(spec.Enum) > 0 {
					propType += " (" + strings.Join(spec.Enum, "\\|") + ")"
				}
				sb.WriteString(fmt.Sprintf("| %s | %s | %s | %s |\n", name, propType, required, def))
			}
			sb.WriteString("\n")
		}
	}

	return sb.String()
}

// RenderMarkdown renders markdown for the terminal via glamour when
// stdout is a TTY, raw markdown otherwise (pipes, CI).
func RenderMarkdown(markdown string) string {
	if !IsTTY() {
		return markdown
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
	)
	if err != nil {
		return markdown
	}

	out, err := r.Render(markdown)
	if err != nil {
		return markdown
	}
	return out
}
