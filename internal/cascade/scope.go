package cascade

import "strings"

// rootSelectors are the selectors user CSS writes against the page
// root; inside a profile they mean the container itself.
var rootSelectors = map[string]struct{}{
	"body": {}, "html": {}, ":root": {}, "*": {},
}

// Scope rewrites every ordinary rule in css so it only matches inside
// the container element. Root-level selectors become the container
// itself; everything else gets the container id as an ancestor prefix.
// At-rules and unparseable fragments pass through verbatim.
func Scope(css, container string) string {
	return rewrite(css, container, false)
}

// Dominate scopes css and additionally applies the dominance
// transform: each selector is boosted to maximum practical specificity
// by duplicating the container id, and every declaration lacking
// !important gets it appended. On the fallback path this is what makes
// user CSS win; on the layered path the layer order already does, and
// the boost protects output shipped to partial-support contexts.
func Dominate(css, container string) string {
	return rewrite(css, container, true)
}

func rewrite(css, container string, boost bool) string {
	if strings.TrimSpace(css) == "" {
		return ""
	}
	var sb strings.Builder
	for _, r := range splitRules(css) {
		if r.verbatim != "" {
			sb.WriteString(r.verbatim)
			sb.WriteString("\n")
			continue
		}

		parts := splitSelectors(r.selector)
		scoped := make([]string, len(parts))
		for i, p := range parts {
			scoped[i] = scopeOne(p, container, boost)
		}
		sb.WriteString(strings.Join(scoped, ", "))

		body := r.body
		if boost {
			decls := splitDeclarations(body)
			for i, d := range decls {
				if !strings.Contains(strings.ToLower(d), "!important") {
					decls[i] = d + " !important"
				}
			}
			body = " " + strings.Join(decls, "; ") + "; "
		}
		sb.WriteString(" {")
		sb.WriteString(body)
		sb.WriteString("}\n")
	}
	return sb.String()
}

// scopeOne rewrites a single selector. The invariant: the result either
// equals the container id or begins with it as an ancestor, so no
// selector can match outside the container.
func scopeOne(sel, container string, boost bool) string {
	id := "#" + container
	fields := strings.Fields(sel)
	if len(fields) == 0 {
		return id
	}

	if _, root := rootSelectors[fields[0]]; root {
		if len(fields) == 1 {
			// body { } addresses the container itself; already at id
			// specificity, no doubling needed.
			return id
		}
		rest := strings.Join(fields[1:], " ")
		if boost {
			return id + id + " " + rest
		}
		return id + " " + rest
	}

	if boost {
		// #c#c .foo doubles the id specificity while still matching the
		// same element.
		return id + id + " " + sel
	}
	return id + " " + sel
}
