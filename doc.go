/*
Package quilt is a template compilation and rendering engine for user-customizable profile pages: untrusted, declarative markup mixing passthrough HTML with registered interactive components, rendered safely against per-visitor state and read-only profile data.

It separates the component vocabulary (Registry) from the parsed template (Node tree), the mutable session state (State Runtime) and the visual output (Renderer), so hosts can embed it behind any surface: an HTTP preview server, a CLI, or their own editor backend.

# Key Features

  - Closed sandbox: expressions run through a restricted evaluator (arithmetic, comparison, logical and string operators only) and broken expressions degrade to empty output instead of failing the page.
  - Structural validation: unknown tags pass through, but known components used incorrectly (bad nesting, missing required parent) block publishing with located errors.
  - Style isolation: the cascade engine scopes user CSS to one profile's container and assembles a layered stylesheet, with a specificity-boosted fallback for delivery contexts without native layer support.
  - Hexagonal adapters: persisted variables go through a StateStore port with memory and Redis implementations; decoration metadata through a read-only catalog port.

# Usage

	package main

	import (
		"context"
		"fmt"
		"log"

		"github.com/quiltspace/quilt"
		"github.com/quiltspace/quilt/pkg/domain"
	)

	func main() {
		eng, err := quilt.New(quilt.WithContainer("profile-42"))
		if err != nil {
			log.Fatal(err)
		}

		profile := &domain.ProfileData{
			Owner: map[string]any{"name": "mika"},
		}

		html, err := eng.RenderSource(context.Background(),
			`<Var name="count" initial="0" type="number"/>
			 <Text content="hi {owner.name}"/>
			 <Button label="clap"><Increment var="count"/></Button>`,
			profile)
		if err != nil {
			log.Fatal(err)
		}
		fmt.Println(html)
	}

Parse errors carry node locations and block publishing; render-time evaluation problems never do more than blank the broken fragment.
*/
package quilt
