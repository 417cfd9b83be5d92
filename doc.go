// Package glyphforge generates procedural glyph alphabets.
//
// # Overview
//
// A single seed and an optional style configuration deterministically
// produce 26 glyph outlines, one per letter A to Z. The glyphs look alike
// because they share one style vector (stroke width, joins, caps, serifs,
// slant), and they look distinct because every letter is built on a
// different skeleton template where the library allows it.
//
// # Quick Start
//
//	import "github.com/gogpu/glyphforge"
//
//	g := glyphforge.New(glyphforge.WithWorkers(4))
//	a, err := g.Generate(ctx, rng.SeedFromInt(42), style.Config{})
//	if err != nil {
//	    return err
//	}
//	glyph, _ := a.Glyph("A")
//	fmt.Println(glyph.TemplateID, len(glyph.Outline.Contours))
//
// # Pipeline
//
// Generation runs in stages, each in its own package:
//   - rng: keyed, hierarchical random streams
//   - style: the shared style vector and per-letter jitter
//   - template: the library of abstract skeleton templates
//   - skeleton: template selection and instantiation
//   - internal/stroke: stroke expansion into a filled outline
//   - validate: optional legibility and similarity checks
//
// Letters are built concurrently. Every letter reads only its own random
// stream, so the result does not depend on scheduling.
//
// # Coordinate System
//
// Outlines are in em units:
//   - Origin at the left end of the baseline
//   - X increases right
//   - Y increases up
//   - Outer contours wind counter-clockwise, holes clockwise
//
// # Logging
//
// The package is silent by default. Call SetLogger to receive structured
// log records from generation runs.
package glyphforge
