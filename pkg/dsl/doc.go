/*
Package dsl provides a Go DSL for programmatically constructing scenes and templates.

It is the code-first counterpart of the YAML and Markdown template libraries: the same
nested node description, written with a fluent builder and checked by the compiler.
Useful for fixtures, generated layouts and tests.

Example usage:

	b := dsl.NewScene("Demo")

	b.Rect("Bg").
		Color(0x00FF00FF)

	b.Sprite("Hero").
		Path("hero.png").
		At(10, 20).
		Add(dsl.Text("Label").Content("Player 1"))

	store, err := b.Build()
	if err != nil {
		// a property value could not be decoded
	}
	fmt.Print(codegen.Generate(store.Scene()))

Node builders can also be turned into reusable templates:

	card := dsl.Rect("Card").Size(200, 120).Radius(8).
		Add(dsl.Text("Title"))
	loader, err := dsl.Library(dsl.Template("card", "A rounded card", card))
*/
package dsl
