/*
Package ltr provides the Markov chain name engine behind .ltr files: it
trains cumulative distribution tables from a list of names, reads and
writes them in the binary "LTR V1.0" layout, prints them for inspection,
and samples new names from them the way the game's random name generator
does.

A model holds three tiers of tables over a fixed alphabet. The singles tier
describes a symbol on its own, the doubles tier a symbol following one
given symbol, and the triples tier a symbol following two given symbols.
Every table records where in a name the symbol occurs: at the start, in the
middle, or at the end.

Typical use:

	tr := ltr.NewTrainer(ltr.DefaultAlphabet())
	model, _, err := tr.Train(ctx, os.Stdin)
	...
	err = ltr.SaveFile("names.ltr", model)
	...
	name, err := ltr.Generate(ctx, model, ltr.NewSource(seed))

Models can also be kept by name in a SQLite database through Library.
*/
package ltr
