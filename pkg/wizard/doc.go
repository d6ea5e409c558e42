/*
Package wizard implements the step-by-step past-paper picker.

The wizard asks for year, session, paper, variant, question and an optional subpart,
in that order. Choice steps advance as soon as a valid option is selected; text steps
store the value and wait for Next. The subpart step may be skipped.

	w := wizard.New()
	_ = w.Select("2024")     // advances to session
	_ = w.Select("May/June") // advances to paper
	_ = w.Select("21")       // paper 2, variant 1
	done, err := w.Next()

Which years, papers and variants exist is described by a Catalog. Feb/March only
offers variant 2.
*/
package wizard
