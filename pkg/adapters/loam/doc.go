/*
Package loam serves worked solutions from a Loam repository.

Each solution is a Markdown file whose YAML front matter names the question it
answers:

	---
	year: 2024
	session: may-june
	paper: 2
	variant: 1
	question: 3
	subpart: a
	title: Chemical Equilibrium
	---
	## Chemical Equilibrium Problem
	...

A document without a subpart answers every part of its question.
*/
package loam
