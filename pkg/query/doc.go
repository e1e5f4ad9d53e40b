// Package query implements the seed-search predicate language: a
// hand-written lexer and recursive-descent parser producing an AST, and an
// evaluator that matches a conjunction of per-sublevel clauses against the
// layouts generated from a seed. See Parse and Query.Eval.
package query
