// Package main hosts the learnlang CLI entrypoint and command graph.
//
// The Cobra command tree lists packs, languages and flashcards from the
// vocabulary backend, and submits vocab and pack forms either directly from
// flags or through persisted drafts. It centralizes configuration loading,
// logger setup and client construction so subcommands only translate flags
// into calls on the internal packages.
package main
