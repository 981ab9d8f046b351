// Package publisher publishes compiled Move packages to the ledger.
//
// A package is its BCS metadata plus the bytecode of each module, read
// from the compiler's build directory:
//
//	<package>/build/<PackageName>/package-metadata.bcs
//	<package>/build/<PackageName>/bytecode_modules/<module>.mv
//
// CLICompiler runs the ledger command line tool to produce that layout
// with named addresses bound to concrete accounts. Publishing is one
// transaction and is all-or-nothing on the ledger.
//
// This package is part of the Move SDK for Go.
package publisher
