// Package lang implements the datapath language: a lexer/parser for the
// s-expression fold/predicate source, a Scope name environment, and a
// compiler that lowers the parsed AST to a linear register-machine Bin.
package lang
