// Package parser turns a token sequence into an ast.Node tree.
//
// The grammar is recursive descent with one rule per precedence level:
//
//	expr        'let' IDENT ('.' IDENT)? '=' expr | comparison (('and' | 'or') comparison)*
//	comparison  'not' comparison | additive (('==' | '!=' | '<' | '>' | '<=' | '>=') additive)*
//	additive    term (('+' | '-') term)*
//	term        factor (('*' | '/') factor)*
//	factor      ('+' | '-') factor | power
//	power       call ('**' factor)*
//	call        atom ('.' IDENT)? ('(' args ')')?
//
// Every rule returns a Result. Rules fold sub-results with Register and
// check Err before using the value. Optional productions use TryRegister
// and rewind the cursor when they fail, so no partial error leaks out.
//
// Of the errors raised along a failing path, the first one recorded by a
// rule that had already consumed tokens is kept. A rule that has consumed
// nothing replaces its error with the newest one.
package parser
