// Package str implements the str execution engine. str is a small
// stack language: a script is a whitespace-separated sequence of
// instructions that push values onto an operand stack or consume
// values from it. The language supports the following constructs:
//   - Literals for strings ("..."), chars ('x'), ints, floats, and the
//     booleans true/false.
//   - Named bindings: `(a b)` pops values into variables, `{a b}` binds
//     the top of the stack without popping it, and `@a` pushes a copy
//     of a bound value back.
//   - Conditionals via `if ... else ... end` and loops via
//     `repeat ... end`, both driven by the top of the stack.
//   - User operations via `macro name (types...) ... end`, which join
//     the same overload registry the built-ins live in.
//   - Built-ins for arithmetic, comparison, logic, stack shuffling, and
//     string manipulation, dispatched on the types at the top of the
//     stack.
//
// Comments beginning with `#` are ignored. Reading a variable consumes
// it: a bare `a` pushes the bound value and removes the binding, so the
// same name cannot be read twice without rebinding.
package str
