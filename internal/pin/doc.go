// Package pin models a segmented PIN entry: a fixed number of digit slots, the
// slot that currently holds focus, and the rules that move focus as digits are
// typed, deleted or pasted. It has no UI dependencies; widgets drive it and
// react to the returned Outcome.
package pin
