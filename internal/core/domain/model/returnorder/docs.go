// Package returnorder implements the ReturnOrder aggregate: a request to
// reverse part or all of a previously placed order, bounded by what that
// order actually contained.
package returnorder
