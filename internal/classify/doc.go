// Package classify provides the text heuristics that turn free-form group
// descriptions into catalog facets.
//
// Every classifier is a pure function over a text blob and evaluates an
// ordered table of (pattern, value) rules, first match wins. The rule order
// is behaviorally significant: "college students" must classify as Students,
// not Young Adult, because the Students rule is tried first. Unmatched input
// always yields the documented fallback, never an empty classification.
package classify
