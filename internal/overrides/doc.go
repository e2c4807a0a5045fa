// Package overrides loads operator-maintained facet corrections.
//
// The override file maps group IDs to partial facet values that take
// precedence over every heuristic classification. It is read fresh at the
// start of each refresh run and never written by the pipeline. MeetingDay and
// MeetingTime are pointers so an operator can pin an explicitly empty value;
// for the remaining facets an empty string means "no override".
package overrides
