// Package candidates models the set of values a searchdown widget offers.
//
// A Set is either a List, where each entry is both what the user sees and
// what the form submits, or a Mapping of display keys to submission labels.
// Mappings keep insertion order so dropdowns render in the order the values
// were declared.
package candidates
