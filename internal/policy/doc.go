// Package policy holds the catalog of named password policies, grouped into
// four categories, and the special requirement tags a policy may carry.
//
// The built-in catalog is built once at package initialization and never
// modified. Custom policies loaded from YAML are combined with it into a new
// Registry; the built-in one is left untouched.
package policy
