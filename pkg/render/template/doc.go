// Package template defines the template engine seam the HTML renderer draws
// through. The gotemplate subpackage backs it with pongo2.
package template
