// Package timezones provides IANA timezone candidates for searchdown
// widgets and a small net/http handler that answers remote dropdown
// queries with the same filter, sort and limit rules the widget applies
// locally.
//
// The handler responds to GET and HEAD requests and supports query and
// limit parameters. The backing data is the embedded IANA list under
// data/iana_timezones.txt.
package timezones
