// Package spreadsheet summarises a year of blog posts as a month by category
// table.
//
// [Aggregator] pages through the posts published in the trailing window,
// resolves category names in one request and builds a [Pivot]. A post with
// several categories appears in each of their columns. The pivot is written
// as a CSV meant for spreadsheet applications ([Save]) or drawn as a
// terminal table ([Render]).
package spreadsheet
