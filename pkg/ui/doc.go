// Package ui renders hamstercage output: aligned tables, ls style mode
// strings and dates, colored diffs and the Error/Warning lines on stderr.
//
// Styling is decided once per writer through Format. FormatText output is
// plain and stable, which is what tests and pipes get.
package ui
