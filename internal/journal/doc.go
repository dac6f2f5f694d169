// Package journal builds the site model of a 100-day learning journal.
//
// The README supplies one entry per "Day N" heading and the days root
// supplies one directory per day. Assemble joins both sources into an
// ordered SiteModel according to an UndocumentedPolicy.
package journal
