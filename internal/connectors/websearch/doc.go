// Package websearch implements the general web search platform on top of
// a Google Programmable Search Engine. Result titles of public profile pages,
// LinkedIn's in particular, are parsed into prospects.
package websearch
