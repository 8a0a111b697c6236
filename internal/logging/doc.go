// Package logging provides opt-in file-based logging with rotation for
// Fruitful. When the --debug flag is set, structured logs are written to
// ~/.fruitful/logs/ for troubleshooting.
//
// By default (without --debug), logging is minimal and goes to stderr only,
// keeping the console output clean for search results.
package logging
