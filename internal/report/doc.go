// Package report renders research results for people and for tools.
//
// Three writers share one interface: a console writer with colored panels
// for interactive use, a JSON writer for programmatic consumers, and a
// Markdown writer for documentation and sharing. A MultiWriter fans one
// result out to several destinations, which is how a run lands on the
// terminal and in a file at the same time.
package report
