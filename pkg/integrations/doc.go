// Package integrations provides HTTP clients for the remote indexes the
// matrix engine consults.
//
// Three read-only services are queried, each by its own subpackage:
//
//   - cpython: the actions/python-versions release manifest
//   - pypy: the PyPy version index on downloads.python.org
//   - endoflife: the endoflife.date API for Python release-line EOL dates
//
// All clients share the base [Client], which handles timeouts, headers, and
// status-to-error mapping. Indexes are fetched fresh on every run; there is
// no cache and no internal retry.
package integrations
