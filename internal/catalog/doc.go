// Package catalog loads and indexes the ranked player reference set that
// reconciliation matches recognized board text against.
//
// Key responsibilities:
//   - Parsing cheatsheet CSV exports into immutable Entry values with
//     catalog rank derived from file order.
//   - Normalizing names, team text, and position codes so observation text
//     and catalog text compare under the same rules.
//   - Building identity keys (normalized first, last, team, position, bye)
//     and rejecting catalogs that contain duplicates.
//   - Exact last-name lookup used by the override pass.
//
// A Catalog never changes after Load or New returns; every later stage
// treats it as read-only shared state.
package catalog
