// Package preflight provides readiness checks for the filesystem paths
// and reference data gridiron depends on.
//
// These checks run in two contexts:
//   - The reconcile command runs RunAll before a run, so a bad catalog
//     path or a read-only export directory surfaces before any scoring
//     work happens.
//   - The CLI "gridiron doctor" command renders every check, including
//     the session database probe, as a health report.
package preflight
