// Package session persists reconciliation runs to a local SQLite
// database so finished boards can be listed, re-exported, and corrected
// later without rerunning the engine. One session is one run: its
// geometry and provenance live on the session row, and every cell keeps
// its assignment together with the recorded selection and suggestion
// trace that produced it, which is exactly what a later correction needs
// to re-resolve a displaced cell.
package session
