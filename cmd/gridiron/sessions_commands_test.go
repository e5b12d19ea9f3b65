package main

import (
	"testing"
)

func TestSessionsListEmpty(t *testing.T) {
	env := setupCLIEnv(t)

	out, _, err := runCLI(t, []string{"sessions", "list"}, env.configPath)
	if err != nil {
		t.Fatalf("sessions list: %v", err)
	}
	requireContains(t, out, "No stored sessions")
}

func TestSessionsListAndShow(t *testing.T) {
	env := setupCLIEnv(t)
	id := reconcileSession(t, env)

	out, _, err := runCLI(t, []string{"sessions", "list"}, env.configPath)
	if err != nil {
		t.Fatalf("sessions list: %v", err)
	}
	requireContains(t, out, shortID(id))
	requireContains(t, out, "2x2")

	// Show by unique prefix.
	out, _, err = runCLI(t, []string{"sessions", "show", id[:8]}, env.configPath)
	if err != nil {
		t.Fatalf("sessions show: %v", err)
	}
	requireContains(t, out, "Session: "+id)
	requireContains(t, out, "Justin Jefferson")
	requireContains(t, out, "exact")

	// No argument selects the newest session.
	out, _, err = runCLI(t, []string{"sessions", "show"}, env.configPath)
	if err != nil {
		t.Fatalf("sessions show newest: %v", err)
	}
	requireContains(t, out, "Session: "+id)
}

func TestSessionsShowReviewListsNothingForCleanBoard(t *testing.T) {
	env := setupCLIEnv(t)
	reconcileSession(t, env)

	out, _, err := runCLI(t, []string{"sessions", "show", "--review"}, env.configPath)
	if err != nil {
		t.Fatalf("sessions show --review: %v", err)
	}
	requireContains(t, out, "No cells below")
}

func TestSessionsShowUnknownReference(t *testing.T) {
	env := setupCLIEnv(t)
	reconcileSession(t, env)

	_, _, err := runCLI(t, []string{"sessions", "show", "zzzzzzzz"}, env.configPath)
	if err == nil {
		t.Fatal("expected error for unknown session reference")
	}
}

func TestSessionsDelete(t *testing.T) {
	env := setupCLIEnv(t)
	id := reconcileSession(t, env)

	out, _, err := runCLI(t, []string{"sessions", "delete", id}, env.configPath)
	if err != nil {
		t.Fatalf("sessions delete: %v", err)
	}
	requireContains(t, out, "Deleted session "+shortID(id))

	out, _, err = runCLI(t, []string{"sessions", "list"}, env.configPath)
	if err != nil {
		t.Fatalf("sessions list after delete: %v", err)
	}
	requireContains(t, out, "No stored sessions")
}
