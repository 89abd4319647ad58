package git

import "testing"

func TestParseWorktreeList(t *testing.T) {
	output := `worktree /home/user/project
HEAD abc123def456
branch refs/heads/main

worktree /home/user/feature-x
HEAD def456abc123
branch refs/heads/feature/new-model

worktree /home/user/fix-bug
HEAD 789abc123def
detached

`
	worktrees := ParseWorktreeList(output)

	if len(worktrees) != 2 {
		t.Fatalf("expected 2 worktrees (skipping main), got %d", len(worktrees))
	}
	if worktrees[0].Path != "/home/user/feature-x" {
		t.Errorf("expected feature-x path, got %s", worktrees[0].Path)
	}
	if worktrees[0].Branch != "feature/new-model" {
		t.Errorf("expected feature/new-model branch, got %s", worktrees[0].Branch)
	}
	if worktrees[0].Name != "feature-x" {
		t.Errorf("expected feature-x name, got %s", worktrees[0].Name)
	}
	if !worktrees[1].Detached {
		t.Error("expected fix-bug to be detached")
	}
}

func TestParseWorktreeList_BareMain(t *testing.T) {
	output := `worktree /home/user/proj/.bare
bare

worktree /home/user/proj/feature-a
HEAD abc
branch refs/heads/feature-a

worktree /home/user/proj/gone
HEAD def
branch refs/heads/gone
prunable gitdir file points to non-existent location
`
	worktrees := ParseWorktreeList(output)

	if len(worktrees) != 2 {
		t.Fatalf("expected 2 linked worktrees, got %d", len(worktrees))
	}
	if worktrees[0].Bare {
		t.Error("linked worktree should not be marked bare")
	}
	if !worktrees[1].Prunable {
		t.Error("expected gone worktree to be prunable")
	}
}

func TestParseWorktreeList_MainOnly(t *testing.T) {
	output := `worktree /home/user/project
HEAD abc123def456
branch refs/heads/main

`
	if worktrees := ParseWorktreeList(output); len(worktrees) != 0 {
		t.Fatalf("expected 0 worktrees for main-only, got %d", len(worktrees))
	}
}

func TestParseWorktreeList_Empty(t *testing.T) {
	if worktrees := ParseWorktreeList(""); len(worktrees) != 0 {
		t.Fatalf("expected 0 worktrees for empty input, got %d", len(worktrees))
	}
}
