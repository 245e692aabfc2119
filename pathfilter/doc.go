// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/publish

/*
Package pathfilter decides which project files are excluded from a package
using gitignore-like ignore rules.

Candidate paths use "/" separators, are rooted at "/" (the project root) and
end with "/" when they denote a directory:

	/Assets/Scripts/Player.cs
	/Library/
	/Build/Game_Data/

Basic flow:
  - find rule files under a project root (`Discover`)
  - load them in order into an immutable rule set (`Load`)
  - or parse rules from text (`ParseRules`) and build a set (`NewRuleSet`)
  - ask for a decision (`IsIgnored` / `Decide`)

Resolution is last-match-wins: every rule is evaluated in load order and the
last one that matches decides. A negated rule ("!pattern") re-includes a path,
and a rule that matches a directory also matches everything beneath it, so a
later negated rule can bring back a single nested file:

	dist/
	!dist/keep.txt

A walker that wants to skip ignored subtrees should use `Prune`, which only
allows pruning when no later negated rule could re-include a descendant.

A RuleSet is never modified after construction and may be shared by any number
of goroutines without locking.
*/
package pathfilter
