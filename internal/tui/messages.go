package tui

import "github.com/jask/pinpad/internal/database/repository"

type submitResultMsg struct {
	attempt repository.Attempt
	err     error
}

type summaryMsg struct {
	summary repository.Summary
}

type historyMsg struct {
	attempts []repository.Attempt
	summary  repository.Summary
}

type errMsg struct{ err error }
