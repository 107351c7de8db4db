package tui

import "github.com/awwong1/semscrape/internal/session"

type fetchDoneMsg struct {
	result session.Result
}

type browserErrMsg struct {
	err error
}
