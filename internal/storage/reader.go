package storage

import (
	"github.com/stephenafamo/bob"

	"github.com/cesarberbelbr/household-finance-manager/internal/storage/account"
	"github.com/cesarberbelbr/household-finance-manager/internal/storage/category"
	"github.com/cesarberbelbr/household-finance-manager/internal/storage/entry"
	"github.com/cesarberbelbr/household-finance-manager/internal/storage/rule"
)

type Reader struct {
	Accounts   account.IAccountReader
	Categories category.ICategoryReader
	Entries    entry.IEntryReader
	Rules      rule.IRuleReader
}

func NewReader(exec bob.Executor) *Reader {
	return &Reader{
		Accounts:   account.NewReader(exec),
		Categories: category.NewReader(exec),
		Entries:    entry.NewReader(exec),
		Rules:      rule.NewReader(exec),
	}
}
