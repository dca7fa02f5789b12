// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package login

// AccountRecord is one entry of the account table.
type AccountRecord struct {
	Secret string
	Active bool
}

// Accounts maps identifiers to records. Lookups are exact; no case folding.
type Accounts map[string]AccountRecord

// FixtureAccounts returns the fixed test directory. Every call returns a
// fresh copy, so callers cannot mutate the shared fixture.
func FixtureAccounts() Accounts {
	return Accounts{
		"admin@example.com": {Secret: "password123", Active: true},
		"user@example.com":  {Secret: "password123", Active: true},
		"demo@example.com":  {Secret: "demo123", Active: true},
	}
}

// Lookup finds the record for identifier.
func (a Accounts) Lookup(identifier string) (AccountRecord, bool) {
	record, ok := a[identifier]
	return record, ok
}
