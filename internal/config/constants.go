package config

const (
	DefaultDatabasePath = "./library.db"

	// APIBasePath prefixes every API route.
	APIBasePath = "/api/v1"

	// BorrowingPeriodDays is the loan period applied to every new borrowing.
	BorrowingPeriodDays = 14
)
