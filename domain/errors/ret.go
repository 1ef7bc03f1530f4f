package errors

// The Application return code errors
const (
	RetChangesDetected          = 3
	RetLoadConfigError          = 10
	RetCreateDatabaseError      = 11
	RetMigrateDatabaseError     = 12
	RetCreateRunRepositoryError = 13
	RetCreateVerifyServiceError = 16
	RetTargetDirectoryMissing   = 20
	RetBaselineNotFound         = 21
	RetBaselineCorrupt          = 22
	RetVerifyError              = 23
	RetQueryHistoryError        = 30
)
