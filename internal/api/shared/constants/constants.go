package constants

const (
	MAX_PAGE_SIZE          = 100
	MAX_CHANGES_PAGE_SIZE  = 500
	DEFAULT_BATTLES_LIMIT  = 50
	DEFAULT_CHANGES_LIMIT  = 100
	MAX_STAMP_REASON_CHARS = 200
)
