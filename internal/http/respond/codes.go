package respond

// Error codes carried in the error_code field of every error body.
const (
	CodeValidation        = 4000
	CodeBusinessRule      = 4001
	CodeNotFound          = 4004
	CodeInvalidCredential = 4010
	CodeMissingToken      = 4011
	CodeTokenExpired      = 4012
	CodeTokenSignature    = 4013
	CodeTokenMalformed    = 4014
	CodeMissingSubject    = 4015
	CodeWrongTokenKind    = 4016
	CodeInternal          = 5000
	CodeDatabase          = 5001
)
