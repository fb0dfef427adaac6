package protocol

// ErrorCode is a stable identifier for a request rejection. Clients key
// their behavior off the code, the message is for humans.
type ErrorCode string

const (
	// CodeNotAFile means the request named a URI that is not a local file
	CodeNotAFile ErrorCode = "NotAFile"
	// CodeDocumentNotFound means the document is not open in the editor
	CodeDocumentNotFound ErrorCode = "DocumentNotFound"
	// CodeInvalidXmlResponse means the legacy compiler response was not a
	// single-root XML fragment
	CodeInvalidXmlResponse ErrorCode = "InvalidXmlResponse"
	// CodeNoMetadataInformation means the compiler returned an empty
	// metadata payload
	CodeNoMetadataInformation ErrorCode = "NoMetadataInformation"
	// CodeNoTypeInformation means the compiler returned an empty type
	// payload
	CodeNoTypeInformation ErrorCode = "NoTypeInformation"
)

// LspError is a typed request rejection surfaced to the transport layer
type LspError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

func (e *LspError) Error() string {
	return string(e.Code) + ": " + e.Message
}

// NewLspError creates a typed rejection with the given code and message
func NewLspError(code ErrorCode, message string) *LspError {
	return &LspError{
		Code:    code,
		Message: message,
	}
}
