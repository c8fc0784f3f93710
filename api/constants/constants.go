package constants

// Common error messages
const (
	ErrInvalidSession             = "invalid user_id or session"
	ErrInvalidJSON                = "invalid json or missing fields"
	ErrInvalidRequestBody         = "Invalid request body"
	ErrMissingUserID              = "Missing or invalid user_id in body"
	ErrUserIDRequired             = "user_id required"
	ErrMethodNotAllowed           = "Method Not Allowed"
	ErrMissingID                  = "Missing id in request"
	ErrNoFileUploaded             = "No file uploaded"
	ErrUnsupportedFileType        = "unsupported file type"
	ErrFailedToParseMultipartForm = "Failed to parse multipart form"
)

// Not-found messages per aggregate
const (
	ErrCustomerNotFound = "Customer not found"
	ErrBookingNotFound  = "Booking not found"
	ErrTicketNotFound   = "Ticket not found"
	ErrDocumentNotFound = "Document not found"
	ErrHotelNotFound    = "Hotel not found"
	ErrGuideNotFound    = "Guide not found"
	ErrEmailNotFound    = "Email not found"
	ErrNoteNotFound     = "Note not found"
	ErrReminderNotFound = "Reminder not found"
	ErrTourFileNotFound = "Tour file not found"
	ErrUserNotFound     = "User not found"
	ErrNoManagerFound   = "No valid manager found. Please ensure users exist in the database."
)

// Content Types
const (
	ContentTypeJSON      = "application/json"
	ContentTypeText      = "Content-Type"
	ContentTypeMultipart = "multipart/form-data"
)

// Request body keys
const (
	KeyUserID    = "user_id"
	ValueSuccess = "success"
	ValueError   = "error"
)

// Date formats
const (
	DateTimeFormat = "2006-01-02 15:04:05"
	DateFormat     = "2006-01-02"
	DateFormatAlt  = "02-01-2006"
	DateFormatISO  = "2006-01-02T15:04:05"
)

// Tour file status enumerations
const (
	StatusUpcoming    = "UPCOMING"
	StatusOngoing     = "ONGOING"
	StatusCompleted   = "COMPLETED"
	StatusCancelled   = "CANCELLED"
	InvoiceYetToRaise = "YET_TO_RAISE"
)
