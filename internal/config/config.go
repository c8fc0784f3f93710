package config

const (
	DefaultTimeZone = "Asia/Kolkata"

	// Spreadsheet date serials count days from 1900; serial 25569 is 1970-01-01.
	SpreadsheetEpochOffset = 25569
	SecondsPerDay          = 86400

	DefaultClientCountry = "India"
	DefaultTransportType = "Car"

	// Reminder sweep configuration
	DefaultReminderSchedule = "*/5 * * * *"
	ReminderBatchSize       = 200
)
