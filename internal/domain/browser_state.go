package domain

// BrowserStatus tags the state of the daily quote browser.
type BrowserStatus int

// Browser states.
const (
	BrowserLoading BrowserStatus = iota
	BrowserSuccess
	BrowserEmpty
	BrowserError
)

// String returns the lower-case state name.
func (s BrowserStatus) String() string {
	switch s {
	case BrowserLoading:
		return "loading"
	case BrowserSuccess:
		return "success"
	case BrowserEmpty:
		return "empty"
	case BrowserError:
		return "error"
	default:
		return "unknown"
	}
}

// BrowserState is the tagged state for one date.
// Quote is set only for BrowserSuccess; Message only for BrowserError.
type BrowserState struct {
	Status  BrowserStatus
	Date    string
	Quote   *DailyQuote
	Message string
}

// LoadingState returns the state shown while a date is being fetched.
func LoadingState(date string) BrowserState {
	return BrowserState{Status: BrowserLoading, Date: date}
}

// SuccessState wraps a loaded quote.
func SuccessState(q *DailyQuote) BrowserState {
	return BrowserState{Status: BrowserSuccess, Date: q.Date, Quote: q}
}

// EmptyState marks a date with no scheduled quote.
func EmptyState(date string) BrowserState {
	return BrowserState{Status: BrowserEmpty, Date: date}
}

// ErrorState marks a failed load.
func ErrorState(date, message string) BrowserState {
	return BrowserState{Status: BrowserError, Date: date, Message: message}
}
