package domain

// SubmissionResult is the outcome of posting a signed transaction to a node.
// Status and StatusText are set only for rejected transactions.
type SubmissionResult struct {
	Accepted   bool
	ID         string
	Status     int
	StatusText string
	Body       string
}
