package errs

import (
	"errors"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrPasswordTooLong    = errors.New("password must not exceed 72 bytes")

	ErrDuplicateISBN      = errors.New("isbn already exists")
	ErrDuplicateUsername  = errors.New("username already exists")
	ErrTotalBelowOnLoan   = errors.New("total is below the number of copies on loan")
	ErrBookHasActiveLoans = errors.New("book has active loans and cannot be deleted")

	ErrAlreadyBorrowed = errors.New("book already borrowed, return it before borrowing again")
	ErrLoanLimit       = errors.New("active loan limit reached, return a book first")
	ErrNoStock         = errors.New("no stock available for this book")
	ErrSeatUnavailable = errors.New("seat is not available")

	ErrNotActive      = errors.New("borrow record not found or already returned")
	ErrRenewOverdue   = errors.New("overdue loans cannot be renewed")
	ErrAlreadyRenewed = errors.New("loan has already been renewed")
)

var conflicts = []error{
	ErrDuplicateISBN,
	ErrDuplicateUsername,
	ErrTotalBelowOnLoan,
	ErrBookHasActiveLoans,
	ErrAlreadyBorrowed,
	ErrLoanLimit,
	ErrNoStock,
	ErrSeatUnavailable,
	ErrNotActive,
	ErrRenewOverdue,
	ErrAlreadyRenewed,
}

// IsConflict reports whether err violates a business rule on existing state.
func IsConflict(err error) bool {
	for _, target := range conflicts {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
