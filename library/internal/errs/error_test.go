package errs_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/JQ-Origin/Library-Document-Borrowing-System/library/internal/errs"
	"github.com/stretchr/testify/require"
)

func TestIsConflict(t *testing.T) {
	require.True(t, errs.IsConflict(errs.ErrNoStock))
	require.True(t, errs.IsConflict(fmt.Errorf("borrow: %w", errs.ErrLoanLimit)))
	require.False(t, errs.IsConflict(errs.ErrNotFound))
	require.False(t, errs.IsConflict(errors.New("db down")))
}
