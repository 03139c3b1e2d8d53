package queries

import (
	"errors"
	"fmt"

	"takeaway/internal/pkg/errs"
	"takeaway/internal/pkg/guard"
)

var ErrSearchOrdersQueryIsNotConstructed = errors.New(
	"SearchOrdersQuery must be created via NewSearchOrdersQuery constructor",
)

// SearchOrdersQuery requests a page of orders across all users for the
// operator workbench. A zero status means no status filter; a zero user id
// means orders of every user.
type SearchOrdersQuery struct { //nolint:recvcheck //using for validation
	status   int
	userID   int64
	page     int
	pageSize int

	guard guard.ConstructorGuard
}

// NewSearchOrdersQuery creates a workbench search. Page numbers start at 1;
// out-of-range page sizes fall back to the default.
func NewSearchOrdersQuery(status int, userID int64, page, pageSize int) (SearchOrdersQuery, error) {
	query := SearchOrdersQuery{
		guard: guard.NewConstructorGuard(),
	}

	if userID < 0 {
		return SearchOrdersQuery{}, errs.NewValueIsInvalidErrorWithCause("user id is invalid",
			fmt.Errorf("%d is not a valid user id", userID))
	}
	query.userID = userID

	query.status = status

	if page < 1 {
		page = 1
	}
	query.page = page

	if pageSize < 1 || pageSize > maxPageSize {
		pageSize = defaultPageSize
	}
	query.pageSize = pageSize

	return query, nil
}

// Validate ensures the query was created through the constructor.
func (q SearchOrdersQuery) Validate() error {
	return q.guard.Validate(ErrSearchOrdersQueryIsNotConstructed)
}

// Status returns the status filter, zero when unfiltered.
func (q SearchOrdersQuery) Status() int {
	return q.status
}

// UserID returns the user filter, zero when unfiltered.
func (q SearchOrdersQuery) UserID() int64 {
	return q.userID
}

// Page returns the 1-based page number.
func (q SearchOrdersQuery) Page() int {
	return q.page
}

// PageSize returns the number of orders per page.
func (q SearchOrdersQuery) PageSize() int {
	return q.pageSize
}
