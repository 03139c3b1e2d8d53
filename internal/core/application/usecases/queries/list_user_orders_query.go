package queries

import (
	"errors"
	"fmt"

	"takeaway/internal/pkg/errs"
	"takeaway/internal/pkg/guard"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

var ErrListUserOrdersQueryIsNotConstructed = errors.New(
	"ListUserOrdersQuery must be created via NewListUserOrdersQuery constructor",
)

// ListUserOrdersQuery requests a page of one user's order history,
// newest first. A zero status means no status filter.
type ListUserOrdersQuery struct { //nolint:recvcheck //using for validation
	userID   int64
	status   int
	page     int
	pageSize int

	guard guard.ConstructorGuard
}

// NewListUserOrdersQuery creates a history query. Page numbers start at 1;
// out-of-range page sizes fall back to the default.
func NewListUserOrdersQuery(userID int64, status, page, pageSize int) (ListUserOrdersQuery, error) {
	query := ListUserOrdersQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := query.setUserID(userID); err != nil {
		return ListUserOrdersQuery{}, err
	}

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
func (q ListUserOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListUserOrdersQueryIsNotConstructed)
}

// UserID returns the id of the user whose history is requested.
func (q ListUserOrdersQuery) UserID() int64 {
	return q.userID
}

// Status returns the status filter, zero when unfiltered.
func (q ListUserOrdersQuery) Status() int {
	return q.status
}

// Page returns the 1-based page number.
func (q ListUserOrdersQuery) Page() int {
	return q.page
}

// PageSize returns the number of orders per page.
func (q ListUserOrdersQuery) PageSize() int {
	return q.pageSize
}

func (q *ListUserOrdersQuery) setUserID(userID int64) error {
	if userID <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("user id is invalid",
			fmt.Errorf("%d is not a valid user id", userID))
	}

	q.userID = userID
	return nil
}

// OrderPageResponse is one page of a user's order history.
type OrderPageResponse struct {
	Total   int64
	Records []OrderResponse
}
