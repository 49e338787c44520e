package timetable

import "errors"

// ErrScheduleInconsistency is returned by Build when a route's trips are not
// FIFO-ordered: some later trip overtakes an earlier one at some stop. This
// is detected only at construction time; the Round Engine trusts the Index
// afterwards and never re-validates it.
var ErrScheduleInconsistency = errors.New("timetable: trips on route are not FIFO-ordered")

// ErrDuplicateStopOnRoute is returned by Build when a route lists the same
// stop twice.
var ErrDuplicateStopOnRoute = errors.New("timetable: stop appears more than once on route")

// ErrInvalidStop is returned by query drivers when a requested source or
// destination stop is absent from the Index; callers reject at entry before
// any label allocation.
var ErrInvalidStop = errors.New("timetable: stop not present in index")

// MissingKey is not an exported error type: routes_by_stop, footpaths_from
// and stop_index_on_route treat an absent key as "empty" locally and never
// propagate a distinct error for it, per the lookup contract.
