// Package courseindex maps each course to eleven grade buckets (0 through 10)
// holding the positional indices of the students graded in that course.
//
// # Lifecycle
//
// A DB has two phases. Build is called once, single-threaded, after the
// roster has been fully loaded and frozen. After that the DB is read-only and
// QueryAtLeast may be called from any number of goroutines. Querying a DB that
// has never been built is allowed and always yields an empty result.
//
// # Ordering
//
// QueryAtLeast visits buckets in ascending grade order, starting at the
// clamped threshold. Inside a bucket, indices appear in roster order, since
// Build walks the roster front to back. A query therefore costs O(k) in the
// size of its result rather than a scan of the roster.
package courseindex
