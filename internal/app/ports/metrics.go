package ports

import "pillforge/internal/domain/planner"

type SearchMetrics interface {
	RecordSearch(stats planner.SearchStats)
	RecordRejected()
	RecordFailure()
}
