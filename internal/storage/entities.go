package storage

type TaskListFilter struct {
	ProjectID string
	Limit     int
	Offset    int
}

// DependencyListFilter selects links by predecessor. A nil PredecessorIDs
// lists every link; an empty non-nil slice lists none.
type DependencyListFilter struct {
	PredecessorIDs []string
}
