package curriculum

// NextOrder returns the order a new sibling should take: one past the number of existing siblings.
// It must be given the siblings before the new item is inserted. Gaps left by deletions are not
// filled.
func NextOrder[T any](siblings []T) int {
	return len(siblings) + 1
}
