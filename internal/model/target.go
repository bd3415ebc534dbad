package model

// CheckTarget is one document handed to the checker. Index records its
// position in the batch so reports keep the order the files were supplied in.
type CheckTarget struct {
	Index int
	Path  string
}

// NewTargets converts an ordered list of paths into indexed targets.
func NewTargets(paths []string) []CheckTarget {
	targets := make([]CheckTarget, len(paths))
	for i, path := range paths {
		targets[i] = CheckTarget{Index: i, Path: path}
	}
	return targets
}
