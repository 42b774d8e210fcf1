package assets

// Closure computes the reflexive-transitive closure of start over
// background-level edges. The walk is an explicit work-stack with a
// membership set, so background chains of any depth terminate, including
// reference cycles: each distinct level path is expanded at most once.
//
// Order is deterministic: levels listed by the manifest are expanded in
// file order, and each level's background chain is followed depth-first
// before the next listed level.
func (e *LevelExtractor) Closure(start *Bundle) *Bundle {
	acc := NewBundle()
	acc.Merge(start)

	visited := make(map[string]struct{}, len(start.Levels()))
	var stack []string

	// Seed in reverse so the manifest's first level pops first.
	push := func(levels []Ref) {
		for i := len(levels) - 1; i >= 0; i-- {
			if _, done := visited[levels[i].Path]; !done {
				stack = append(stack, levels[i].Path)
			}
		}
	}
	push(start.Levels())

	for len(stack) > 0 {
		path := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if _, done := visited[path]; done {
			continue
		}
		visited[path] = struct{}{}

		e.logger.Debug("expanding level", "level", path)
		b := e.Extract(path)
		acc.Merge(b)
		push(b.Levels())
	}
	return acc
}
