package record

// SetBetweenReads installs a hook that runs between the page read and the
// count read of List.
func (r *Repo[T, K]) SetBetweenReads(fn func()) { r.betweenReads = fn }
