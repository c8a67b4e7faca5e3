package content

import "sync"

// RequestCopy hands a request its own hot copy of the master loader. The
// copy is made on first use and reused for the rest of the request, so
// request code may filter and mutate manifests without touching the master
// or other in-flight requests.
type RequestCopy struct {
	master *Loader
	once   sync.Once
	copy   *Loader
}

func NewRequestCopy(master *Loader) *RequestCopy {
	return &RequestCopy{master: master}
}

// Get returns the per-request loader copy, creating it on first call.
func (r *RequestCopy) Get() *Loader {
	r.once.Do(func() {
		r.copy = r.master.Copy()
	})
	return r.copy
}
