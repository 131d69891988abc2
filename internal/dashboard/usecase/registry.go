package usecase

// Registry holds the single observed account. Changing it is the only trigger
// for the balance binding; the submitter only reads it.
type Registry struct {
	observed  string
	listeners []func(accountNo string)
}

func NewRegistry() *Registry {
	return &Registry{}
}

// Observed returns the observed account, or "" when none is selected.
func (r *Registry) Observed() string {
	return r.observed
}

// Subscribe registers fn to run after every change.
func (r *Registry) Subscribe(fn func(accountNo string)) {
	r.listeners = append(r.listeners, fn)
}

// Observe stores accountNo and then notifies listeners, so a listener always
// reads the new value. It reports whether the selection changed.
func (r *Registry) Observe(accountNo string) bool {
	if accountNo == r.observed {
		return false
	}

	r.observed = accountNo
	for _, fn := range r.listeners {
		fn(accountNo)
	}

	return true
}
