package repokit

// Binder is a tiny factory that binds a domain repo to a specific collection
type Binder[T any] interface {
	Bind(Collection) T
}

// BindFunc lets you create a Binder from a function
type BindFunc[T any] func(Collection) T

// Bind calls the underlying function
func (f BindFunc[T]) Bind(c Collection) T { return f(c) }

// RequireCollection panics early on programmer error (nil collection)
func RequireCollection(c Collection) Collection {
	if c == nil {
		panic("repokit: nil Collection")
	}
	return c
}

// MustBind is a convenience that validates c then binds
func MustBind[T any](b Binder[T], c Collection) T {
	return b.Bind(RequireCollection(c))
}
