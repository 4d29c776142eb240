package errx

// Hook customizes an instance after it has been initialized. message and props are
// the arguments the instance was created with. parent invokes the parent class's hook
// against the same instance; it does nothing for top-level classes.
type Hook func(e *Error, message string, props Properties, parent Parent)

// runFunc is a hook with its parent chain already bound
type runFunc func(e *Error, message string, props Properties)

// Parent is a parent class's hook bound to the instance under construction
type Parent struct {
	call    runFunc
	e       *Error
	message string
	props   Properties
}

// Call runs the parent hook with the arguments the instance was created with
func (p Parent) Call() {
	p.CallWith(p.message, p.props)
}

// CallWith runs the parent hook with different arguments
func (p Parent) CallWith(message string, props Properties) {
	if p.call == nil {
		return
	}
	if props == nil {
		props = Properties{}
	}
	p.call(p.e, message, props)
}

func noopHook(*Error, string, Properties, Parent) {}

// passThrough is the hook of a child declared without one
func passThrough(_ *Error, _ string, _ Properties, parent Parent) {
	parent.Call()
}

// rootRun binds a top-level hook, whose parent is a no-op
func rootRun(hook Hook) runFunc {
	if hook == nil {
		hook = noopHook
	}
	return func(e *Error, message string, props Properties) {
		hook(e, message, props, Parent{})
	}
}

// childRun binds hook so that its Parent argument calls parentRun
func childRun(hook Hook, parentRun runFunc) runFunc {
	if hook == nil {
		hook = passThrough
	}
	return func(e *Error, message string, props Properties) {
		hook(e, message, props, Parent{
			call:    parentRun,
			e:       e,
			message: message,
			props:   props,
		})
	}
}
