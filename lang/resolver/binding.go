package resolver

// A Binding contains the resolution information of a variable reference.
// The resolver attaches one to every variable, assignment, this and super
// node that resolves to a local; a reference left without a binding is a
// global, looked up dynamically at runtime.
type Binding struct {
	// Depth is the number of lexical scopes to walk from the scope in force
	// at the reference to the scope that contains the declaration (0 = the
	// innermost scope).
	Depth int
}

// state of a name in a resolver scope.
type nameState uint8

const (
	declared nameState = iota // declared, not yet legal to reference
	defined                   // legal to reference
	used                      // read or written at least once in this scope
)

// nameInfo tracks the resolution state of a single name in a scope.
type nameInfo struct {
	state nameState
	line  int // line of the declaration, for unused-name reporting
}

// funcKind tracks what kind of function body the resolver is currently in.
type funcKind uint8

const (
	funcNone funcKind = iota
	funcFunction
	funcMethod
	funcInitializer
)

// classKind tracks what kind of class body the resolver is currently in.
type classKind uint8

const (
	classNone classKind = iota
	classClass
	classSubclass
)
