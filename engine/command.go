package engine

// Command is the declare capability every builtin implements: a unique name,
// a signature for help output, and run behavior.  Implementations are boxed
// into the state's decl table by the registry bootstrap or by ‘def’.
type Command interface {
	Name() string
	Signature() Signature
	Usage() string
	Run(state *EngineState, stack *Stack, call *Call, input PipelineData) (PipelineData, error)
}

// Signature describes a command for help and completion purposes.  It has no
// effect on dispatch; argument checking is each command's own business.
type Signature struct {
	Name       string
	Category   string
	Positional []PositionalArg
	Named      []NamedFlag
}

type PositionalArg struct {
	Name     string
	Desc     string
	Optional bool
}

type NamedFlag struct {
	Long string
	Desc string
}

// Call carries the evaluated arguments of one command invocation.
type Call struct {
	Head  Span
	Args  []Value
	Named map[string]Value
}

func (c *Call) HasFlag(name string) bool {
	_, ok := c.Named[name]
	return ok
}

func (c *Call) Flag(name string) (Value, bool) {
	v, ok := c.Named[name]
	return v, ok
}

// Arg returns the nth positional argument, if present.
func (c *Call) Arg(n int) (Value, bool) {
	if n < len(c.Args) {
		return c.Args[n], true
	}
	return Value{}, false
}

// CustomCommand is a command declared by ‘def’: its body is a block in the
// state's block table and the evaluator runs it directly rather than through
// Run.
type CustomCommand struct {
	Cmd    string
	Params []string
	Block  BlockId
	Desc   string
}

func (c *CustomCommand) Name() string { return c.Cmd }

func (c *CustomCommand) Usage() string {
	if c.Desc == "" {
		return "Run the custom command " + c.Cmd + "."
	}
	return c.Desc
}

func (c *CustomCommand) Signature() Signature {
	sig := Signature{Name: c.Cmd, Category: "custom"}
	for _, p := range c.Params {
		sig.Positional = append(sig.Positional, PositionalArg{Name: p})
	}
	return sig
}

func (c *CustomCommand) Run(*EngineState, *Stack, *Call, PipelineData) (PipelineData, error) {
	return nil, &EvalError{Msg: "custom commands are evaluated from their block, not run directly"}
}
