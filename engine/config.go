package engine

// Config holds the state's formatting rules.  The REPL overrides these from
// its configuration file; the defaults match what the tests assume.
type Config struct {
	// TableIndex adds a leading # column to rendered tables.
	TableIndex bool
	// FloatPrecision is the number of decimals shown for floats in tables;
	// -1 means shortest round-trip form.
	FloatPrecision int
}

func DefaultConfig() Config {
	return Config{
		TableIndex:     true,
		FloatPrecision: -1,
	}
}
