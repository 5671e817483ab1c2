package strategy

// Func inspects an input and reports a result when it found one.
type Func[T any] func(in T) (string, bool)

// Strategy is a single named lookup inside a chain.
type Strategy[T any] struct {
	Name string
	Find Func[T]
}

// Chain keeps strategies in registration order; the first hit wins.
type Chain[T any] struct {
	strategies []Strategy[T]
	index      map[string]int
}

// NewChain builds a chain from the given strategies, in order.
func NewChain[T any](strategies ...Strategy[T]) *Chain[T] {
	c := &Chain[T]{index: map[string]int{}}
	for _, s := range strategies {
		c.Register(s)
	}
	return c
}

// Register appends a strategy, or replaces one with the same name in place.
func (c *Chain[T]) Register(s Strategy[T]) {
	if c.index == nil {
		c.index = map[string]int{}
	}
	if i, ok := c.index[s.Name]; ok {
		c.strategies[i] = s
		return
	}
	c.index[s.Name] = len(c.strategies)
	c.strategies = append(c.strategies, s)
}

// Names lists registered strategies in evaluation order.
func (c *Chain[T]) Names() []string {
	names := make([]string, 0, len(c.strategies))
	for _, s := range c.strategies {
		names = append(names, s.Name)
	}
	return names
}

// First runs the strategies in order and returns the first result together
// with the name of the strategy that produced it.
func (c *Chain[T]) First(in T) (result, name string, ok bool) {
	for _, s := range c.strategies {
		if s.Find == nil {
			continue
		}
		if v, found := s.Find(in); found {
			return v, s.Name, true
		}
	}
	return "", "", false
}
