package register

import (
	"sync"

	domainErrors "github.com/hiyoshi/pos-register/internal/domain/errors"
)

const MaxLineQuantity = 99

// Line is one aggregated cart entry, keyed by product code. The ledger has
// no quantity column; a line of quantity N becomes N detail records at
// checkout.
type Line struct {
	ProductID string
	Code      string
	Name      string
	UnitPrice int64
	Quantity  int
}

func (l Line) Subtotal() int64 {
	return l.UnitPrice * int64(l.Quantity)
}

// Cart holds the session's local lines in first-add order. It is reached
// from both HTTP handlers and the scanner pump, hence the mutex.
type Cart struct {
	mu    sync.Mutex
	lines map[string]*Line
	order []string
}

func NewCart() *Cart {
	return &Cart{
		lines: make(map[string]*Line),
	}
}

// AddOrIncrement is the only path by which items enter the cart. An existing
// line gains one unit, clamped at MaxLineQuantity with ErrQuantityLimit
// reported; an unseen code opens a new line at quantity 1.
func (c *Cart) AddOrIncrement(p Product) (Line, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if line, ok := c.lines[p.Code]; ok {
		if line.Quantity >= MaxLineQuantity {
			return *line, domainErrors.ErrQuantityLimit
		}
		line.Quantity++
		return *line, nil
	}

	line := &Line{
		ProductID: p.ID,
		Code:      p.Code,
		Name:      p.Name,
		UnitPrice: p.Price,
		Quantity:  1,
	}
	c.lines[p.Code] = line
	c.order = append(c.order, p.Code)
	return *line, nil
}

func (c *Cart) Remove(code string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.lines[code]; !ok {
		return
	}
	delete(c.lines, code)
	for i, existing := range c.order {
		if existing == code {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
}

func (c *Cart) SetQuantity(code string, quantity int) error {
	if quantity < 1 || quantity > MaxLineQuantity {
		return domainErrors.ErrInvalidQuantity
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	line, ok := c.lines[code]
	if !ok {
		return domainErrors.ErrLineNotFound
	}
	line.Quantity = quantity
	return nil
}

func (c *Cart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.lines = make(map[string]*Line)
	c.order = nil
}

// Lines returns copies in first-add order.
func (c *Cart) Lines() []Line {
	c.mu.Lock()
	defer c.mu.Unlock()

	lines := make([]Line, 0, len(c.order))
	for _, code := range c.order {
		lines = append(lines, *c.lines[code])
	}
	return lines
}

func (c *Cart) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.lines)
}

// Total is recomputed from the lines on every call, never cached.
func (c *Cart) Total() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	var total int64
	for _, line := range c.lines {
		total += line.Subtotal()
	}
	return total
}
