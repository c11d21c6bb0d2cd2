package domain

// Command is a cart mutation. The set of commands is closed:
// Add, Remove, Increment, Decrement and Clear.
type Command interface {
	isCartCommand()
	Name() string
}

type Add struct{ Product Product }

type Remove struct{ ProductID string }

type Increment struct{ ProductID string }

type Decrement struct{ ProductID string }

type Clear struct{}

func (Add) isCartCommand()       {}
func (Remove) isCartCommand()    {}
func (Increment) isCartCommand() {}
func (Decrement) isCartCommand() {}
func (Clear) isCartCommand()     {}

func (Add) Name() string       { return "ADD" }
func (Remove) Name() string    { return "REMOVE" }
func (Increment) Name() string { return "INC" }
func (Decrement) Name() string { return "DEC" }
func (Clear) Name() string     { return "CLEAR" }

// Apply returns the cart that results from cmd. The input cart is never modified.
func Apply(c Cart, cmd Command) Cart {
	switch cmd := cmd.(type) {
	case Add:
		if _, ok := c.Find(cmd.Product.ID); ok {
			return Apply(c, Increment{ProductID: cmd.Product.ID})
		}
		next := c.Clone()
		next.Items = append(next.Items, CartItem{Product: cmd.Product, Qty: 1})
		return next

	case Remove:
		next := Cart{Items: make([]CartItem, 0, len(c.Items))}
		for _, item := range c.Items {
			if item.Product.ID != cmd.ProductID {
				next.Items = append(next.Items, item)
			}
		}
		return next

	case Increment:
		next := c.Clone()
		for i := range next.Items {
			if next.Items[i].Product.ID == cmd.ProductID {
				next.Items[i].Qty++
			}
		}
		return next

	case Decrement:
		next := Cart{Items: make([]CartItem, 0, len(c.Items))}
		for _, item := range c.Items {
			if item.Product.ID == cmd.ProductID {
				item.Qty--
			}
			if item.Qty > 0 {
				next.Items = append(next.Items, item)
			}
		}
		return next

	case Clear:
		return Cart{Items: []CartItem{}}

	default:
		return c
	}
}
