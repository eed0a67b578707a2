package domain

// Order is the in-progress multiset of menu item selections for one
// customer transaction. Quantities are always positive: an entry that
// would drop to zero or below is deleted instead of stored.
type Order struct {
	items map[string]int
}

func NewOrder() *Order {
	return &Order{items: make(map[string]int)}
}

// NewOrderFromItems builds an order from a name -> quantity map, dropping
// entries with non-positive quantities.
func NewOrderFromItems(items map[string]int) *Order {
	o := NewOrder()
	for name, qty := range items {
		o.SetQuantity(name, qty)
	}
	return o
}

// AddItem increments the quantity for name, creating the entry at 1.
func (o *Order) AddItem(name string) {
	o.items[name]++
}

// RemoveItem decrements the quantity for name, deleting the entry when it
// reaches zero. Removing an absent name is a no-op.
func (o *Order) RemoveItem(name string) {
	qty, ok := o.items[name]
	if !ok {
		return
	}
	if qty-1 <= 0 {
		delete(o.items, name)
		return
	}
	o.items[name] = qty - 1
}

// SetQuantity sets the entry directly. Quantities <= 0 delete the entry,
// so negative values are never stored.
func (o *Order) SetQuantity(name string, qty int) {
	if qty <= 0 {
		delete(o.items, name)
		return
	}
	o.items[name] = qty
}

// Reset clears the order. Called after a completed checkout or cancel.
func (o *Order) Reset() {
	o.items = make(map[string]int)
}

func (o *Order) Quantity(name string) int {
	return o.items[name]
}

func (o *Order) Contains(name string) bool {
	_, ok := o.items[name]
	return ok
}

func (o *Order) IsEmpty() bool {
	return len(o.items) == 0
}

// Len returns the number of distinct item names in the order.
func (o *Order) Len() int {
	return len(o.items)
}

// Items returns a copy of the name -> quantity map.
func (o *Order) Items() map[string]int {
	out := make(map[string]int, len(o.items))
	for name, qty := range o.items {
		out[name] = qty
	}
	return out
}
