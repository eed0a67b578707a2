package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrder_AddItem(t *testing.T) {
	t.Run("creates entry at one", func(t *testing.T) {
		o := NewOrder()
		o.AddItem("Orange Chicken")
		assert.Equal(t, 1, o.Quantity("Orange Chicken"))
	})

	t.Run("increments existing entry", func(t *testing.T) {
		o := NewOrder()
		o.AddItem("Orange Chicken")
		o.AddItem("Orange Chicken")
		assert.Equal(t, 2, o.Quantity("Orange Chicken"))
	})
}

func TestOrder_RemoveItem(t *testing.T) {
	t.Run("decrements quantity", func(t *testing.T) {
		o := NewOrder()
		o.AddItem("Rice")
		o.AddItem("Rice")
		o.RemoveItem("Rice")
		assert.Equal(t, 1, o.Quantity("Rice"))
	})

	t.Run("deletes entry at zero", func(t *testing.T) {
		o := NewOrder()
		o.AddItem("Rice")
		o.RemoveItem("Rice")
		assert.False(t, o.Contains("Rice"))
		assert.True(t, o.IsEmpty())
	})

	t.Run("absent name is a no-op", func(t *testing.T) {
		o := NewOrder()
		o.AddItem("Rice")
		o.RemoveItem("Water")
		assert.Equal(t, map[string]int{"Rice": 1}, o.Items())
	})
}

func TestOrder_SetQuantity(t *testing.T) {
	t.Run("sets positive quantity directly", func(t *testing.T) {
		o := NewOrder()
		o.SetQuantity("Rangoons", 3)
		assert.Equal(t, 3, o.Quantity("Rangoons"))
	})

	t.Run("zero deletes the entry", func(t *testing.T) {
		o := NewOrder()
		o.SetQuantity("Rangoons", 3)
		o.SetQuantity("Rangoons", 0)
		assert.False(t, o.Contains("Rangoons"))
	})

	t.Run("negative never stored", func(t *testing.T) {
		o := NewOrder()
		o.SetQuantity("Rangoons", -2)
		assert.False(t, o.Contains("Rangoons"))
		assert.True(t, o.IsEmpty())
	})
}

func TestOrder_Reset(t *testing.T) {
	o := NewOrder()
	o.AddItem("Orange Chicken")
	o.AddItem("Rice")

	o.Reset()
	assert.True(t, o.IsEmpty())

	// reset is idempotent
	o.Reset()
	assert.True(t, o.IsEmpty())
}

func TestOrder_NonNegativityUnderMixedOps(t *testing.T) {
	o := NewOrder()
	ops := []func(){
		func() { o.AddItem("A") },
		func() { o.RemoveItem("A") },
		func() { o.RemoveItem("A") },
		func() { o.AddItem("B") },
		func() { o.AddItem("B") },
		func() { o.RemoveItem("B") },
		func() { o.RemoveItem("C") },
	}
	for _, op := range ops {
		op()
		for name, qty := range o.Items() {
			assert.Greater(t, qty, 0, "entry %q must stay positive", name)
		}
	}
}

func TestNewOrderFromItems(t *testing.T) {
	o := NewOrderFromItems(map[string]int{"Rice": 2, "Water": 0, "Soda": -1})
	assert.Equal(t, map[string]int{"Rice": 2}, o.Items())
}

func TestOrder_ItemsReturnsCopy(t *testing.T) {
	o := NewOrder()
	o.AddItem("Rice")

	items := o.Items()
	items["Rice"] = 99
	assert.Equal(t, 1, o.Quantity("Rice"))
}
