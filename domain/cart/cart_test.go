package cart_test

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/tiffinbox/tiffinbox/domain/cart"
)

func TestAdd_NewAndMerge(t *testing.T) {
	c := cart.New()
	c.Add(cart.Entry{ItemID: "dosa", Name: "Masala Dosa", UnitPrice: 80, Quantity: 1})
	c.Add(cart.Entry{ItemID: "beer", Name: "Kingfisher Beer", UnitPrice: 180, Quantity: 2, IsAlcoholic: true})
	c.Add(cart.Entry{ItemID: "dosa", Name: "Masala Dosa", UnitPrice: 80, Quantity: 2})

	if c.Len() != 2 {
		t.Fatalf("len = %d, want 2", c.Len())
	}

	entries := c.Entries()
	if entries[0].ItemID != "dosa" || entries[0].Quantity != 3 {
		t.Errorf("first entry = %+v, want dosa x3", entries[0])
	}
	if entries[1].ItemID != "beer" || entries[1].Quantity != 2 {
		t.Errorf("second entry = %+v, want beer x2", entries[1])
	}
}

func TestAdd_QuantityBelowOneBecomesOne(t *testing.T) {
	c := cart.New()
	c.Add(cart.Entry{ItemID: "chai", Quantity: 0})

	if got := c.Entries()[0].Quantity; got != 1 {
		t.Errorf("quantity = %d, want 1", got)
	}
}

func TestSetQuantity(t *testing.T) {
	c := cart.New()
	c.Add(cart.Entry{ItemID: "dosa", Quantity: 1})

	if err := c.SetQuantity("dosa", 5); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := c.Entries()[0].Quantity; got != 5 {
		t.Errorf("quantity = %d, want 5", got)
	}

	// Below 1 removes the line
	if err := c.SetQuantity("dosa", 0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !c.IsEmpty() {
		t.Error("cart should be empty after setting quantity to 0")
	}

	if err := c.SetQuantity("missing", 2); !errors.Is(err, cart.ErrNotInCart) {
		t.Errorf("want ErrNotInCart, got %v", err)
	}
}

func TestRemoveAndClear(t *testing.T) {
	c := cart.New()
	c.Add(cart.Entry{ItemID: "a", Quantity: 1})
	c.Add(cart.Entry{ItemID: "b", Quantity: 1})

	if err := c.Remove("a"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Len() != 1 {
		t.Errorf("len = %d, want 1", c.Len())
	}

	c.Clear()
	if !c.IsEmpty() {
		t.Error("cart should be empty after Clear")
	}
}

func TestLineItems(t *testing.T) {
	c := cart.New()
	c.Add(cart.Entry{ItemID: "dosa", Name: "Masala Dosa", UnitPrice: 80, Quantity: 2})
	c.Add(cart.Entry{ItemID: "beer", Name: "Kingfisher Beer", UnitPrice: 180, Quantity: 1, IsAlcoholic: true})

	items := c.LineItems()
	if len(items) != 2 {
		t.Fatalf("len = %d, want 2", len(items))
	}
	if items[0].ItemID != "dosa" || items[0].UnitPrice != 80 || items[0].Quantity != 2 {
		t.Errorf("first item = %+v", items[0])
	}
	if !items[1].IsAlcoholic {
		t.Error("second item should be alcoholic")
	}
}

func TestJSONRoundTrip(t *testing.T) {
	c := cart.New()
	c.Add(cart.Entry{ItemID: "dosa", Name: "Masala Dosa", UnitPrice: 80, Quantity: 2})
	c.Add(cart.Entry{ItemID: "lassi", Name: "Mango Lassi", UnitPrice: 80, Quantity: 1})

	data, err := json.Marshal(c)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	restored := cart.New()
	if err := json.Unmarshal(data, restored); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if restored.Len() != 2 {
		t.Fatalf("len = %d, want 2", restored.Len())
	}
	got := restored.Entries()
	want := c.Entries()
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("entry %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestUnmarshal_DropsStaleEntries(t *testing.T) {
	data := []byte(`[{"itemId":"a","quantity":2},{"itemId":"b","quantity":0},{"itemId":"c","quantity":-1}]`)

	c := cart.New()
	if err := json.Unmarshal(data, c); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if c.Len() != 1 {
		t.Fatalf("len = %d, want 1", c.Len())
	}
	if c.Entries()[0].ItemID != "a" {
		t.Errorf("kept entry = %+v, want item a", c.Entries()[0])
	}
}
