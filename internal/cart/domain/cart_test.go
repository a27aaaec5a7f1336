package domain

import "testing"

func TestCartAddItem(t *testing.T) {
	t.Run("new product appends a line", func(t *testing.T) {
		cart := &Cart{}
		cart.AddItem(1, 2)

		if len(cart.Items) != 1 {
			t.Fatalf("expected 1 line, got %d", len(cart.Items))
		}
		if cart.Items[0].Quantity != 2 {
			t.Errorf("expected quantity 2, got %d", cart.Items[0].Quantity)
		}
	})

	t.Run("existing product merges quantity", func(t *testing.T) {
		cart := &Cart{}
		cart.AddItem(1, 2)
		cart.AddItem(1, 3)

		if len(cart.Items) != 1 {
			t.Fatalf("expected 1 line after merge, got %d", len(cart.Items))
		}
		if cart.Items[0].Quantity != 5 {
			t.Errorf("expected merged quantity 5, got %d", cart.Items[0].Quantity)
		}
	})

	t.Run("different products keep separate lines", func(t *testing.T) {
		cart := &Cart{}
		cart.AddItem(1, 1)
		cart.AddItem(2, 1)

		if len(cart.Items) != 2 {
			t.Fatalf("expected 2 lines, got %d", len(cart.Items))
		}
	})
}

func TestCartSetQuantity(t *testing.T) {
	cart := &Cart{}
	cart.AddItem(1, 2)

	if ok := cart.SetQuantity(1, 7); !ok {
		t.Fatal("expected SetQuantity to succeed for existing line")
	}
	if cart.Items[0].Quantity != 7 {
		t.Errorf("expected quantity 7, got %d", cart.Items[0].Quantity)
	}

	if ok := cart.SetQuantity(99, 1); ok {
		t.Error("expected SetQuantity to fail for missing line")
	}
}

func TestCartRemoveItem(t *testing.T) {
	cart := &Cart{}
	cart.AddItem(1, 2)
	cart.AddItem(2, 3)

	if ok := cart.RemoveItem(1); !ok {
		t.Fatal("expected RemoveItem to succeed for existing line")
	}
	if len(cart.Items) != 1 || cart.Items[0].ProductID != 2 {
		t.Errorf("unexpected remaining lines: %+v", cart.Items)
	}

	if ok := cart.RemoveItem(1); ok {
		t.Error("expected RemoveItem to fail for missing line")
	}
}

func TestCartIsEmpty(t *testing.T) {
	cart := &Cart{}
	if !cart.IsEmpty() {
		t.Error("new cart should be empty")
	}

	cart.AddItem(1, 1)
	if cart.IsEmpty() {
		t.Error("cart with a line should not be empty")
	}
}
