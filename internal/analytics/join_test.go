package analytics

import (
	"testing"

	"github.com/shopspring/decimal"

	"spendstats/pkg/records"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func product(id int64, category, price string) records.Record {
	return records.Record{"product_id": id, "category": category, "price": dec(price)}
}

func purchase(id, userID, productID, qty int64) records.Record {
	return records.Record{"purchase_id": id, "user_id": userID, "product_id": productID, "quantity": qty}
}

func user(id, age int64) records.Record {
	return records.Record{"user_id": id, "age": age}
}

func TestJoinPurchaseProduct(t *testing.T) {
	products := []records.Record{
		product(1, "Electronics", "100.00"),
		product(2, "Books", "19.99"),
	}
	purchases := []records.Record{
		purchase(1, 10, 1, 2),
		purchase(2, 11, 2, 3),
		purchase(3, 12, 99, 1), // no such product -> dropped
	}

	got := JoinPurchaseProduct(purchases, products)

	if len(got) != 2 {
		t.Fatalf("len=%d want 2 (unmatched purchase must drop)", len(got))
	}
	// Every surviving row's product_id must exist in the product table and
	// amount must equal price*quantity exactly.
	wantAmounts := map[int64]string{1: "200.00", 2: "59.97"}
	for _, row := range got {
		pid, ok := row.Int64("purchase_id")
		if !ok {
			t.Fatalf("row lost purchase_id: %v", row)
		}
		amount, ok := row.Decimal("amount")
		if !ok {
			t.Fatalf("row %d has no amount", pid)
		}
		if want := dec(wantAmounts[pid]); !amount.Equal(want) {
			t.Fatalf("purchase %d amount=%s want %s", pid, amount, want)
		}
		if _, ok := row.String("category"); !ok {
			t.Fatalf("purchase %d missing joined category", pid)
		}
	}
}

func TestJoinPurchaseProductDoesNotMutateInputs(t *testing.T) {
	products := []records.Record{product(1, "A", "10.00")}
	purchases := []records.Record{purchase(1, 1, 1, 2)}

	_ = JoinPurchaseProduct(purchases, products)

	if _, ok := purchases[0]["amount"]; ok {
		t.Fatalf("join wrote derived column into input purchase")
	}
	if _, ok := purchases[0]["category"]; ok {
		t.Fatalf("join wrote product column into input purchase")
	}
	if len(products[0]) != 3 {
		t.Fatalf("join mutated product row: %v", products[0])
	}
}

func TestJoinPurchaseUser(t *testing.T) {
	users := []records.Record{user(1, 20), user(2, 40)}
	enriched := []records.Record{
		{"purchase_id": int64(1), "user_id": int64(1), "amount": dec("5.00")},
		{"purchase_id": int64(2), "user_id": int64(9), "amount": dec("7.00")}, // no user -> drop
	}

	got := JoinPurchaseUser(enriched, users)

	if len(got) != 1 {
		t.Fatalf("len=%d want 1", len(got))
	}
	if age, ok := got[0].Int64("age"); !ok || age != 20 {
		t.Fatalf("age=%v want 20", got[0]["age"])
	}
}

func TestFilterAgeInclusiveBounds(t *testing.T) {
	rows := []records.Record{
		{"age": int64(17)},
		{"age": int64(18)},
		{"age": int64(25)},
		{"age": int64(26)},
		{"note": "no age"},
	}
	got := FilterAge(rows, 18, 25)
	if len(got) != 2 {
		t.Fatalf("len=%d want 2 (both band edges inclusive)", len(got))
	}
	for _, r := range got {
		age, _ := r.Int64("age")
		if age < 18 || age > 25 {
			t.Fatalf("age %d outside band", age)
		}
	}
}
