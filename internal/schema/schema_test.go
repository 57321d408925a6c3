package schema

import (
	"reflect"
	"testing"
)

func TestContracts(t *testing.T) {
	tests := []struct {
		contract Contract
		want     []string
	}{
		{Products, []string{"product_id", "category", "price"}},
		{Purchases, []string{"purchase_id", "user_id", "product_id", "quantity"}},
		{Users, []string{"user_id", "age"}},
	}
	for _, tc := range tests {
		if got := tc.contract.Columns(); !reflect.DeepEqual(got, tc.want) {
			t.Fatalf("%s columns=%v want %v", tc.contract.Name, got, tc.want)
		}
	}
}
