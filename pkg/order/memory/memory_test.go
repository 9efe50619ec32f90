package memory

import (
	"context"
	"errors"
	"sync"
	"testing"

	"orderscan/pkg/order"
)

func seed() order.Order {
	return order.Order{
		ID:     "O1",
		Status: "Pending",
		SKUs: map[string]order.LineItem{
			"A1": {Title: "Widget", Color: "red", Quantity: 2, Price: 9.99},
		},
	}
}

func TestRepository(t *testing.T) {
	ctx := context.Background()
	repo := New()
	if err := repo.Create(ctx, seed()); err != nil {
		t.Fatalf("create: %v", err)
	}
	got, err := repo.Get(ctx, "O1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.SKUs["A1"].Title != "Widget" {
		t.Fatalf("expected Widget, got %s", got.SKUs["A1"].Title)
	}
	if err := repo.RecordScan(ctx, "O1", "A1", "1405/07/26 10:15"); err != nil {
		t.Fatalf("scan: %v", err)
	}
	if err := repo.UpdateStatus(ctx, "O1", "Shipped"); err != nil {
		t.Fatalf("update status: %v", err)
	}
	list, err := repo.List(ctx)
	if err != nil || len(list) != 1 {
		t.Fatalf("list: %v len=%d", err, len(list))
	}
	li := list[0].SKUs["A1"]
	if li.Scanned != 1 || li.ScanTimestamp == nil || *li.ScanTimestamp != "1405/07/26 10:15" {
		t.Fatalf("unexpected line item after scan: %+v", li)
	}
	if list[0].Status != "Shipped" {
		t.Fatalf("expected Shipped, got %s", list[0].Status)
	}
}

func TestRepositoryNotFound(t *testing.T) {
	ctx := context.Background()
	repo := New()
	if err := repo.Create(ctx, seed()); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := repo.Get(ctx, "missing"); !errors.Is(err, order.ErrNotFound) {
		t.Fatalf("get: expected ErrNotFound, got %v", err)
	}
	if err := repo.RecordScan(ctx, "missing", "A1", "x"); !errors.Is(err, order.ErrNotFound) {
		t.Fatalf("scan unknown order: expected ErrNotFound, got %v", err)
	}
	if err := repo.RecordScan(ctx, "O1", "B2", "x"); !errors.Is(err, order.ErrNotFound) {
		t.Fatalf("scan unknown sku: expected ErrNotFound, got %v", err)
	}
	if err := repo.UpdateStatus(ctx, "missing", "Shipped"); !errors.Is(err, order.ErrNotFound) {
		t.Fatalf("update: expected ErrNotFound, got %v", err)
	}
	got, _ := repo.Get(ctx, "O1")
	if got.SKUs["A1"].Scanned != 0 || got.Status != "Pending" {
		t.Fatalf("store mutated by failed calls: %+v", got)
	}
}

func TestRepositoryInsertionOrder(t *testing.T) {
	ctx := context.Background()
	repo := New()
	for _, id := range []string{"c", "a", "b", "a"} {
		o := seed()
		o.ID = id
		if err := repo.Create(ctx, o); err != nil {
			t.Fatalf("create %s: %v", id, err)
		}
	}
	list, _ := repo.List(ctx)
	if len(list) != 3 {
		t.Fatalf("expected 3 orders, got %d", len(list))
	}
	for i, want := range []string{"c", "a", "b"} {
		if list[i].ID != want {
			t.Fatalf("position %d: expected %s, got %s", i, want, list[i].ID)
		}
	}
}

func TestRepositoryReturnsCopies(t *testing.T) {
	ctx := context.Background()
	repo := New()
	o := seed()
	if err := repo.Create(ctx, o); err != nil {
		t.Fatalf("create: %v", err)
	}
	o.SKUs["A1"] = order.LineItem{Title: "changed"}
	got, _ := repo.Get(ctx, "O1")
	got.SKUs["A1"] = order.LineItem{Title: "changed again"}
	again, _ := repo.Get(ctx, "O1")
	if again.SKUs["A1"].Title != "Widget" {
		t.Fatalf("repository state leaked: %+v", again.SKUs["A1"])
	}
}

func TestRepositoryConcurrentScans(t *testing.T) {
	ctx := context.Background()
	repo := New()
	if err := repo.Create(ctx, seed()); err != nil {
		t.Fatalf("create: %v", err)
	}
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = repo.RecordScan(ctx, "O1", "A1", "t")
		}()
	}
	wg.Wait()
	got, _ := repo.Get(ctx, "O1")
	if got.SKUs["A1"].Scanned != 50 {
		t.Fatalf("expected 50 scans, got %d", got.SKUs["A1"].Scanned)
	}
}

func TestRepositoryRecreateKeepsScans(t *testing.T) {
	ctx := context.Background()
	repo := New()
	if err := repo.Create(ctx, seed()); err != nil {
		t.Fatalf("create: %v", err)
	}
	for i := 0; i < 2; i++ {
		if err := repo.RecordScan(ctx, "O1", "A1", "1405/07/26 10:15"); err != nil {
			t.Fatalf("scan: %v", err)
		}
	}
	if err := repo.Create(ctx, seed()); err != nil {
		t.Fatalf("recreate: %v", err)
	}
	got, _ := repo.Get(ctx, "O1")
	li := got.SKUs["A1"]
	if li.Scanned != 2 || li.ScanTimestamp == nil || *li.ScanTimestamp != "1405/07/26 10:15" {
		t.Fatalf("scan progress lost on recreate: %+v", li)
	}
}

func TestRepositorySetTransfer(t *testing.T) {
	ctx := context.Background()
	repo := New()
	if err := repo.Create(ctx, seed()); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := repo.SetTransfer(ctx, "O1", order.TransferMahex); err != nil {
		t.Fatalf("set transfer: %v", err)
	}
	if err := repo.SetTransfer(ctx, "missing", order.TransferMahex); !errors.Is(err, order.ErrNotFound) {
		t.Fatalf("set transfer: expected ErrNotFound, got %v", err)
	}
	got, _ := repo.Get(ctx, "O1")
	if got.TransferType != order.TransferMahex {
		t.Fatalf("expected %s, got %q", order.TransferMahex, got.TransferType)
	}
}
