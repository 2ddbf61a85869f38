package service

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bitfantasy/nimo-shopfloor/internal/shopfloor/repository"
	"github.com/bitfantasy/nimo-shopfloor/internal/shopfloor/testutil"
)

func newSnapshotService() *SnapshotService {
	repos := repository.NewRepositories()
	return NewSnapshotService(repos.Catalog, repos.Stock, repos.History)
}

func TestLoadSnapshot(t *testing.T) {
	dir := testutil.SeedDataDir(t)
	svc := newSnapshotService()

	snap, err := svc.Load(dir)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(snap.Assemblies) != 1 || len(snap.Parts) != 2 || len(snap.BomItems) != 2 || len(snap.Stock) != 2 {
		t.Errorf("Unexpected snapshot sizes: %d assemblies, %d parts, %d bom, %d stock",
			len(snap.Assemblies), len(snap.Parts), len(snap.BomItems), len(snap.Stock))
	}
	// 历史来源可选，缺失时为空而非报错
	if len(snap.BuildHistory) != 0 {
		t.Errorf("Expected empty build history, got %d records", len(snap.BuildHistory))
	}
	// 库存视图随快照派生
	if len(snap.Inventory) != 2 {
		t.Fatalf("Expected derived inventory with 2 items, got %d", len(snap.Inventory))
	}
	if snap.Inventory[0].SKU != "P-1" || snap.Inventory[0].AvailableQty != 10 {
		t.Errorf("Unexpected first inventory item: %+v", snap.Inventory[0])
	}
}

func TestLoadSnapshotTrimsWhitespace(t *testing.T) {
	dir := testutil.SeedDataDir(t)
	testutil.WriteFile(t, dir, "parts.csv",
		"part_sku,name,uom\n"+
			"  P-1 , Bracket ,ea \n")
	svc := newSnapshotService()

	snap, err := svc.Load(dir)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if snap.Parts[0].PartSKU != "P-1" || snap.Parts[0].Name != "Bracket" || snap.Parts[0].UOM != "ea" {
		t.Errorf("Expected trimmed fields, got %+v", snap.Parts[0])
	}
}

func TestLoadSnapshotMissingRequiredSource(t *testing.T) {
	dir := testutil.SeedDataDir(t)
	os.Remove(filepath.Join(dir, "stock.csv"))
	svc := newSnapshotService()

	_, err := svc.Load(dir)
	if err == nil {
		t.Fatal("Expected error when stock.csv is missing")
	}
	if !errors.Is(err, repository.ErrMissingSource) {
		t.Errorf("Expected ErrMissingSource, got: %v", err)
	}
	if !strings.Contains(err.Error(), "stock.csv") {
		t.Errorf("Expected error to name stock.csv, got: %v", err)
	}
}

func TestLoadSnapshotMissingDirectory(t *testing.T) {
	svc := newSnapshotService()

	_, err := svc.Load(filepath.Join(t.TempDir(), "no-such-dir"))
	if err == nil {
		t.Fatal("Expected error for missing data directory")
	}
	if !strings.Contains(err.Error(), "数据目录不存在") {
		t.Errorf("Unexpected error: %v", err)
	}
}

func TestLoadSnapshotColumnCountMismatch(t *testing.T) {
	dir := testutil.SeedDataDir(t)
	testutil.WriteFile(t, dir, "parts.csv",
		"part_sku,name,uom\n"+
			"P-1,Bracket,ea,extra\n")
	svc := newSnapshotService()

	if _, err := svc.Load(dir); err == nil {
		t.Fatal("Expected error for row with extra column")
	}
}

func TestLoadSnapshotBadNumber(t *testing.T) {
	dir := testutil.SeedDataDir(t)
	testutil.WriteFile(t, dir, "stock.csv",
		"sku,on_hand_qty,reserved_qty\n"+
			"P-1,ten,0\n")
	svc := newSnapshotService()

	_, err := svc.Load(dir)
	if err == nil {
		t.Fatal("Expected error for non-numeric on_hand_qty")
	}
	if !strings.Contains(err.Error(), "第2行") {
		t.Errorf("Expected error to identify the row, got: %v", err)
	}
}

func TestLoadSnapshotHeaderMismatch(t *testing.T) {
	dir := testutil.SeedDataDir(t)
	testutil.WriteFile(t, dir, "assemblies.csv",
		"sku,name,uom\n"+
			"ASM-1,Panel Type A,ea\n")
	svc := newSnapshotService()

	if _, err := svc.Load(dir); err == nil {
		t.Fatal("Expected error for wrong header column name")
	}
}

func TestLoadSnapshotWithHistory(t *testing.T) {
	dir := testutil.SeedDataDir(t)
	testutil.WriteFile(t, dir, "build_history.csv",
		"id,timestamp,work_order,sales_order,customer,assembly_sku,quantity_built,operator,notes\n"+
			"abc-123,2025-08-01T10:00:00Z,WO-1,SO-1,ACME,ASM-1,2,alice,first run\n")
	svc := newSnapshotService()

	snap, err := svc.Load(dir)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(snap.BuildHistory) != 1 {
		t.Fatalf("Expected 1 history record, got %d", len(snap.BuildHistory))
	}
	rec := snap.BuildHistory[0]
	if rec.ID != "abc-123" || rec.AssemblySKU != "ASM-1" || rec.QuantityBuilt != 2 {
		t.Errorf("Unexpected history record: %+v", rec)
	}
}

func TestPanelHistoryMissingFileReturnsEmpty(t *testing.T) {
	dir := testutil.SeedDataDir(t)
	svc := newSnapshotService()

	records, err := svc.PanelHistory(dir)
	if err != nil {
		t.Fatalf("PanelHistory failed: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("Expected empty panel history, got %d records", len(records))
	}
}
