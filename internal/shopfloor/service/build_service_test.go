package service

import (
	"sync"
	"testing"
	"time"

	"github.com/bitfantasy/nimo-shopfloor/internal/shopfloor/entity"
	"github.com/bitfantasy/nimo-shopfloor/internal/shopfloor/repository"
	"github.com/bitfantasy/nimo-shopfloor/internal/shopfloor/testutil"
	"go.uber.org/zap"
)

func newBuildTestServices() (*Services, *repository.Repositories) {
	repos := repository.NewRepositories()
	return NewServices(repos, zap.NewNop()), repos
}

func stockBySKU(stock []entity.StockRow) map[string]entity.StockRow {
	m := make(map[string]entity.StockRow, len(stock))
	for _, s := range stock {
		m[s.SKU] = s
	}
	return m
}

func TestRecordBuildEndToEnd(t *testing.T) {
	dir := testutil.SeedDataDir(t)
	services, repos := newBuildTestServices()

	snap, err := services.Build.RecordBuild(dir, RecordBuildRequest{
		WorkOrder:     "WO-100",
		SalesOrder:    "SO-200",
		Customer:      "ACME",
		AssemblySKU:   "ASM-1",
		QuantityBuilt: 2,
		Operator:      "alice",
	})
	if err != nil {
		t.Fatalf("RecordBuild failed: %v", err)
	}

	// ASM-1 每件耗 2x P-1, 1x P-2；建2件 → P-1: 10-4=6, P-2: 3-2=1
	stock := stockBySKU(snap.Stock)
	if stock["P-1"].OnHandQty != 6 {
		t.Errorf("Expected P-1 on_hand 6, got %v", stock["P-1"].OnHandQty)
	}
	if stock["P-2"].OnHandQty != 1 {
		t.Errorf("Expected P-2 on_hand 1, got %v", stock["P-2"].OnHandQty)
	}

	// 快照里带回新的历史记录
	if len(snap.BuildHistory) != 1 {
		t.Fatalf("Expected 1 history record in snapshot, got %d", len(snap.BuildHistory))
	}
	rec := snap.BuildHistory[0]
	if rec.AssemblySKU != "ASM-1" || rec.QuantityBuilt != 2 || rec.Operator != "alice" {
		t.Errorf("Unexpected history record: %+v", rec)
	}
	if rec.ID == "" {
		t.Error("Expected generated record ID")
	}
	if _, err := time.Parse(time.RFC3339, rec.Timestamp); err != nil {
		t.Errorf("Expected RFC3339 UTC timestamp, got %q: %v", rec.Timestamp, err)
	}

	// 双日志内容一致
	buildLog := repos.History.LoadBuild(dir)
	panelLog := repos.History.LoadPanel(dir)
	if len(buildLog) != 1 || len(panelLog) != 1 {
		t.Fatalf("Expected 1 record in each log, got %d / %d", len(buildLog), len(panelLog))
	}
	if buildLog[0] != panelLog[0] {
		t.Errorf("Expected identical records in both logs:\n%+v\n%+v", buildLog[0], panelLog[0])
	}
}

func TestRecordBuildClampsStock(t *testing.T) {
	dir := testutil.SeedDataDir(t)
	services, _ := newBuildTestServices()

	// P-2 只有3件，建100件不报错，库存钳到0
	snap, err := services.Build.RecordBuild(dir, RecordBuildRequest{
		AssemblySKU:   "ASM-1",
		QuantityBuilt: 100,
	})
	if err != nil {
		t.Fatalf("RecordBuild failed: %v", err)
	}
	stock := stockBySKU(snap.Stock)
	if stock["P-1"].OnHandQty != 0 || stock["P-2"].OnHandQty != 0 {
		t.Errorf("Expected both components clamped to 0, got P-1=%v P-2=%v",
			stock["P-1"].OnHandQty, stock["P-2"].OnHandQty)
	}
}

func TestRecordBuildUnknownAssembly(t *testing.T) {
	dir := testutil.SeedDataDir(t)
	services, repos := newBuildTestServices()

	// 没有BOM行的装配：不扣任何库存，但历史照常追加
	snap, err := services.Build.RecordBuild(dir, RecordBuildRequest{
		AssemblySKU:   "ASM-404",
		QuantityBuilt: 5,
	})
	if err != nil {
		t.Fatalf("RecordBuild failed: %v", err)
	}
	stock := stockBySKU(snap.Stock)
	if stock["P-1"].OnHandQty != 10 || stock["P-2"].OnHandQty != 3 {
		t.Errorf("Expected stock untouched, got P-1=%v P-2=%v",
			stock["P-1"].OnHandQty, stock["P-2"].OnHandQty)
	}
	if len(repos.History.LoadBuild(dir)) != 1 {
		t.Error("Expected history record appended even without BOM rows")
	}
}

func TestRecordBuildMissingDirectory(t *testing.T) {
	services, _ := newBuildTestServices()

	if _, err := services.Build.RecordBuild("/no/such/dir", RecordBuildRequest{
		AssemblySKU:   "ASM-1",
		QuantityBuilt: 1,
	}); err == nil {
		t.Fatal("Expected error for missing data directory")
	}
}

func TestRecordBuildConcurrentSerialized(t *testing.T) {
	dir := testutil.SeedDataDir(t)
	services, _ := newBuildTestServices()

	// 同目录并发生产：目录锁串行化后两次扣减都要生效
	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := services.Build.RecordBuild(dir, RecordBuildRequest{
				AssemblySKU:   "ASM-1",
				QuantityBuilt: 1,
			}); err != nil {
				t.Errorf("RecordBuild failed: %v", err)
			}
		}()
	}
	wg.Wait()

	snap, err := services.Snapshot.Load(dir)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	stock := stockBySKU(snap.Stock)
	if stock["P-1"].OnHandQty != 6 {
		t.Errorf("Expected P-1 on_hand 10-2*2=6 after both builds, got %v", stock["P-1"].OnHandQty)
	}
	if len(snap.BuildHistory) != 2 {
		t.Errorf("Expected 2 history records, got %d", len(snap.BuildHistory))
	}
}

func TestBuildability(t *testing.T) {
	dir := testutil.SeedDataDir(t)
	services, _ := newBuildTestServices()

	result, err := services.Build.Buildability(dir, "ASM-1", true)
	if err != nil {
		t.Fatalf("Buildability failed: %v", err)
	}
	// P-1: 10/2=5, P-2: 3/1=3 → 瓶颈 P-2
	if result.MaxBuildable != 3 {
		t.Errorf("Expected max buildable 3, got %d", result.MaxBuildable)
	}
	if len(result.LimitingComponents) != 1 || result.LimitingComponents[0].SKU != "P-2" {
		t.Errorf("Expected P-2 limiting, got %+v", result.LimitingComponents)
	}
}
