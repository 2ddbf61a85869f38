package service

import (
	"fmt"
	"os"

	"github.com/bitfantasy/nimo-shopfloor/internal/shopfloor/entity"
	"github.com/bitfantasy/nimo-shopfloor/internal/shopfloor/repository"
)

// checkDataDir 所有操作先确认数据目录存在
func checkDataDir(dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("数据目录不存在: %s", dir)
		}
		return fmt.Errorf("访问数据目录失败 %s: %w", dir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("数据目录不是目录: %s", dir)
	}
	return nil
}

// SnapshotService 快照加载：把目录内全部数据源物化为一份一致的内存快照。
// 任一必需来源失败则整体失败，不返回半成品快照。
type SnapshotService struct {
	catalogRepo *repository.CatalogRepository
	stockRepo   *repository.StockRepository
	historyRepo *repository.HistoryRepository
}

func NewSnapshotService(
	catalogRepo *repository.CatalogRepository,
	stockRepo *repository.StockRepository,
	historyRepo *repository.HistoryRepository,
) *SnapshotService {
	return &SnapshotService{
		catalogRepo: catalogRepo,
		stockRepo:   stockRepo,
		historyRepo: historyRepo,
	}
}

func (s *SnapshotService) Load(dir string) (*entity.DataSnapshot, error) {
	if err := checkDataDir(dir); err != nil {
		return nil, err
	}

	assemblies, err := s.catalogRepo.LoadAssemblies(dir)
	if err != nil {
		return nil, fmt.Errorf("读取装配表失败: %w", err)
	}
	parts, err := s.catalogRepo.LoadParts(dir)
	if err != nil {
		return nil, fmt.Errorf("读取零件表失败: %w", err)
	}
	bomItems, err := s.catalogRepo.LoadBomItems(dir)
	if err != nil {
		return nil, fmt.Errorf("读取BOM表失败: %w", err)
	}
	stock, err := s.stockRepo.Load(dir)
	if err != nil {
		return nil, fmt.Errorf("读取库存表失败: %w", err)
	}

	return &entity.DataSnapshot{
		Assemblies:   assemblies,
		Parts:        parts,
		BomItems:     bomItems,
		Stock:        stock,
		BuildHistory: s.historyRepo.LoadBuild(dir), // 可选来源，缺失为空
		Inventory:    UnifyInventory(parts, stock),
	}, nil
}

// PanelHistory 读取面板历史。文件不存在不算错误，返回空列表。
func (s *SnapshotService) PanelHistory(dir string) ([]entity.BuildHistoryRecord, error) {
	if err := checkDataDir(dir); err != nil {
		return nil, err
	}
	return s.historyRepo.LoadPanel(dir), nil
}
